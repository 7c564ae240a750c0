package subdiv

import (
	"fmt"
	"strconv"

	"github.com/TuftsBCB/exsub/clade"
	"github.com/TuftsBCB/exsub/newick"
	"github.com/TuftsBCB/exsub/taxa"
)

// group is a clade chosen as a super-grouping at one level of the
// reconstruction, with the retained clades nested inside it.
type group struct {
	candidate
	children clade.IDSet
}

// Render returns the nested Newick list of the retained clades and the loose
// taxa, without the enclosing brackets or terminal. Each clade is written as
// its bracketed contents followed by its support, e.g., "(A,B)3,C".
//
// Neither `loose` nor `retained` is modified.
func Render(loose taxa.Set, retained clade.IDSet, table *clade.Table) (string, error) {
	forest, err := Reconstruct(loose, retained, table)
	if err != nil {
		return "", err
	}
	return newick.FormatForest(forest), nil
}

// Output returns the final exsub tree: the rendering of `retained` over every
// taxon in `universe`, enclosed in brackets and terminated by ';'.
func Output(universe taxa.Set, retained clade.IDSet, table *clade.Table) (string, error) {
	body, err := Render(universe, retained, table)
	if err != nil {
		return "", err
	}
	return "(" + body + ");", nil
}

// Reconstruct turns the retained clades back into a forest. Internal nodes
// are labeled with their support; leaves are the taxa of `loose` not
// enclosed by any retained clade at that level.
func Reconstruct(loose taxa.Set, retained clade.IDSet, table *clade.Table) ([]newick.Tree, error) {
	if loose == nil {
		return nil, fmt.Errorf("nil taxon pool: %w", taxa.ErrInvalidArgument)
	}
	cands, err := candidates(retained, table)
	if err != nil {
		return nil, err
	}
	return reconstruct(loose, retained, cands), nil
}

func reconstruct(pool taxa.Set, ids clade.IDSet, cands map[int]candidate) []newick.Tree {
	loose := pool.Copy()
	work := ids.Copy()

	var groups []group
	for work.Len() > 0 {
		super := pick(work, cands, larger)
		work.Remove(super.ID)
		g := group{super, clade.NewIDSet()}
		for id := range work {
			if nested(cands[id], super) {
				g.children.Add(id)
				work.Remove(id)
			}
		}
		groups = append(groups, g)
	}
	for _, g := range groups {
		for taxon := range g.Members {
			loose.Remove(taxon)
		}
	}

	forest := make([]newick.Tree, 0, len(groups)+loose.Len())
	for _, g := range groups {
		forest = append(forest, newick.Tree{
			Children: reconstruct(g.Members, g.children, cands),
			Label:    strconv.Itoa(g.Support),
		})
	}
	for _, taxon := range loose.Sorted() {
		forest = append(forest, newick.Tree{Label: taxon})
	}
	return forest
}
