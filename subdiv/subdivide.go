package subdiv

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/TuftsBCB/exsub/clade"
	"github.com/TuftsBCB/exsub/taxa"
)

// Engine runs exhaustive subdivision over the clades of a table.
type Engine struct {
	// The table that candidate ids refer to. It is never modified.
	Table *clade.Table

	// Clades with less support than this are passed over in favor of the
	// next larger enclosing clade, unless they are the last candidate left.
	MinSupport int

	log *zap.Logger
}

// NewEngine returns an engine over `table`. A nil logger disables logging.
func NewEngine(table *clade.Table, minSupport int, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{Table: table, MinSupport: minSupport, log: logger}
}

// Subdivide is shorthand for NewEngine(table, minSupport, nil).Subdivide.
func Subdivide(universe taxa.Set, candidateIDs clade.IDSet, table *clade.Table, minSupport int) (clade.IDSet, error) {
	return NewEngine(table, minSupport, nil).Subdivide(universe, candidateIDs)
}

// Subdivide returns the ids of the clades that delimit species among the
// taxa in `universe`, chosen from `candidateIDs`. The given id set is not
// modified.
//
// For each taxon, in lexicographic order, the smallest remaining clade
// containing it is selected and every other remaining clade nested inside
// the selection is dropped. If the selection has less than MinSupport and
// it is not the only clade remaining, it is dropped too and the taxon is
// tried again against the larger clades that are left. A taxon contained in
// no remaining clade is left unassigned.
func (e *Engine) Subdivide(universe taxa.Set, candidateIDs clade.IDSet) (clade.IDSet, error) {
	if universe == nil {
		return nil, fmt.Errorf("nil universe: %w", taxa.ErrInvalidArgument)
	}
	cands, err := candidates(candidateIDs, e.Table)
	if err != nil {
		return nil, err
	}

	work := candidateIDs.Copy()
	for _, taxon := range universe.Sorted() {
		for {
			containing := clade.NewIDSet()
			for id := range work {
				if cands[id].Members.Contains(taxon) {
					containing.Add(id)
				}
			}
			if containing.Len() == 0 {
				e.log.Debug("Taxon unassigned", zap.String("taxon", taxon))
				break
			}

			sel := pick(containing, cands, smaller)
			for id := range work {
				if id != sel.ID && nested(cands[id], sel) {
					work.Remove(id)
				}
			}

			if sel.Support < e.MinSupport && work.Len() > 1 {
				e.log.Debug("Clade below minimum support",
					zap.String("taxon", taxon),
					zap.Stringer("clade", sel.Clade),
					zap.Int("remaining", work.Len()-1))
				work.Remove(sel.ID)
				continue
			}
			e.log.Debug("Clade selected",
				zap.String("taxon", taxon),
				zap.Stringer("clade", sel.Clade))
			break
		}
	}
	return work, nil
}
