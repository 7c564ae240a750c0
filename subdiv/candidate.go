package subdiv

import (
	"errors"
	"fmt"
	"sort"

	"github.com/TuftsBCB/exsub/clade"
	"github.com/TuftsBCB/exsub/taxa"
)

// ErrUnknownClade is returned when an id set names a clade that is not in
// the table.
var ErrUnknownClade = errors.New("unknown clade")

// candidate is a clade along with its sorted member list, which is the key
// for every tie-break.
type candidate struct {
	clade.Clade
	sorted []string
}

// candidates resolves every id in `ids` against the table.
func candidates(ids clade.IDSet, table *clade.Table) (map[int]candidate, error) {
	if ids == nil {
		return nil, fmt.Errorf("nil clade id set: %w", taxa.ErrInvalidArgument)
	}
	if table == nil {
		return nil, fmt.Errorf("nil clade table: %w", taxa.ErrInvalidArgument)
	}
	cands := make(map[int]candidate, ids.Len())
	for id := range ids {
		c, ok := table.Get(id)
		if !ok {
			return nil, fmt.Errorf("clade %d: %w", id, ErrUnknownClade)
		}
		cands[id] = candidate{c, c.Members.Sorted()}
	}
	return cands, nil
}

// smaller reports whether a comes before b when looking for the smallest
// clade.
func smaller(a, b candidate) bool {
	if a.Size() != b.Size() {
		return a.Size() < b.Size()
	}
	if c := taxa.CompareSorted(a.sorted, b.sorted); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// larger reports whether a comes before b when looking for the largest
// clade.
func larger(a, b candidate) bool {
	if a.Size() != b.Size() {
		return a.Size() > b.Size()
	}
	if c := taxa.CompareSorted(a.sorted, b.sorted); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// pick returns the first candidate named by `ids` under the ordering
// `before`. The set must not be empty.
func pick(ids clade.IDSet, cands map[int]candidate, before func(a, b candidate) bool) candidate {
	var best candidate
	first := true
	for id := range ids {
		if c := cands[id]; first || before(c, best) {
			best, first = c, false
		}
	}
	return best
}

// ordered returns the candidates named by `ids` sorted by `before`.
func ordered(ids clade.IDSet, cands map[int]candidate, before func(a, b candidate) bool) []candidate {
	list := make([]candidate, 0, ids.Len())
	for id := range ids {
		list = append(list, cands[id])
	}
	sort.Slice(list, func(i, j int) bool { return before(list[i], list[j]) })
	return list
}

// nested reports whether the members of a are a subset of the members of b.
func nested(a, b candidate) bool {
	sub, err := taxa.IsSubset(a.Members, b.Members)
	return err == nil && sub
}
