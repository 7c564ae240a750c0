package clade

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/TuftsBCB/exsub/taxa"
)

// Clade is a set of taxa united as the descendents of at least one internal
// node, together with the summed support of every such node.
type Clade struct {
	ID      int
	Members taxa.Set
	Support int
}

// Size returns the number of members.
func (c Clade) Size() int {
	return c.Members.Len()
}

func (c Clade) String() string {
	return fmt.Sprintf("%d:%s:%d", c.ID, c.Members, c.Support)
}

// Table maps clade ids to clades and records the universe of taxa. Ids are
// assigned in order of first observation, starting at 0.
//
// It is safe to call the methods of a Table from multiple goroutines.
type Table struct {
	mu       sync.Mutex
	clades   []*Clade
	index    map[string][]int
	universe taxa.Set
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		index:    make(map[string][]int),
		universe: taxa.New(),
	}
}

// Observe records one observation of a clade with the given members: the
// support is added to the clade with an identical member set, or a new clade
// is created. The id of the clade is returned, along with whether it was
// created by this call.
//
// The members must contain at least two taxa and support must not be
// negative. Members are added to the universe.
func (t *Table) Observe(members taxa.Set, support int) (id int, created bool, err error) {
	if members == nil {
		return 0, false, fmt.Errorf("observe nil clade: %w", taxa.ErrInvalidArgument)
	}
	if members.Len() < 2 {
		return 0, false, fmt.Errorf("observe clade %s of %d members: %w",
			members, members.Len(), taxa.ErrInvalidArgument)
	}
	if support < 0 {
		return 0, false, fmt.Errorf("observe clade %s with support %d: %w",
			members, support, taxa.ErrInvalidArgument)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := indexKey(members)
	for _, id := range t.index[key] {
		eq, err := taxa.Equal(t.clades[id].Members, members)
		if err != nil {
			return 0, false, err
		}
		if eq {
			t.clades[id].Support += support
			return id, false, nil
		}
	}

	id = len(t.clades)
	c := &Clade{ID: id, Members: members.Copy(), Support: support}
	t.clades = append(t.clades, c)
	t.index[key] = append(t.index[key], id)
	for taxon := range members {
		t.universe.Add(taxon)
	}
	return id, true, nil
}

// AddTaxa adds identifiers to the universe.
func (t *Table) AddTaxa(ids ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		t.universe.Add(id)
	}
}

// Universe returns a copy of the set of every taxon seen so far.
func (t *Table) Universe() taxa.Set {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.universe.Copy()
}

// Get returns the clade with the given id. The returned clade shares its
// member set with the table and must not be modified.
func (t *Table) Get(id int) (Clade, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id < 0 || id >= len(t.clades) {
		return Clade{}, false
	}
	return *t.clades[id], true
}

// Len returns the number of distinct clades.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.clades)
}

// IDs returns a new set containing the id of every clade in the table.
func (t *Table) IDs() IDSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make(IDSet, len(t.clades))
	for _, c := range t.clades {
		ids.Add(c.ID)
	}
	return ids
}

// indexKey narrows the search for an identical member set. Two sets with the
// same key are still compared with taxa.Equal.
func indexKey(members taxa.Set) string {
	return strings.Join(members.Sorted(), "\x00")
}

// IDSet is a set of clade ids.
type IDSet map[int]struct{}

// NewIDSet returns a set containing the given ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s IDSet) Add(id int) {
	s[id] = struct{}{}
}

func (s IDSet) Remove(id int) {
	delete(s, id)
}

func (s IDSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Len() int {
	return len(s)
}

// Copy returns a new set with the same ids.
func (s IDSet) Copy() IDSet {
	c := make(IDSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns the ids in increasing order.
func (s IDSet) Sorted() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
