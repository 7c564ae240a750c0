// Package taxa provides sets of taxon identifiers and the subset relation
// between them.
package taxa

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidArgument is returned when a nil set is given to a set relation.
var ErrInvalidArgument = errors.New("invalid argument")

// Normalize returns a taxon identifier as it appears in a Set. Trailing
// whitespace is not significant.
func Normalize(id string) string {
	return strings.TrimRight(id, " \t\r\n")
}

// Set is a set of taxon identifiers. A nil Set is not a valid argument to
// IsSubset or Equal; use New for an empty set.
type Set map[string]struct{}

// New returns a set containing the given identifiers.
func New(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add adds an identifier to the set.
func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Remove removes an identifier from the set, if present.
func (s Set) Remove(id string) {
	delete(s, id)
}

// Contains returns true if the identifier is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s Set) Len() int {
	return len(s)
}

// Copy returns a new set with the same members.
func (s Set) Copy() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns the members of the set in lexicographic order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// String returns the sorted members in braces, e.g., "{A,B}".
func (s Set) String() string {
	return "{" + strings.Join(s.Sorted(), ",") + "}"
}

// IsSubset returns true if every member of a is a member of b. Equal sets
// are subsets of each other.
func IsSubset(a, b Set) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("subset of nil set: %w", ErrInvalidArgument)
	}
	if len(a) > len(b) {
		return false, nil
	}
	for id := range a {
		if !b.Contains(id) {
			return false, nil
		}
	}
	return true, nil
}

// Equal returns true if a and b have the same members: the same size and
// each a subset of the other.
func Equal(a, b Set) (bool, error) {
	if a == nil || b == nil {
		return false, fmt.Errorf("equality of nil set: %w", ErrInvalidArgument)
	}
	if len(a) != len(b) {
		return false, nil
	}
	ab, _ := IsSubset(a, b)
	ba, _ := IsSubset(b, a)
	return ab && ba, nil
}

// CompareSorted orders two sorted member lists element by element and then
// by length. It returns -1, 0 or 1.
func CompareSorted(x, y []string) int {
	for i := 0; i < len(x) && i < len(y); i++ {
		if c := strings.Compare(x[i], y[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	return 0
}
