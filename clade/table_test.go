package clade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TuftsBCB/exsub/taxa"
)

func TestObserveInsertOrAccumulate(t *testing.T) {
	tab := NewTable()

	id, created, err := tab.Observe(taxa.New("A", "B"), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	assert.True(t, created)

	id, created, err = tab.Observe(taxa.New("B", "A"), 3)
	require.NoError(t, err)
	assert.Equal(t, 0, id)
	assert.False(t, created)

	id, created, err = tab.Observe(taxa.New("A", "B", "C"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	assert.True(t, created)

	c, ok := tab.Get(0)
	require.True(t, ok)
	assert.Equal(t, 5, c.Support)
	assert.Equal(t, 2, c.Size())
	assert.Equal(t, 2, tab.Len())
	assert.Equal(t, []string{"A", "B", "C"}, tab.Universe().Sorted())
}

func TestObserveRejects(t *testing.T) {
	tab := NewTable()
	_, _, err := tab.Observe(nil, 1)
	assert.ErrorIs(t, err, taxa.ErrInvalidArgument)
	_, _, err = tab.Observe(taxa.New("A"), 1)
	assert.ErrorIs(t, err, taxa.ErrInvalidArgument)
	_, _, err = tab.Observe(taxa.New("A", "B"), -1)
	assert.ErrorIs(t, err, taxa.ErrInvalidArgument)
	assert.Equal(t, 0, tab.Len())
}

func TestObserveCopiesMembers(t *testing.T) {
	tab := NewTable()
	members := taxa.New("A", "B")
	_, _, err := tab.Observe(members, 1)
	require.NoError(t, err)
	members.Add("C")

	c, ok := tab.Get(0)
	require.True(t, ok)
	assert.Equal(t, 2, c.Size())
}

func TestTableAccessors(t *testing.T) {
	tab := NewTable()
	for _, m := range []taxa.Set{taxa.New("A", "B"), taxa.New("C", "D"), taxa.New("A", "B", "C", "D")} {
		_, _, err := tab.Observe(m, 1)
		require.NoError(t, err)
	}
	tab.AddTaxa("E")

	assert.Equal(t, []int{0, 1, 2}, tab.IDs().Sorted())
	assert.Len(t, all(tab), 3)
	assert.Equal(t, "2:{A,B,C,D}:1", all(tab)[2].String())
	assert.True(t, tab.Universe().Contains("E"))

	_, ok := tab.Get(3)
	assert.False(t, ok)
	_, ok = tab.Get(-1)
	assert.False(t, ok)
}

func TestIDSet(t *testing.T) {
	s := NewIDSet(3, 1, 2)
	assert.Equal(t, []int{1, 2, 3}, s.Sorted())

	c := s.Copy()
	c.Remove(2)
	assert.True(t, s.Contains(2))
	assert.False(t, c.Contains(2))
	assert.Equal(t, 2, c.Len())
}
