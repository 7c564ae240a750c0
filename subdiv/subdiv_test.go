package subdiv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/TuftsBCB/exsub/clade"
	"github.com/TuftsBCB/exsub/taxa"
)

// obs is a clade given as comma separated members and its support.
type obs struct {
	members string
	support int
}

// newTable records each observation in order, so the i'th distinct member
// set gets id i.
func newTable(t *testing.T, observations ...obs) *clade.Table {
	t.Helper()
	tab := clade.NewTable()
	for _, o := range observations {
		_, _, err := tab.Observe(taxa.New(strings.Split(o.members, ",")...), o.support)
		require.NoError(t, err)
	}
	return tab
}

func universe(ids string) taxa.Set {
	return taxa.New(strings.Split(ids, ",")...)
}

func run(t *testing.T, u taxa.Set, tab *clade.Table, minSupport int) (clade.IDSet, string) {
	t.Helper()
	retained, err := NewEngine(tab, minSupport, zaptest.NewLogger(t)).Subdivide(u, tab.IDs())
	require.NoError(t, err)
	out, err := Output(u, retained, tab)
	require.NoError(t, err)
	return retained, out
}

func TestSubdivideNestedCladeIsPruned(t *testing.T) {
	tab := newTable(t, obs{"A,B", 2}, obs{"A,B,C", 1})
	retained, out := run(t, universe("A,B,C,D"), tab, 2)

	assert.Equal(t, []int{1}, retained.Sorted())
	assert.Equal(t, "((A,B,C)1,D);", out)
}

func TestSubdivideThresholdBoundary(t *testing.T) {
	tab := newTable(t, obs{"A,B", 2}, obs{"C,D", 9})

	retained, out := run(t, universe("A,B,C,D"), tab, 2)
	assert.Equal(t, []int{0, 1}, retained.Sorted())
	assert.Equal(t, "((A,B)2,(C,D)9);", out)

	retained, out = run(t, universe("A,B,C,D"), tab, 3)
	assert.Equal(t, []int{1}, retained.Sorted())
	assert.Equal(t, "((C,D)9,A,B);", out)
}

func TestSubdivideWalksOutward(t *testing.T) {
	tab := newTable(t, obs{"A,B", 1}, obs{"A,B,C", 1}, obs{"A,B,C,D", 4})
	retained, out := run(t, universe("A,B,C,D,E"), tab, 3)

	assert.Equal(t, []int{2}, retained.Sorted())
	assert.Equal(t, "((A,B,C,D)4,E);", out)
}

func TestSubdivideKeepsLastClade(t *testing.T) {
	tab := newTable(t, obs{"A,B", 0})
	retained, out := run(t, universe("A,B"), tab, 5)

	assert.Equal(t, []int{0}, retained.Sorted())
	assert.Equal(t, "((A,B)0);", out)
}

func TestSubdivideTieBreakIgnoresIDs(t *testing.T) {
	tab := newTable(t, obs{"A,C", 1}, obs{"A,B", 1})
	retained, out := run(t, universe("A,B,C"), tab, 1)

	assert.Equal(t, []int{0, 1}, retained.Sorted())
	assert.Equal(t, "((A,B)1,(A,C)1);", out)
}

func TestSubdivideKeepsEnclosingClades(t *testing.T) {
	tab := newTable(t,
		obs{"A,B", 2}, obs{"A,B,C", 3}, obs{"D,E", 3},
		obs{"A,B,C,D,E", 3}, obs{"B,C", 1})
	retained, out := run(t, universe("A,B,C,D,E"), tab, 2)

	assert.Equal(t, []int{1, 2, 3}, retained.Sorted())
	assert.Equal(t, "(((A,B,C)3,(D,E)3)3);", out)
}

func TestSubdivideEmptyCandidates(t *testing.T) {
	tab := clade.NewTable()
	retained, err := Subdivide(universe("A,B,C"), clade.NewIDSet(), tab, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, retained.Len())

	out, err := Output(universe("A,B,C"), retained, tab)
	require.NoError(t, err)
	assert.Equal(t, "(A,B,C);", out)

	out, err = Output(taxa.New(), retained, tab)
	require.NoError(t, err)
	assert.Equal(t, "();", out)
}

func TestSubdivideDoesNotModifyCandidates(t *testing.T) {
	tab := newTable(t, obs{"A,B", 2}, obs{"A,B,C", 1})
	ids := tab.IDs()
	_, err := Subdivide(universe("A,B,C,D"), ids, tab, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ids.Sorted())
}

func TestSubdivideErrors(t *testing.T) {
	tab := newTable(t, obs{"A,B", 1})

	_, err := Subdivide(nil, tab.IDs(), tab, 1)
	assert.ErrorIs(t, err, taxa.ErrInvalidArgument)

	_, err = Subdivide(universe("A,B"), nil, tab, 1)
	assert.ErrorIs(t, err, taxa.ErrInvalidArgument)

	_, err = Subdivide(universe("A,B"), clade.NewIDSet(0, 7), tab, 1)
	assert.ErrorIs(t, err, ErrUnknownClade)
}

// Selecting a clade discards every clade nested inside it, so among the
// retained clades none is nested inside a clade that was selected last for
// any of its members.
func TestSubdivideSelectionsHaveNoRetainedSubsets(t *testing.T) {
	tab := newTable(t,
		obs{"A,B", 4}, obs{"C,D", 1}, obs{"A,B,C,D", 2},
		obs{"E,F", 3}, obs{"E,F,G", 5}, obs{"A,B,C,D,E,F,G", 1})
	u := universe("A,B,C,D,E,F,G,H")
	retained, _ := run(t, u, tab, 2)

	// A: {A,B}. C: {C,D} is too weak, {A,B,C,D} is taken and drops {A,B}.
	// E: {E,F}. G: {E,F,G} drops {E,F}. H is in no clade. The enclosing
	// {A,...,G} is never selected, so it stays.
	assert.Equal(t, []int{2, 4, 5}, retained.Sorted())
	for _, id := range []int{2, 4} {
		sel, _ := tab.Get(id)
		for other := range retained {
			if other == id {
				continue
			}
			c, _ := tab.Get(other)
			sub, err := taxa.IsSubset(c.Members, sel.Members)
			require.NoError(t, err)
			assert.False(t, sub, "clade %s nested in selected %s", c, sel)
		}
	}
}
