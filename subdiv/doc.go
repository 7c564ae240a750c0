/*
Package subdiv implements exhaustive subdivision: given every clade collected
from a forest of support-annotated trees, it chooses for each taxon the
smallest enclosing clade with enough support, discards the clades nested
inside each choice, and renders the surviving clades as a nested Newick
string.

Taxa are always visited in lexicographic order. When two candidate clades
have the same number of members, the one whose sorted member list is
lexicographically smaller wins, and clade ids break any remaining tie. The
result therefore does not depend on map iteration order or on the order in
which clades were first observed.

A typical use:

	table := clade.NewTable()
	col := clade.NewCollector(table, nil)
	for _, tree := range trees {
		if err := col.Collect(tree); err != nil {
			return err
		}
	}
	universe := table.Universe()
	retained, err := subdiv.Subdivide(universe, table.IDs(), table, 1)
	if err != nil {
		return err
	}
	out, err := subdiv.Output(universe, retained, table)
*/
package subdiv
