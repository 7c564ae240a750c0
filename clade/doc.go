/*
Package clade collects the clades observed across a forest of rooted trees.

Every internal node of every tree contributes its descendent leaf set as a
candidate clade. Identical leaf sets, whether they appear in the same tree or
in different trees, are stored once in a Table, and the integer support
labels of the nodes that produced them are summed. Leaf sets with fewer than
two members are never recorded.

A Table is append-only: entries are never removed or replaced, only their
support grows. Later phases work on IDSet values, which name the clades that
are still candidates without touching the table.
*/
package clade
