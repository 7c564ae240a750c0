package newick

import (
	"bytes"
	"fmt"
	"strings"
)

// Tree corresponds to any value representable in a Newick format. Each
// tree value corresponds to a single node.
type Tree struct {
	// All children of this node, which may be empty.
	Children []Tree

	// The label of this node. If it's empty, then this node does
	// not have a name.
	Label string

	// The branch length of this node corresponding to the distance between
	// it and its parent node. If it's `nil`, then no distance exists.
	Length *float64
}

// IsLeaf returns true if this node has no children.
func (tree *Tree) IsLeaf() bool {
	return len(tree.Children) == 0
}

// Leaves returns the labels of every leaf below (and including) this node,
// in the order they appear in the tree.
func (tree *Tree) Leaves() []string {
	if tree.IsLeaf() {
		return []string{tree.Label}
	}
	leaves := make([]string, 0, len(tree.Children))
	for i := range tree.Children {
		leaves = append(leaves, tree.Children[i].Leaves()...)
	}
	return leaves
}

// Walk calls f for this node and every node below it in pre-order. If f
// returns false, the children of that node are not visited.
func (tree *Tree) Walk(f func(t *Tree) bool) {
	if !f(tree) {
		return
	}
	for i := range tree.Children {
		tree.Children[i].Walk(f)
	}
}

// String recursively converts a tree to a string, with whitespace indenting
// to indicate depth.
func (tree *Tree) String() string {
	buf := new(bytes.Buffer)
	pf := func(format string, v ...interface{}) {
		fmt.Fprintf(buf, format, v...)
	}

	var out func(t *Tree, depth int)
	out = func(t *Tree, depth int) {
		name, length := t.Label, ""
		if len(name) == 0 {
			name = "N/A"
		}
		if t.Length != nil {
			length = fmt.Sprintf(" (%f)", *t.Length)
		}
		pf("%s%s%s\n", strings.Repeat("  ", depth), name, length)
		for _, child := range t.Children {
			out(&child, depth+1)
		}
	}
	out(tree, 0)
	return buf.String()
}
