package newick

import (
	"strconv"
	"strings"
)

// Newick returns the tree in the Newick format, terminated by a ';'.
func (tree *Tree) Newick() string {
	return tree.Format() + string(terminal)
}

// Format returns the Newick representation of this node and its
// descendents, without a terminal ';'. An internal node is written as its
// bracketed descendent list followed by its label, e.g., "(A,B)5".
func (tree *Tree) Format() string {
	var b strings.Builder
	tree.format(&b)
	return b.String()
}

func (tree *Tree) format(b *strings.Builder) {
	if !tree.IsLeaf() {
		b.WriteByte(descStart)
		for i := range tree.Children {
			if i > 0 {
				b.WriteByte(descDelimiter)
			}
			tree.Children[i].format(b)
		}
		b.WriteByte(descEnd)
	}
	b.WriteString(QuoteLabel(tree.Label))
	if tree.Length != nil {
		b.WriteByte(lengthStart)
		b.WriteString(strconv.FormatFloat(*tree.Length, 'g', -1, 64))
	}
}

// QuoteLabel returns the label as it must appear in Newick output. Labels
// containing any reserved character or whitespace are single quoted.
func QuoteLabel(label string) string {
	if !strings.ContainsAny(label, unquoteBanned) {
		return label
	}
	return string(quote) + strings.ReplaceAll(label, "'", "''") + string(quote)
}

// FormatForest returns the Newick representation of each tree in `forest`,
// joined by commas. It is the body of a descendent list.
func FormatForest(forest []Tree) string {
	parts := make([]string, len(forest))
	for i := range forest {
		parts[i] = forest[i].Format()
	}
	return strings.Join(parts, string(descDelimiter))
}
