package newick

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
type Reader struct {
	*lexer
}

// NewReader returns a reader ready for reading trees from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{lex(r)}
}

// ReadAll returns all of the Newick trees in the source input. The first
// error that occurs is returned with no trees. The error is never `io.EOF`.
func (lx *Reader) ReadAll() ([]*Tree, error) {
	trees := make([]*Tree, 0)
	for {
		tree, err := lx.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil `Tree` is returned with `io.EOF` as the error.
func (lx *Reader) ReadTree() (*Tree, error) {
	item := lx.nextItem()
	parent := &Tree{}
	switch item.typ {
	case itemTerminal:
		return parent, nil
	case itemEOF:
		return nil, io.EOF
	case itemError:
		return nil, errf(item.line, "%s", item.val)
	}

	if err := lx.parse(parent, item); err != nil {
		return nil, err
	}

	item = lx.nextItem()
	if item.typ != itemTerminal {
		return nil, expectErr(item, fmt.Sprintf("a terminal '%c'", terminal))
	}
	return parent, nil
}

// ParseString reads exactly one tree from `s`.
func ParseString(s string) (*Tree, error) {
	tree, err := NewReader(strings.NewReader(s)).ReadTree()
	if err == io.EOF {
		return nil, fmt.Errorf("No tree found in %q.", s)
	}
	return tree, err
}

func (lx *Reader) parse(parent *Tree, next item) error {
	switch next.typ {
	case itemSubtree:
		if err := setLabelLength(parent, next.val); err != nil {
			return errf(next.line, "%s", err)
		}
		return nil
	case itemDescendentsStart:
		// good to go!
	default:
		return expectErr(next, "a descendent list or a subtree")
	}

	// If we're here, then we're starting a descendent list.
	// Now we should expected one or more subtrees or descendent lists.
TOKENS:
	for {
		item := lx.nextItem()
		switch item.typ {
		case itemSubtree:
			child := &Tree{}
			if err := setLabelLength(child, item.val); err != nil {
				return errf(item.line, "%s", err)
			}
			parent.Children = append(parent.Children, *child)
		case itemDescendentsStart:
			child := &Tree{}
			if err := lx.parse(child, item); err != nil {
				return err
			}
			parent.Children = append(parent.Children, *child)
		case itemDescendentsEnd:
			break TOKENS
		default:
			return expectErr(item, "a descendent list or a subtree")
		}
	}

	// After a descendent list is done, we should always expect a subtree.
	item := lx.nextItem()
	if item.typ != itemSubtree {
		return expectErr(item, "a subtree")
	}
	if err := setLabelLength(parent, item.val); err != nil {
		return errf(item.line, "%s", err)
	}
	return nil
}

func setLabelLength(t *Tree, raw string) error {
	label, length, hasLength, err := splitLabel(raw)
	if err != nil {
		return err
	}
	t.Label = label

	if hasLength {
		n, err := strconv.ParseFloat(length, 64)
		if err != nil {
			return fmt.Errorf("Invalid branch length: %s", err)
		}
		t.Length = &n
	}
	return nil
}

// splitLabel separates a raw subtree token into its label and branch
// length. Quotes are removed from quoted pieces ('' becomes ') and comments
// are dropped. Both results have surrounding whitespace trimmed.
func splitLabel(raw string) (label, length string, hasLength bool, err error) {
	var lbuf, nbuf bytes.Buffer
	target := &lbuf
	inQuote := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inQuote {
			if c != quote {
				target.WriteByte(c)
			} else if i+1 < len(raw) && raw[i+1] == quote {
				target.WriteByte(quote)
				i++
			} else {
				inQuote = false
			}
			continue
		}
		switch c {
		case quote:
			inQuote = true
		case commentStart:
			end := strings.IndexByte(raw[i:], commentEnd)
			if end < 0 {
				return "", "", false, fmt.Errorf("Unterminated comment in %q.", raw)
			}
			i += end
		case lengthStart:
			if hasLength {
				return "", "", false, fmt.Errorf("Multiple branch lengths in %q.", raw)
			}
			target, hasLength = &nbuf, true
		default:
			target.WriteByte(c)
		}
	}
	if inQuote {
		return "", "", false, fmt.Errorf("Unterminated quoted label in %q.", raw)
	}
	return strings.TrimSpace(lbuf.String()), strings.TrimSpace(nbuf.String()),
		hasLength, nil
}

func expectErr(item item, expected string) error {
	if item.typ == itemError {
		return errf(item.line, "%s", item.val)
	}
	return errf(item.line, "Unexpected %s, expected %s.", item.typ, expected)
}

func errf(line int, format string, v ...interface{}) error {
	return fmt.Errorf("Error on line %d: %s", line, fmt.Sprintf(format, v...))
}
