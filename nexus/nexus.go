/*
Package nexus reads the trees of a NEXUS file. Only the TREES block is
interpreted: its optional TRANSLATE table and its TREE (or UTREE) commands.
Every other block is skipped. Comments in square brackets are discarded.

Each tree description is parsed with the newick package, and leaf labels
found in the TRANSLATE table are replaced by their full names.
*/
package nexus

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/exsub/newick"
)

// ErrNoTrees is returned when the input has no TREES block.
var ErrNoTrees = errors.New("no TREES block")

const header = "#nexus"

// Tree is a single named tree from a TREES block.
type Tree struct {
	Name string
	*newick.Tree
}

// IsNexus returns true if `prefix`, the start of some input, begins with a
// #NEXUS header (ignoring case and leading whitespace).
func IsNexus(prefix []byte) bool {
	trimmed := bytes.TrimSpace(prefix)
	if len(trimmed) < len(header) {
		return false
	}
	return strings.EqualFold(string(trimmed[:len(header)]), header)
}

// ReadTrees returns every tree in the TREES blocks of the input, in order.
func ReadTrees(r io.Reader) ([]Tree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !IsNexus(src) {
		return nil, fmt.Errorf("Missing '#NEXUS' header.")
	}
	src = bytes.TrimSpace(src)[len(header):]

	commands, err := splitCommands(string(src))
	if err != nil {
		return nil, err
	}

	var (
		trees     []Tree
		inTrees   bool
		sawTrees  bool
		translate map[string]string
	)
	for _, cmd := range commands {
		keyword, rest := splitKeyword(cmd)
		switch strings.ToLower(keyword) {
		case "":
			continue
		case "begin":
			inTrees = strings.EqualFold(strings.TrimSpace(rest), "trees")
			if inTrees {
				sawTrees = true
				translate = nil
			}
			continue
		case "end", "endblock":
			inTrees = false
			continue
		}
		if !inTrees {
			continue
		}

		switch strings.ToLower(keyword) {
		case "translate":
			if translate, err = parseTranslate(rest); err != nil {
				return nil, err
			}
		case "tree", "utree":
			tree, err := parseTree(rest, translate)
			if err != nil {
				return nil, err
			}
			trees = append(trees, tree)
		}
	}
	if !sawTrees {
		return nil, ErrNoTrees
	}
	return trees, nil
}

// splitCommands splits the input into commands terminated by ';', dropping
// comments. Quoted text is kept as is.
func splitCommands(src string) ([]string, error) {
	var (
		commands []string
		cur      strings.Builder
		inQuote  bool
		depth    int
	)
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case depth > 0:
			if c == '[' {
				depth++
			} else if c == ']' {
				depth--
			}
		case inQuote:
			cur.WriteByte(c)
			if c == '\'' {
				inQuote = false
			}
		case c == '\'':
			inQuote = true
			cur.WriteByte(c)
		case c == '[':
			depth++
		case c == ';':
			commands = append(commands, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if depth > 0 {
		return nil, fmt.Errorf("Unterminated comment.")
	}
	if inQuote {
		return nil, fmt.Errorf("Unterminated quoted word.")
	}
	if rest := strings.TrimSpace(cur.String()); len(rest) > 0 {
		return nil, fmt.Errorf("Command %q is not terminated by ';'.", rest)
	}
	return commands, nil
}

// splitKeyword returns the first word of a command and everything after it.
func splitKeyword(cmd string) (string, string) {
	cmd = strings.TrimSpace(cmd)
	end := strings.IndexAny(cmd, " \t\r\n")
	if end < 0 {
		return cmd, ""
	}
	return cmd[:end], cmd[end+1:]
}

// parseTranslate reads "key label, key label, ..." pairs.
func parseTranslate(body string) (map[string]string, error) {
	table := make(map[string]string)
	for _, entry := range splitUnquoted(body, ',') {
		entry = strings.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		key, label := splitKeyword(entry)
		label = unquote(strings.TrimSpace(label))
		if len(label) == 0 {
			return nil, fmt.Errorf("TRANSLATE entry %q has no label.", entry)
		}
		table[key] = label
	}
	return table, nil
}

// parseTree reads "[*] name = description".
func parseTree(body string, translate map[string]string) (Tree, error) {
	eq := indexUnquoted(body, '=')
	if eq < 0 {
		return Tree{}, fmt.Errorf("TREE command %q has no '='.", body)
	}
	name := strings.TrimSpace(body[:eq])
	name = unquote(strings.TrimSpace(strings.TrimPrefix(name, "*")))

	tree, err := newick.ParseString(body[eq+1:] + ";")
	if err != nil {
		return Tree{}, fmt.Errorf("Tree '%s': %w", name, err)
	}
	if len(translate) > 0 {
		tree.Walk(func(t *newick.Tree) bool {
			if label, ok := translate[t.Label]; ok && t.IsLeaf() {
				t.Label = label
			}
			return true
		})
	}
	return Tree{Name: name, Tree: tree}, nil
}

func splitUnquoted(s string, sep byte) []string {
	var parts []string
	for {
		i := indexUnquoted(s, sep)
		if i < 0 {
			return append(parts, s)
		}
		parts = append(parts, s[:i])
		s = s[i+1:]
	}
}

func indexUnquoted(s string, c byte) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\'':
			inQuote = !inQuote
		case s[i] == c && !inQuote:
			return i
		}
	}
	return -1
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
