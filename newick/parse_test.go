package newick

import (
	"strings"
	"testing"
)

func TestParser(t *testing.T) {
	r := NewReader(sample("(A,B,(X,Y)C)ROOT;(A,B,C)ROOT;"))
	trees, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 2 {
		t.Fatalf("Expected 2 trees but got %d.", len(trees))
	}

	first := trees[0]
	if first.Label != "ROOT" || len(first.Children) != 3 {
		t.Fatalf("Unexpected root:\n%s", first)
	}
	c := first.Children[2]
	if c.Label != "C" || c.IsLeaf() || len(c.Children) != 2 {
		t.Fatalf("Unexpected subtree:\n%s", &c)
	}
	if got := strings.Join(first.Leaves(), ","); got != "A,B,X,Y" {
		t.Fatalf("Expected leaves A,B,X,Y but got %s.", got)
	}
	if got := strings.Join(trees[1].Leaves(), ","); got != "A,B,C" {
		t.Fatalf("Expected leaves A,B,C but got %s.", got)
	}
}

func TestParseLabels(t *testing.T) {
	tree, err := ParseString(
		"[&R] ('Homo sapiens':0.5,'O''Brien'[x]:1e-3, D )[&label]7:2;")
	if err != nil {
		t.Fatal(err)
	}
	if tree.Label != "7" {
		t.Fatalf("Expected root label '7' but got '%s'.", tree.Label)
	}
	if tree.Length == nil || *tree.Length != 2 {
		t.Fatalf("Expected root length 2 but got %v.", tree.Length)
	}
	want := []string{"Homo sapiens", "O'Brien", "D"}
	got := tree.Leaves()
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Expected leaves %q but got %q.", want, got)
	}
	if l := tree.Children[1].Length; l == nil || *l != 0.001 {
		t.Fatalf("Expected length 0.001 but got %v.", l)
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"(A,B",
		"(A(B));",
		"(A:x,B);",
		"(A:1:2,B);",
		"(A,B);\n(C(D));",
	}
	for _, s := range inputs {
		if _, err := NewReader(sample(s)).ReadAll(); err == nil {
			t.Fatalf("Expected an error parsing %q.", s)
		}
	}

	_, err := NewReader(sample("(A,B);\n(C(D));")).ReadAll()
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("Expected the error to mention line 2, got: %s", err)
	}
}

func TestParseEmpty(t *testing.T) {
	trees, err := NewReader(sample("  \n")).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 0 {
		t.Fatalf("Expected no trees but got %d.", len(trees))
	}
	if _, err := ParseString(""); err == nil {
		t.Fatal("Expected an error parsing an empty string.")
	}
}
