package newick

import "testing"

func TestWriteRoundTrip(t *testing.T) {
	inputs := []string{
		"((A,B)5,C)2;",
		"(A:0.1,B:2,(C,D)E:0.5)F;",
		"('Homo sapiens','O''Brien',X);",
		"A;",
	}
	for _, s := range inputs {
		tree, err := ParseString(s)
		if err != nil {
			t.Fatal(err)
		}
		if got := tree.Newick(); got != s {
			t.Fatalf("Expected %s but got %s.", s, got)
		}
	}
}

func TestFormatForest(t *testing.T) {
	forest := []Tree{
		{Children: []Tree{{Label: "A"}, {Label: "B"}}, Label: "3"},
		{Label: "C"},
	}
	if got := FormatForest(forest); got != "(A,B)3,C" {
		t.Fatalf("Expected (A,B)3,C but got %s.", got)
	}
	if got := FormatForest(nil); got != "" {
		t.Fatalf("Expected an empty string but got %s.", got)
	}
}
