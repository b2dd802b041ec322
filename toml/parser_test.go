package toml

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Object {
	t.Helper()
	root, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error: %v", src, err)
	}
	return root
}

func TestParserDuplicateKeyRejected(t *testing.T) {
	_, err := Parse(strings.NewReader("a = 1\na = 2\n"))
	if err == nil {
		t.Fatalf("expected duplicate key error")
	}
	if !strings.Contains(err.Error(), "Duplicate key") {
		t.Fatalf("got %v", err)
	}
}

func TestParserTableHeaderThroughArrayOfTables(t *testing.T) {
	src := `
[[fruit]]
name = "apple"

[fruit.physical]
color = "red"

[[fruit]]
name = "banana"
`
	root := mustParse(t, src)
	n, ok := Get(root, "fruit")
	if !ok {
		t.Fatalf("expected fruit array")
	}
	arr := n.(*Array)
	if len(arr.Elems) != 2 {
		t.Fatalf("got %d elements, want 2", len(arr.Elems))
	}
	apple := arr.Elems[0].(*Object)
	phys, ok := apple.Get("physical")
	if !ok {
		t.Fatalf("expected apple.physical")
	}
	color, _ := phys.(*Object).Get("color")
	if MustString(color) != "red" {
		t.Fatalf("got %v", color)
	}
}

func TestParserPathThroughScalarRejected(t *testing.T) {
	_, err := Parse(strings.NewReader("a = 1\n[a.b]\n"))
	if err == nil {
		t.Fatalf("expected path-into-scalar error")
	}
	if !strings.Contains(err.Error(), "non-object") {
		t.Fatalf("got %v", err)
	}
}

func TestParserArrayTableCannotFollowClosedArray(t *testing.T) {
	src := "arr = [1, 2]\n[[arr]]\nx = 1\n"
	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatalf("expected error appending to a non-array-of-tables array")
	}
}

func TestParserDottedKeysCreateNestedObjects(t *testing.T) {
	src := "a.b.c = 1\na.b.d = 2\n"
	root := mustParse(t, src)
	c, ok := Get(root, "a", "b", "c")
	if !ok || MustInt(c) != 1 {
		t.Fatalf("got %v %v", c, ok)
	}
	d, ok := Get(root, "a", "b", "d")
	if !ok || MustInt(d) != 2 {
		t.Fatalf("got %v %v", d, ok)
	}
}

func TestParserEmptyDocument(t *testing.T) {
	root := mustParse(t, "")
	if root.Len() != 0 {
		t.Fatalf("expected empty root, got %d entries", root.Len())
	}
}

func TestParserCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a comment\n\na = 1 # trailing comment\n\n[b]\nc = 2\n"
	root := mustParse(t, src)
	a, _ := Get(root, "a")
	if MustInt(a) != 1 {
		t.Fatalf("got %v", a)
	}
	c, _ := Get(root, "b", "c")
	if MustInt(c) != 2 {
		t.Fatalf("got %v", c)
	}
}
