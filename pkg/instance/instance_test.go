package instance

import (
	"reflect"
	"testing"
)

func sampleTree() *Tree {
	return Build(
		El("View", nil,
			El("Text", nil, TextNode("Hello, "), TextNode("world")),
			El("Button", Props{"role": "button"},
				El("Text", nil, TextNode("Save")),
			),
		),
	)
}

func TestBuild_TraversalOrder(t *testing.T) {
	tree := sampleTree()

	var types []string
	Walk(tree.Root(), func(in Instance) bool {
		if in.IsText() {
			types = append(types, "#text")
		} else {
			types = append(types, in.Type())
		}
		return true
	})

	want := []string{"View", "Text", "#text", "#text", "Button", "Text", "#text"}
	if !reflect.DeepEqual(types, want) {
		t.Errorf("traversal order = %v, want %v", types, want)
	}
}

func TestBuild_TraversalIsStable(t *testing.T) {
	tree := sampleTree()

	collect := func() []NodeID {
		var ids []NodeID
		Walk(tree.Root(), func(in Instance) bool {
			ids = append(ids, in.ID())
			return true
		})
		return ids
	}

	first := collect()
	second := collect()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated traversal differs: %v vs %v", first, second)
	}
}

func TestInstance_Parent(t *testing.T) {
	tree := sampleTree()

	root := tree.Root()
	if _, ok := root.Parent(); ok {
		t.Error("root should have no parent")
	}

	children := root.Children()
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	p, ok := children[0].Parent()
	if !ok {
		t.Fatal("child should have a parent")
	}
	if p != root {
		t.Error("child's parent should be the root")
	}
}

func TestInstance_JoinedText(t *testing.T) {
	tree := sampleTree()

	text := tree.Root().Children()[0]
	if got := text.JoinedText(); got != "Hello, world" {
		t.Errorf("JoinedText = %q, want %q", got, "Hello, world")
	}

	// The root joins everything beneath it.
	if got := tree.Root().JoinedText(); got != "Hello, worldSave" {
		t.Errorf("root JoinedText = %q, want %q", got, "Hello, worldSave")
	}
}

func TestInstance_TextSegments(t *testing.T) {
	tree := sampleTree()

	text := tree.Root().Children()[0]
	want := []string{"Hello, ", "world"}
	if got := text.TextSegments(); !reflect.DeepEqual(got, want) {
		t.Errorf("TextSegments = %v, want %v", got, want)
	}
}

func TestInstance_Path(t *testing.T) {
	tree := sampleTree()

	button := tree.Root().Children()[1]
	if got := button.Path(); got != "View/Button" {
		t.Errorf("Path = %q, want %q", got, "View/Button")
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	tree := sampleTree()

	visits := 0
	Walk(tree.Root(), func(in Instance) bool {
		visits++
		return visits < 3
	})
	if visits != 3 {
		t.Errorf("expected traversal to stop after 3 visits, got %d", visits)
	}
}

func TestAncestors(t *testing.T) {
	tree := sampleTree()

	saveText := tree.Root().Children()[1].Children()[0]
	var chain []string
	Ancestors(saveText, func(a Instance) bool {
		chain = append(chain, a.Type())
		return true
	})
	want := []string{"Button", "View"}
	if !reflect.DeepEqual(chain, want) {
		t.Errorf("ancestor chain = %v, want %v", chain, want)
	}
}

func TestEmptyTree(t *testing.T) {
	var tree *Tree
	if !tree.Empty() {
		t.Error("nil tree should be empty")
	}
	if tree.Root().Valid() {
		t.Error("root of nil tree should be invalid")
	}
	if tree.Len() != 0 {
		t.Error("nil tree length should be 0")
	}
}

func TestZeroInstance(t *testing.T) {
	var in Instance
	if in.Valid() {
		t.Error("zero instance should be invalid")
	}
	if in.Type() != "" || in.Text() != "" {
		t.Error("zero instance accessors should return empty values")
	}
	if _, ok := in.Parent(); ok {
		t.Error("zero instance should have no parent")
	}
}
