package instance

// Def declaratively describes a subtree before it is built into an arena.
// Hosts that integrate a real renderer convert their element tree into
// Defs; tests construct them directly with El and TextNode.
type Def struct {
	// Type is the component identity. Empty for raw text segments.
	Type string
	// Props is the property bag. Nil is treated as empty.
	Props Props
	// Children are the node's children in render order.
	Children []Def
	// Text is the content of a raw text segment. Only meaningful when
	// Type is empty.
	Text string
}

// IsText reports whether the def describes a raw text segment.
func (d Def) IsText() bool { return d.Type == "" }

// El describes an element node.
func El(typ string, props Props, children ...Def) Def {
	return Def{Type: typ, Props: props, Children: children}
}

// TextNode describes a raw text segment.
func TextNode(s string) Def {
	return Def{Text: s}
}

// Build materializes a Def into an immutable Tree snapshot. Node IDs are
// assigned in depth-first pre-order, so traversal order matches render
// order by construction.
func Build(root Def) *Tree {
	t := &Tree{nodes: make([]node, 1, 16)} // index 0 is a sentinel
	buildNode(t, root, 0)
	return t
}

func buildNode(t *Tree, d Def, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	n := node{parent: parent}
	if d.IsText() {
		n.isText = true
		n.text = d.Text
	} else {
		n.typ = d.Type
		n.props = d.Props
	}
	t.nodes = append(t.nodes, n)
	for _, c := range d.Children {
		childID := buildNode(t, c, id)
		t.nodes[id].children = append(t.nodes[id].children, childID)
	}
	return id
}
