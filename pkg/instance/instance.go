// Package instance models the rendered component tree that queries run
// against. A Tree is an immutable snapshot produced by the host renderer
// (or by the declarative builders in this package for tests); Instance is
// a lightweight view into one node of that snapshot.
//
// Nodes are stored arena-style and reference each other by NodeID, so the
// parent back-reference never creates a shared-ownership cycle.
package instance

import (
	"fmt"
	"strings"
)

// NodeID identifies a node within its Tree. The zero value is invalid;
// the root of a non-empty tree is always RootID.
type NodeID int

// RootID is the NodeID of the root node of any non-empty Tree.
const RootID NodeID = 1

// node is the arena record backing one tree position. A node is either an
// element (typ + props + children) or a raw text segment (text, isText).
type node struct {
	parent   NodeID
	children []NodeID
	typ      string
	props    Props
	text     string
	isText   bool
}

// Tree is an immutable snapshot of a rendered component tree. It is safe
// for concurrent read access; all query operations are read-only.
type Tree struct {
	nodes []node // nodes[0] is a sentinel; RootID == 1
}

// Empty reports whether the tree has no nodes.
func (t *Tree) Empty() bool {
	return t == nil || len(t.nodes) <= 1
}

// Root returns the root instance. Calling Root on an empty tree returns a
// zero Instance for which Valid reports false.
func (t *Tree) Root() Instance {
	if t.Empty() {
		return Instance{}
	}
	return Instance{tree: t, id: RootID}
}

// Len returns the number of nodes in the tree, raw text segments included.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes) - 1
}

// Instance is a view of a single element node in a Tree. Instances are
// values; comparing two with == tests identity within a snapshot.
type Instance struct {
	tree *Tree
	id   NodeID
}

// Valid reports whether the instance references a live node.
func (in Instance) Valid() bool {
	return in.tree != nil && in.id > 0 && int(in.id) < len(in.tree.nodes)
}

// ID returns the node's arena index.
func (in Instance) ID() NodeID { return in.id }

// Tree returns the owning snapshot.
func (in Instance) Tree() *Tree { return in.tree }

func (in Instance) node() *node { return &in.tree.nodes[in.id] }

// Type returns the component identity, e.g. "Text" or "Button".
func (in Instance) Type() string {
	if !in.Valid() {
		return ""
	}
	return in.node().typ
}

// Props returns the node's property bag. The returned map must not be
// mutated; the snapshot is shared between queries.
func (in Instance) Props() Props {
	if !in.Valid() {
		return nil
	}
	return in.node().props
}

// Parent returns the parent instance and whether one exists.
func (in Instance) Parent() (Instance, bool) {
	if !in.Valid() {
		return Instance{}, false
	}
	p := in.node().parent
	if p == 0 {
		return Instance{}, false
	}
	return Instance{tree: in.tree, id: p}, true
}

// IsText reports whether the node is a raw text segment rather than an
// element. Raw text nodes are never returned by queries; they only
// contribute to joined text content.
func (in Instance) IsText() bool {
	return in.Valid() && in.node().isText
}

// Text returns the raw text of a text segment, or "" for elements.
func (in Instance) Text() string {
	if !in.Valid() {
		return ""
	}
	return in.node().text
}

// VisitChildren calls visitor for each child in render order. The visitor
// returns false to stop early.
func (in Instance) VisitChildren(visitor func(child Instance) bool) {
	if !in.Valid() {
		return
	}
	for _, id := range in.node().children {
		if !visitor(Instance{tree: in.tree, id: id}) {
			return
		}
	}
}

// Children returns the node's children in render order, raw text segments
// included.
func (in Instance) Children() []Instance {
	if !in.Valid() {
		return nil
	}
	ids := in.node().children
	out := make([]Instance, len(ids))
	for i, id := range ids {
		out[i] = Instance{tree: in.tree, id: id}
	}
	return out
}

// TextSegments returns the node's direct raw text children in order.
func (in Instance) TextSegments() []string {
	var segs []string
	in.VisitChildren(func(c Instance) bool {
		if c.IsText() {
			segs = append(segs, c.Text())
		}
		return true
	})
	return segs
}

// JoinedText concatenates every raw text segment in the subtree in
// traversal order. This is the host convention for the logical text
// content of a text container: nested spans collapse into one string.
func (in Instance) JoinedText() string {
	var b strings.Builder
	Walk(in, func(n Instance) bool {
		if n.IsText() {
			b.WriteString(n.Text())
		}
		return true
	})
	return b.String()
}

// Path returns a "/"-separated type path from the root to this instance,
// used in diagnostics.
func (in Instance) Path() string {
	if !in.Valid() {
		return ""
	}
	var parts []string
	cur := in
	for {
		if cur.IsText() {
			parts = append(parts, "#text")
		} else {
			parts = append(parts, cur.Type())
		}
		p, ok := cur.Parent()
		if !ok {
			break
		}
		cur = p
	}
	// Reverse in place.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// String implements fmt.Stringer for diagnostics.
func (in Instance) String() string {
	if !in.Valid() {
		return "<invalid instance>"
	}
	if in.IsText() {
		return fmt.Sprintf("#text(%q)", in.Text())
	}
	return fmt.Sprintf("<%s id=%d>", in.Type(), in.id)
}

// Walk performs a depth-first pre-order traversal starting at root. The
// visitor returns false to stop traversal entirely.
func Walk(root Instance, visitor func(Instance) bool) {
	walk(root, visitor)
}

func walk(in Instance, visitor func(Instance) bool) bool {
	if !in.Valid() {
		return true
	}
	if !visitor(in) {
		return false
	}
	for _, id := range in.node().children {
		if !walk(Instance{tree: in.tree, id: id}, visitor) {
			return false
		}
	}
	return true
}

// Ancestors calls visitor for each ancestor of in, nearest first.
func Ancestors(in Instance, visitor func(Instance) bool) {
	cur := in
	for {
		p, ok := cur.Parent()
		if !ok {
			return
		}
		if !visitor(p) {
			return
		}
		cur = p
	}
}
