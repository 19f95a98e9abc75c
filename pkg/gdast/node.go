// Package gdast defines the generic GDScript syntax tree shared by the
// parser, the formatter, and the lint rules. The shape deliberately follows
// the concrete-syntax-tree model: nodes carry byte and row/column spans into
// the original source, anonymous punctuation tokens appear as unnamed
// children, and structural roles are exposed through typed field labels.
package gdast

// Point is a zero-based row/column position in the source.
type Point struct {
	Row    int
	Column int
}

// Node is a single vertex of the syntax tree.
type Node struct {
	Kind       Kind
	Field      Field
	Named      bool
	StartByte  int
	EndByte    int
	StartPoint Point
	EndPoint   Point
	Children   []*Node
}

// Tree couples a root node with the source it was parsed from.
type Tree struct {
	Root   *Node
	Source []byte
}

// Text returns the source slice this node spans.
func (n *Node) Text(src []byte) string {
	if n == nil || n.StartByte >= len(src) {
		return ""
	}
	end := n.EndByte
	if end > len(src) {
		end = len(src)
	}
	return string(src[n.StartByte:end])
}

// NamedChildren returns the named children in order.
func (n *Node) NamedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// NamedChildCount counts named children without allocating.
func (n *Node) NamedChildCount() int {
	count := 0
	for _, c := range n.Children {
		if c.Named {
			count++
		}
	}
	return count
}

// NamedChild returns the i-th named child, or nil.
func (n *Node) NamedChild(i int) *Node {
	for _, c := range n.Children {
		if c.Named {
			if i == 0 {
				return c
			}
			i--
		}
	}
	return nil
}

// ChildByField returns the first child labeled with f, or nil.
func (n *Node) ChildByField(f Field) *Node {
	for _, c := range n.Children {
		if c.Field == f {
			return c
		}
	}
	return nil
}

// LastChild returns the final child in source order, or nil.
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// FirstOfKind returns the first named child of the given kind, or nil.
func (n *Node) FirstOfKind(k Kind) *Node {
	for _, c := range n.Children {
		if c.Named && c.Kind == k {
			return c
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in depth-first source order.
// Returning false prunes the subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}
