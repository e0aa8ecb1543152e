package dom

import "slices"

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <img>, etc.
	KindText                    // Plain text node
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a single node in the in-memory tree. Element nodes carry a tag,
// attributes and classes; text nodes carry only Text.
type Node struct {
	Kind NodeKind
	Tag  string
	Text string

	attrs    map[string]string
	classes  []string
	children []*Node
	parent   *Node
}

// NodeOption configures a newly created element node.
type NodeOption func(*Node)

// Class adds one or more classes to the node.
func Class(names ...string) NodeOption {
	return func(n *Node) {
		for _, name := range names {
			n.AddClass(name)
		}
	}
}

// Attr sets an attribute on the node.
func Attr(key, value string) NodeOption {
	return func(n *Node) {
		n.SetAttr(key, value)
	}
}

// NewElement creates an element node with the given tag.
func NewElement(tag string, opts ...NodeOption) *Node {
	n := &Node{Kind: KindElement, Tag: tag}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}

// Parent returns the node's current parent, or nil if detached.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the node's children in order. Callers must not mutate
// the returned slice.
func (n *Node) Children() []*Node {
	return n.children
}

// AppendChild attaches child as the last child of n. A child already
// attached elsewhere is first detached from its old parent.
func (n *Node) AppendChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from n. Removing a node that is not a child
// of n is a no-op.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
}

// SetAttr sets an attribute. An empty value still renders the attribute
// with an empty string; use RemoveAttr to drop it.
func (n *Node) SetAttr(key, value string) {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[key] = value
}

// GetAttr returns the attribute value and whether it is set.
func (n *Node) GetAttr(key string) (string, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// RemoveAttr removes an attribute if present.
func (n *Node) RemoveAttr(key string) {
	delete(n.attrs, key)
}

// AddClass adds a class if not already present.
func (n *Node) AddClass(name string) {
	if name == "" || n.HasClass(name) {
		return
	}
	n.classes = append(n.classes, name)
}

// RemoveClass removes a class if present.
func (n *Node) RemoveClass(name string) {
	idx := slices.Index(n.classes, name)
	if idx < 0 {
		return
	}
	n.classes = slices.Delete(n.classes, idx, idx+1)
}

// HasClass reports whether the node has the given class.
func (n *Node) HasClass(name string) bool {
	return slices.Contains(n.classes, name)
}

// SetText replaces the text of a text node.
func (n *Node) SetText(text string) {
	n.Text = text
}

// Attached reports whether the node is reachable from root by walking
// parent pointers.
func (n *Node) Attached(root *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}
