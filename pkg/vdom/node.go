package vdom

import (
	"maps"
	"slices"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText      Kind = iota // Plain text
	KindElement               // <div>, <button>, etc.
	KindComponent             // Stateful view component
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Artifact is an opaque host object: a text node or an element.
type Artifact any

// Props holds component constructor props. The "children" entry always
// holds the []*Node passed to the factory.
type Props map[string]any

// State is a component's own data bag, shallow-merged by SetState.
type State map[string]any

// TagProps is the normalized property bag of an element node.
type TagProps struct {
	Classes []string
	Style   map[string]string // dash-case property -> value
	On      map[string]EventListener
	Data    map[string]string // dash-case key, without the data- prefix
	Attrs   map[string]string
}

// Node is one position in the virtual tree.
type Node struct {
	Kind Kind
	Key  string // Reconciliation key; empty means unkeyed

	Text string // KindText

	Tag   string   // KindElement
	Attrs TagProps // KindElement

	Type     *ComponentType // KindComponent
	Props    Props          // KindComponent
	Instance Component      // KindComponent, set on mount

	// Children are the element's children, or the component's last render
	// output. The node owns them.
	Children []*Node

	// Positional back-references, never used for ownership.
	parent *Node
	prev   *Node
	next   *Node

	output    Artifact // text or element artifact
	container Artifact // host parent the node was mounted into
	mounted   bool

	listeners map[string]*listener
}

// Parent returns the logical parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Mounted reports whether the node currently has live artifacts.
func (n *Node) Mounted() bool {
	return n.mounted
}

// Output returns the artifact created for a text or element node.
// Component nodes have no artifact of their own; see FirstOutput.
func (n *Node) Output() Artifact {
	return n.output
}

// FirstOutput returns the first artifact produced by n or any descendant,
// in document order. A component that rendered nothing returns nil, and so
// does a node that is not mounted.
func (n *Node) FirstOutput() Artifact {
	switch n.Kind {
	case KindText, KindElement:
		if !n.mounted {
			return nil
		}
		return n.output
	case KindComponent:
		for _, c := range n.Children {
			if a := c.FirstOutput(); a != nil {
				return a
			}
		}
	}
	return nil
}

// LastOutput returns the last top-level artifact produced by n.
func (n *Node) LastOutput() Artifact {
	switch n.Kind {
	case KindText, KindElement:
		if !n.mounted {
			return nil
		}
		return n.output
	case KindComponent:
		for i := len(n.Children) - 1; i >= 0; i-- {
			if a := n.Children[i].LastOutput(); a != nil {
				return a
			}
		}
	}
	return nil
}

// Next returns the node that follows n in rendered order, looking through
// component boundaries up to the nearest element.
func (n *Node) Next() *Node {
	return resolveNext(n)
}

// Prev is the mirror of Next.
func (n *Node) Prev() *Node {
	return resolvePrev(n)
}

// NextOutput returns the first artifact rendered after n inside the same
// host parent, or nil if n is last.
func (n *Node) NextOutput() Artifact {
	return nextOutput(n)
}

// PrevOutput returns the last artifact rendered before n inside the same
// host parent, or nil if n is first.
func (n *Node) PrevOutput() Artifact {
	return prevOutput(n)
}

// Clone returns an unmounted deep copy of the descriptor. Live state
// (instance, artifacts, links) is not copied.
func (n *Node) Clone() *Node {
	c := &Node{
		Kind: n.Kind,
		Key:  n.Key,
		Text: n.Text,
		Tag:  n.Tag,
		Type: n.Type,
	}
	if n.Kind == KindElement {
		c.Attrs = TagProps{
			Classes: slices.Clone(n.Attrs.Classes),
			Style:   maps.Clone(n.Attrs.Style),
			On:      maps.Clone(n.Attrs.On),
			Data:    maps.Clone(n.Attrs.Data),
			Attrs:   maps.Clone(n.Attrs.Attrs),
		}
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	if n.Kind == KindComponent {
		c.Props = maps.Clone(n.Props)
	}
	return c
}

// ChildrenOf returns the child descriptors stored in component props.
func ChildrenOf(p Props) []*Node {
	children, _ := p["children"].([]*Node)
	return children
}
