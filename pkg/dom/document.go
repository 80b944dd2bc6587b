package dom

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// NodeType distinguishes elements from text.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// Node is an element or text node of a Document.
type Node struct {
	id   uint32
	typ  NodeType
	tag  string
	text string

	parent   *Node
	children []*Node

	classes   []string
	style     map[string]string
	attrs     map[string]string
	data      map[string]string
	listeners map[string][]vdom.EventListener
}

// ID returns the document-scoped id. It never changes.
func (n *Node) ID() uint32 { return n.id }

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the element tag, or "" for text.
func (n *Node) Tag() string { return n.tag }

// Text returns the text of a text node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Classes returns the class list in insertion order.
func (n *Node) Classes() []string { return slices.Clone(n.classes) }

// HasClass reports whether name is in the class list.
func (n *Node) HasClass(name string) bool { return slices.Contains(n.classes, name) }

// Style returns one style property.
func (n *Node) Style(prop string) (string, bool) {
	v, ok := n.style[prop]
	return v, ok
}

// Attr returns one attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Data returns one data attribute, keyed without the data- prefix.
func (n *Node) Data(key string) (string, bool) {
	v, ok := n.data[key]
	return v, ok
}

// ListenerCount returns the number of listeners registered for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// Events returns the events that have at least one listener, sorted.
func (n *Node) Events() []string {
	out := make([]string, 0, len(n.listeners))
	for ev, ls := range n.listeners {
		if len(ls) > 0 {
			out = append(out, ev)
		}
	}
	slices.Sort(out)
	return out
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.text
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.children {
		if c.typ == TextNode {
			b.WriteString(c.text)
			continue
		}
		c.writeText(b)
	}
}

func (n *Node) indexOf(c *Node) int {
	return slices.Index(n.children, c)
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = nil
}

// Document owns a tree of nodes rooted at Body.
type Document struct {
	nextID    uint32
	body      *Node
	byID      map[uint32]*Node
	log       []Mutation
	observers []func(Mutation)
}

// New creates a document with an empty body element. Creating the body is
// not recorded.
func New() *Document {
	d := &Document{byID: make(map[uint32]*Node)}
	d.body = d.newNode(ElementNode, "body", "")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Node { return d.body }

// ByID looks up a node by id. Removed nodes stay addressable until the
// document is discarded, so late events can still be resolved.
func (d *Document) ByID(id uint32) *Node { return d.byID[id] }

// Log returns a copy of the recorded mutations.
func (d *Document) Log() []Mutation { return slices.Clone(d.log) }

// Drain returns the recorded mutations and clears the log.
func (d *Document) Drain() []Mutation {
	out := d.log
	d.log = nil
	return out
}

// ResetLog clears the log.
func (d *Document) ResetLog() { d.log = nil }

// Count returns the number of logged mutations with op.
func (d *Document) Count(op Op) int {
	n := 0
	for _, m := range d.log {
		if m.Op == op {
			n++
		}
	}
	return n
}

// Observe registers fn to be called for every mutation as it is recorded.
func (d *Document) Observe(fn func(Mutation)) {
	d.observers = append(d.observers, fn)
}

func (d *Document) record(m Mutation) {
	d.log = append(d.log, m)
	for _, fn := range d.observers {
		fn(m)
	}
}

func (d *Document) newNode(typ NodeType, tag, text string) *Node {
	d.nextID++
	n := &Node{id: d.nextID, typ: typ, tag: tag, text: text}
	d.byID[n.id] = n
	return n
}

func (d *Document) node(a vdom.Artifact) *Node {
	n, ok := a.(*Node)
	if !ok || n == nil {
		panic("dom: artifact is not a *dom.Node")
	}
	return n
}

func idOf(n *Node) uint32 {
	if n == nil {
		return 0
	}
	return n.id
}

// CreateElement implements vdom.Host.
func (d *Document) CreateElement(tag string) vdom.Artifact {
	n := d.newNode(ElementNode, tag, "")
	d.record(Mutation{Op: OpCreateElement, Target: n.id, Value: tag})
	return n
}

// CreateText implements vdom.Host.
func (d *Document) CreateText(text string) vdom.Artifact {
	n := d.newNode(TextNode, "", text)
	d.record(Mutation{Op: OpCreateText, Target: n.id, Value: text})
	return n
}

// InsertBefore implements vdom.Host. An attached child is moved; a
// non-nil before must already be a child of parent.
func (d *Document) InsertBefore(parent, child, before vdom.Artifact) {
	p := d.node(parent)
	c := d.node(child)
	var b *Node
	if before != nil {
		b = d.node(before)
	}
	if b == c {
		return
	}
	if b != nil && b.parent != p {
		panic(fmt.Sprintf("dom: insert before #%d, which is not a child of #%d", b.id, p.id))
	}
	c.detach()

	i := len(p.children)
	if b != nil {
		i = p.indexOf(b)
	}
	p.children = slices.Insert(p.children, i, c)
	c.parent = p
	d.record(Mutation{Op: OpInsert, Target: c.id, Parent: p.id, Before: idOf(b)})
}

// Remove implements vdom.Host.
func (d *Document) Remove(child vdom.Artifact) {
	c := d.node(child)
	c.detach()
	d.record(Mutation{Op: OpRemove, Target: c.id})
}

// Parent implements vdom.Host.
func (d *Document) Parent(a vdom.Artifact) vdom.Artifact {
	n := d.node(a)
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// SetText implements vdom.Host.
func (d *Document) SetText(a vdom.Artifact, text string) {
	n := d.node(a)
	n.text = text
	d.record(Mutation{Op: OpSetText, Target: n.id, Value: text})
}

// AddClass implements vdom.Host.
func (d *Document) AddClass(el vdom.Artifact, name string) {
	n := d.node(el)
	if !slices.Contains(n.classes, name) {
		n.classes = append(n.classes, name)
	}
	d.record(Mutation{Op: OpAddClass, Target: n.id, Key: name})
}

// RemoveClass implements vdom.Host.
func (d *Document) RemoveClass(el vdom.Artifact, name string) {
	n := d.node(el)
	if i := slices.Index(n.classes, name); i >= 0 {
		n.classes = slices.Delete(n.classes, i, i+1)
	}
	d.record(Mutation{Op: OpRemoveClass, Target: n.id, Key: name})
}

// SetStyle implements vdom.Host.
func (d *Document) SetStyle(el vdom.Artifact, prop, value string) {
	n := d.node(el)
	if n.style == nil {
		n.style = make(map[string]string)
	}
	n.style[prop] = value
	d.record(Mutation{Op: OpSetStyle, Target: n.id, Key: prop, Value: value})
}

// RemoveStyle implements vdom.Host.
func (d *Document) RemoveStyle(el vdom.Artifact, prop string) {
	n := d.node(el)
	delete(n.style, prop)
	d.record(Mutation{Op: OpRemoveStyle, Target: n.id, Key: prop})
}

// SetAttribute implements vdom.Host.
func (d *Document) SetAttribute(el vdom.Artifact, name, value string) {
	n := d.node(el)
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	d.record(Mutation{Op: OpSetAttr, Target: n.id, Key: name, Value: value})
}

// RemoveAttribute implements vdom.Host.
func (d *Document) RemoveAttribute(el vdom.Artifact, name string) {
	n := d.node(el)
	delete(n.attrs, name)
	d.record(Mutation{Op: OpRemoveAttr, Target: n.id, Key: name})
}

// SetData implements vdom.Host.
func (d *Document) SetData(el vdom.Artifact, key, value string) {
	n := d.node(el)
	if n.data == nil {
		n.data = make(map[string]string)
	}
	n.data[key] = value
	d.record(Mutation{Op: OpSetData, Target: n.id, Key: key, Value: value})
}

// RemoveData implements vdom.Host.
func (d *Document) RemoveData(el vdom.Artifact, key string) {
	n := d.node(el)
	delete(n.data, key)
	d.record(Mutation{Op: OpRemoveData, Target: n.id, Key: key})
}

// AddEventListener implements vdom.Host.
func (d *Document) AddEventListener(el vdom.Artifact, event string, l vdom.EventListener) {
	n := d.node(el)
	if n.listeners == nil {
		n.listeners = make(map[string][]vdom.EventListener)
	}
	n.listeners[event] = append(n.listeners[event], l)
	d.record(Mutation{Op: OpAddListener, Target: n.id, Key: event})
}

// RemoveEventListener implements vdom.Host. Listeners are matched by
// identity; non-comparable listeners (plain funcs) can't be removed.
func (d *Document) RemoveEventListener(el vdom.Artifact, event string, l vdom.EventListener) {
	n := d.node(el)
	ls := n.listeners[event]
	for i, x := range ls {
		if sameListener(x, l) {
			n.listeners[event] = slices.Delete(ls, i, i+1)
			break
		}
	}
	d.record(Mutation{Op: OpRemoveListener, Target: n.id, Key: event})
}

func sameListener(a, b vdom.EventListener) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

var _ vdom.Host = (*Document)(nil)
