package vdom

import (
	"fmt"
	"sort"
	"time"
)

// Mount creates the artifacts for n and inserts them into parent before
// before (nil appends). n must be a fresh, unmounted descriptor.
func (rc *RenderContext) Mount(n *Node, parent, before Artifact) error {
	if n == nil {
		return newError(ErrInvalidNodeType, "mount of nil node")
	}
	if n.mounted {
		return newError(ErrAlreadyMounted, "%s", describe(n))
	}
	return rc.mount(n, parent, before)
}

func (rc *RenderContext) mount(n *Node, parent, before Artifact) error {
	n.container = parent

	switch n.Kind {
	case KindText:
		n.output = rc.host.CreateText(n.Text)
		rc.host.InsertBefore(parent, n.output, before)
		n.mounted = true

	case KindElement:
		el := rc.host.CreateElement(n.Tag)
		n.output = el
		rc.applyAttrs(n)
		rc.host.InsertBefore(parent, el, before)
		n.mounted = true

		if err := checkKeys(n.Children); err != nil {
			return err
		}
		n.Children = freshList(n.Children, nil)
		linkChildren(n, n.Children)
		for _, c := range n.Children {
			if err := rc.mount(c, el, nil); err != nil {
				return err
			}
		}

	case KindComponent:
		if n.Type == nil || n.Type.New == nil {
			return newError(ErrInvalidNodeType, "%s has no constructor", describe(n))
		}
		inst := n.Type.New(n.Props)
		if inst == nil {
			return newError(ErrInvalidNodeType, "%s constructor returned nil", describe(n))
		}
		ps, ok := inst.(PropsSetter)
		if !ok {
			return newError(ErrInvalidNodeType, "%s neither embeds Base nor implements PropsSetter", describe(n))
		}
		n.Instance = inst
		ps.SetProps(n.Props)
		if b := baseOf(inst); b != nil {
			if b.State == nil {
				b.State = State{}
			}
			b.node = n
			b.rc = rc
		}

		children, err := rc.render(n)
		if err != nil {
			return err
		}
		if err := checkKeys(children); err != nil {
			return err
		}
		n.Children = freshList(children, nil)
		linkChildren(n, n.Children)
		n.mounted = true
		for _, c := range n.Children {
			if err := rc.mount(c, parent, before); err != nil {
				return err
			}
		}
		if m, ok := inst.(Mounter); ok {
			m.OnMount()
		}
		rc.logger.Debug("component mounted",
			"component", n.Type.String(),
			"children", len(n.Children))

	default:
		return newError(ErrInvalidNodeType, "unknown kind %d", n.Kind)
	}

	rc.observer.Mounted(n.Kind)
	return nil
}

// applyAttrs sets classes, styles, handlers, data and plain attributes, in
// that order, on a freshly created element. Map entries go in key order.
func (rc *RenderContext) applyAttrs(n *Node) {
	el := n.output
	for _, c := range n.Attrs.Classes {
		rc.host.AddClass(el, c)
	}
	for _, k := range sortedKeys(n.Attrs.Style) {
		rc.host.SetStyle(el, k, n.Attrs.Style[k])
	}
	for _, ev := range sortedKeys(n.Attrs.On) {
		rc.addListener(n, ev, n.Attrs.On[ev])
	}
	for _, k := range sortedKeys(n.Attrs.Data) {
		rc.host.SetData(el, k, n.Attrs.Data[k])
	}
	for _, k := range sortedKeys(n.Attrs.Attrs) {
		rc.host.SetAttribute(el, k, n.Attrs.Attrs[k])
	}
}

func (rc *RenderContext) addListener(n *Node, event string, target EventListener) {
	if n.listeners == nil {
		n.listeners = make(map[string]*listener)
	}
	l := &listener{event: event, target: target}
	n.listeners[event] = l
	rc.host.AddEventListener(n.output, event, l)
}

// render calls the component's Render hook. Panics are converted to
// ErrRenderFailed so one broken component does not take down the caller.
func (rc *RenderContext) render(n *Node) (children []*Node, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			children = nil
			err = newError(ErrRenderFailed, "%s: %v", describe(n), r)
			rc.logger.Error("render panicked",
				"component", n.Type.String(),
				"panic", fmt.Sprint(r))
		}
	}()

	out := n.Instance.Render()
	children = make([]*Node, 0, len(out))
	for _, c := range out {
		if c != nil {
			children = append(children, c)
		}
	}
	rc.observer.Rendered(n.Type.String(), time.Since(start))
	return children, nil
}

// freshList returns list with every node that is live, or appears more
// than once, replaced by an unmounted clone. keep reports nodes that may be
// reused as they are, because they already sit in the slot being reconciled.
func freshList(list []*Node, keep func(i int, n *Node) bool) []*Node {
	seen := make(map[*Node]bool, len(list))
	out := make([]*Node, len(list))
	for i, n := range list {
		switch {
		case seen[n]:
			out[i] = n.Clone()
		case n.mounted && (keep == nil || !keep(i, n)):
			out[i] = n.Clone()
		default:
			out[i] = n
		}
		seen[n] = true
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
