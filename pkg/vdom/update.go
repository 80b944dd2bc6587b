package vdom

import "slices"

// Update reconciles the live node old against the descriptor next, which
// is meant for the same slot. When old can be patched in place it stays the
// live node; otherwise next replaces it. The live node for the slot is
// returned either way.
func (rc *RenderContext) Update(old, next *Node) (*Node, error) {
	if old == nil || next == nil {
		return nil, newError(ErrInvalidNodeType, "update with nil node")
	}
	if old == next {
		return old, nil
	}
	if !old.mounted {
		return nil, newError(ErrUnlinkedNode, "update of %s before mount", describe(old))
	}
	if next.mounted {
		next = next.Clone()
	}
	return rc.update(old, next)
}

func (rc *RenderContext) update(old, next *Node) (*Node, error) {
	if old == next {
		return old, nil
	}
	if !sameSlotType(old, next) {
		if err := rc.replace(old, next); err != nil {
			return nil, err
		}
		return next, nil
	}

	switch old.Kind {
	case KindText:
		if old.Text != next.Text {
			old.Text = next.Text
			rc.host.SetText(old.output, next.Text)
		}

	case KindElement:
		rc.diffAttrs(old, next.Attrs)
		old.Attrs = next.Attrs
		if err := rc.reconcileChildren(old, next.Children); err != nil {
			return nil, err
		}

	case KindComponent:
		render := true
		if u, ok := old.Instance.(Updater); ok {
			var st State
			if b := baseOf(old.Instance); b != nil {
				st = b.State
			}
			render = u.ShouldUpdate(next.Props, st)
		}
		old.Props = next.Props
		old.Instance.(PropsSetter).SetProps(next.Props)
		if render {
			children, err := rc.render(old)
			if err != nil {
				return nil, err
			}
			if err := rc.reconcileChildren(old, children); err != nil {
				return nil, err
			}
		}
	}

	rc.observer.Updated(old.Kind)
	return old, nil
}

func sameSlotType(a, b *Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement:
		return a.Tag == b.Tag
	case KindComponent:
		return a.Type == b.Type
	}
	return true
}

// replace destroys old and mounts next at the same index and document
// position.
func (rc *RenderContext) replace(old, next *Node) error {
	parent := old.parent
	if parent == nil {
		return newError(ErrUnlinkedNode, "replace of %s without parent", describe(old))
	}
	host := old.container
	before := nextOutput(old)

	idx, err := rc.destroy(old)
	if err != nil {
		return err
	}
	insertChild(parent, next, idx)
	if err := rc.mount(next, host, before); err != nil {
		return err
	}
	rc.observer.Replaced(old.Kind, next.Kind)
	rc.logger.Debug("node replaced", "from", describe(old), "to", describe(next))
	return nil
}

// diffAttrs issues the minimal host calls to move n's element from its
// current props to next. Handlers are swapped on the existing proxies, so a
// changed handler costs no host call.
func (rc *RenderContext) diffAttrs(n *Node, next TagProps) {
	el := n.output
	cur := n.Attrs

	for _, c := range cur.Classes {
		if !slices.Contains(next.Classes, c) {
			rc.host.RemoveClass(el, c)
		}
	}
	for _, c := range next.Classes {
		if !slices.Contains(cur.Classes, c) {
			rc.host.AddClass(el, c)
		}
	}

	diffMap(cur.Style, next.Style,
		func(k string) { rc.host.RemoveStyle(el, k) },
		func(k, v string) { rc.host.SetStyle(el, k, v) })

	for _, ev := range sortedKeys(n.listeners) {
		if _, ok := next.On[ev]; !ok {
			rc.host.RemoveEventListener(el, ev, n.listeners[ev])
			delete(n.listeners, ev)
		}
	}
	for _, ev := range sortedKeys(next.On) {
		if l, ok := n.listeners[ev]; ok {
			l.target = next.On[ev]
			continue
		}
		rc.addListener(n, ev, next.On[ev])
	}

	diffMap(cur.Data, next.Data,
		func(k string) { rc.host.RemoveData(el, k) },
		func(k, v string) { rc.host.SetData(el, k, v) })

	diffMap(cur.Attrs, next.Attrs,
		func(k string) { rc.host.RemoveAttribute(el, k) },
		func(k, v string) { rc.host.SetAttribute(el, k, v) })
}

func diffMap(cur, next map[string]string, remove func(string), set func(string, string)) {
	for _, k := range sortedKeys(cur) {
		if _, ok := next[k]; !ok {
			remove(k)
		}
	}
	for _, k := range sortedKeys(next) {
		if v, ok := cur[k]; !ok || v != next[k] {
			set(k, next[k])
		}
	}
}
