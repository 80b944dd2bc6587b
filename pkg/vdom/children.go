package vdom

import "slices"

// checkKeys validates one child list: keys are all-or-nothing and unique.
func checkKeys(list []*Node) error {
	keyed := 0
	seen := make(map[string]bool, len(list))
	for _, n := range list {
		if n.Key == "" {
			continue
		}
		keyed++
		if seen[n.Key] {
			return newError(ErrDuplicateKey, "key %q", n.Key)
		}
		seen[n.Key] = true
	}
	if keyed != 0 && keyed != len(list) {
		return newError(ErrMixedKeying, "%d of %d children keyed", keyed, len(list))
	}
	return nil
}

func isKeyed(list []*Node) bool {
	return len(list) > 0 && list[0].Key != ""
}

// hostParent returns the artifact that parent's children render into.
func hostParent(parent *Node) Artifact {
	if parent.Kind == KindElement {
		return parent.output
	}
	return parent.container
}

// reconcileChildren updates parent.Children in place to match next.
func (rc *RenderContext) reconcileChildren(parent *Node, next []*Node) error {
	if err := checkKeys(next); err != nil {
		return err
	}
	old := parent.Children

	// An empty side is compatible with either mode.
	if len(old) > 0 && len(next) > 0 && isKeyed(old) != isKeyed(next) {
		return newError(ErrMixedKeying, "%s: children switched between keyed and unkeyed", describe(parent))
	}
	if isKeyed(old) || isKeyed(next) {
		return rc.reconcileKeyed(parent, next)
	}
	return rc.reconcileUnkeyed(parent, next)
}

func (rc *RenderContext) reconcileUnkeyed(parent *Node, next []*Node) error {
	old := slices.Clone(parent.Children)
	next = freshList(next, func(i int, n *Node) bool {
		return i < len(old) && old[i] == n
	})

	common := min(len(old), len(next))
	for i := 0; i < common; i++ {
		if _, err := rc.update(old[i], next[i]); err != nil {
			return err
		}
	}

	for i := len(old) - 1; i >= common; i-- {
		if _, err := rc.destroy(old[i]); err != nil {
			return err
		}
	}

	host := hostParent(parent)
	for _, n := range next[common:] {
		appendChild(parent, n)
		if err := rc.mount(n, host, nextOutput(n)); err != nil {
			return err
		}
	}
	return nil
}

func (rc *RenderContext) reconcileKeyed(parent *Node, next []*Node) error {
	oldByKey := make(map[string]*Node, len(parent.Children))
	for _, n := range parent.Children {
		oldByKey[n.Key] = n
	}
	next = freshList(next, func(_ int, n *Node) bool {
		return oldByKey[n.Key] == n
	})

	newKeys := make(map[string]bool, len(next))
	for _, n := range next {
		newKeys[n.Key] = true
	}
	for _, n := range slices.Clone(parent.Children) {
		if !newKeys[n.Key] {
			if _, err := rc.destroy(n); err != nil {
				return err
			}
			delete(oldByKey, n.Key)
		}
	}

	host := hostParent(parent)
	for i, n := range next {
		o, ok := oldByKey[n.Key]
		if !ok {
			insertChild(parent, n, i)
			if err := rc.mount(n, host, nextOutput(n)); err != nil {
				return err
			}
			continue
		}

		if parent.Children[i] != o {
			removeChild(parent, o)
			insertChild(parent, o, i)
			rc.moveOutputs(o, host, nextOutput(o))
			rc.observer.Moved(o.Kind)
		}
		if _, err := rc.update(o, n); err != nil {
			return err
		}
	}
	return nil
}

// moveOutputs re-inserts every top-level artifact of n before before.
// Host insertion of an attached artifact moves it, so identity is kept.
func (rc *RenderContext) moveOutputs(n *Node, host, before Artifact) {
	switch n.Kind {
	case KindText, KindElement:
		rc.host.InsertBefore(host, n.output, before)
	case KindComponent:
		for _, c := range n.Children {
			rc.moveOutputs(c, host, before)
		}
	}
}
