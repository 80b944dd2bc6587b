package vdom

// Destroy tears down n and its subtree, detaches its artifacts and unlinks
// it from its parent. It returns n's former index in the parent's children,
// or -1 if n had no parent.
//
// Every unmount hook in the subtree runs before any artifact is detached.
func (rc *RenderContext) Destroy(n *Node) (int, error) {
	if n == nil {
		return -1, newError(ErrInvalidNodeType, "destroy of nil node")
	}
	if !n.mounted {
		return -1, newError(ErrUnlinkedNode, "destroy of %s before mount", describe(n))
	}
	return rc.destroy(n)
}

func (rc *RenderContext) destroy(n *Node) (int, error) {
	rc.teardown(n)
	rc.detach(n)
	return removeChild(n.parent, n), nil
}

// teardown runs lifecycle hooks pre-order, so a component's OnUnmount sees
// its children still mounted.
func (rc *RenderContext) teardown(n *Node) {
	n.mounted = false

	switch n.Kind {
	case KindElement:
		for _, ev := range sortedKeys(n.listeners) {
			rc.host.RemoveEventListener(n.output, ev, n.listeners[ev])
		}
		n.listeners = nil

	case KindComponent:
		if u, ok := n.Instance.(Unmounter); ok {
			u.OnUnmount()
		}
		if b := baseOf(n.Instance); b != nil {
			b.release()
		}
		rc.logger.Debug("component unmounted", "component", n.Type.String())
	}

	for _, c := range n.Children {
		rc.teardown(c)
	}
	rc.observer.Destroyed(n.Kind)
}

// detach removes the top-level artifacts of n. Descendants of an element go
// with it. An artifact that something else already detached is skipped.
func (rc *RenderContext) detach(n *Node) {
	switch n.Kind {
	case KindText, KindElement:
		if n.output == nil {
			return
		}
		if rc.host.Parent(n.output) == nil {
			rc.logger.Warn("artifact already detached",
				"code", "V004",
				"node", describe(n))
			return
		}
		rc.host.Remove(n.output)
	case KindComponent:
		for _, c := range n.Children {
			rc.detach(c)
		}
	}
}
