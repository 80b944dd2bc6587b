package vdom

import "slices"

// linkChildren sets parent and sibling pointers for every node in children.
func linkChildren(parent *Node, children []*Node) {
	for i, c := range children {
		c.parent = parent
		c.prev = nil
		c.next = nil
		if i > 0 {
			c.prev = children[i-1]
		}
		if i < len(children)-1 {
			c.next = children[i+1]
		}
	}
}

// insertChild places child at index i of parent.Children. An index past the
// end appends.
func insertChild(parent, child *Node, i int) {
	if i < 0 || i > len(parent.Children) {
		i = len(parent.Children)
	}
	parent.Children = slices.Insert(parent.Children, i, child)
	child.parent = parent
	child.prev = nil
	child.next = nil
	if i > 0 {
		p := parent.Children[i-1]
		p.next = child
		child.prev = p
	}
	if i < len(parent.Children)-1 {
		nx := parent.Children[i+1]
		nx.prev = child
		child.next = nx
	}
}

func appendChild(parent, child *Node) {
	insertChild(parent, child, len(parent.Children))
}

// removeChild unlinks child from parent and returns its former index, or -1.
func removeChild(parent, child *Node) int {
	if parent == nil {
		return -1
	}
	i := slices.Index(parent.Children, child)
	if i < 0 {
		return -1
	}
	parent.Children = slices.Delete(parent.Children, i, i+1)
	if child.prev != nil {
		child.prev.next = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	}
	child.parent = nil
	child.prev = nil
	child.next = nil
	return i
}

// resolveNext climbs through component parents until a sibling is found.
// The search stops at the nearest element or root.
func resolveNext(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.next != nil {
			return cur.next
		}
		if cur.parent == nil || cur.parent.Kind == KindElement {
			return nil
		}
	}
	return nil
}

func resolvePrev(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.prev != nil {
			return cur.prev
		}
		if cur.parent == nil || cur.parent.Kind == KindElement {
			return nil
		}
	}
	return nil
}

// nextOutput returns the first artifact after n in the same host parent.
// Siblings that rendered nothing are skipped.
func nextOutput(n *Node) Artifact {
	for s := resolveNext(n); s != nil; s = resolveNext(s) {
		if a := s.FirstOutput(); a != nil {
			return a
		}
	}
	return nil
}

func prevOutput(n *Node) Artifact {
	for s := resolvePrev(n); s != nil; s = resolvePrev(s) {
		if a := s.LastOutput(); a != nil {
			return a
		}
	}
	return nil
}
