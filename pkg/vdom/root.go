package vdom

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Root adopts an existing host element and manages one child tree in it.
type Root struct {
	rc   *RenderContext
	node *Node
}

// Attach mounts n inside root, an artifact the caller already placed in
// the document. n may be nil to attach an empty root.
func (rc *RenderContext) Attach(n *Node, root Artifact) (*Root, error) {
	if root == nil {
		return nil, newError(ErrUnlinkedNode, "attach to nil root")
	}
	r := &Root{
		rc: rc,
		node: &Node{
			Kind:    KindElement,
			Tag:     "#root",
			output:  root,
			mounted: true,
		},
	}
	if n == nil {
		return r, nil
	}
	if err := r.Render(n); err != nil {
		return nil, err
	}
	return r, nil
}

// Render reconciles the root's tree against next. A nil next clears it.
func (r *Root) Render(next *Node) error {
	_, span := r.rc.tracer.Start(r.rc.ctx, "vdom.Root.Render")
	defer span.End()

	var list []*Node
	if next != nil {
		list = []*Node{next}
		span.SetAttributes(attribute.String("vdom.node", describe(next)))

		// A single root child may gain or lose its key; that is a
		// replacement, not mixed keying.
		if cur := r.Child(); cur != nil && (cur.Key == "") != (next.Key == "") {
			if err := r.Unmount(); err != nil {
				return err
			}
		}
	}
	if err := r.rc.reconcileChildren(r.node, list); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Child returns the live top node, or nil.
func (r *Root) Child() *Node {
	if len(r.node.Children) == 0 {
		return nil
	}
	return r.node.Children[0]
}

// Node returns the wrapper node standing for the root artifact.
func (r *Root) Node() *Node {
	return r.node
}

// Artifact returns the adopted root artifact.
func (r *Root) Artifact() Artifact {
	return r.node.output
}

// Unmount destroys the tree. The root artifact stays in the document.
func (r *Root) Unmount() error {
	for len(r.node.Children) > 0 {
		if _, err := r.rc.destroy(r.node.Children[len(r.node.Children)-1]); err != nil {
			return err
		}
	}
	return nil
}
