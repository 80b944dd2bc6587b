// Package vdom is the virtual-tree reconciliation engine of vtree.
//
// The engine keeps an in-memory tree of nodes that mirrors what a host
// document contains, and turns a new description of that tree into the
// smallest set of host mutations.
//
// # Nodes
//
// A Node is one of three kinds:
//
//   - KindText: a string; produces one text artifact.
//   - KindElement: a tag, a normalized property bag (TagProps) and children;
//     produces one element artifact that owns its children's artifacts.
//   - KindComponent: a *ComponentType plus props; produces whatever the
//     component's Render output produces (zero, one or many artifacts).
//
// Nodes are built with Create (or the panicking H):
//
//	list := vdom.H("ul", vdom.Props{"className": "todo"},
//	    vdom.Keyed("a", vdom.H("li", nil, "first")),
//	    vdom.Keyed("b", vdom.H("li", nil, "second")),
//	)
//
// # Engine
//
// All operations run through a RenderContext, which holds the Host (the
// document adapter), a logger, an Observer and a tracer:
//
//	rc := vdom.NewContext(host, vdom.WithLogger(logger))
//	root, err := rc.Attach(app, rootArtifact)
//	...
//	err = root.Render(nextApp)
//
// Mount creates artifacts, Update reconciles a mounted node against a new
// descriptor for the same slot, and Destroy tears a node down. Child lists
// are diffed by position, or by key when every sibling carries one. Mixing
// keyed and unkeyed siblings is an error.
//
// # Components
//
// A component implements Render and usually embeds Base, which carries
// Props and State and provides SetState. SetState merges the partial state
// and synchronously reconciles only that component's subtree. Watch ties a
// state.State subscription to the component's lifetime.
//
// Everything is synchronous: there is no scheduler and no batching.
package vdom
