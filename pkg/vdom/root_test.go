package vdom_test

import (
	"errors"
	"testing"

	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestRootAttachRenderUnmount(t *testing.T) {
	e := newEnv(t)
	root, err := e.rc.Attach(vdom.H("p", nil, "hi"), e.body)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if root.Artifact() != vdom.Artifact(e.body) {
		t.Error("root should adopt the given artifact")
	}
	p := artifact(root.Child())
	if got := e.body.OuterHTML(); got != "<body><p>hi</p></body>" {
		t.Fatalf("html = %s", got)
	}

	if err := root.Render(vdom.H("p", nil, "yo")); err != nil {
		t.Fatal(err)
	}
	if artifact(root.Child()) != p || p.TextContent() != "yo" {
		t.Error("same-tag render should patch the existing element")
	}

	if err := root.Render(vdom.H("div", nil)); err != nil {
		t.Fatal(err)
	}
	if got := e.body.OuterHTML(); got != "<body><div></div></body>" {
		t.Errorf("html = %s", got)
	}

	if err := root.Unmount(); err != nil {
		t.Fatal(err)
	}
	if root.Child() != nil || len(e.body.Children()) != 0 {
		t.Error("Unmount should empty the root")
	}
	if e.doc.Body() != e.body {
		t.Error("root artifact must stay in place")
	}
}

func TestRootKeyChangeReplaces(t *testing.T) {
	e := newEnv(t)
	root, err := e.rc.Attach(vdom.Keyed("a", vdom.H("p", nil, "1")), e.body)
	if err != nil {
		t.Fatal(err)
	}
	first := root.Child()

	if err := root.Render(vdom.H("p", nil, "2")); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if root.Child() == first || first.Mounted() {
		t.Error("losing the key should replace the node")
	}
	if got := e.body.TextContent(); got != "2" {
		t.Errorf("TextContent = %q, want 2", got)
	}
}

func TestRootRenderSameNode(t *testing.T) {
	e := newEnv(t)
	n := vdom.H("p", nil, "x")
	root, err := e.rc.Attach(n, e.body)
	if err != nil {
		t.Fatal(err)
	}
	e.doc.ResetLog()
	if err := root.Render(n); err != nil {
		t.Fatal(err)
	}
	if len(e.doc.Log()) != 0 {
		t.Error("re-rendering the live node should be a no-op")
	}
}

func TestAttachEmpty(t *testing.T) {
	e := newEnv(t)
	root, err := e.rc.Attach(nil, e.body)
	if err != nil {
		t.Fatal(err)
	}
	if root.Child() != nil {
		t.Error("empty root should have no child")
	}
	if err := root.Render(vdom.Text("late")); err != nil {
		t.Fatal(err)
	}
	if got := e.body.TextContent(); got != "late" {
		t.Errorf("TextContent = %q", got)
	}
}

func TestRootAttachNilArtifact(t *testing.T) {
	e := newEnv(t)
	root, err := e.rc.Attach(vdom.H("p", nil, "x"), nil)
	if !errors.Is(err, vdom.ErrUnlinkedNode) || root != nil {
		t.Errorf("Attach(nil) = %v, %v; want ErrUnlinkedNode", root, err)
	}
	if log := e.doc.Log(); len(log) != 0 {
		t.Errorf("nil root issued mutations: %v", log)
	}
}
