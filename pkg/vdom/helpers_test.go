package vdom_test

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type env struct {
	doc  *dom.Document
	rc   *vdom.RenderContext
	body *dom.Node
	logs *bytes.Buffer
}

func newEnv(t *testing.T, opts ...vdom.Option) *env {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	doc := dom.New()
	opts = append([]vdom.Option{vdom.WithLogger(logger)}, opts...)
	return &env{
		doc:  doc,
		rc:   vdom.NewContext(doc, opts...),
		body: doc.Body(),
		logs: &buf,
	}
}

func (e *env) mount(t *testing.T, n *vdom.Node) *vdom.Node {
	t.Helper()
	if err := e.rc.Mount(n, e.body, nil); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return n
}

func (e *env) update(t *testing.T, old, next *vdom.Node) *vdom.Node {
	t.Helper()
	live, err := e.rc.Update(old, next)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	return live
}

func artifact(n *vdom.Node) *dom.Node {
	a, _ := n.Output().(*dom.Node)
	return a
}

func childTexts(n *dom.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.TextContent())
	}
	return out
}

// probe is a component that records lifecycle calls into a shared log.
type probe struct {
	vdom.Base
	name    string
	log     *[]string
	render  func(p *probe) []*vdom.Node
	renders int
}

func (p *probe) Render() []*vdom.Node {
	p.renders++
	return p.render(p)
}

func (p *probe) OnMount() {
	*p.log = append(*p.log, "mount:"+p.name)
}

func (p *probe) OnUnmount() {
	*p.log = append(*p.log, "unmount:"+p.name)
}

// probeType defines a component type whose instances are collected in
// *instances, in construction order.
func probeType(name string, log *[]string, render func(p *probe) []*vdom.Node) (*vdom.ComponentType, *[]*probe) {
	var instances []*probe
	typ := vdom.Define(name, func(vdom.Props) vdom.Component {
		p := &probe{name: name, log: log, render: render}
		instances = append(instances, p)
		return p
	})
	return typ, &instances
}

// passChildren renders the children given by the parent.
func passChildren(p *probe) []*vdom.Node {
	return p.Children()
}

type countObserver struct {
	mounted, updated, replaced, moved, destroyed, rendered int
}

func (o *countObserver) Mounted(vdom.Kind) { o.mounted++ }
func (o *countObserver) Updated(vdom.Kind) { o.updated++ }
func (o *countObserver) Replaced(vdom.Kind, vdom.Kind) { o.replaced++ }
func (o *countObserver) Moved(vdom.Kind) { o.moved++ }
func (o *countObserver) Destroyed(vdom.Kind) { o.destroyed++ }
func (o *countObserver) Rendered(string, time.Duration) { o.rendered++ }
