package vdom_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestUpdateText(t *testing.T) {
	e := newEnv(t)
	n := e.mount(t, vdom.Text("a"))
	e.doc.ResetLog()

	e.update(t, n, vdom.Text("b"))

	want := []dom.Mutation{{Op: dom.OpSetText, Target: artifact(n).ID(), Value: "b"}}
	if diff := cmp.Diff(want, e.doc.Log()); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
	if n.Text != "b" || artifact(n).Text() != "b" {
		t.Errorf("stored %q, artifact %q, want b", n.Text, artifact(n).Text())
	}

	e.doc.ResetLog()
	e.update(t, n, vdom.Text("b"))
	if got := len(e.doc.Log()); got != 0 {
		t.Errorf("unchanged text issued %d mutations", got)
	}
}

func TestUpdateIdenticalPropsIsNoop(t *testing.T) {
	build := func() *vdom.Node {
		return vdom.H("div", vdom.Props{
			"class":   "x y",
			"style":   map[string]string{"marginTop": "1px"},
			"onClick": func(*vdom.Event) {},
			"dataKey": "v",
			"title":   "t",
		}, "hi")
	}
	e := newEnv(t)
	n := e.mount(t, build())
	e.doc.ResetLog()

	live := e.update(t, n, build())
	if live != n {
		t.Error("same-tag update must keep the live node")
	}
	if log := e.doc.Log(); len(log) != 0 {
		t.Errorf("identical update issued mutations: %v", log)
	}
}

func TestUpdateAttrDiff(t *testing.T) {
	e := newEnv(t)
	n := e.mount(t, vdom.H("div", vdom.Props{
		"class": "a b",
		"style": map[string]string{"color": "red", "top": "0"},
		"title": "x",
		"dataA": "1",
	}))
	e.doc.ResetLog()

	e.update(t, n, vdom.H("div", vdom.Props{
		"class": "b c",
		"style": map[string]string{"color": "blue"},
		"id":    "y",
	}))

	id := artifact(n).ID()
	want := []dom.Mutation{
		{Op: dom.OpRemoveClass, Target: id, Key: "a"},
		{Op: dom.OpAddClass, Target: id, Key: "c"},
		{Op: dom.OpRemoveStyle, Target: id, Key: "top"},
		{Op: dom.OpSetStyle, Target: id, Key: "color", Value: "blue"},
		{Op: dom.OpRemoveData, Target: id, Key: "a"},
		{Op: dom.OpRemoveAttr, Target: id, Key: "title"},
		{Op: dom.OpSetAttr, Target: id, Key: "id", Value: "y"},
	}
	if diff := cmp.Diff(want, e.doc.Log()); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}

	el := artifact(n)
	if diff := cmp.Diff([]string{"b", "c"}, el.Classes()); diff != "" {
		t.Errorf("classes (-want +got):\n%s", diff)
	}
	if _, ok := el.Style("top"); ok {
		t.Error("top should be removed")
	}
}

func TestUpdateHandlers(t *testing.T) {
	e := newEnv(t)
	var calls []string
	n := e.mount(t, vdom.H("button", vdom.Props{
		"onClick": func() { calls = append(calls, "first") },
	}))
	el := artifact(n)
	e.doc.ResetLog()

	// Swapping the handler for a listened event costs no host call.
	e.update(t, n, vdom.H("button", vdom.Props{
		"onClick": func() { calls = append(calls, "second") },
	}))
	if log := e.doc.Log(); len(log) != 0 {
		t.Errorf("handler swap issued mutations: %v", log)
	}
	e.doc.Dispatch(el, &vdom.Event{Type: "click"})
	if diff := cmp.Diff([]string{"second"}, calls); diff != "" {
		t.Errorf("calls (-want +got):\n%s", diff)
	}

	e.update(t, n, vdom.H("button", vdom.Props{
		"onInput": func() { calls = append(calls, "input") },
	}))
	want := []dom.Mutation{
		{Op: dom.OpRemoveListener, Target: el.ID(), Key: "click"},
		{Op: dom.OpAddListener, Target: el.ID(), Key: "input"},
	}
	if diff := cmp.Diff(want, e.doc.Log()); diff != "" {
		t.Errorf("mutations (-want +got):\n%s", diff)
	}
	if el.ListenerCount("click") != 0 || el.ListenerCount("input") != 1 {
		t.Errorf("listeners click=%d input=%d", el.ListenerCount("click"), el.ListenerCount("input"))
	}
}

func TestUpdateReplaceKeepsPosition(t *testing.T) {
	e := newEnv(t)
	var log []string
	pair, _ := probeType("Pair", &log, func(*probe) []*vdom.Node {
		return []*vdom.Node{vdom.H("em", nil, "x"), vdom.H("em", nil, "y")}
	})

	div := e.mount(t, vdom.H("div", nil, vdom.Text("a"), vdom.H("span", nil, "b"), vdom.Text("c")))
	el := artifact(div)
	oldSpan := el.Children()[1]

	// Element -> Component
	e.update(t, div, vdom.H("div", nil, vdom.Text("a"), vdom.H(pair, nil), vdom.Text("c")))
	if got := el.TextContent(); got != "axyc" {
		t.Fatalf("TextContent = %q, want axyc", got)
	}
	comp := div.Children[1]
	if comp.Kind != vdom.KindComponent {
		t.Fatalf("slot 1 kind = %v, want Component", comp.Kind)
	}
	if comp.FirstOutput() != vdom.Artifact(el.Children()[1]) {
		t.Error("component's first artifact should take the old element's position")
	}
	if oldSpan.Parent() != nil {
		t.Error("replaced element should be detached")
	}

	// Component -> Element
	e.update(t, div, vdom.H("div", nil, vdom.Text("a"), vdom.H("span", nil, "b"), vdom.Text("c")))
	if got := el.TextContent(); got != "abc" {
		t.Fatalf("TextContent = %q, want abc", got)
	}
	if div.Children[1].Output() != vdom.Artifact(el.Children()[1]) {
		t.Error("element should take the component's position")
	}
	if diff := cmp.Diff([]string{"mount:Pair", "unmount:Pair"}, log); diff != "" {
		t.Errorf("lifecycle (-want +got):\n%s", diff)
	}
}

func TestUpdateReplaceDifferentTag(t *testing.T) {
	e := newEnv(t)
	div := e.mount(t, vdom.H("div", nil, vdom.H("b", nil, "1"), vdom.Text("2")))
	old := div.Children[0]

	e.update(t, div, vdom.H("div", nil, vdom.H("i", nil, "1"), vdom.Text("2")))
	if div.Children[0] == old || div.Children[0].Tag != "i" {
		t.Fatal("differing tag should replace the node")
	}
	if old.Mounted() {
		t.Error("replaced node should be unmounted")
	}
	if got := artifact(div).OuterHTML(); got != "<div><i>1</i>2</div>" {
		t.Errorf("html = %s", got)
	}
	if div.Children[0].Next() != div.Children[1] || div.Children[1].Prev() != div.Children[0] {
		t.Error("sibling links not repaired after replace")
	}
}

type frozen struct {
	vdom.Base
	renders int
}

func (f *frozen) Render() []*vdom.Node {
	f.renders++
	return []*vdom.Node{vdom.Text(f.Props["label"].(string))}
}

func (f *frozen) ShouldUpdate(vdom.Props, vdom.State) bool { return false }

func TestUpdateShouldUpdateFalse(t *testing.T) {
	e := newEnv(t)
	var inst *frozen
	typ := vdom.Define("Frozen", func(vdom.Props) vdom.Component {
		inst = &frozen{}
		return inst
	})

	n := e.mount(t, vdom.H(typ, vdom.Props{"label": "a"}))
	e.doc.ResetLog()

	next := vdom.H(typ, vdom.Props{"label": "b"})
	e.update(t, n, next)

	if inst.renders != 1 {
		t.Errorf("renders = %d, want 1", inst.renders)
	}
	if inst.Props["label"] != "b" || n.Props["label"] != "b" {
		t.Errorf("props not replaced: %v", inst.Props)
	}
	if log := e.doc.Log(); len(log) != 0 {
		t.Errorf("ShouldUpdate=false issued mutations: %v", log)
	}
	if got := e.body.TextContent(); got != "a" {
		t.Errorf("TextContent = %q, want a", got)
	}

	// A state change still renders, and sees the fresh props.
	if err := inst.SetState(vdom.State{}); err != nil {
		t.Fatal(err)
	}
	if got := e.body.TextContent(); got != "b" {
		t.Errorf("after SetState TextContent = %q, want b", got)
	}
}

// plainLabel renders its label prop without embedding Base.
type plainLabel struct {
	props vdom.Props
}

func (p *plainLabel) SetProps(props vdom.Props) { p.props = props }

func (p *plainLabel) Render() []*vdom.Node {
	return []*vdom.Node{vdom.Text(p.props["label"].(string))}
}

func TestUpdatePlainComponentProps(t *testing.T) {
	e := newEnv(t)
	typ := vdom.Define("PlainLabel", func(vdom.Props) vdom.Component { return &plainLabel{} })

	n := e.mount(t, vdom.H(typ, vdom.Props{"label": "one"}))
	if got := e.body.TextContent(); got != "one" {
		t.Fatalf("TextContent = %q, want one", got)
	}

	e.update(t, n, vdom.H(typ, vdom.Props{"label": "two"}))
	if got := e.body.TextContent(); got != "two" {
		t.Errorf("after update TextContent = %q, want two", got)
	}
	if got := n.Instance.(*plainLabel).props["label"]; got != "two" {
		t.Errorf("instance props label = %v", got)
	}
}

type bare struct{}

func (bare) Render() []*vdom.Node { return nil }

func TestMountRejectsComponentWithoutProps(t *testing.T) {
	e := newEnv(t)
	typ := vdom.Define("Bare", func(vdom.Props) vdom.Component { return bare{} })
	if err := e.rc.Mount(vdom.H(typ, nil), e.body, nil); !errors.Is(err, vdom.ErrInvalidNodeType) {
		t.Errorf("err = %v, want ErrInvalidNodeType", err)
	}
}

type stateSpy struct {
	vdom.Base
	gotProps vdom.Props
	gotState vdom.State
}

func (s *stateSpy) Render() []*vdom.Node { return nil }

func (s *stateSpy) ShouldUpdate(next vdom.Props, st vdom.State) bool {
	s.gotProps = next
	s.gotState = st
	return true
}

func TestShouldUpdateArguments(t *testing.T) {
	e := newEnv(t)
	spy := &stateSpy{}
	spy.State = vdom.State{"n": 1}
	typ := vdom.Define("Spy", func(vdom.Props) vdom.Component { return spy })

	n := e.mount(t, vdom.H(typ, vdom.Props{"v": 1}))
	e.update(t, n, vdom.H(typ, vdom.Props{"v": 2}))

	if spy.gotProps["v"] != 2 {
		t.Errorf("next props = %v", spy.gotProps)
	}
	if spy.gotState["n"] != 1 {
		t.Errorf("state = %v", spy.gotState)
	}
}

func TestUpdateUnmounted(t *testing.T) {
	e := newEnv(t)
	_, err := e.rc.Update(vdom.Text("a"), vdom.Text("b"))
	if !errors.Is(err, vdom.ErrUnlinkedNode) {
		t.Errorf("err = %v, want ErrUnlinkedNode", err)
	}
}

func TestUpdateWithLiveNodeClones(t *testing.T) {
	e := newEnv(t)
	a := e.mount(t, vdom.H("div", nil, vdom.H("p", nil, "a")))
	b := e.mount(t, vdom.H("div", nil, vdom.H("p", nil, "b")))

	e.update(t, a, b)
	if got := artifact(a).TextContent(); got != "b" {
		t.Errorf("TextContent = %q, want b", got)
	}
	if a.Children[0] == b.Children[0] {
		t.Error("live descriptor must be cloned, not shared")
	}
	if got := artifact(b).TextContent(); got != "b" {
		t.Errorf("source tree changed: %q", got)
	}
}
