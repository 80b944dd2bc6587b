package demo

import (
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func walk(n *dom.Node, fn func(*dom.Node)) {
	fn(n)
	for _, c := range n.Children() {
		walk(c, fn)
	}
}

func allByClass(root *dom.Node, class string) []*dom.Node {
	var out []*dom.Node
	walk(root, func(n *dom.Node) {
		if n.Type() == dom.ElementNode && n.HasClass(class) {
			out = append(out, n)
		}
	})
	return out
}

func byClass(t *testing.T, root *dom.Node, class string) *dom.Node {
	t.Helper()
	all := allByClass(root, class)
	if len(all) == 0 {
		t.Fatalf("no element with class %q", class)
	}
	return all[0]
}

func click(doc *dom.Document, n *dom.Node) {
	doc.Dispatch(n, &vdom.Event{Type: "click"})
}

func mountApp(t *testing.T, todos ...string) (*dom.Document, *vdom.Root) {
	t.Helper()
	doc := dom.New()
	rc := vdom.NewContext(doc)
	tree, _ := Tree(todos...)
	root, err := rc.Attach(tree, doc.Body())
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	return doc, root
}

func TestAppRenders(t *testing.T) {
	doc, _ := mountApp(t, "write tests", "ship")

	html := doc.HTML(dom.HTMLOptions{})
	if !strings.Contains(html, "<h1>"+Title+"</h1>") {
		t.Errorf("missing title in %s", html)
	}
	if got := len(allByClass(doc.Body(), "todo")); got != 2 {
		t.Errorf("todos = %d, want 2", got)
	}
	if got := byClass(t, doc.Body(), "summary").TextContent(); got != "2 items left" {
		t.Errorf("summary = %q", got)
	}
}

func TestCounter(t *testing.T) {
	doc, _ := mountApp(t)
	body := doc.Body()
	value := byClass(t, body, "value")

	click(doc, byClass(t, body, "inc"))
	click(doc, byClass(t, body, "inc"))
	if got := value.TextContent(); got != "2" {
		t.Fatalf("value = %q, want 2", got)
	}
	if v, _ := value.Data("count"); v != "2" {
		t.Errorf("data-count = %q", v)
	}

	for i := 0; i < 3; i++ {
		click(doc, byClass(t, body, "dec"))
	}
	if got := value.TextContent(); got != "-1" {
		t.Errorf("value = %q, want -1", got)
	}
	if !byClass(t, body, "counter").HasClass("negative") {
		t.Error("expected negative class")
	}
	if byClass(t, body, "value") != value {
		t.Error("value span should be patched in place")
	}
}

func TestTodoToggleAndRemove(t *testing.T) {
	doc, _ := mountApp(t, "a", "b")
	body := doc.Body()

	items := allByClass(body, "todo")
	click(doc, items[0])
	if !items[0].HasClass("done") {
		t.Error("first item should be done")
	}
	if got := byClass(t, body, "summary").TextContent(); got != "1 item left" {
		t.Errorf("summary = %q", got)
	}

	// The remove button stops propagation, so the item is not toggled first.
	click(doc, allByClass(items[0], "remove")[0])
	left := allByClass(body, "todo")
	if len(left) != 1 || left[0] != items[1] {
		t.Fatalf("remaining = %v, want the second item reused", left)
	}
	if got := byClass(t, body, "title").TextContent(); got != "b" {
		t.Errorf("title = %q", got)
	}
}

func TestTodoReverseMovesNodes(t *testing.T) {
	doc, _ := mountApp(t, "a", "b", "c")
	body := doc.Body()
	before := allByClass(body, "todo")

	doc.ResetLog()
	click(doc, byClass(t, body, "reverse"))

	after := allByClass(body, "todo")
	if len(after) != 3 {
		t.Fatalf("len = %d", len(after))
	}
	for i := range after {
		if after[i] != before[len(before)-1-i] {
			t.Errorf("item %d is a new node", i)
		}
	}
	if n := doc.Count(dom.OpCreateElement); n != 0 {
		t.Errorf("reverse created %d elements", n)
	}
	if n := doc.Count(dom.OpRemove); n != 0 {
		t.Errorf("reverse removed %d nodes", n)
	}
}

func TestTodoAddFromDraft(t *testing.T) {
	doc, _ := mountApp(t)
	body := doc.Body()
	input := byClass(t, body, "draft")

	doc.Dispatch(input, &vdom.Event{Type: "input", Value: "  "})
	click(doc, byClass(t, body, "add"))
	if got := len(allByClass(body, "todo")); got != 0 {
		t.Fatalf("blank draft added %d todos", got)
	}

	doc.Dispatch(input, &vdom.Event{Type: "input", Value: "new"})
	if v, _ := input.Attr("value"); v != "new" {
		t.Errorf("value = %q", v)
	}
	click(doc, byClass(t, body, "add"))

	if got := len(allByClass(body, "todo")); got != 1 {
		t.Fatalf("todos = %d, want 1", got)
	}
	if got := byClass(t, body, "title").TextContent(); got != "new" {
		t.Errorf("title = %q", got)
	}
	if v, _ := input.Attr("value"); v != "" {
		t.Errorf("draft not cleared: %q", v)
	}
}

func TestToggleSwitchesKind(t *testing.T) {
	doc, _ := mountApp(t)
	body := doc.Body()
	box := byClass(t, body, "toggle")

	if got := box.TextContent(); got != "Toggle off" {
		t.Fatalf("TextContent = %q", got)
	}
	click(doc, byClass(t, body, "switch"))
	if got := box.TextContent(); got != "Toggle on" {
		t.Errorf("after click = %q", got)
	}
	if len(allByClass(box, "on")) != 1 {
		t.Error("expected strong.on")
	}
	click(doc, byClass(t, body, "switch"))
	if got := box.TextContent(); got != "Toggle off" {
		t.Errorf("after second click = %q", got)
	}
	if got := len(box.Children()); got != 3 {
		t.Errorf("children = %d, want 3", got)
	}
}

func TestStoreHelpers(t *testing.T) {
	s := NewStore("a")
	Add(s, "b")
	Add(s, "")
	ToggleDone(s, 1)
	Reverse(s)
	Remove(s, 2)

	got := s.Get()
	if len(got) != 1 || got[0].Title != "a" || !got[0].Done {
		t.Errorf("store = %+v", got)
	}
}

func TestUnmountReleasesWatch(t *testing.T) {
	doc := dom.New()
	rc := vdom.NewContext(doc)
	tree, store := Tree("a")
	root, err := rc.Attach(tree, doc.Body())
	if err != nil {
		t.Fatal(err)
	}
	if store.Len() != 1 {
		t.Fatalf("subscribers = %d, want 1", store.Len())
	}
	if err := root.Unmount(); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Errorf("subscribers after unmount = %d", store.Len())
	}
	Add(store, "b")
	if got := len(doc.Body().Children()); got != 0 {
		t.Errorf("body children = %d", got)
	}
}
