package demo

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vango-dev/vtree/pkg/state"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Todo is one entry of the todo list.
type Todo struct {
	ID    int
	Title string
	Done  bool
}

// NewStore creates a todo store seeded with titles.
func NewStore(titles ...string) *state.State[[]Todo] {
	todos := make([]Todo, 0, len(titles))
	for i, t := range titles {
		todos = append(todos, Todo{ID: i + 1, Title: t})
	}
	return state.New(todos, state.WithName("todos"))
}

// Add appends a todo with the next free id. Blank titles are ignored.
func Add(store *state.State[[]Todo], title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	store.Update(func(cur []Todo) []Todo {
		id := 1
		for _, t := range cur {
			id = max(id, t.ID+1)
		}
		return append(slices.Clone(cur), Todo{ID: id, Title: title})
	})
}

// Remove deletes the todo with id.
func Remove(store *state.State[[]Todo], id int) {
	store.Update(func(cur []Todo) []Todo {
		return slices.DeleteFunc(slices.Clone(cur), func(t Todo) bool { return t.ID == id })
	})
}

// ToggleDone flips the done flag of the todo with id.
func ToggleDone(store *state.State[[]Todo], id int) {
	store.Update(func(cur []Todo) []Todo {
		out := slices.Clone(cur)
		for i := range out {
			if out[i].ID == id {
				out[i].Done = !out[i].Done
			}
		}
		return out
	})
}

// Reverse reverses the list order.
func Reverse(store *state.State[[]Todo]) {
	store.Update(func(cur []Todo) []Todo {
		out := slices.Clone(cur)
		slices.Reverse(out)
		return out
	})
}

// TodoList renders the todos of a shared store as a keyed list.
// Props: "store" *state.State[[]Todo].
var TodoList = vdom.Define("TodoList", func(p vdom.Props) vdom.Component {
	l := &todoList{}
	l.State = vdom.State{"draft": ""}
	return l
})

type todoList struct {
	vdom.Base
}

func (l *todoList) store() *state.State[[]Todo] {
	s, _ := l.Props["store"].(*state.State[[]Todo])
	return s
}

func (l *todoList) OnMount() {
	if s := l.store(); s != nil {
		vdom.Watch(&l.Base, s, func(_, _ []Todo) {
			_ = l.SetState(nil)
		})
	}
}

func (l *todoList) Render() []*vdom.Node {
	s := l.store()
	if s == nil {
		return []*vdom.Node{vdom.H("p", vdom.Props{"class": "empty"}, "no store")}
	}
	draft, _ := l.State["draft"].(string)
	todos := s.Get()

	items := make([]*vdom.Node, 0, len(todos))
	for _, t := range todos {
		id := t.ID
		items = append(items, vdom.Keyed(strconv.Itoa(id), vdom.H("li",
			vdom.Props{
				"class":   map[string]bool{"todo": true, "done": t.Done},
				"dataId":  id,
				"onClick": func() { ToggleDone(s, id) },
			},
			vdom.H("span", vdom.Props{"class": "title"}, t.Title),
			vdom.H("button", vdom.Props{
				"class": "remove",
				"onClick": func(e *vdom.Event) {
					e.StopPropagation()
					Remove(s, id)
				},
			}, "x"),
		)))
	}

	return []*vdom.Node{
		vdom.H("section", vdom.Props{"class": "todos"},
			vdom.H("input", vdom.Props{
				"class":       "draft",
				"value":       draft,
				"placeholder": "What needs doing?",
				"onInput": func(e *vdom.Event) {
					_ = l.SetState(vdom.State{"draft": e.Value})
				},
			}),
			vdom.H("button", vdom.Props{
				"class": "add",
				"onClick": func() {
					cur, _ := l.State["draft"].(string)
					l.State["draft"] = ""
					Add(s, cur)
				},
			}, "Add"),
			vdom.H("button", vdom.Props{"class": "reverse", "onClick": func() { Reverse(s) }}, "Reverse"),
			vdom.H("ul", nil, items),
			vdom.H("p", vdom.Props{"class": "summary"}, summary(todos)),
		),
	}
}

func summary(todos []Todo) string {
	left := 0
	for _, t := range todos {
		if !t.Done {
			left++
		}
	}
	switch left {
	case 0:
		return "all done"
	case 1:
		return "1 item left"
	default:
		return strconv.Itoa(left) + " items left"
	}
}
