// Package demo contains the playground application served by vtree serve
// and rendered by vtree render/snapshot.
package demo

import (
	"github.com/vango-dev/vtree/pkg/state"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Title is the playground heading.
const Title = "vtree playground"

// App is the root component. Props:
//
//	"store"  *state.State[[]Todo]  shared todo store (required)
//	"start"  int                   initial counter value
var App = vdom.Define("App", func(p vdom.Props) vdom.Component {
	return &app{}
})

type app struct {
	vdom.Base
}

func (a *app) Render() []*vdom.Node {
	store, _ := a.Props["store"].(*state.State[[]Todo])
	start, _ := a.Props["start"].(int)
	return []*vdom.Node{
		vdom.H("div", vdom.Props{"id": "app"},
			vdom.H("h1", nil, Title),
			vdom.H(Counter, vdom.Props{"label": "Clicks", "start": start}),
			vdom.H(TodoList, vdom.Props{"store": store}),
			vdom.H(Toggle, nil),
		),
	}
}

// Tree builds a fresh playground tree with its own store.
func Tree(todos ...string) (*vdom.Node, *state.State[[]Todo]) {
	store := NewStore(todos...)
	return vdom.H(App, vdom.Props{"store": store}), store
}
