package demo

import (
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Toggle switches its status between an element and a bare text node, so
// each click replaces a node of one kind with another in the same slot.
var Toggle = vdom.Define("Toggle", func(vdom.Props) vdom.Component {
	t := &toggle{}
	t.State = vdom.State{"on": false}
	return t
})

type toggle struct {
	vdom.Base
}

func (t *toggle) Render() []*vdom.Node {
	on, _ := t.State["on"].(bool)

	var status *vdom.Node
	if on {
		status = vdom.H("strong", vdom.Props{"class": "on"}, "on")
	} else {
		status = vdom.Text("off")
	}
	return []*vdom.Node{
		vdom.H("div", vdom.Props{"class": "toggle"},
			vdom.H("button", vdom.Props{
				"class":   "switch",
				"onClick": func() { _ = t.SetState(vdom.State{"on": !on}) },
			}, "Toggle"),
			" ",
			status,
		),
	}
}
