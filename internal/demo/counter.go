package demo

import (
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Counter renders a value with increment and decrement buttons.
// Props: "label" string, "start" int.
var Counter = vdom.Define("Counter", func(p vdom.Props) vdom.Component {
	start, _ := p["start"].(int)
	c := &counter{}
	c.State = vdom.State{"count": start}
	return c
})

type counter struct {
	vdom.Base
}

func (c *counter) add(delta int) func() {
	return func() {
		_ = c.UpdateState(func(s vdom.State, _ vdom.Props) vdom.State {
			n, _ := s["count"].(int)
			return vdom.State{"count": n + delta}
		})
	}
}

// ShouldUpdate skips re-rendering when only the start value changed; start
// seeds the state once.
func (c *counter) ShouldUpdate(next vdom.Props, _ vdom.State) bool {
	return next["label"] != c.Props["label"]
}

func (c *counter) Render() []*vdom.Node {
	count, _ := c.State["count"].(int)
	label, _ := c.Props["label"].(string)

	classes := map[string]bool{
		"counter":  true,
		"negative": count < 0,
	}
	return []*vdom.Node{
		vdom.H("div", vdom.Props{"class": classes},
			vdom.H("span", vdom.Props{"class": "label"}, label),
			vdom.H("button", vdom.Props{"class": "dec", "onClick": c.add(-1)}, "-"),
			vdom.H("span", vdom.Props{"class": "value", "dataCount": count}, count),
			vdom.H("button", vdom.Props{"class": "inc", "onClick": c.add(1)}, "+"),
		),
	}
}
