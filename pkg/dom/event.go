package dom

import (
	"slices"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Dispatch delivers ev to target and then to each ancestor until a
// listener stops propagation. It returns the number of listeners invoked.
func (d *Document) Dispatch(target *Node, ev *vdom.Event) int {
	if target == nil || ev == nil {
		return 0
	}
	ev.Target = target
	calls := 0
	for cur := target; cur != nil; cur = cur.parent {
		ev.CurrentTarget = cur
		// Listeners may change the tree; iterate over a snapshot.
		for _, l := range slices.Clone(cur.listeners[ev.Type]) {
			l.HandleEvent(ev)
			calls++
		}
		if ev.Stopped() {
			break
		}
	}
	return calls
}

// DispatchID is Dispatch addressed by node id. Unknown ids deliver nothing.
func (d *Document) DispatchID(id uint32, ev *vdom.Event) int {
	return d.Dispatch(d.ByID(id), ev)
}
