// Package state provides the shared value container that drives re-renders.
//
// A State holds one value and an ordered list of subscribers. Set stores the
// new value and synchronously invokes every subscriber, newest first, with
// the previous and the current value:
//
//	count := state.New(0)
//	sub := count.Subscribe(func(s *state.State[int], prev, cur int) {
//	    fmt.Println(prev, "->", cur)
//	})
//	count.Set(1) // prints "0 -> 1"
//	sub.Unsubscribe()
//
// There is no batching and no equality check: every Set notifies. A
// subscriber may call Set again (on the same or another State); the nested
// notification runs to completion inside the outer call.
//
// Components normally do not subscribe directly; vdom.Watch ties a
// subscription to a component's lifetime so it is released on unmount.
package state
