package vdom

import (
	"log/slog"
	"maps"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/vtree/pkg/state"
)

// Component is a stateful view. Render returns the component's children;
// nil entries are dropped.
type Component interface {
	Render() []*Node
}

// Mounter is implemented by components that need a hook after their output
// is attached.
type Mounter interface {
	OnMount()
}

// Unmounter is implemented by components that need a hook before their
// output is detached.
type Unmounter interface {
	OnUnmount()
}

// Updater lets a component skip re-rendering on a parent update. next is
// the incoming props; current is the state before any merge.
type Updater interface {
	ShouldUpdate(next Props, current State) bool
}

// PropsSetter receives the props of every mount and parent update. Base
// implements it; a component that does not embed Base must implement it
// itself or mounting fails with ErrInvalidNodeType.
type PropsSetter interface {
	SetProps(p Props)
}

// ComponentType names a component and constructs instances.
type ComponentType struct {
	Name string
	New  func(Props) Component
}

// Define creates a component type.
func Define(name string, ctor func(Props) Component) *ComponentType {
	return &ComponentType{Name: name, New: ctor}
}

func (t *ComponentType) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Name == "" {
		return "anonymous"
	}
	return t.Name
}

// binder is satisfied by any component embedding Base.
type binder interface {
	base() *Base
}

// Base carries the engine-managed parts of a component. Embed it by value:
//
//	type Counter struct {
//		vdom.Base
//	}
type Base struct {
	Props Props
	State State

	node     *Node
	rc       *RenderContext
	cleanups []func()
}

func (b *Base) base() *Base { return b }

// OnMount is a no-op default.
func (b *Base) OnMount() {}

// OnUnmount is a no-op default.
func (b *Base) OnUnmount() {}

// ShouldUpdate defaults to always re-rendering.
func (b *Base) ShouldUpdate(Props, State) bool { return true }

// SetProps replaces the props wholesale.
func (b *Base) SetProps(p Props) { b.Props = p }

// Mounted reports whether the component is live.
func (b *Base) Mounted() bool {
	return b.node != nil && b.node.mounted
}

// Node returns the component's node, or nil before mount.
func (b *Base) Node() *Node {
	return b.node
}

// Children returns the children passed by the parent.
func (b *Base) Children() []*Node {
	return ChildrenOf(b.Props)
}

// Logger returns a logger scoped to the component.
func (b *Base) Logger() *slog.Logger {
	if b.rc == nil {
		return slog.Default()
	}
	return b.rc.logger.With("component", b.node.Type.String())
}

// OnCleanup registers fn to run when the component is destroyed, after
// OnUnmount. Cleanups run in reverse registration order.
func (b *Base) OnCleanup(fn func()) {
	b.cleanups = append(b.cleanups, fn)
}

// SetState shallow-merges partial into the state and re-renders. The
// re-render is unconditional; ShouldUpdate is only consulted for parent
// updates. Before mount the merge happens without rendering.
func (b *Base) SetState(partial State) error {
	if b.State == nil {
		b.State = State{}
	}
	if b.node == nil {
		maps.Copy(b.State, partial)
		return nil
	}
	if !b.node.mounted {
		err := newError(ErrNotMounted, "SetState on %s", describe(b.node))
		b.rc.logger.Warn("state update dropped",
			"component", b.node.Type.String(),
			"code", errCodes[ErrNotMounted])
		return err
	}
	maps.Copy(b.State, partial)
	return b.refresh()
}

// UpdateState computes the partial state from the current state and props.
func (b *Base) UpdateState(fn func(State, Props) State) error {
	if b.State == nil {
		b.State = State{}
	}
	return b.SetState(fn(b.State, b.Props))
}

// refresh re-renders the component and reconciles the output in place.
func (b *Base) refresh() error {
	n := b.node
	rc := b.rc
	_, span := rc.tracer.Start(rc.ctx, "vdom.Component.SetState")
	defer span.End()
	span.SetAttributes(attribute.String("vdom.component", n.Type.String()))

	next, err := rc.render(n)
	if err == nil {
		err = rc.reconcileChildren(n, next)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		rc.logger.Error("component refresh failed",
			"component", n.Type.String(),
			"error", err)
		return err
	}
	rc.observer.Updated(KindComponent)
	return nil
}

func (b *Base) release() {
	for i := len(b.cleanups) - 1; i >= 0; i-- {
		b.cleanups[i]()
	}
	b.cleanups = nil
}

// Watch subscribes fn to s for the component's lifetime. The subscription is
// released when the component is destroyed.
func Watch[T any](b *Base, s *state.State[T], fn func(prev, cur T)) *state.Subscription[T] {
	sub := s.Subscribe(func(_ *state.State[T], prev, cur T) {
		fn(prev, cur)
	})
	b.OnCleanup(sub.Release)
	return sub
}

func baseOf(c Component) *Base {
	if bd, ok := c.(binder); ok {
		return bd.base()
	}
	return nil
}
