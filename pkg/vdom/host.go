package vdom

// Host is the document the engine renders into. Implementations own the
// artifacts; the engine only passes them back.
//
// InsertBefore with a nil before appends; otherwise before is a child of
// parent. Inserting an artifact that is already attached moves it. Parent
// returns nil for detached artifacts.
type Host interface {
	CreateElement(tag string) Artifact
	CreateText(text string) Artifact
	InsertBefore(parent, child, before Artifact)
	Remove(child Artifact)
	Parent(a Artifact) Artifact
	SetText(a Artifact, text string)

	AddClass(el Artifact, name string)
	RemoveClass(el Artifact, name string)
	SetStyle(el Artifact, property, value string)
	RemoveStyle(el Artifact, property string)
	SetAttribute(el Artifact, name, value string)
	RemoveAttribute(el Artifact, name string)
	SetData(el Artifact, key, value string)
	RemoveData(el Artifact, key string)

	AddEventListener(el Artifact, event string, l EventListener)
	RemoveEventListener(el Artifact, event string, l EventListener)
}

// Event is delivered to listeners by the host.
type Event struct {
	Type          string
	Target        Artifact
	CurrentTarget Artifact
	Value         string
	Detail        map[string]any

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// EventListener receives host events.
type EventListener interface {
	HandleEvent(e *Event)
}

// HandlerFunc adapts a function to EventListener.
type HandlerFunc func(e *Event)

// HandleEvent implements EventListener.
func (f HandlerFunc) HandleEvent(e *Event) {
	f(e)
}

// listener is the stable object registered with the host for one event on
// one element. Swapping target lets a re-render change handlers without
// touching the host.
type listener struct {
	event  string
	target EventListener
}

func (l *listener) HandleEvent(e *Event) {
	if l.target != nil {
		l.target.HandleEvent(e)
	}
}
