package state

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Callback receives the container plus the value before and after a Set.
type Callback[T any] func(s *State[T], prev, cur T)

// Releaser is anything that can drop a registration. Subscriptions of every
// State[T] satisfy it, which lets an owner track subscriptions of mixed
// value types in one list.
type Releaser interface {
	Release()
}

var nextStateID atomic.Uint64

// State is a value container with ordered subscribers.
type State[T any] struct {
	id   uint64
	name string

	mu    sync.Mutex
	value T
	subs  []*Subscription[T]

	logger *slog.Logger
}

// Subscription is the handle returned by Subscribe.
type Subscription[T any] struct {
	state  *State[T]
	cb     Callback[T]
	active atomic.Bool
}

// Option configures a State.
type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
}

// WithName names the container in debug logs.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger used for subscription debug records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a container holding initial.
func New[T any](initial T, opts ...Option) *State[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &State[T]{
		id:     nextStateID.Add(1),
		name:   o.name,
		value:  initial,
		logger: o.logger,
	}
}

// ID returns the unique identifier of this container.
func (s *State[T]) ID() uint64 {
	return s.id
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Len returns the number of live subscriptions.
func (s *State[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Subscribe appends cb to the subscriber list.
// Owners that register several callbacks track the handles themselves.
func (s *State[T]) Subscribe(cb Callback[T]) *Subscription[T] {
	sub := &Subscription[T]{state: s, cb: cb}
	sub.active.Store(true)

	s.mu.Lock()
	s.subs = append(s.subs, sub)
	total := len(s.subs)
	s.mu.Unlock()

	s.logger.Debug("state subscribed", "state", s.label(), "subscribers", total)
	return sub
}

// Unsubscribe removes exactly the given subscriptions. Unknown or already
// removed handles are ignored.
func (s *State[T]) Unsubscribe(subs ...*Subscription[T]) {
	if len(subs) == 0 {
		return
	}
	drop := make(map[*Subscription[T]]struct{}, len(subs))
	for _, sub := range subs {
		if sub == nil || sub.state != s {
			continue
		}
		sub.active.Store(false)
		drop[sub] = struct{}{}
	}

	s.mu.Lock()
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if _, ok := drop[sub]; !ok {
			kept = append(kept, sub)
		}
	}
	// Clear the tail so dropped callbacks can be collected.
	for i := len(kept); i < len(s.subs); i++ {
		s.subs[i] = nil
	}
	s.subs = kept
	left := len(s.subs)
	s.mu.Unlock()

	s.logger.Debug("state unsubscribed", "state", s.label(), "removed", len(drop), "subscribers", left)
}

// Set assigns v and notifies subscribers in reverse registration order.
// The subscriber list is copied before notification; a subscription removed
// while the pass is running is skipped.
func (s *State[T]) Set(v T) {
	s.mu.Lock()
	prev := s.value
	s.value = v
	subs := make([]*Subscription[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.logger.Debug("state set", "state", s.label(), "subscribers", len(subs))

	for i := len(subs) - 1; i >= 0; i-- {
		sub := subs[i]
		if !sub.active.Load() {
			continue
		}
		sub.cb(s, prev, v)
	}
}

// Update sets the value computed by fn from the current value.
func (s *State[T]) Update(fn func(T) T) {
	s.Set(fn(s.Get()))
}

func (s *State[T]) label() string {
	if s.name != "" {
		return s.name
	}
	return "state"
}

// Unsubscribe removes this subscription from its container.
func (sub *Subscription[T]) Unsubscribe() {
	if sub == nil || sub.state == nil {
		return
	}
	sub.state.Unsubscribe(sub)
}

// Release implements Releaser.
func (sub *Subscription[T]) Release() {
	sub.Unsubscribe()
}

// Active reports whether the subscription is still registered.
func (sub *Subscription[T]) Active() bool {
	return sub != nil && sub.active.Load()
}
