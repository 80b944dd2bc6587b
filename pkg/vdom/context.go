package vdom

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Observer receives engine events. Implementations must be cheap; they are
// called inline during reconciliation.
type Observer interface {
	Mounted(k Kind)
	Updated(k Kind)
	Replaced(from, to Kind)
	Moved(k Kind)
	Destroyed(k Kind)
	Rendered(component string, d time.Duration)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) Mounted(Kind) {}
func (NopObserver) Updated(Kind) {}
func (NopObserver) Replaced(Kind, Kind) {}
func (NopObserver) Moved(Kind) {}
func (NopObserver) Destroyed(Kind) {}
func (NopObserver) Rendered(string, time.Duration) {}

// RenderContext binds the engine to one Host. It is not safe for concurrent
// use; callers serialize access (one context per session).
type RenderContext struct {
	host     Host
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
	ctx      context.Context
}

// Option configures a RenderContext.
type Option func(*RenderContext)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(rc *RenderContext) {
		if l != nil {
			rc.logger = l
		}
	}
}

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(rc *RenderContext) {
		if o != nil {
			rc.observer = o
		}
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(t trace.Tracer) Option {
	return func(rc *RenderContext) {
		if t != nil {
			rc.tracer = t
		}
	}
}

// WithContext sets the parent context for spans.
func WithContext(ctx context.Context) Option {
	return func(rc *RenderContext) {
		if ctx != nil {
			rc.ctx = ctx
		}
	}
}

// NewContext creates a render context for host.
func NewContext(host Host, opts ...Option) *RenderContext {
	rc := &RenderContext{
		host:     host,
		logger:   slog.Default(),
		observer: NopObserver{},
		tracer:   otel.Tracer("github.com/vango-dev/vtree/pkg/vdom"),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Host returns the bound host.
func (rc *RenderContext) Host() Host {
	return rc.host
}

// Logger returns the context logger.
func (rc *RenderContext) Logger() *slog.Logger {
	return rc.logger
}
