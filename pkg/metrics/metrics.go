// Package metrics exports reconciliation and session counters to Prometheus.
//
// A Collector implements vdom.Observer, so it can be handed to a render
// context directly:
//
//	reg := prometheus.NewRegistry()
//	c := metrics.New(metrics.WithRegistry(reg))
//	rc := vdom.NewContext(doc, vdom.WithObserver(c))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the engine and session metrics.
type Collector struct {
	nodesMounted   *prometheus.CounterVec
	nodesUpdated   *prometheus.CounterVec
	nodesReplaced  *prometheus.CounterVec
	nodesMoved     *prometheus.CounterVec
	nodesDestroyed *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	patchesSent    prometheus.Counter
	eventsTotal    *prometheus.CounterVec
	activeSessions prometheus.Gauge
}

var _ vdom.Observer = (*Collector)(nil)

// New registers the metrics with the configured registry. Registering twice
// against the same registry panics, as with promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if len(config.Buckets) == 0 {
		config.Buckets = prometheus.DefBuckets
	}

	factory := promauto.With(config.Registry)
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Collector{
		nodesMounted:   counterVec("nodes_mounted_total", "Nodes mounted, by kind", "kind"),
		nodesUpdated:   counterVec("nodes_updated_total", "Nodes updated in place, by kind", "kind"),
		nodesReplaced:  counterVec("nodes_replaced_total", "Nodes replaced because their type changed", "from", "to"),
		nodesMoved:     counterVec("nodes_moved_total", "Keyed nodes moved to a new position", "kind"),
		nodesDestroyed: counterVec("nodes_destroyed_total", "Nodes destroyed, by kind", "kind"),

		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Component render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_sent_total",
			Help:        "Total number of patches sent to clients",
			ConstLabels: config.ConstLabels,
		}),

		eventsTotal: counterVec("events_total", "Client events handled", "type", "status"),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active WebSocket sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Mounted implements vdom.Observer.
func (c *Collector) Mounted(k vdom.Kind) { c.nodesMounted.WithLabelValues(k.String()).Inc() }

// Updated implements vdom.Observer.
func (c *Collector) Updated(k vdom.Kind) { c.nodesUpdated.WithLabelValues(k.String()).Inc() }

// Replaced implements vdom.Observer.
func (c *Collector) Replaced(from, to vdom.Kind) {
	c.nodesReplaced.WithLabelValues(from.String(), to.String()).Inc()
}

// Moved implements vdom.Observer.
func (c *Collector) Moved(k vdom.Kind) { c.nodesMoved.WithLabelValues(k.String()).Inc() }

// Destroyed implements vdom.Observer.
func (c *Collector) Destroyed(k vdom.Kind) { c.nodesDestroyed.WithLabelValues(k.String()).Inc() }

// Rendered implements vdom.Observer.
func (c *Collector) Rendered(component string, d time.Duration) {
	c.renderDuration.WithLabelValues(component).Observe(d.Seconds())
}

// RecordPatches records patches sent to a client.
func (c *Collector) RecordPatches(count int) {
	if count > 0 {
		c.patchesSent.Add(float64(count))
	}
}

// RecordEvent records a handled client event.
func (c *Collector) RecordEvent(eventType string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.eventsTotal.WithLabelValues(eventType, status).Inc()
}

// SessionOpened increments the active session gauge.
func (c *Collector) SessionOpened() { c.activeSessions.Inc() }

// SessionClosed decrements the active session gauge.
func (c *Collector) SessionClosed() { c.activeSessions.Dec() }
