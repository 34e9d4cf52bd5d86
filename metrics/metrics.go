// Package metrics reports listener registry activity to Prometheus.
//
//	collector := metrics.NewPrometheus(metrics.WithRegistry(registry))
//	b := brief.New(doc, brief.WithRegistryOptions(listener.WithInstrumentation(collector)))
//
// Metrics collected:
//   - brief_physical_listeners: Gauge of installed physical listeners by event type and style
//   - brief_listener_invocations_total: Counter of logical listener invocations by event type and style
//   - brief_listener_panics_total: Counter of recovered listener panics by event type
package metrics

import (
	"github.com/hack-pad/brief/listener"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	styleManaged   = "managed"
	styleDelegated = "delegated"
)

// Config configures the Prometheus instrumentation.
type Config struct {
	// Namespace is the metrics namespace (default: "brief").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus instrumentation.
type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the registerer. Registering twice on the same registerer panics, so tests should
// pass a fresh prometheus.NewRegistry().
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "brief",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Prometheus implements listener.Instrumentation.
type Prometheus struct {
	physicalListeners *prometheus.GaugeVec
	invocations       *prometheus.CounterVec
	panics            *prometheus.CounterVec
}

var _ listener.Instrumentation = (*Prometheus)(nil)

func NewPrometheus(opts ...Option) *Prometheus {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Prometheus{
		physicalListeners: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "physical_listeners",
			Help:        "Number of physical listeners installed on documents",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "style"}),

		invocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listener_invocations_total",
			Help:        "Total number of logical listener invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"type", "style"}),

		panics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listener_panics_total",
			Help:        "Total number of panics recovered from listener callbacks",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

func styleLabel(delegated bool) string {
	if delegated {
		return styleDelegated
	}
	return styleManaged
}

func (p *Prometheus) PhysicalListenerInstalled(eventType string, delegated bool) {
	p.physicalListeners.WithLabelValues(eventType, styleLabel(delegated)).Inc()
}

func (p *Prometheus) PhysicalListenerRemoved(eventType string, delegated bool) {
	p.physicalListeners.WithLabelValues(eventType, styleLabel(delegated)).Dec()
}

func (p *Prometheus) ListenerInvoked(eventType string, delegated bool) {
	p.invocations.WithLabelValues(eventType, styleLabel(delegated)).Inc()
}

func (p *Prometheus) ListenerPanicked(eventType string, _ error) {
	p.panics.WithLabelValues(eventType).Inc()
}
