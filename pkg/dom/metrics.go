package dom

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsConfig configures the document metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "clickaway").
	Namespace string

	// Subsystem is the metrics subsystem (default: "dom").
	Subsystem string

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Metrics holds the Prometheus collectors shared by every Document of a
// process. All methods are nil-safe so documents can run uninstrumented.
type Metrics struct {
	eventsTotal      *prometheus.CounterVec
	listenerCalls    *prometheus.CounterVec
	listenersActive  *prometheus.GaugeVec
	dispatchDuration prometheus.Histogram
}

// NewMetrics registers the document collectors with config.Registry. Calling
// it again with the same registry returns Metrics backed by the collectors
// already registered.
//
// Metrics collected:
//   - clickaway_dom_events_total: events dispatched by type and target resolution
//   - clickaway_dom_listener_calls_total: listener invocations by event type
//   - clickaway_dom_listeners_active: registered listeners by event type
//   - clickaway_dom_dispatch_duration_seconds: time spent running listeners
func NewMetrics(config MetricsConfig) *Metrics {
	if config.Namespace == "" {
		config.Namespace = "clickaway"
	}
	if config.Subsystem == "" {
		config.Subsystem = "dom"
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	reg := config.Registry

	return &Metrics{
		eventsTotal: registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "events_total",
			Help:      "Total number of input events dispatched",
		}, []string{"type", "target"})),

		listenerCalls: registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "listener_calls_total",
			Help:      "Total number of document listener invocations",
		}, []string{"type"})),

		listenersActive: registerOrReuse(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "listeners_active",
			Help:      "Number of registered document listeners",
		}, []string{"type"})),

		dispatchDuration: registerOrReuse(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent running listeners for one event",
			Buckets:   []float64{.00001, .0001, .001, .01, .1},
		})),
	}
}

// registerOrReuse registers c with reg. When an identical collector is
// already registered, that one is returned so every user shares it.
func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func (m *Metrics) recordEvent(typ, target string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(typ, target).Inc()
}

func (m *Metrics) recordCalls(typ string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.listenerCalls.WithLabelValues(typ).Add(float64(n))
}

func (m *Metrics) listenerAdded(typ string) {
	if m == nil {
		return
	}
	m.listenersActive.WithLabelValues(typ).Inc()
}

func (m *Metrics) listenerRemoved(typ string) {
	if m == nil {
		return
	}
	m.listenersActive.WithLabelValues(typ).Dec()
}

func (m *Metrics) observeDispatch(seconds float64) {
	if m == nil {
		return
	}
	m.dispatchDuration.Observe(seconds)
}
