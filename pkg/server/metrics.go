package server

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	activeSessions prometheus.Gauge
	wsErrors       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		activeSessions: registerOrReuse(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clickaway",
			Name:      "active_sessions",
			Help:      "Number of connected WebSocket sessions",
		})),

		wsErrors: registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clickaway",
			Name:      "websocket_errors_total",
			Help:      "Total WebSocket errors by type",
		}, []string{"type"})),
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
