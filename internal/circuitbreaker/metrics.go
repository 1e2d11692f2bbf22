package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	BreakerState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "souq_circuit_breaker_state",
		Help: "Current breaker state (0=closed, 1=open, 2=half-open)",
	})

	StateChangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_circuit_breaker_state_changes_total",
		Help: "Total number of breaker state transitions",
	})

	RejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_circuit_breaker_rejected_total",
		Help: "Total number of calls rejected while the breaker was open",
	})
)
