package subscription

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	ConnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_subscription_connects_total",
		Help: "Total number of successful subscription connections",
	})

	ReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_subscription_reconnects_total",
		Help: "Total number of reconnection attempts",
	})

	ReconnectFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_subscription_reconnect_failures_total",
		Help: "Total number of failed reconnection attempts",
	})

	EventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_subscription_events_total",
		Help: "Total number of subscription events delivered",
	})

	DroppedEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_subscription_events_dropped_total",
		Help: "Total number of subscription events dropped due to a full buffer",
	})
)
