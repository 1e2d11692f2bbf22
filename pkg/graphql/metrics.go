package graphql

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	RequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_graphql_requests_total",
		Help: "Total number of successful GraphQL requests",
	})

	TransportFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_graphql_transport_failures_total",
		Help: "Total number of GraphQL requests that failed at the transport level",
	})

	RemoteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_graphql_remote_failures_total",
		Help: "Total number of GraphQL requests rejected by the remote side",
	})

	AuthFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_graphql_auth_failures_total",
		Help: "Total number of authenticated requests attempted without a token",
	})

	RequestDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "souq_graphql_request_duration_seconds",
		Help:    "Duration of GraphQL HTTP round trips",
		Buckets: prometheus.DefBuckets,
	})
)
