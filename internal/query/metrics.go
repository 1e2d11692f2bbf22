package query

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// DedupedRequestsTotal tracks cached reads that shared another
	// caller's in-flight transport call instead of issuing their own.
	DedupedRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_query_deduped_requests_total",
		Help: "Total number of cached reads coalesced onto an in-flight request",
	})
)
