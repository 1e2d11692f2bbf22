package tracking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	ViewsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_listing_views_recorded_total",
		Help: "Total number of listing views persisted",
	})

	ViewWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_listing_view_write_errors_total",
		Help: "Total number of failed listing view writes",
	})
)
