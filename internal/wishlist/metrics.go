package wishlist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// ToggleTotal tracks optimistic mutations by direction.
	ToggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "souq_wishlist_toggles_total",
			Help: "Total number of optimistic wishlist mutations",
		},
		[]string{"direction"},
	)

	// RollbacksTotal tracks optimistic mutations undone after a remote failure.
	RollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_wishlist_rollbacks_total",
		Help: "Total number of optimistic wishlist mutations rolled back",
	})
)
