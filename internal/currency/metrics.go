package currency

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	RefreshTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_rates_refresh_total",
		Help: "Total number of exchange-rate refresh attempts",
	})

	RefreshErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_rates_refresh_errors_total",
		Help: "Total number of failed exchange-rate refreshes",
	})

	RefreshRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_rates_refresh_rejected_total",
		Help: "Total number of fetched rate tables rejected by the sanity check",
	})

	MissingRateTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "souq_rates_missing_total",
		Help: "Total number of conversions that fell back to rate 1 for lack of a rate",
	})
)
