package circuitbreaker

import (
	"testing"
)

// TestMetrics_Registration tests all metrics are initialized
func TestMetrics_Registration(t *testing.T) {
	if BreakerState == nil {
		t.Error("BreakerState not registered")
	}

	if StateChangesTotal == nil {
		t.Error("StateChangesTotal not registered")
	}

	if RejectedTotal == nil {
		t.Error("RejectedTotal not registered")
	}
}

// TestMetrics_GaugeSet tests gauge can be set
func TestMetrics_GaugeSet(t *testing.T) {
	BreakerState.Set(float64(StateOpen))
	BreakerState.Set(float64(StateClosed))
}

// TestMetrics_CounterIncrement tests counters can be incremented
func TestMetrics_CounterIncrement(t *testing.T) {
	StateChangesTotal.Inc()
	RejectedTotal.Inc()
}
