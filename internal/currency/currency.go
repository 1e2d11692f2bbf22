// Package currency converts canonical minor-unit amounts into the
// user's display currency and formats them for rendering.
package currency

import "math"

// Currency codes used across the marketplace. Amounts are stored in
// minor units of the reference currency and converted for display only.
const (
	USD = "USD"
	EUR = "EUR"
	SYP = "SYP"
)

// RateTable maps a conversion pair (see RateKey) to its multiplier.
type RateTable map[string]float64

// RateKey builds the table key for a from→to conversion.
func RateKey(from, to string) string {
	return from + "/" + to
}

// Rate returns the multiplier for from→to and whether it is known.
func (t RateTable) Rate(from, to string) (float64, bool) {
	rate, ok := t[RateKey(from, to)]
	return rate, ok
}

// Convert converts a minor-unit amount between currencies, rounding to
// the nearest whole minor unit.
//
// When no rate is available the input is returned unchanged (rate 1).
// Prices must always render something, so availability wins over
// correctness here.
func Convert(amount int64, from, to string, table RateTable) int64 {
	if from == to {
		return amount
	}

	rate, ok := table.Rate(from, to)
	if !ok {
		MissingRateTotal.Inc()
		return amount
	}

	return int64(math.Round(float64(amount) * rate))
}
