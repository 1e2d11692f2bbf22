package currency

import (
	"math"
	"testing"
)

func testTable() RateTable {
	return RateTable{
		RateKey(USD, SYP): 13000,
		RateKey(SYP, USD): 1.0 / 13000,
		RateKey(USD, EUR): 0.93,
		RateKey(EUR, USD): 1.0 / 0.93,
	}
}

func TestConvert(t *testing.T) {
	table := testTable()

	tests := []struct {
		name     string
		amount   int64
		from, to string
		want     int64
	}{
		{
			name:   "identity-same-currency",
			amount: 123456,
			from:   USD,
			to:     USD,
			want:   123456,
		},
		{
			name:   "usd-to-syp",
			amount: 100,
			from:   USD,
			to:     SYP,
			want:   1300000,
		},
		{
			name:   "rounds-to-nearest-minor-unit",
			amount: 101,
			from:   USD,
			to:     EUR,
			want:   94, // 101 * 0.93 = 93.93
		},
		{
			name:   "missing-rate-fails-soft",
			amount: 500,
			from:   EUR,
			to:     SYP,
			want:   500,
		},
		{
			name:   "zero-amount",
			amount: 0,
			from:   USD,
			to:     SYP,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.amount, tt.from, tt.to, table)
			if got != tt.want {
				t.Errorf("Convert(%d, %s, %s) = %d, want %d", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvert_RoundTripWithinOneMinorUnit(t *testing.T) {
	table := testTable()
	amounts := []int64{1, 99, 100, 12345, 1000000, 987654321}
	pairs := [][2]string{{USD, SYP}, {SYP, USD}, {USD, EUR}, {EUR, USD}}

	for _, pair := range pairs {
		for _, x := range amounts {
			there := Convert(x, pair[0], pair[1], table)
			back := Convert(there, pair[1], pair[0], table)

			// Rounding in each direction loses at most one minor unit
			// of the target currency; converting a small amount into a
			// much weaker rate direction can only be checked loosely.
			rate, _ := table.Rate(pair[0], pair[1])
			tolerance := int64(1)
			if rate < 1 {
				tolerance = int64(math.Ceil(1 / rate))
			}

			if diff := back - x; diff > tolerance || diff < -tolerance {
				t.Errorf("round trip %s→%s→%s of %d drifted by %d (tolerance %d)",
					pair[0], pair[1], pair[0], x, diff, tolerance)
			}
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		code   string
		want   string
	}{
		{name: "usd-symbol-before", amount: 1234, code: USD, want: "$1,234"},
		{name: "eur-symbol-before", amount: 50, code: EUR, want: "€50"},
		{name: "syp-symbol-after", amount: 1300000, code: SYP, want: "1,300,000 SYP"},
		{name: "integral-amount-no-decimals", amount: 1000, code: USD, want: "$1,000"},
		{name: "fractional-amount-two-decimals", amount: 19.5, code: USD, want: "$19.50"},
		{name: "grouping-with-fraction", amount: 12345.75, code: USD, want: "$12,345.75"},
		{name: "unknown-currency-code-after", amount: 250, code: "TRY", want: "250 TRY"},
		{name: "small-amount-ungrouped", amount: 999, code: SYP, want: "999 SYP"},
		{name: "negative-amount", amount: -1234, code: USD, want: "$-1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.amount, tt.code)
			if got != tt.want {
				t.Errorf("Format(%v, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestFormatMinor(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		code   string
		want   string
	}{
		{name: "whole-dollars", amount: 123400, code: USD, want: "$1,234"},
		{name: "cents-kept", amount: 1950, code: USD, want: "$19.50"},
		{name: "syp", amount: 130000000, code: SYP, want: "1,300,000 SYP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMinor(tt.amount, tt.code)
			if got != tt.want {
				t.Errorf("FormatMinor(%d, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}
