package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type symbolPlacement struct {
	symbol string
	after  bool
}

// Display symbols and their placement. Dollar and euro lead the amount;
// the Syrian pound trails it.
var symbols = map[string]symbolPlacement{
	USD: {symbol: "$"},
	EUR: {symbol: "€"},
	SYP: {symbol: "SYP", after: true},
}

// MinorPerUnit is the number of minor units in one display unit.
const MinorPerUnit = 100

// FormatMinor renders a canonical minor-unit amount in display units.
func FormatMinor(amount int64, code string) string {
	return Format(float64(amount)/MinorPerUnit, code)
}

// Format renders an amount in whole currency units with thousands
// grouping and the currency's symbol placement. Fractional digits are
// omitted unless the amount is non-integral.
func Format(amount float64, code string) string {
	digits := 0
	if amount != math.Trunc(amount) {
		digits = 2
	}

	number := groupThousands(strconv.FormatFloat(amount, 'f', digits, 64))

	placement, ok := symbols[code]
	if !ok {
		placement = symbolPlacement{symbol: code, after: true}
	}
	if placement.after {
		return fmt.Sprintf("%s %s", number, placement.symbol)
	}
	return placement.symbol + number
}

// groupThousands inserts comma separators into the integer part of a
// formatted decimal number.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart = s[:dot]
		fracPart = s[dot:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + fracPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}

	return sign + b.String() + fracPart
}
