package utils

import (
	"fmt"
	"math"
)

// PercentOf applies a percentage to an amount in cents, rounding half
// away from zero. This is the only place a fractional intermediate
// appears in cost math; everything else stays in whole cents.
func PercentOf(amountCents int64, percent float64) int64 {
	return int64(math.Round(float64(amountCents) * percent / 100.0))
}

// FormatCents renders an amount in cents as a decimal currency string,
// e.g. 123450 -> "1234.50"
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
