package utils

import "math"

// ToSubunits converts a major-unit amount (rupees) to subunits (paise),
// rounding half away from zero
func ToSubunits(major float64) int64 {
	return int64(math.Round(major * SubunitsPerUnit))
}

// ToMajor converts subunits back to major units for display
func ToMajor(subunits int64) float64 {
	return float64(subunits) / SubunitsPerUnit
}

// RoundDiv divides two non-negative integers rounding half up.
// It panics on a zero divisor; callers guard against that.
func RoundDiv(numerator, denominator int64) int64 {
	q, r := numerator/denominator, numerator%denominator
	if r >= denominator-r {
		q++
	}
	return q
}

// Percentage returns round(part / whole * 100), or 0 when whole is 0
func Percentage(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	if part > math.MaxInt64/100 {
		return int(math.Round(float64(part) / float64(whole) * 100))
	}
	return int(RoundDiv(part*100, whole))
}

// AddAmounts sums non-negative amounts and reports false once the
// total passes limit
func AddAmounts(limit int64, amounts ...int64) (int64, bool) {
	var total int64
	for _, a := range amounts {
		if a < 0 || a > limit-total {
			return 0, false
		}
		total += a
	}
	return total, true
}
