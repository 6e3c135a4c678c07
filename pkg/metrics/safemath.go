package metrics

import "math"

// SafeDiv implements the engine-wide safe-division policy: any ratio
// with a zero or non-finite denominator (or a non-finite numerator)
// evaluates to 0, never NaN or Infinity. Every ratio, percentage and
// average in the engine goes through this function.
func SafeDiv(n, d float64) float64 {
	if d == 0 || math.IsNaN(n) || math.IsInf(n, 0) || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return n / d
}

// SafePct is SafeDiv scaled to a percentage.
func SafePct(n, d float64) float64 {
	return 100 * SafeDiv(n, d)
}

// GrowthPct returns the percentage growth from prev to curr. A zero
// previous value yields 0 by the safe-division policy, not infinity.
func GrowthPct(curr, prev float64) float64 {
	return SafePct(curr-prev, prev)
}
