package feature

import "math"

// SafeRatio divides num by den. An undefined or infinite result is 0.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return finite(num / den)
}

// SafeLogRatio is ln(cur/prev). A ratio that is undefined or not positive
// has no logarithm and yields 0.
func SafeLogRatio(cur, prev float64) float64 {
	r := SafeRatio(cur, prev)
	if r <= 0 {
		return 0
	}
	return finite(math.Log(r))
}

// SafeGrowth is the arithmetic growth (cur-prev)/prev, 0 when undefined.
func SafeGrowth(cur, prev float64) float64 {
	return SafeRatio(cur-prev, prev)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
