package service

import "math"

// normalize maps value from [lo, hi] onto [0, 100], clamping outside the range.
func normalize(value, lo, hi float64) float64 {
	return clamp((value-lo)/(hi-lo)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundHalfUp is the single rounding rule used at every subscore boundary.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// capAndRound caps a raw component total and rounds it.
func capAndRound(total float64, limit int) int {
	return roundHalfUp(clamp(total, 0, float64(limit)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// coefficientOfVariation is the population standard deviation divided by
// the mean. Fewer than two observations count as perfectly stable.
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq/float64(len(values))) / m
}
