package util

import (
	"math"
)

// ----------------------------------------------------------------------------
// Population statistics
// ----------------------------------------------------------------------------

// Stats summarizes a population of values (e.g. the qualities of all candidates of a generation)
type Stats struct {
	Count        int     `json:"count"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	StdDeviation float64 `json:"std_deviation"`
}

// Summarize computes Stats over items in a single pass, reading each value through value.
// The standard deviation uses the population formula (Welford's update).
func Summarize[T any](items []T, value func(T) float64) Stats {
	var s Stats
	var m2 float64

	for _, item := range items {
		v := value(item)
		s.Count++
		if s.Count == 1 || v < s.Min {
			s.Min = v
		}
		if s.Count == 1 || v > s.Max {
			s.Max = v
		}
		delta := v - s.Mean
		s.Mean += delta / float64(s.Count)
		m2 += delta * (v - s.Mean)
	}

	if s.Count > 0 {
		s.StdDeviation = math.Sqrt(m2 / float64(s.Count))
	}
	return s
}

// CoefficientOfVariation returns StdDeviation/Mean, or 0 for a zero mean.
// A value near 0 means the population has converged.
func (s Stats) CoefficientOfVariation() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.StdDeviation / s.Mean
}
