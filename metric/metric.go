package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Metric returns the distance between two points.
type Metric[P any] func(a, b P) float64

// Euclidean returns the L2 distance between a and b.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// Chebyshev returns the L∞ distance between a and b.
func Chebyshev(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// Absolute returns |a − b|.
func Absolute(a, b float64) float64 {
	return math.Abs(a - b)
}

// Indexed returns a Metric over indices into points. The slice is captured,
// not copied; callers must not mutate it while the metric is in use.
func Indexed[P any](points []P, m Metric[P]) Metric[int] {
	return func(i, j int) float64 {
		return m(points[i], points[j])
	}
}

// Valid reports whether d is a usable distance: finite and non-negative.
func Valid(d float64) bool {
	return d >= 0 && !math.IsInf(d, 1) && !math.IsNaN(d)
}
