// Package numeric holds the small numerical helpers shared by the
// simulation packages: trapezoidal integration and phase wrapping.
package numeric

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Trapz integrates y over x with the trapezoidal rule. x must have the same
// length as y. An unsorted x is integrated in sample order, so a descending
// grid gives the negated integral. Fewer than two samples integrate to zero.
func Trapz(x, y []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	if !sort.Float64sAreSorted(x) {
		return trapzOrdered(x, y)
	}
	return integrate.Trapezoidal(x, y)
}

// trapzOrdered applies the trapezoidal rule in sample order.
func trapzOrdered(x, y []float64) float64 {
	var sum float64
	for i := 1; i < len(x); i++ {
		sum += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return sum
}

// TrapzComplex integrates a complex-valued y over x with the trapezoidal rule.
func TrapzComplex(x []float64, y []complex128) complex128 {
	if len(x) < 2 {
		return 0
	}
	re := make([]float64, len(y))
	im := make([]float64, len(y))
	for i, v := range y {
		re[i] = real(v)
		im[i] = imag(v)
	}
	return complex(Trapz(x, re), Trapz(x, im))
}

// Wrap wraps a phase angle into the (-π, π] interval.
func Wrap(p float64) float64 {
	const period = 2 * math.Pi
	m := math.Mod(math.Pi-p, period)
	if m < 0 {
		m += period
	}
	return math.Pi - m
}

// Linspace returns n evenly spaced samples over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// IsIncreasing reports whether x is strictly increasing.
func IsIncreasing(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return false
		}
	}
	return true
}
