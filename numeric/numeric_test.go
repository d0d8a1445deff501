package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrapz(t *testing.T) {
	x := []float64{0, 1, 2, 6, 7, 8, 10}
	y := []float64{0, 1, 2, 6, 7, 8, 10}
	assert.Equal(t, 50.0, Trapz(x, y))

	assert.Zero(t, Trapz([]float64{1}, []float64{3}))
	assert.Zero(t, Trapz(nil, nil))
}

func TestTrapzComplex(t *testing.T) {
	x := []float64{0, 1, 2, 6, 7, 8, 10}
	y := make([]complex128, len(x))
	for i, v := range x {
		y[i] = complex(v, -2*v)
	}
	got := TrapzComplex(x, y)
	assert.Equal(t, 50.0, real(got))
	assert.Equal(t, -100.0, imag(got))
}

func TestTrapzUnsorted(t *testing.T) {
	x := []float64{2, 1, 0}
	y := []float64{2, 1, 0}
	require.NotPanics(t, func() { Trapz(x, y) })
	assert.Equal(t, -2.0, Trapz(x, y))

	c := []complex128{complex(2, -4), complex(1, -2), 0}
	require.NotPanics(t, func() { TrapzComplex(x, c) })
	assert.Equal(t, complex(-2, 4), TrapzComplex(x, c))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"above period", 2.25 * math.Pi, 0.25 * math.Pi},
		{"inside", 0.5, 0.5},
		{"negative inside", -1, -1},
		{"three halves", 1.5 * math.Pi, -0.5 * math.Pi},
		{"below minus pi", -1.5 * math.Pi, 0.5 * math.Pi},
		{"pi stays", math.Pi, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Wrap(tt.in), 1e-10)
		})
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(1, 2, 5)
	require.Len(t, got, 5)
	assert.Equal(t, 1.0, got[0])
	assert.Equal(t, 2.0, got[4])
	assert.InDelta(t, 1.25, got[1], 1e-15)
	assert.True(t, IsIncreasing(got))

	assert.Equal(t, []float64{3}, Linspace(3, 4, 1))
}

func TestIsIncreasing(t *testing.T) {
	assert.True(t, IsIncreasing([]float64{1, 2, 3}))
	assert.False(t, IsIncreasing([]float64{1, 1, 3}))
	assert.False(t, IsIncreasing([]float64{3, 2}))
	assert.True(t, IsIncreasing(nil))
}
