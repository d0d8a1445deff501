package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New([]float64{465e-9, 466e-9, 467e-9}, []float64{100, 200, 300})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, s.S1)
	assert.Equal(t, []float64{0, 0, 0}, s.S3)
	assert.InDelta(t, 400e-9, s.Flux(), 1e-18)
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name   string
		wl, s0 []float64
	}{
		{"single sample", []float64{465e-9}, []float64{1}},
		{"length mismatch", []float64{465e-9, 466e-9}, []float64{1}},
		{"not increasing", []float64{466e-9, 465e-9}, []float64{1, 1}},
		{"repeated", []float64{465e-9, 465e-9}, []float64{1, 1}},
		{"non-positive", []float64{0, 465e-9}, []float64{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.wl, tt.s0)
			require.ErrorIs(t, err, ErrInvalidSpectrum)
		})
	}
}

func TestGaussian(t *testing.T) {
	s, err := Gaussian(465e-9, 0.1e-9, 1000, 1000, 6)
	require.NoError(t, err)
	require.Len(t, s.Wavelength, 1000)
	assert.InDelta(t, 465e-9-6*0.1e-9, s.Wavelength[0], 1e-22)
	assert.InDelta(t, 465e-9+6*0.1e-9, s.Wavelength[999], 1e-22)
	assert.InDelta(t, 1000, s.Flux(), 1e-3)

	peak := 0
	for i, v := range s.S0 {
		if v > s.S0[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 465e-9, s.Wavelength[peak], 2e-12)
}

func TestGaussianInvalid(t *testing.T) {
	_, err := Gaussian(465e-9, 0, 1000, 100, 6)
	require.ErrorIs(t, err, ErrInvalidSpectrum)
	_, err = Gaussian(465e-9, 0.1e-9, 1000, 1, 6)
	require.ErrorIs(t, err, ErrInvalidSpectrum)
	_, err = Gaussian(465e-9, 100e-9, 1000, 100, 6)
	require.ErrorIs(t, err, ErrInvalidSpectrum)
}
