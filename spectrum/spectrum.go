// Package spectrum holds Stokes-resolved source spectra.
package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/AnkushinDaniil/cisim/numeric"
)

var ErrInvalidSpectrum = errors.New("invalid spectrum")

// Spectrum samples the Stokes parameters of a source on a wavelength grid
// (metres). S0 is the spectral flux density; S1, S2 and S3 are zero for an
// unpolarised source.
type Spectrum struct {
	Wavelength []float64
	S0         []float64
	S1         []float64
	S2         []float64
	S3         []float64
}

// New returns an unpolarised spectrum.
func New(wavelength, s0 []float64) (*Spectrum, error) {
	n := len(wavelength)
	s := &Spectrum{
		Wavelength: append([]float64(nil), wavelength...),
		S0:         append([]float64(nil), s0...),
		S1:         make([]float64, n),
		S2:         make([]float64, n),
		S3:         make([]float64, n),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that every Stokes array matches the wavelength grid and
// that the grid has at least two strictly increasing positive samples.
func (s *Spectrum) Validate() error {
	n := len(s.Wavelength)
	if n < 2 {
		return fmt.Errorf("%w: %d samples", ErrInvalidSpectrum, n)
	}
	for name, v := range map[string][]float64{"s0": s.S0, "s1": s.S1, "s2": s.S2, "s3": s.S3} {
		if len(v) != n {
			return fmt.Errorf("%w: %s has %d samples, wavelength has %d", ErrInvalidSpectrum, name, len(v), n)
		}
	}
	if !(s.Wavelength[0] > 0) || !numeric.IsIncreasing(s.Wavelength) {
		return fmt.Errorf("%w: wavelengths must be positive and strictly increasing", ErrInvalidSpectrum)
	}
	return nil
}

// Flux returns the total flux, the integral of S0 over wavelength.
func (s *Spectrum) Flux() float64 {
	return numeric.Trapz(s.Wavelength, s.S0)
}

// Gaussian returns a spectral line centred on wl0 with standard deviation
// sigma (metres) and total flux flux, sampled on bins points spanning
// ±nsigma standard deviations. The line is Gaussian in frequency, so its
// wavelength profile carries a 1/λ² Jacobian.
func Gaussian(wl0, sigma, flux float64, bins int, nsigma float64) (*Spectrum, error) {
	if !(wl0 > 0) || !(sigma > 0) || bins < 2 || !(nsigma > 0) || nsigma*sigma >= wl0 {
		return nil, fmt.Errorf("%w: gaussian wl0=%g sigma=%g bins=%d nsigma=%g",
			ErrInvalidSpectrum, wl0, sigma, bins, nsigma)
	}
	rho := sigma / wl0
	wl := numeric.Linspace(wl0-nsigma*sigma, wl0+nsigma*sigma, bins)
	s0 := make([]float64, bins)
	for i, w := range wl {
		x := (wl0/w - 1) / rho
		s0[i] = flux * wl0 / (w * w * math.Sqrt(2*math.Pi) * rho) * math.Exp(-0.5*x*x)
	}
	return New(wl, s0)
}
