// Package coherence computes the complex coherence of a source spectrum
// seen through an interferometric delay.
//
// The delay is given at a reference wavelength and scales as 1/λ across
// the spectrum. The modulus of the coherence is the fringe contrast scaled
// by the flux; its argument is the fringe phase.
package coherence

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/AnkushinDaniil/cisim/numeric"
)

var (
	ErrLengthMismatch  = errors.New("wavelength and flux lengths differ")
	ErrWavelengthOrder = errors.New("wavelengths are not strictly increasing")
)

// Calculate integrates flux(λ)·exp(i·delay·λref/λ) over wavelength with the
// trapezoidal rule. delay is in radians at referenceWavelength. The
// wavelength grid must be strictly increasing.
func Calculate(wavelength, flux []float64, delay, referenceWavelength float64) (complex128, error) {
	if len(wavelength) != len(flux) {
		return 0, fmt.Errorf("%w: %d wavelengths, %d flux samples", ErrLengthMismatch, len(wavelength), len(flux))
	}
	if !numeric.IsIncreasing(wavelength) {
		return 0, fmt.Errorf("%w: %d samples", ErrWavelengthOrder, len(wavelength))
	}
	integrand := make([]complex128, len(wavelength))
	for i, wl := range wavelength {
		integrand[i] = complex(flux[i], 0) * cmplx.Rect(1, delay*referenceWavelength/wl)
	}
	return numeric.TrapzComplex(wavelength, integrand), nil
}

// Gaussian returns the closed-form coherence of a Gaussian line centred on
// wl0 with standard deviation sigma, of the shape produced by
// spectrum.Gaussian.
func Gaussian(wl0, sigma, flux, delay, referenceWavelength float64) complex128 {
	rho := sigma / wl0
	k := delay * referenceWavelength / wl0
	return cmplx.Rect(flux*math.Exp(-0.5*(k*rho)*(k*rho)), k)
}

// Contrast returns the fringe contrast of coherence c for a source of the
// given total flux.
func Contrast(c complex128, flux float64) float64 {
	return cmplx.Abs(c) / flux
}

// Phase returns the fringe phase of c wrapped into (-π, π].
func Phase(c complex128) float64 {
	return numeric.Wrap(cmplx.Phase(c))
}
