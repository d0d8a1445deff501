// Package material provides refractive-index data for the birefringent
// crystals used in the interferometer.
//
// Dispersion is described by Sellmeier coefficients for the extraordinary
// and ordinary axes. The number of coefficients selects the form of the
// equation, see RefractiveIndices.
package material

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrMaterialNotFound      = errors.New("material not found")
	ErrUnsupportedDispersion = errors.New("unsupported dispersion form")
)

// kappaStep is the wavelength step of the birefringence derivative, metres.
const kappaStep = 1e-10

// Properties holds the dispersion coefficients of one material.
type Properties struct {
	Name          string
	Extraordinary []float64
	Ordinary      []float64
}

// NewProperties validates the coefficient sets and returns the material.
func NewProperties(name string, extraordinary, ordinary []float64) (Properties, error) {
	p := Properties{
		Name:          name,
		Extraordinary: append([]float64(nil), extraordinary...),
		Ordinary:      append([]float64(nil), ordinary...),
	}
	if err := p.Validate(); err != nil {
		return Properties{}, err
	}
	return p, nil
}

// Validate checks that both coefficient sets have the same supported length.
func (p Properties) Validate() error {
	ne, no := len(p.Extraordinary), len(p.Ordinary)
	if ne != no {
		return fmt.Errorf("%w: %q has %d extraordinary and %d ordinary coefficients",
			ErrUnsupportedDispersion, p.Name, ne, no)
	}
	switch ne {
	case 4, 5, 6:
		return nil
	default:
		return fmt.Errorf("%w: %q has %d coefficients", ErrUnsupportedDispersion, p.Name, ne)
	}
}

// RefractiveIndices returns the extraordinary and ordinary refractive
// indices at wavelength (metres).
func (p Properties) RefractiveIndices(wavelength float64) (ne, no float64, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, err
	}
	wlUm2 := math.Pow(wavelength*1e6, 2)
	return sellmeier(wlUm2, p.Extraordinary), sellmeier(wlUm2, p.Ordinary), nil
}

// Kappa returns the dispersion power of the material birefringence at
// wavelength: 1 - (λ/B)·dB/dλ with B = ne - no.
func (p Properties) Kappa(wavelength float64) (float64, error) {
	biref := func(wl float64) (float64, error) {
		ne, no, err := p.RefractiveIndices(wl)
		return ne - no, err
	}
	b, err := biref(wavelength)
	if err != nil {
		return 0, err
	}
	bp, _ := biref(wavelength + kappaStep)
	bm, _ := biref(wavelength - kappaStep)
	deriv := (bp - bm) / (2 * kappaStep)
	return 1 - (wavelength/b)*deriv, nil
}

func sellmeier(wlUm2 float64, c []float64) float64 {
	switch len(c) {
	case 4:
		return math.Sqrt(c[0] + c[1]/(wlUm2+c[2]) + c[3]*wlUm2)
	case 5:
		return math.Sqrt(c[0] + c[1]/(wlUm2+c[2]) + c[3]/(wlUm2+c[4]))
	case 6:
		return math.Sqrt(c[0]*wlUm2/(wlUm2-c[1]) + c[2]*wlUm2/(wlUm2-c[3]) + c[4]*wlUm2/(wlUm2-c[5]) + 1)
	default:
		return math.NaN()
	}
}
