// Package component models the optical elements of a coherence imaging
// interferometer.
//
// A Component is a closed variant: its Kind selects which fields apply and
// how the transmittances and phase delay are computed. Every kind derives
// its Mueller matrix from those three quantities through General, so a new
// kind only has to define Transmittances and Delay.
package component

import (
	"math"

	"github.com/AnkushinDaniil/cisim/material"
)

// Kind identifies the type of an optical component.
type Kind uint8

const (
	LinearPolariser Kind = iota
	IdealWaveplate
	QuarterWaveplate
	HalfWaveplate
	UniaxialCrystal
)

func (k Kind) String() string {
	switch k {
	case LinearPolariser:
		return "LinearPolariser"
	case IdealWaveplate:
		return "IdealWaveplate"
	case QuarterWaveplate:
		return "QuarterWaveplate"
	case HalfWaveplate:
		return "HalfWaveplate"
	case UniaxialCrystal:
		return "UniaxialCrystal"
	default:
		return "Unknown"
	}
}

// Component is a single optical element. Angles are in radians, lengths
// in metres.
type Component struct {
	Kind Kind
	// Orientation is the azimuth of the optic (or transmission) axis.
	Orientation float64
	// TiltX and TiltY offset the ray origin at the component plane.
	TiltX, TiltY float64

	// T1 and T2 are the polariser principal transmittances.
	T1, T2 float64

	// Retardance is the constant delay of an ideal waveplate.
	Retardance float64

	Thickness float64
	CutAngle  float64
	Material  material.Properties
}

// NewPolariser returns an ideal linear polariser.
func NewPolariser(orientation float64) Component {
	return NewPartialPolariser(orientation, 1, 0)
}

// NewPartialPolariser returns a linear polariser with principal
// transmittances t1 and t2.
func NewPartialPolariser(orientation, t1, t2 float64) Component {
	return Component{Kind: LinearPolariser, Orientation: orientation, T1: t1, T2: t2}
}

// NewWaveplate returns an ideal waveplate imparting a constant delay
// regardless of wavelength or ray path.
func NewWaveplate(orientation, delay float64) Component {
	return Component{Kind: IdealWaveplate, Orientation: orientation, Retardance: delay}
}

func NewQuarterWaveplate(orientation float64) Component {
	return Component{Kind: QuarterWaveplate, Orientation: orientation, Retardance: math.Pi / 2}
}

func NewHalfWaveplate(orientation float64) Component {
	return Component{Kind: HalfWaveplate, Orientation: orientation, Retardance: math.Pi}
}

// NewUniaxialCrystal returns a plane-parallel uniaxial crystal plate.
// A cutAngle of zero puts the optic axis in the plane of the plate; at π/2
// it lies along the plate normal.
func NewUniaxialCrystal(orientation, thickness, cutAngle float64, m material.Properties) Component {
	return Component{
		Kind:        UniaxialCrystal,
		Orientation: orientation,
		Thickness:   thickness,
		CutAngle:    cutAngle,
		Material:    m,
	}
}

// WithTilt returns a copy of c tilted by (x, y) radians.
func (c Component) WithTilt(x, y float64) Component {
	c.TiltX, c.TiltY = x, y
	return c
}

// IsPolariser reports whether c is a linear polariser.
func (c Component) IsPolariser() bool {
	return c.Kind == LinearPolariser
}

// IsIdealPolariser reports whether c is a perfect linear polariser.
func (c Component) IsIdealPolariser() bool {
	return c.Kind == LinearPolariser && c.T1 == 1 && c.T2 == 0
}

// IsRetarder reports whether c is a non-diattenuating retarder.
func (c Component) IsRetarder() bool {
	return c.Kind != LinearPolariser
}

// IsQuarterWaveplate reports whether c is an ideal quarter waveplate.
func (c Component) IsQuarterWaveplate() bool {
	return c.Kind == QuarterWaveplate
}

// Transmittances returns the principal transmittances of c.
func (c Component) Transmittances(wavelength, incAngle, azimAngle float64) (t1, t2 float64) {
	if c.Kind == LinearPolariser {
		return c.T1, c.T2
	}
	return 1, 1
}

// Delay returns the phase delay (radians) imparted by c on a ray of the
// given wavelength (metres), incidence and azimuthal angles (radians).
// A crystal whose material has unsupported dispersion coefficients yields
// NaN; instrument.New rejects such crystals.
func (c Component) Delay(wavelength, incAngle, azimAngle float64) float64 {
	switch c.Kind {
	case LinearPolariser:
		return 0
	case UniaxialCrystal:
		ne, no, err := c.Material.RefractiveIndices(wavelength)
		if err != nil {
			return math.NaN()
		}
		return UniaxialDelay(wavelength, incAngle, azimAngle, ne, no, c.CutAngle, c.Thickness)
	default:
		return c.Retardance
	}
}

// MuellerMatrix returns the Mueller matrix of c for a ray of the given
// wavelength, incidence and azimuthal angles.
func (c Component) MuellerMatrix(wavelength, incAngle, azimAngle float64) Matrix {
	if c.IsIdealPolariser() {
		return IdealPolariser(c.Orientation)
	}
	t1, t2 := c.Transmittances(wavelength, incAngle, azimAngle)
	return General(t1, t2, c.Delay(wavelength, incAngle, azimAngle), c.Orientation)
}

// UniaxialDelay returns the delay of a plane-parallel uniaxial crystal plate
// of the given thickness and cut angle for a ray of the given wavelength,
// incidence and azimuthal angles. ne and no are the refractive indices at
// that wavelength.
//
// The result is NaN when the incidence angle lies outside the valid cone
// for the material; callers keep incidence angles in range.
func UniaxialDelay(wavelength, incAngle, azimAngle, ne, no, cutAngle, thickness float64) float64 {
	sInc, sCut, cCut := math.Sin(incAngle), math.Sin(cutAngle), math.Cos(cutAngle)
	sAzim, cAzim := math.Sincos(azimAngle)
	sInc2 := sInc * sInc
	sCut2, cCut2 := sCut*sCut, cCut*cCut
	ne2, no2 := ne*ne, no*no
	p := ne2*sCut2 + no2*cCut2

	term1 := math.Sqrt(no2 - sInc2)
	term2 := (no2 - ne2) * (sCut * cCut * cAzim * sInc) / p
	term3 := -no * math.Sqrt(ne2*p-(ne2-(ne2-no2)*cCut2*sAzim*sAzim)*sInc2) / p

	return 2 * math.Pi * (thickness / wavelength) * (term1 + term2 + term3)
}

// Align90 reports whether a and b are parallel or crossed.
// The comparison is exact.
func Align90(a, b Component) bool {
	return math.Abs(math.Mod(a.Orientation-b.Orientation, math.Pi/2)) == 0
}

// Align45 reports whether a and b are oriented at ±45° (mod 90°).
// The comparison is exact.
func Align45(a, b Component) bool {
	return math.Abs(math.Mod(a.Orientation-b.Orientation, math.Pi/2)) == math.Pi/4
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
