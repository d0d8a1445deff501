package instrument

import (
	"math"

	"github.com/AnkushinDaniil/cisim/component"
	"github.com/AnkushinDaniil/cisim/sensor"
)

// Type is the render model of an instrument.
type Type uint8

const (
	// Mueller renders every pixel through the full Mueller-matrix product.
	Mueller Type = iota
	// SingleDelayLinear is a monochrome sensor behind ideal polariser,
	// ±45° retarders, ideal polariser, with the polarisers parallel or
	// crossed.
	SingleDelayLinear
	// SingleDelayPixelated is a polarisation sensor behind ideal polariser,
	// ±45° retarders, quarter waveplate, with the polariser and waveplate
	// parallel or crossed.
	SingleDelayPixelated
)

func (t Type) String() string {
	switch t {
	case Mueller:
		return "mueller"
	case SingleDelayLinear:
		return "single_delay_linear"
	case SingleDelayPixelated:
		return "single_delay_pixelated"
	default:
		return "unknown"
	}
}

// Classify returns the render model for a component stack in front of a
// sensor of type st. Orientation tests use exact floating-point equality.
func Classify(components []component.Component, st sensor.Type) Type {
	switch {
	case isSingleDelayLinear(components, st):
		return SingleDelayLinear
	case isSingleDelayPixelated(components, st):
		return SingleDelayPixelated
	default:
		return Mueller
	}
}

func isSingleDelayLinear(cs []component.Component, st sensor.Type) bool {
	n := len(cs)
	if n < 3 || st != sensor.Monochrome {
		return false
	}
	first, last := cs[0], cs[n-1]
	if !first.IsIdealPolariser() || !last.IsIdealPolariser() || !component.Align90(first, last) {
		return false
	}
	return interiorAligned(cs[1:n-1], first)
}

func isSingleDelayPixelated(cs []component.Component, st sensor.Type) bool {
	n := len(cs)
	if n < 3 || st != sensor.MonochromePolarised {
		return false
	}
	first, last := cs[0], cs[n-1]
	if !first.IsIdealPolariser() || !last.IsQuarterWaveplate() || !component.Align90(first, last) {
		return false
	}
	// the micro-polariser tile is fixed to the sensor frame
	if !component.Align90(first, component.NewPolariser(0)) {
		return false
	}
	return interiorAligned(cs[1:n-1], first)
}

func interiorAligned(interior []component.Component, first component.Component) bool {
	for _, c := range interior {
		if !c.IsRetarder() || !component.Align45(c, first) {
			return false
		}
	}
	return true
}

// fastPath holds the orientation signs of the closed-form render models.
//
//	linear:    I = flux/4 · (1 + contrast·cos δ)
//	pixelated: I = flux/4 · (1 + contrast·cos(phaseSign·δ + mask))
//
// where δ is the net delay, the sum over interior retarders of
// sign(sin 2(θᵢ−θ₁))·δᵢ.
type fastPath struct {
	signs     []float64
	contrast  float64
	phaseSign float64
}

func newFastPath(typ Type, cs []component.Component) fastPath {
	n := len(cs)
	if n < 3 {
		return fastPath{}
	}
	first, last := cs[0], cs[n-1]
	fp := fastPath{signs: make([]float64, 0, n-2)}
	for _, c := range cs[1 : n-1] {
		fp.signs = append(fp.signs, sign(math.Sin(2*(c.Orientation-first.Orientation))))
	}
	switch typ {
	case SingleDelayLinear:
		fp.contrast = sign(math.Cos(2 * (last.Orientation - first.Orientation)))
	case SingleDelayPixelated:
		fp.contrast = sign(math.Cos(2 * first.Orientation))
		fp.phaseSign = -sign(math.Cos(2 * (last.Orientation - first.Orientation)))
	}
	return fp
}

func (fp fastPath) netDelay(rays []ray, interior []component.Component, wavelength float64) float64 {
	var delay float64
	for i, r := range rays {
		delay += fp.signs[i] * interior[i].Delay(wavelength, r.inc, r.azim)
	}
	return delay
}

func sign(v float64) float64 {
	return math.Copysign(1, v)
}
