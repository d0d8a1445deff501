// Package instrument assembles lenses, a sensor and an ordered stack of
// optical components into a coherence imaging instrument, and renders the
// image it forms.
//
// At construction the component stack is classified (see Classify). Stacks
// matching a recognised layout are rendered with a closed-form intensity
// model that agrees with the general Mueller calculation; everything else
// goes through the full Mueller-matrix product for every pixel.
package instrument

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/cisim/component"
	"github.com/AnkushinDaniil/cisim/sensor"
)

var (
	ErrInvalidConfig          = errors.New("invalid instrument configuration")
	ErrComponentNotUnderstood = errors.New("interferometer component was not understood")
	ErrImageSize              = errors.New("image size does not match sensor")
	ErrSpectrum               = errors.New("invalid spectrum")
)

// Lenses holds the focal lengths (metres) of the three stages of the
// optical train. Lens 3 images the interferometer onto the sensor.
type Lenses struct {
	Lens1FocalLength float64
	Lens2FocalLength float64
	Lens3FocalLength float64
}

// Option configures an Instrument.
type Option func(*Instrument)

// WithForceMueller disables classification: every capture uses the
// general Mueller calculation.
func WithForceMueller() Option {
	return func(in *Instrument) {
		in.forceMueller = true
	}
}

// WithWorkers bounds the number of sensor rows rendered concurrently.
func WithWorkers(n int) Option {
	return func(in *Instrument) {
		if n > 0 {
			in.workers = n
		}
	}
}

// Instrument is immutable after New and safe for concurrent captures.
type Instrument struct {
	Lenses
	Sensor *sensor.Sensor

	// Components in ray-traversal order. The order fixes the order of the
	// Mueller-matrix product.
	Components []component.Component

	typ          Type
	fast         fastPath
	forceMueller bool
	workers      int
}

// New returns an instrument and classifies its component stack.
func New(lenses Lenses, s *sensor.Sensor, components []component.Component, opts ...Option) (*Instrument, error) {
	if !(lenses.Lens3FocalLength > 0) {
		return nil, fmt.Errorf("%w: lens 3 focal length %g", ErrInvalidConfig, lenses.Lens3FocalLength)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: no sensor", ErrInvalidConfig)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%w: no interferometer components", ErrInvalidConfig)
	}
	for i, c := range components {
		if c.Kind != component.UniaxialCrystal {
			continue
		}
		if err := c.Material.Validate(); err != nil {
			return nil, fmt.Errorf("%w: component %d: %w", ErrInvalidConfig, i, err)
		}
	}
	in := &Instrument{
		Lenses:     lenses,
		Sensor:     s,
		Components: append([]component.Component(nil), components...),
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(in)
	}

	in.typ = Mueller
	if !in.forceMueller {
		in.typ = Classify(in.Components, s.Type)
	}
	in.fast = newFastPath(in.typ, in.Components)

	log.WithFields(log.Fields{
		"type":       in.typ,
		"components": len(in.Components),
		"sensor":     s.Type,
		"forced":     in.forceMueller,
	}).Debug("Instrument classified")
	return in, nil
}

// Type returns the render model selected for the instrument.
func (in *Instrument) Type() Type {
	return in.typ
}

// rayOrigin is where the chief ray of a tilted component meets the sensor.
func (in *Instrument) rayOrigin(c component.Component) (x0, y0 float64) {
	f3 := in.Lens3FocalLength
	return f3 * math.Tan(c.TiltX), f3 * math.Tan(c.TiltY)
}

// IncidenceAngle returns the incidence angle (radians) at component c of
// the ray reaching sensor position x, y (metres).
func (in *Instrument) IncidenceAngle(x, y float64, c component.Component) float64 {
	x0, y0 := in.rayOrigin(c)
	return math.Atan2(math.Sqrt((x-x0)*(x-x0)+(y-y0)*(y-y0)), in.Lens3FocalLength)
}

// AzimuthAngle returns the azimuthal angle (radians) at component c of the
// ray reaching sensor position x, y, measured from the component's axis.
func (in *Instrument) AzimuthAngle(x, y float64, c component.Component) float64 {
	x0, y0 := in.rayOrigin(c)
	return math.Atan2(y-y0, x-x0) + math.Pi - c.Orientation
}

// TotalMuellerMatrix returns the Mueller matrix of the whole instrument for
// the ray of the given wavelength reaching sensor position x, y. The first
// component is the leftmost factor. A polarisation sensor contributes its
// micro-polariser as the last factor.
func (in *Instrument) TotalMuellerMatrix(x, y, wavelength float64) component.Matrix {
	m := in.componentsMatrix(x, y, wavelength)
	if in.Sensor.Type.Polarised() {
		m = m.Mul(in.Sensor.MuellerMatrix(x, y))
	}
	return m
}

// muellerAt is TotalMuellerMatrix at the centre of pixel ix, iy.
func (in *Instrument) muellerAt(ix, iy int, wavelength float64) component.Matrix {
	x, y := in.Sensor.CentresX[ix], in.Sensor.CentresY[iy]
	m := in.componentsMatrix(x, y, wavelength)
	if in.Sensor.Type.Polarised() {
		m = m.Mul(in.Sensor.MuellerMatrixAt(ix, iy))
	}
	return m
}

func (in *Instrument) componentsMatrix(x, y, wavelength float64) component.Matrix {
	var m component.Matrix
	for i, c := range in.Components {
		mc := c.MuellerMatrix(wavelength, in.IncidenceAngle(x, y, c), in.AzimuthAngle(x, y, c))
		if i == 0 {
			m = mc
			continue
		}
		m = m.Mul(mc)
	}
	return m
}

// Delay returns the net delay (radians) of the interior components for the
// ray of the given wavelength reaching x, y: the sum of their delays, each
// signed by its ±45° orientation relative to the first component. It is the
// delay used by the single-delay render models.
func (in *Instrument) Delay(x, y, wavelength float64) float64 {
	if len(in.Components) < 3 {
		return 0
	}
	return in.fast.netDelay(in.rays(x, y, nil), in.interior(), wavelength)
}

type ray struct {
	inc, azim float64
}

func (in *Instrument) interior() []component.Component {
	return in.Components[1 : len(in.Components)-1]
}

// rays returns the ray angles at each interior component.
func (in *Instrument) rays(x, y float64, dst []ray) []ray {
	dst = dst[:0]
	for _, c := range in.interior() {
		dst = append(dst, ray{in.IncidenceAngle(x, y, c), in.AzimuthAngle(x, y, c)})
	}
	return dst
}
