// Package sensor describes the camera sensor: its pixel grid and, for
// polarisation cameras, the pixelated micro-polariser mask.
package sensor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/AnkushinDaniil/cisim/component"
)

var ErrInvalidSensor = errors.New("invalid sensor")

// Type is the sensor type tag.
type Type string

const (
	Monochrome          Type = "monochrome"
	MonochromePolarised Type = "monochrome_polarised"
)

// ParseType parses a sensor type tag. An empty tag means Monochrome.
func ParseType(text string) (Type, error) {
	switch Type(text) {
	case "", Monochrome:
		return Monochrome, nil
	case MonochromePolarised:
		return MonochromePolarised, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidSensor, text)
	}
}

// Polarised reports whether the sensor carries a micro-polariser mask.
func (t Type) Polarised() bool {
	return t == MonochromePolarised
}

// Config holds the sensor parameters. Lengths are in metres.
type Config struct {
	FormatX, FormatY  int
	PixelSize         float64
	BitDepth          int
	QuantumEfficiency float64
	EPerCount         float64
	Noise             float64
	Type              Type
}

// DefaultConfig is a 1000×1000 monochrome sensor with 3.45 µm pixels.
func DefaultConfig() Config {
	return Config{
		FormatX:           1000,
		FormatY:           1000,
		PixelSize:         3.45e-6,
		BitDepth:          8,
		QuantumEfficiency: 0.5,
		EPerCount:         1,
		Noise:             2,
		Type:              Monochrome,
	}
}

// Sensor is an immutable pixel grid centred on the optical axis.
type Sensor struct {
	Config
	HalfWidth  float64
	HalfHeight float64

	CentresX     []float64
	CentresY     []float64
	LowerBoundsX []float64
	LowerBoundsY []float64
	maskMatrices [2][2]component.Matrix
}

// New validates cfg and precomputes the pixel coordinates.
func New(cfg Config) (*Sensor, error) {
	if cfg.FormatX <= 0 || cfg.FormatY <= 0 {
		return nil, fmt.Errorf("%w: format %dx%d", ErrInvalidSensor, cfg.FormatX, cfg.FormatY)
	}
	if !(cfg.PixelSize > 0) {
		return nil, fmt.Errorf("%w: pixel size %g", ErrInvalidSensor, cfg.PixelSize)
	}
	if cfg.Type == "" {
		cfg.Type = Monochrome
	}
	if _, err := ParseType(string(cfg.Type)); err != nil {
		return nil, err
	}
	s := &Sensor{
		Config:     cfg,
		HalfWidth:  0.5 * cfg.PixelSize * float64(cfg.FormatX),
		HalfHeight: 0.5 * cfg.PixelSize * float64(cfg.FormatY),
	}
	s.CentresX = axis(cfg.FormatX, cfg.PixelSize, s.HalfWidth, 0.5)
	s.CentresY = axis(cfg.FormatY, cfg.PixelSize, s.HalfHeight, 0.5)
	s.LowerBoundsX = axis(cfg.FormatX, cfg.PixelSize, s.HalfWidth, 0)
	s.LowerBoundsY = axis(cfg.FormatY, cfg.PixelSize, s.HalfHeight, 0)
	for ix := 0; ix < 2; ix++ {
		for iy := 0; iy < 2; iy++ {
			s.maskMatrices[ix][iy] = component.IdealPolariser(MaskOrientation(ix, iy))
		}
	}
	return s, nil
}

func axis(n int, pitch, half, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = (float64(i)+offset)*pitch - half
	}
	return out
}

// Pixels returns the number of pixels.
func (s *Sensor) Pixels() int {
	return s.FormatX * s.FormatY
}

// MaxCount returns the largest count representable at the sensor bit depth.
func (s *Sensor) MaxCount() uint32 {
	if s.BitDepth <= 0 || s.BitDepth >= 32 {
		return math.MaxUint32
	}
	return 1<<uint(s.BitDepth) - 1
}

// PixelIndexX returns the x index of the pixel containing position x
// (metres), or -1 when x lies at or below the first lower bound.
func (s *Sensor) PixelIndexX(x float64) int {
	return sort.SearchFloat64s(s.LowerBoundsX, x) - 1
}

// PixelIndexY returns the y index of the pixel containing position y.
func (s *Sensor) PixelIndexY(y float64) int {
	return sort.SearchFloat64s(s.LowerBoundsY, y) - 1
}

// MaskOrientation returns the micro-polariser orientation (radians) of the
// pixel with indices ix, iy. The mask repeats in 2×2 tiles:
//
//	(even, even) 0°    (odd, even) 45°
//	(even, odd) 135°   (odd, odd)  90°
func MaskOrientation(ix, iy int) float64 {
	switch {
	case ix%2 == 0 && iy%2 == 0:
		return 0
	case ix%2 == 0:
		return component.Radians(135)
	case iy%2 == 0:
		return component.Radians(45)
	default:
		return component.Radians(90)
	}
}

// MaskPhase returns the interferometric phase offset introduced by the
// micro-polariser of pixel ix, iy.
func MaskPhase(ix, iy int) float64 {
	switch {
	case ix%2 == 0 && iy%2 == 0:
		return 0
	case ix%2 == 0:
		return 3 * math.Pi / 2
	case iy%2 == 0:
		return math.Pi / 2
	default:
		return math.Pi
	}
}

// PhaseMask returns the pixelated phase offset at sensor position x, y.
func (s *Sensor) PhaseMask(x, y float64) float64 {
	return MaskPhase(s.PixelIndexX(x), s.PixelIndexY(y))
}

// MuellerMatrix returns the micro-polariser Mueller matrix at sensor
// position x, y.
func (s *Sensor) MuellerMatrix(x, y float64) component.Matrix {
	return s.MuellerMatrixAt(s.PixelIndexX(x), s.PixelIndexY(y))
}

// MuellerMatrixAt returns the micro-polariser Mueller matrix of pixel ix, iy.
func (s *Sensor) MuellerMatrixAt(ix, iy int) component.Matrix {
	return s.maskMatrices[parity(ix)][parity(iy)]
}

func parity(i int) int {
	return i & 1
}
