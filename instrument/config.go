package instrument

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AnkushinDaniil/cisim/component"
	"github.com/AnkushinDaniil/cisim/material"
	"github.com/AnkushinDaniil/cisim/sensor"
)

// Component kinds accepted in the interferometer list.
const (
	kindLinearPolariser  = "LinearPolariser"
	kindQuarterWaveplate = "QuarterWaveplate"
	kindHalfWaveplate    = "HalfWaveplate"
	kindIdealWaveplate   = "IdealWaveplate"
	kindUniaxialCrystal  = "UniaxialCrystal"
)

type document struct {
	Lens1FocalLength float64                `yaml:"lens_1_focal_length"`
	Lens2FocalLength float64                `yaml:"lens_2_focal_length"`
	Lens3FocalLength float64                `yaml:"lens_3_focal_length"`
	Camera           cameraDoc              `yaml:"camera"`
	Interferometer   []map[string]yaml.Node `yaml:"interferometer"`
}

type cameraDoc struct {
	SensorFormat []int   `yaml:"sensor_format"`
	PixelSize    float64 `yaml:"pixel_size"`
	BitDepth     int     `yaml:"bit_depth"`
	QE           float64 `yaml:"qe"`
	EPerCount    float64 `yaml:"epercount"`
	CamNoise     float64 `yaml:"cam_noise"`
	Type         string  `yaml:"type"`
}

type polariserDoc struct {
	Orientation float64 `yaml:"orientation"`
	TX1         float64 `yaml:"tx1"`
	TX2         float64 `yaml:"tx2"`
}

type waveplateDoc struct {
	Orientation float64 `yaml:"orientation"`
	Delay       float64 `yaml:"delay"`
	TiltX       float64 `yaml:"tilt_x"`
	TiltY       float64 `yaml:"tilt_y"`
}

type crystalDoc struct {
	Orientation    *float64           `yaml:"orientation"`
	Thickness      *float64           `yaml:"thickness"`
	CutAngle       *float64           `yaml:"cut_angle"`
	Material       string             `yaml:"material"`
	TiltX          float64            `yaml:"tilt_x"`
	TiltY          float64            `yaml:"tilt_y"`
	SellmeierCoefs map[string]float64 `yaml:"sellmeier_coefs"`
}

// LoadFile reads an instrument description from a YAML file.
func LoadFile(path string, materials *material.Table, opts ...Option) (*Instrument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open instrument file: %w", err)
	}
	defer f.Close()
	return Load(f, materials, opts...)
}

// Load reads an instrument description from YAML. Crystal materials are
// looked up in materials unless the crystal carries inline
// sellmeier_coefs. Orientations and cut angles are in degrees; tilts and
// waveplate delays are in radians.
func Load(r io.Reader, materials *material.Table, opts ...Option) (*Instrument, error) {
	cam := sensor.DefaultConfig()
	doc := document{
		Camera: cameraDoc{
			SensorFormat: []int{cam.FormatX, cam.FormatY},
			PixelSize:    cam.PixelSize,
			BitDepth:     cam.BitDepth,
			QE:           cam.QuantumEfficiency,
			EPerCount:    cam.EPerCount,
			CamNoise:     cam.Noise,
		},
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("failed to decode instrument: %w", err)
	}

	s, err := doc.Camera.sensor()
	if err != nil {
		return nil, err
	}

	components := make([]component.Component, 0, len(doc.Interferometer))
	for i, item := range doc.Interferometer {
		c, err := parseComponent(item, materials)
		if err != nil {
			return nil, fmt.Errorf("interferometer[%d]: %w", i, err)
		}
		components = append(components, c)
	}

	return New(Lenses{
		Lens1FocalLength: doc.Lens1FocalLength,
		Lens2FocalLength: doc.Lens2FocalLength,
		Lens3FocalLength: doc.Lens3FocalLength,
	}, s, components, opts...)
}

func (c cameraDoc) sensor() (*sensor.Sensor, error) {
	if len(c.SensorFormat) != 2 {
		return nil, fmt.Errorf("%w: sensor_format needs two values, got %d", ErrInvalidConfig, len(c.SensorFormat))
	}
	typ, err := sensor.ParseType(c.Type)
	if err != nil {
		return nil, err
	}
	return sensor.New(sensor.Config{
		FormatX:           c.SensorFormat[0],
		FormatY:           c.SensorFormat[1],
		PixelSize:         c.PixelSize,
		BitDepth:          c.BitDepth,
		QuantumEfficiency: c.QE,
		EPerCount:         c.EPerCount,
		Noise:             c.CamNoise,
		Type:              typ,
	})
}

func parseComponent(item map[string]yaml.Node, materials *material.Table) (component.Component, error) {
	if len(item) != 1 {
		return component.Component{}, fmt.Errorf("%w: expected one kind per entry, got %d", ErrComponentNotUnderstood, len(item))
	}
	var (
		kind string
		node yaml.Node
	)
	for k, v := range item {
		kind, node = k, v
	}

	switch kind {
	case kindLinearPolariser:
		p := polariserDoc{TX1: 1}
		if err := node.Decode(&p); err != nil {
			return component.Component{}, fmt.Errorf("%s: %w", kind, err)
		}
		return component.NewPartialPolariser(component.Radians(p.Orientation), p.TX1, p.TX2), nil
	case kindQuarterWaveplate, kindHalfWaveplate, kindIdealWaveplate:
		var w waveplateDoc
		if err := node.Decode(&w); err != nil {
			return component.Component{}, fmt.Errorf("%s: %w", kind, err)
		}
		orientation := component.Radians(w.Orientation)
		var c component.Component
		switch kind {
		case kindQuarterWaveplate:
			c = component.NewQuarterWaveplate(orientation)
		case kindHalfWaveplate:
			c = component.NewHalfWaveplate(orientation)
		default:
			c = component.NewWaveplate(orientation, w.Delay)
		}
		return c.WithTilt(w.TiltX, w.TiltY), nil
	case kindUniaxialCrystal:
		return parseCrystal(node, materials)
	default:
		return component.Component{}, fmt.Errorf("%w: %q", ErrComponentNotUnderstood, kind)
	}
}

func parseCrystal(node yaml.Node, materials *material.Table) (component.Component, error) {
	var c crystalDoc
	if err := node.Decode(&c); err != nil {
		return component.Component{}, fmt.Errorf("%s: %w", kindUniaxialCrystal, err)
	}
	switch {
	case c.Orientation == nil:
		return component.Component{}, fmt.Errorf("%w: %s without orientation", ErrInvalidConfig, kindUniaxialCrystal)
	case c.Thickness == nil:
		return component.Component{}, fmt.Errorf("%w: %s without thickness", ErrInvalidConfig, kindUniaxialCrystal)
	case c.CutAngle == nil:
		return component.Component{}, fmt.Errorf("%w: %s without cut_angle", ErrInvalidConfig, kindUniaxialCrystal)
	}

	var (
		props material.Properties
		err   error
	)
	switch {
	case c.SellmeierCoefs != nil:
		name := c.Material
		if name == "" {
			name = "custom"
		}
		props, err = material.FromCoefficients(name, c.SellmeierCoefs)
	case materials == nil:
		err = fmt.Errorf("%w: %q (no material table)", material.ErrMaterialNotFound, c.Material)
	default:
		props, err = materials.Properties(c.Material)
	}
	if err != nil {
		return component.Component{}, fmt.Errorf("%s: %w", kindUniaxialCrystal, err)
	}

	return component.NewUniaxialCrystal(
		component.Radians(*c.Orientation),
		*c.Thickness,
		component.Radians(*c.CutAngle),
		props,
	).WithTilt(c.TiltX, c.TiltY), nil
}
