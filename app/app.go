package app

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/cisim/chart"
	"github.com/AnkushinDaniil/cisim/entity"
	"github.com/AnkushinDaniil/cisim/entity/format"
	"github.com/AnkushinDaniil/cisim/entity/mode"
	"github.com/AnkushinDaniil/cisim/entity/parameters"
	"github.com/AnkushinDaniil/cisim/imageio"
	"github.com/AnkushinDaniil/cisim/instrument"
	"github.com/AnkushinDaniil/cisim/material"
	"github.com/AnkushinDaniil/cisim/spectrum"
)

type App struct {
	Instrument string
	Materials  string
	Output     string
	Params     *parameters.Parameters
}

func New(instrumentPath, materialsPath, output string, params *parameters.Parameters) *App {
	return &App{
		Instrument: instrumentPath,
		Materials:  materialsPath,
		Output:     output,
		Params:     params,
	}
}

func (a *App) Run(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("App finished")
	}()
	log.WithFields(log.Fields{
		"instrument": a.Instrument,
		"materials":  a.Materials,
		"output":     a.Output,
		"mode":       a.Params.Mode,
		"format":     a.Params.Format,
		"wavelength": a.Params.Wavelength,
		"flux":       a.Params.Flux,
	}).Debug("App started")

	if err := a.Params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	in, err := a.LoadInstrument()
	if err != nil {
		return err
	}

	img, err := a.Capture(ctx, in)
	if err != nil {
		return err
	}

	if err := a.write(in, img); err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"output": a.Output,
		"format": a.Params.Format,
	}).Info("Image saved")
	return nil
}

// LoadInstrument reads the material table and the instrument description.
func (a *App) LoadInstrument() (*instrument.Instrument, error) {
	var (
		table *material.Table
		err   error
	)
	if a.Materials == "" {
		table, err = material.Default()
	} else {
		table, err = material.LoadFile(a.Materials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load materials: %w", err)
	}
	log.WithField("materials", table.Names()).Debug("Materials loaded")

	opts := []instrument.Option{instrument.WithWorkers(a.Params.Workers)}
	if a.Params.ForceMueller {
		opts = append(opts, instrument.WithForceMueller())
	}
	in, err := instrument.LoadFile(a.Instrument, table, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load instrument: %w", err)
	}
	log.WithFields(log.Fields{
		"type":       in.Type(),
		"components": len(in.Components),
		"sensor":     fmt.Sprintf("%dx%d", in.Sensor.FormatX, in.Sensor.FormatY),
	}).Info("Instrument loaded")
	return in, nil
}

// Capture renders the image selected by the run parameters.
func (a *App) Capture(ctx context.Context, in *instrument.Instrument) (*imageio.Image, error) {
	captureTime := time.Now()
	pix := in.NewImage()
	switch a.Params.Mode {
	case mode.Spectral:
		s, err := spectrum.Gaussian(a.Params.Wavelength, a.Params.Sigma, a.Params.Flux, a.Params.Bins, a.Params.NSigma)
		if err != nil {
			return nil, fmt.Errorf("failed to build spectrum: %w", err)
		}
		if err := in.CaptureSpectrum(ctx, s.Wavelength, s.S0, pix); err != nil {
			return nil, fmt.Errorf("failed to capture: %w", err)
		}
	default:
		if err := in.Capture(ctx, a.Params.Wavelength, a.Params.Flux, pix); err != nil {
			return nil, fmt.Errorf("failed to capture: %w", err)
		}
	}
	log.WithFields(log.Fields{
		"time": time.Since(captureTime),
		"mode": a.Params.Mode,
	}).Info("Image captured")

	return imageio.New(pix, in.Sensor.FormatX, in.Sensor.FormatY, in.Sensor.MaxCount())
}

func (a *App) write(in *instrument.Instrument, img *imageio.Image) error {
	switch a.Params.Format {
	case format.Pgm:
		return imageio.SaveFile(a.Output, img.WritePGM)
	case format.Png:
		return imageio.SaveFile(a.Output, img.WritePNG)
	case format.Tiff:
		return imageio.SaveFile(a.Output, img.WriteTIFF)
	case format.Csv:
		return imageio.SaveFile(a.Output, img.WriteCSV)
	case format.HTML:
		return a.writeChart(in, img)
	default:
		return fmt.Errorf("unsupported format: %v", a.Params.Format)
	}
}

// writeChart charts the selected sensor row and the row below it, which on
// a polarisation sensor carries the other half of the mask tile.
func (a *App) writeChart(in *instrument.Instrument, img *imageio.Image) error {
	row := a.Params.Row
	if row < 0 || row >= img.Height {
		row = img.Height / 2
	}
	lines := make([]*entity.Line, 0, 2)
	for y := row; y < min(row+2, img.Height); y++ {
		line, err := entity.NewLine("row "+strconv.Itoa(y), img.Row(y))
		if err != nil {
			return fmt.Errorf("failed to create line: %w", err)
		}
		lines = append(lines, line)
	}

	x := make([]float64, img.Width)
	for i, c := range in.Sensor.CentresX {
		x[i] = c * 1e3
	}
	line, err := chart.New(chart.Axes{
		Title: "Interferogram row profile",
		X:     "x, mm",
		Y:     "counts",
	}, x, lines...)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}

	f, err := os.Create(a.Output)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	if err := chart.Render(f, line); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
