package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/cisim/chart"
	"github.com/AnkushinDaniil/cisim/coherence"
	"github.com/AnkushinDaniil/cisim/entity"
	"github.com/AnkushinDaniil/cisim/material"
	"github.com/AnkushinDaniil/cisim/numeric"
	"github.com/AnkushinDaniil/cisim/spectrum"
)

var (
	Wavelength = 465e-9  // meters
	Sigma      = 0.1e-9  // meters
	Flux       = 1000.0  // total flux
	Bins       = 2001    // spectral samples
	NSigma     = 10.0    // spectral half-range
	MaxWaves   = 20000.0 // largest delay, waves
	Steps      = 400     // delay samples
	Material   = "a-BBO" // reported dispersion
	Output     = "Visibility.html"
)

func main() {
	flag.Float64Var(&Wavelength, "wavelength", Wavelength, "Line centre wavelength, m.")
	flag.Float64Var(&Sigma, "sigma", Sigma, "Line standard deviation, m.")
	flag.IntVar(&Bins, "bins", Bins, "Spectral samples.")
	flag.Float64Var(&NSigma, "nsigma", NSigma, "Spectral half-range in standard deviations.")
	flag.Float64Var(&MaxWaves, "waves", MaxWaves, "Largest delay in waves.")
	flag.IntVar(&Steps, "steps", Steps, "Delay samples.")
	flag.StringVar(&Material, "material", Material, "Material whose dispersion power is reported.")
	flag.StringVar(&Output, "o", Output, "Output HTML file.")
	flag.Parse()
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	table, err := material.Default()
	if err != nil {
		log.Fatal(err)
	}
	props, err := table.Properties(Material)
	if err != nil {
		log.Fatal(err)
	}
	kappa, err := props.Kappa(Wavelength)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"material":   Material,
		"wavelength": Wavelength,
		"kappa":      kappa,
	}).Info("Dispersion power")

	s, err := spectrum.Gaussian(Wavelength, Sigma, Flux, Bins, NSigma)
	if err != nil {
		log.Fatal(err)
	}

	waves := numeric.Linspace(0, MaxWaves, Steps)
	numerical := make([]float64, len(waves))
	closed := make([]float64, len(waves))
	var worstContrast, worstPhase float64
	for i, w := range waves {
		delay := 2 * math.Pi * w
		c, err := coherence.Calculate(s.Wavelength, s.S0, delay, Wavelength)
		if err != nil {
			log.Fatal(err)
		}
		g := coherence.Gaussian(Wavelength, Sigma, Flux, delay, Wavelength)
		numerical[i] = coherence.Contrast(c, Flux)
		closed[i] = coherence.Contrast(g, Flux)
		worstContrast = math.Max(worstContrast, math.Abs(numerical[i]-closed[i]))
		worstPhase = math.Max(worstPhase, math.Abs(numeric.Wrap(coherence.Phase(c)-coherence.Phase(g))))
	}
	log.WithFields(log.Fields{
		"contrast": worstContrast,
		"phase":    worstPhase,
	}).Info("Largest numerical deviation from closed form")

	lines := make([]*entity.Line, 0, 2)
	for _, series := range []struct {
		name   string
		values []float64
	}{{"numerical", numerical}, {"gaussian", closed}} {
		line, err := entity.NewLine(series.name, series.values)
		if err != nil {
			log.Fatal(err)
		}
		lines = append(lines, line)
	}
	line, err := chart.New(chart.Axes{
		Title: fmt.Sprintf("Fringe visibility, %.1f nm line", Wavelength*1e9),
		X:     "delay, waves",
		Y:     "visibility",
	}, waves, lines...)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(Output)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := chart.Render(f, line); err != nil {
		log.Fatal(err)
	}
	log.WithField("output", Output).Info("Chart saved")
}
