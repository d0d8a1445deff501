package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/cisim/chart"
	"github.com/AnkushinDaniil/cisim/entity"
	"github.com/AnkushinDaniil/cisim/instrument"
	"github.com/AnkushinDaniil/cisim/material"
)

var (
	Config     = "instrument.yaml"
	Wavelength = 465e-9 // meters
	Flux       = 1000.0
	Rows       = 1 // rows charted from the centre down
	WinSize    = 16
	Output     = "Interference.html"
)

func main() {
	flag.StringVar(&Config, "config", Config, "Instrument description (YAML).")
	flag.Float64Var(&Wavelength, "wavelength", Wavelength, "Wavelength, m.")
	flag.Float64Var(&Flux, "flux", Flux, "Flux.")
	flag.IntVar(&Rows, "rows", Rows, "Number of rows to chart.")
	flag.IntVar(&WinSize, "win", WinSize, "Visibility window, pixels.")
	flag.StringVar(&Output, "o", Output, "Output HTML file.")
	flag.Parse()
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	table, err := material.Default()
	if err != nil {
		log.Fatal(err)
	}
	in, err := instrument.LoadFile(Config, table)
	if err != nil {
		log.Fatal(err)
	}
	img := in.NewImage()
	if err := in.Capture(ctx, Wavelength, Flux, img); err != nil {
		log.Fatal(err)
	}

	nx, ny := in.Sensor.FormatX, in.Sensor.FormatY
	lines := make([]*entity.Line, 0, Rows)
	for y := ny / 2; y < min(ny/2+Rows, ny); y++ {
		row := make([]float64, nx)
		for x := range row {
			row[x] = float64(img[y*nx+x])
		}
		line, err := entity.NewLine("row "+strconv.Itoa(y), row)
		if err != nil {
			log.Fatal(err)
		}
		if v, err := line.Visibility("visibility", WinSize); err == nil {
			log.WithFields(log.Fields{
				"row":        y,
				"visibility": v.Values()[v.MaxIdx()],
			}).Info("Fringe visibility")
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		log.Fatal("no rows to chart")
	}
	x := chart.Pixels(nx, lines[0].MaxIdx(), 1)
	line, err := chart.New(chart.Axes{
		Title: "Interferogram, " + in.Type().String(),
		X:     "pixels from brightest",
		Y:     "counts",
	}, x, lines...)
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
