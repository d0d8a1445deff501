package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/cisim/app"
	"github.com/AnkushinDaniil/cisim/entity/format"
	"github.com/AnkushinDaniil/cisim/entity/mode"
	"github.com/AnkushinDaniil/cisim/entity/parameters"
)

func main() {
	params := parameters.Default()
	var (
		instrumentPath string
		materialsPath  string
		output         string
		modeText       string
		formatText     string
		debug          bool
	)
	flag.StringVar(&instrumentPath, "config", "instrument.yaml", "Instrument description (YAML).")
	flag.StringVar(&materialsPath, "materials", "", "Material table (YAML); the built-in table when empty.")
	flag.StringVar(&output, "o", "", "Output file; image.<format> when empty.")
	flag.StringVar(&modeText, "mode", params.Mode.String(), "Capture mode: mono or spectral.")
	flag.StringVar(&formatText, "format", params.Format.String(), "Output format: pgm, png, tiff, csv or html.")
	flag.Float64Var(&params.Wavelength, "wavelength", params.Wavelength, "Line centre wavelength, m.")
	flag.Float64Var(&params.Flux, "flux", params.Flux, "Total flux.")
	flag.Float64Var(&params.Sigma, "sigma", params.Sigma, "Spectral line standard deviation, m.")
	flag.IntVar(&params.Bins, "bins", params.Bins, "Spectral samples.")
	flag.Float64Var(&params.NSigma, "nsigma", params.NSigma, "Spectral half-range in standard deviations.")
	flag.IntVar(&params.Workers, "workers", 0, "Rows rendered concurrently (0 = GOMAXPROCS).")
	flag.BoolVar(&params.ForceMueller, "mueller", false, "Always use the general Mueller calculation.")
	flag.IntVar(&params.Row, "row", -1, "Sensor row charted by the html format (-1 = centre).")
	flag.BoolVar(&debug, "debug", false, "Debug logging.")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	var err error
	if params.Mode, err = mode.UnmarshalText(modeText); err != nil {
		log.Fatal(err)
	}
	if params.Format, err = format.UnmarshalText(formatText); err != nil {
		log.Fatal(err)
	}
	if output == "" {
		output = "image" + params.Format.Ext()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.New(instrumentPath, materialsPath, output, params).Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
			os.Exit(130)
		}
		log.Fatal(err)
	}
}
