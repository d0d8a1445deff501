// Package chart builds interactive HTML line charts of image row profiles
// and fringe visibility curves.
package chart

import (
	"errors"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/cisim/entity"
)

// Axes names the chart and its axes.
type Axes struct {
	Title string
	X     string
	Y     string
}

// New returns a line chart of lines against x. Every line must have
// len(x) samples.
func New(axes Axes, x []float64, lines ...*entity.Line) (*charts.Line, error) {
	if len(lines) == 0 {
		return nil, errors.New("no lines to chart")
	}
	for _, l := range lines {
		if len(l.Data()) != len(x) {
			return nil, errors.New("line " + l.Name() + " does not match the x axis")
		}
	}

	startTime := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"time":  time.Since(startTime),
			"lines": len(lines),
		}).Debug("Creating chart")
	}()
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:     "100%",
			Height:    "600px",
			PageTitle: axes.Title,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: axes.Title,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Type: "scroll",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show: opts.Bool(true),
					Type: "png",
					Name: "profile",
				},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: axes.X,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  axes.Y,
			Scale: opts.Bool(true),
		}),
	)

	line.SetXAxis(x)
	for _, l := range lines {
		line.AddSeries(l.Name(), l.Data())
	}
	return line, nil
}

// Render writes the chart as a standalone HTML page.
func Render(w io.Writer, line *charts.Line) error {
	renderTime := time.Now()
	if err := line.Render(w); err != nil {
		return err
	}
	log.WithField("time", time.Since(renderTime)).Debug("Chart rendered")
	return nil
}

// Pixels returns an x axis of n samples measured in steps from the sample at
// index zero, e.g. the brightest pixel of a fringe profile.
func Pixels(n, zero int, step float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i-zero) * step
	}
	return x
}
