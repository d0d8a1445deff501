package instrument

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/AnkushinDaniil/cisim/component"
	"github.com/AnkushinDaniil/cisim/numeric"
	"github.com/AnkushinDaniil/cisim/sensor"
)

// NewImage returns a zeroed image sized for the instrument's sensor. Pixels
// are stored row-major: index iy*FormatX + ix.
func (in *Instrument) NewImage() []uint16 {
	return make([]uint16, in.Sensor.Pixels())
}

// Capture renders the image formed by unpolarised monochromatic light of the
// given wavelength (metres) and flux into image.
func (in *Instrument) Capture(ctx context.Context, wavelength, flux float64, image []uint16) error {
	if err := in.checkImage(image); err != nil {
		return err
	}

	var pixel pixelFunc
	switch in.typ {
	case SingleDelayLinear, SingleDelayPixelated:
		pixel = func(ix, iy int, rays []ray, _ []float64) float64 {
			return in.fastIntensity(ix, iy, rays, wavelength, flux)
		}
	default:
		pixel = func(ix, iy int, _ []ray, _ []float64) float64 {
			return in.muellerAt(ix, iy, wavelength).Apply(component.Unpolarised(flux))[0]
		}
	}

	start := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"type":       in.typ,
			"wavelength": wavelength,
			"elapsed":    time.Since(start),
		}).Debug("Monochromatic capture")
	}()
	return in.render(ctx, image, 0, pixel)
}

// CaptureSpectrum renders the image formed by an unpolarised spectrum into
// image. flux[i] is the spectral flux density at wavelength[i]; the pixel
// intensity is the trapezoidal integral over wavelength.
func (in *Instrument) CaptureSpectrum(ctx context.Context, wavelength, flux []float64, image []uint16) error {
	if err := in.checkImage(image); err != nil {
		return err
	}
	if len(wavelength) != len(flux) {
		return fmt.Errorf("%w: %d wavelengths, %d flux samples", ErrSpectrum, len(wavelength), len(flux))
	}
	if len(wavelength) < 2 || !numeric.IsIncreasing(wavelength) {
		return fmt.Errorf("%w: wavelengths must be at least two strictly increasing samples", ErrSpectrum)
	}

	var pixel pixelFunc
	switch in.typ {
	case SingleDelayLinear, SingleDelayPixelated:
		pixel = func(ix, iy int, rays []ray, buf []float64) float64 {
			for i, wl := range wavelength {
				buf[i] = in.fastIntensity(ix, iy, rays, wl, flux[i])
			}
			return numeric.Trapz(wavelength, buf)
		}
	default:
		pixel = func(ix, iy int, _ []ray, buf []float64) float64 {
			for i, wl := range wavelength {
				buf[i] = in.muellerAt(ix, iy, wl).Apply(component.Unpolarised(flux[i]))[0]
			}
			return numeric.Trapz(wavelength, buf)
		}
	}

	start := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"type":    in.typ,
			"samples": len(wavelength),
			"elapsed": time.Since(start),
		}).Debug("Spectral capture")
	}()
	return in.render(ctx, image, len(wavelength), pixel)
}

func (in *Instrument) checkImage(image []uint16) error {
	if len(image) != in.Sensor.Pixels() {
		return fmt.Errorf("%w: %d pixels, sensor has %dx%d", ErrImageSize, len(image), in.Sensor.FormatX, in.Sensor.FormatY)
	}
	return nil
}

// pixelFunc returns the intensity of pixel ix, iy. rays holds the ray angles
// at the interior components for single-delay instruments. buf is scratch
// space private to the calling row.
type pixelFunc func(ix, iy int, rays []ray, buf []float64) float64

// render fills image row by row, at most in.workers rows at a time.
func (in *Instrument) render(ctx context.Context, image []uint16, bufLen int, pixel pixelFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)

	nx := in.Sensor.FormatX
	single := in.typ != Mueller
	for iy := 0; iy < in.Sensor.FormatY; iy++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf := make([]float64, bufLen)
			var rays []ray
			row := image[iy*nx : (iy+1)*nx]
			for ix := range row {
				if single {
					rays = in.rays(in.Sensor.CentresX[ix], in.Sensor.CentresY[iy], rays)
				}
				row[ix] = counts(pixel(ix, iy, rays, buf))
			}
			return nil
		})
	}
	return g.Wait()
}

func (in *Instrument) fastIntensity(ix, iy int, rays []ray, wavelength, flux float64) float64 {
	delay := in.fast.netDelay(rays, in.interior(), wavelength)
	if in.typ == SingleDelayPixelated {
		return flux / 4 * (1 + in.fast.contrast*math.Cos(in.fast.phaseSign*delay+sensor.MaskPhase(ix, iy)))
	}
	return flux / 4 * (1 + in.fast.contrast*math.Cos(delay))
}

// counts truncates an intensity to a pixel count. Non-positive and NaN
// intensities give zero.
func counts(v float64) uint16 {
	if !(v > 0) {
		return 0
	}
	return uint16(uint64(v))
}
