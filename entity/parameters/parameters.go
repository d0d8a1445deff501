package parameters

import (
	"fmt"

	"github.com/AnkushinDaniil/cisim/entity/format"
	"github.com/AnkushinDaniil/cisim/entity/mode"
)

type Parameters struct {
	Mode   mode.Mode
	Format format.Format

	Wavelength float64 // metres, line centre
	Flux       float64 // total flux
	Sigma      float64 // metres, spectral mode line width
	Bins       int     // spectral mode samples
	NSigma     float64 // spectral mode half-range in line widths

	Workers      int
	ForceMueller bool
	// Row is the sensor row charted in HTML output; negative means the
	// central row.
	Row int
}

func Default() *Parameters {
	return &Parameters{
		Mode:       mode.Monochromatic,
		Format:     format.Pgm,
		Wavelength: 465e-9,
		Flux:       1000,
		Sigma:      0.1e-9,
		Bins:       50,
		NSigma:     5,
		Row:        -1,
	}
}

func (p *Parameters) Validate() error {
	if !(p.Wavelength > 0) {
		return fmt.Errorf("invalid wavelength: %g", p.Wavelength)
	}
	if p.Flux < 0 {
		return fmt.Errorf("invalid flux: %g", p.Flux)
	}
	if p.Mode == mode.Spectral {
		if !(p.Sigma > 0) || p.Bins < 2 || !(p.NSigma > 0) {
			return fmt.Errorf("invalid spectral line: sigma %g, bins %d, nsigma %g", p.Sigma, p.Bins, p.NSigma)
		}
	}
	return nil
}
