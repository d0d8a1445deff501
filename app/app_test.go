package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/cisim/entity/format"
	"github.com/AnkushinDaniil/cisim/entity/mode"
	"github.com/AnkushinDaniil/cisim/entity/parameters"
	"github.com/AnkushinDaniil/cisim/imageio"
	"github.com/AnkushinDaniil/cisim/instrument"
)

func TestRunPGM(t *testing.T) {
	out := filepath.Join(t.TempDir(), "image.pgm")
	params := parameters.Default()
	params.Flux = 4000
	a := New("testdata/instrument.yaml", "testdata/materials.yaml", out, params)
	require.NoError(t, a.Run(context.Background()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	got, err := imageio.ReadPGM(f)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 8, got.Height)
	assert.Equal(t, uint16(4095), got.MaxVal)

	in, err := a.LoadInstrument()
	require.NoError(t, err)
	assert.Equal(t, instrument.SingleDelayLinear, in.Type())
	want := in.NewImage()
	require.NoError(t, in.Capture(context.Background(), params.Wavelength, params.Flux, want))
	assert.Equal(t, want, got.Pix)
}

func TestRunFormats(t *testing.T) {
	for _, f := range []format.Format{format.Png, format.Tiff, format.Csv, format.HTML} {
		t.Run(f.String(), func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "image"+f.Ext())
			params := parameters.Default()
			params.Format = f
			params.Mode = mode.Spectral
			params.Bins = 9
			require.NoError(t, New("testdata/instrument.yaml", "", out, params).Run(context.Background()))

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestRunSpectralMatchesForcedMueller(t *testing.T) {
	params := parameters.Default()
	params.Mode = mode.Spectral
	params.Bins = 11
	a := New("testdata/instrument.yaml", "", "", params)
	in, err := a.LoadInstrument()
	require.NoError(t, err)
	fast, err := a.Capture(context.Background(), in)
	require.NoError(t, err)

	params.ForceMueller = true
	in, err = a.LoadInstrument()
	require.NoError(t, err)
	assert.Equal(t, instrument.Mueller, in.Type())
	general, err := a.Capture(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, general.Pix, fast.Pix)
}

func TestRunErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "image.pgm")

	err := New("testdata/missing.yaml", "", out, parameters.Default()).Run(context.Background())
	require.Error(t, err)

	err = New("testdata/instrument.yaml", "testdata/missing.yaml", out, parameters.Default()).Run(context.Background())
	require.Error(t, err)

	params := parameters.Default()
	params.Wavelength = 0
	err = New("testdata/instrument.yaml", "", out, params).Run(context.Background())
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = New("testdata/instrument.yaml", "", out, parameters.Default()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
