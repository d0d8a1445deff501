package parameters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/cisim/entity/mode"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())

	p := Default()
	p.Wavelength = -1
	require.Error(t, p.Validate())

	p = Default()
	p.Flux = -1
	require.Error(t, p.Validate())

	p = Default()
	p.Mode = mode.Spectral
	require.NoError(t, p.Validate())
	p.Bins = 1
	require.Error(t, p.Validate())
}
