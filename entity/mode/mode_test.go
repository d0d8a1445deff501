package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalText(t *testing.T) {
	for text, want := range map[string]Mode{"m": Monochromatic, "mono": Monochromatic, "s": Spectral, "spectral": Spectral} {
		got, err := UnmarshalText(text)
		require.NoError(t, err, text)
		assert.Equal(t, want, got)

		again, err := UnmarshalText(got.String())
		require.NoError(t, err)
		assert.Equal(t, want, again)
	}
	_, err := UnmarshalText("v")
	require.Error(t, err)
}
