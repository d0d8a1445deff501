package material

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTable(t *testing.T) *Table {
	t.Helper()
	table, err := Default()
	require.NoError(t, err)
	return table
}

func TestDefaultTable(t *testing.T) {
	table := defaultTable(t)
	assert.Equal(t, []string{"KDP", "LiNbO3", "YVO4", "a-BBO"}, table.Names())

	p, err := table.Properties("a-BBO")
	require.NoError(t, err)
	assert.Equal(t, "a-BBO", p.Name)
	assert.Equal(t, []float64{2.3174, 0.01224, -0.01667, -0.01516}, p.Extraordinary)
	assert.Equal(t, []float64{2.7471, 0.01878, -0.01822, -0.01354}, p.Ordinary)
}

func TestMaterialNotFound(t *testing.T) {
	_, err := defaultTable(t).Properties("unobtainium")
	require.ErrorIs(t, err, ErrMaterialNotFound)
	assert.Contains(t, err.Error(), "unobtainium")
}

func TestRefractiveIndices(t *testing.T) {
	table := defaultTable(t)
	tests := []struct {
		material   string
		wavelength float64
		ne, no     float64
	}{
		{"a-BBO", 465e-9, 1.5412522514675786, 1.6849386942097355},
		{"YVO4", 633e-9, 2.215322473881095, 1.9928142610558257},
		{"KDP", 633e-9, 1.4668569819352069, 1.5074005258113121},
		{"LiNbO3", 633e-9, 2.2021706712665754, 2.2864076250894034},
	}
	for _, tt := range tests {
		t.Run(tt.material, func(t *testing.T) {
			p, err := table.Properties(tt.material)
			require.NoError(t, err)
			ne, no, err := p.RefractiveIndices(tt.wavelength)
			require.NoError(t, err)
			assert.InDelta(t, tt.ne, ne, 1e-12)
			assert.InDelta(t, tt.no, no, 1e-12)
		})
	}
}

func TestRefractiveIndicesContinuous(t *testing.T) {
	table := defaultTable(t)
	// one material per Sellmeier form: 4, 5 and 6 coefficients
	for _, name := range []string{"a-BBO", "KDP", "LiNbO3"} {
		t.Run(name, func(t *testing.T) {
			p, err := table.Properties(name)
			require.NoError(t, err)
			for _, wl := range []float64{400e-9, 550e-9, 700e-9} {
				ne0, no0, err := p.RefractiveIndices(wl)
				require.NoError(t, err)
				prev := math.Inf(1)
				for _, eps := range []float64{1e-9, 1e-11, 1e-13} {
					ne, no, err := p.RefractiveIndices(wl + eps)
					require.NoError(t, err)
					diff := math.Abs(ne-ne0) + math.Abs(no-no0)
					assert.LessOrEqual(t, diff, prev)
					assert.Less(t, diff, eps*1e7)
					prev = diff
				}
			}
		})
	}
}

func TestUnsupportedDispersion(t *testing.T) {
	_, err := NewProperties("short", []float64{1, 2, 3}, []float64{1, 2, 3})
	require.ErrorIs(t, err, ErrUnsupportedDispersion)

	_, err = NewProperties("mismatch", []float64{1, 2, 3, 4}, []float64{1, 2, 3, 4, 5})
	require.ErrorIs(t, err, ErrUnsupportedDispersion)

	_, _, err = Properties{Name: "raw", Extraordinary: []float64{1}, Ordinary: []float64{1}}.RefractiveIndices(500e-9)
	require.ErrorIs(t, err, ErrUnsupportedDispersion)
}

func TestFromCoefficients(t *testing.T) {
	p, err := FromCoefficients("custom", map[string]float64{
		"Ae": 2.3, "Ao": 2.7,
		"Be": 0.01, "Bo": 0.02,
		"Ce": -0.01, "Co": -0.02,
		"De": -0.01, "Do": -0.01,
		"Fe": 9, "Fo": 9, // ignored: E is missing
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{2.3, 0.01, -0.01, -0.01}, p.Extraordinary)
	assert.Equal(t, []float64{2.7, 0.02, -0.02, -0.01}, p.Ordinary)

	_, err = FromCoefficients("empty", nil)
	require.ErrorIs(t, err, ErrUnsupportedDispersion)
}

func TestKappa(t *testing.T) {
	p, err := defaultTable(t).Properties("a-BBO")
	require.NoError(t, err)
	kappa, err := p.Kappa(465e-9)
	require.NoError(t, err)
	assert.InDelta(t, 1.125, kappa, 1e-3)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	doc := `
calcite-ish:
  sellmeier_coefficients: {Ae: 2.18, Ao: 2.69, Be: 0.0087, Bo: 0.0188, Ce: -0.01, Co: -0.0179, De: -0.002, Do: -0.0151}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"calcite-ish"}, table.Names())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(strings.NewReader("bad:\n  sellmeier_coefficients: {Ae: 1, Ao: 1}\n"))
	require.ErrorIs(t, err, ErrUnsupportedDispersion)
}
