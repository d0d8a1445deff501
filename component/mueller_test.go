package component

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertMatrixInDelta(t *testing.T, want, got Matrix, delta float64) {
	t.Helper()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want[i][j], got[i][j], delta, "element [%d][%d]", i, j)
		}
	}
}

func TestIdentity(t *testing.T) {
	m := General(1, 1, 0.7, 0.3)
	assert.Equal(t, m, Identity().Mul(m))
	assert.Equal(t, m, m.Mul(Identity()))
}

func TestRotation(t *testing.T) {
	assertMatrixInDelta(t, Identity(), Rotation(0), 0)
	assertMatrixInDelta(t, Identity(), Rotation(math.Pi), 1e-15)
	// rotations compose additively
	assertMatrixInDelta(t, Rotation(0.5), Rotation(0.2).Mul(Rotation(0.3)), 1e-15)
}

func TestCrossedPolarisersExtinguish(t *testing.T) {
	for _, theta := range []float64{0, 0.1, Radians(30), Radians(45), 2} {
		p1 := NewPolariser(theta)
		p2 := NewPolariser(theta + Radians(90))
		m := p1.MuellerMatrix(500e-9, 0, 0).Mul(p2.MuellerMatrix(500e-9, 0, 0))
		out := m.Apply(Stokes{1, 0, 0, 0})
		assert.InDelta(t, 0, out[0], 1e-15, "orientation %v", theta)
	}
}

func TestIdealPolariserMatchesGeneral(t *testing.T) {
	for _, theta := range []float64{0, 0.3, Radians(45), Radians(90), Radians(135), -1.2} {
		assertMatrixInDelta(t, General(1, 0, 0, theta), IdealPolariser(theta), 1e-15)
	}
}

func TestPolariserHalvesUnpolarisedLight(t *testing.T) {
	out := IdealPolariser(0.4).Apply(Unpolarised(10))
	assert.InDelta(t, 5, out[0], 1e-14)
	// fully polarised output
	assert.InDelta(t, out[0], math.Sqrt(out[1]*out[1]+out[2]*out[2]+out[3]*out[3]), 1e-14)
}

func TestRetarderPreservesIntensity(t *testing.T) {
	in := Stokes{1, 0.3, -0.4, 0.5}
	for _, delay := range []float64{0, 0.5, math.Pi / 2, math.Pi, 7} {
		out := General(1, 1, delay, 0.25).Apply(in)
		assert.InDelta(t, 1, out[0], 1e-15)
		dop := math.Sqrt(out[1]*out[1] + out[2]*out[2] + out[3]*out[3])
		assert.InDelta(t, math.Sqrt(0.5), dop, 1e-14)
	}
}

func TestQuarterWaveplateCircularises(t *testing.T) {
	// horizontal light through a QWP at 45° becomes circular
	qwp := NewQuarterWaveplate(Radians(45))
	out := qwp.MuellerMatrix(500e-9, 0, 0).Apply(Stokes{1, 1, 0, 0})
	assert.InDelta(t, 1, out[0], 1e-15)
	assert.InDelta(t, 0, out[1], 1e-15)
	assert.InDelta(t, 0, out[2], 1e-15)
	assert.InDelta(t, 1, math.Abs(out[3]), 1e-15)
}

func TestMulIsNotCommutative(t *testing.T) {
	a := IdealPolariser(0)
	b := General(1, 1, math.Pi/2, Radians(45))
	assert.NotEqual(t, a.Mul(b), b.Mul(a))
}
