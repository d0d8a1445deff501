package component

import "math"

// Stokes is a Stokes vector (s0, s1, s2, s3).
type Stokes [4]float64

// Unpolarised returns the Stokes vector of unpolarised light of the given flux.
func Unpolarised(flux float64) Stokes {
	return Stokes{flux, 0, 0, 0}
}

// Matrix is a 4×4 Mueller matrix.
type Matrix [4][4]float64

// Identity returns the identity Mueller matrix.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns the matrix product m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j] + m[i][3]*n[3][j]
		}
	}
	return out
}

// Apply returns m·s.
func (m Matrix) Apply(s Stokes) Stokes {
	var out Stokes
	for i := 0; i < 4; i++ {
		out[i] = m[i][0]*s[0] + m[i][1]*s[1] + m[i][2]*s[2] + m[i][3]*s[3]
	}
	return out
}

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	var out Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// Rotation returns the Mueller frame-rotation matrix for angle theta (radians).
func Rotation(theta float64) Matrix {
	s, c := math.Sincos(2 * theta)
	return Matrix{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// General returns the Mueller matrix of a homogeneous linear diattenuating
// retarder with principal transmittances t1, t2 and phase delay, with its
// axis at orientation (radians).
func General(t1, t2, delay, orientation float64) Matrix {
	sum := (t1 + t2) / 2
	diff := (t1 - t2) / 2
	amp := math.Sqrt(t1 * t2)
	sd, cd := math.Sincos(delay)
	m := Matrix{
		{sum, diff, 0, 0},
		{diff, sum, 0, 0},
		{0, 0, amp * cd, amp * sd},
		{0, 0, -amp * sd, amp * cd},
	}
	rot := Rotation(orientation)
	return rot.Transpose().Mul(m).Mul(rot)
}

// IdealPolariser returns the Mueller matrix of an ideal linear polariser
// with its transmission axis at orientation (radians). It equals
// General(1, 0, 0, orientation) but is exactly rank one.
func IdealPolariser(orientation float64) Matrix {
	s, c := math.Sincos(2 * orientation)
	return Matrix{
		{0.5, 0.5 * c, 0.5 * s, 0},
		{0.5 * c, 0.5 * c * c, 0.5 * c * s, 0},
		{0.5 * s, 0.5 * c * s, 0.5 * s * s, 0},
		{0, 0, 0, 0},
	}
}
