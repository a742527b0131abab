package marsmission

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rz returns the active rotation matrix about the z axis by θ radians.
func Rz(θ float64) *mat.Dense {
	s, c := math.Sincos(θ)
	return mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

// Rx returns the active rotation matrix about the x axis by θ radians.
func Rx(θ float64) *mat.Dense {
	s, c := math.Sincos(θ)
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	})
}

// Rot313 builds the composed 3-1-3 Euler rotation R_z(Ω)·R_x(i)·R_z(ω)
// that carries a perifocal (PQW) vector into the heliocentric inertial
// frame. From Schaub and Junkins, matching the teacher's R3R1R3 Euler
// sequence but with the explicit positive-angle composition spec.md §4.1
// calls for.
func Rot313(ω, i, Ω float64) *mat.Dense {
	var out mat.Dense
	out.Mul(Rz(Ω), Rx(i))
	out.Mul(&out, Rz(ω))
	return &out
}

// Rot313Vec rotates a vector from the PQW frame to the heliocentric
// inertial frame through (ω, i, Ω).
func Rot313Vec(ω, i, Ω float64, vPQW []float64) []float64 {
	return MxV33(Rot313(ω, i, Ω), vPQW)
}

// MxV33 multiplies a 3x3 matrix with a 3-vector.
func MxV33(m *mat.Dense, v []float64) []float64 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(3, v))
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}
