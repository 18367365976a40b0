package astroprop

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m mat.Matrix, v []float64) []float64 {
	var rVec mat.VecDense
	rVec.MulVec(m, mat.NewVecDense(len(v), v))
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}

// PQW2ECI converts a perifocal vector to the inertial frame.
func PQW2ECI(i, ω, Ω float64, vI []float64) []float64 {
	var m mat.Dense
	m.Mul(R3(-Ω), R1(-i))
	m.Mul(&m, R3(-ω))
	return MxV33(&m, vI)
}

// ricDCM returns the matrix whose columns are the radial, in-track and cross-track
// unit vectors of the provided state, i.e. the RIC to inertial rotation.
func ricDCM(s State) *mat.Dense {
	r := s.R[:]
	v := s.V[:]
	rHat := unit(r)
	cHat := unit(cross(r, v))
	iHat := cross(cHat, rHat)
	return mat.NewDense(3, 3, []float64{
		rHat[0], iHat[0], cHat[0],
		rHat[1], iHat[1], cHat[1],
		rHat[2], iHat[2], cHat[2],
	})
}

// RIC2Inertial converts a vector expressed in the RIC frame of the provided state
// into the inertial frame.
func RIC2Inertial(s State, ric []float64) []float64 {
	return MxV33(ricDCM(s), ric)
}

// Inertial2RIC converts an inertial vector into the RIC frame of the provided state.
func Inertial2RIC(s State, eci []float64) []float64 {
	return MxV33(ricDCM(s).T(), eci)
}
