package tools

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const (
	ε  = 1e-6                   // General epsilon
	tε = 1e-6                   // Time epsilon (1e-6 seconds)
	νε = (5e-5 / 180) * math.Pi // 0.00005 degrees

	lambertMaxIterations = 1000
)

// ErrLambert is returned when the Lambert problem has no solution with the universal
// variable bisection.
var ErrLambert = errors.New("no Lambert solution")

// Lambert solves the Lambert boundary problem:
// Given the initial and final radii and the gravitational parameter, it returns the needed
// initial and final velocities along with ψ which is the square of the difference in
// eccentric anomaly. A zero direction of motion picks the short way in the XY plane.
func Lambert(Ri, Rf *mat.VecDense, Δt0, dm, μ float64) (Vi, Vf *mat.VecDense, ψ float64, err error) {
	Vi = mat.NewVecDense(3, nil)
	Vf = mat.NewVecDense(3, nil)
	if Ri.Len() != Rf.Len() || Ri.Len() != 3 {
		err = errors.New("initial and final radii must be 3x1 vectors")
		return
	}
	rI := mat.Norm(Ri, 2)
	rF := mat.Norm(Rf, 2)
	cosΔν := mat.Dot(Ri, Rf) / (rI * rF)
	νI := math.Atan2(Ri.AtVec(1), Ri.AtVec(0))
	νF := math.Atan2(Rf.AtVec(1), Rf.AtVec(0))
	if dm == 0 {
		if νF-νI < math.Pi {
			dm = 1
		} else {
			dm = -1
		}
	} else if dm != 1 && dm != -1 {
		err = errors.New("direction of motion must be either 0, -1 or 1 (multi rev not supported)")
		return
	}
	A := dm * math.Sqrt(rI*rF*(1+cosΔν))
	if νF-νI < νε && scalar.EqualWithinAbs(A, 0, ε) {
		err = errors.New("Δν ~=0 and A ~=0, cannot compute trajectory")
		return
	}
	ψup := 4 * math.Pow(math.Pi, 2)
	ψlow := -4 * math.Pi
	c2 := 1 / 2.
	c3 := 1 / 6.
	var y float64
	converged := false
	for iter := 0; iter < lambertMaxIterations; iter++ {
		y = rI + rF + A*(ψ*c3-1)/math.Sqrt(c2)
		if A > 0 && y < 0 {
			// ψlow should be raised until y > 0, which this bisection does not do.
			err = ErrLambert
			return
		}
		χ := math.Sqrt(y / c2)
		Δt := (math.Pow(χ, 3)*c3 + A*math.Sqrt(y)) / math.Sqrt(μ)
		if math.Abs(Δt-Δt0) <= tε {
			converged = true
			break
		}
		if Δt < Δt0 {
			ψlow = ψ
		} else {
			ψup = ψ
		}
		ψ = (ψup + ψlow) / 2
		if ψ > ε {
			sψ := math.Sqrt(ψ)
			ssψ, csψ := math.Sincos(sψ)
			c2 = (1 - csψ) / ψ
			c3 = (sψ - ssψ) / (sψ * sψ * sψ)
		} else if ψ < -ε {
			sψ := math.Sqrt(-ψ)
			c2 = (1 - math.Cosh(sψ)) / ψ
			c3 = (math.Sinh(sψ) - sψ) / (sψ * sψ * sψ)
		} else {
			c2 = 1 / 2.
			c3 = 1 / 6.
		}
	}
	if !converged {
		err = ErrLambert
		return
	}
	f := 1 - y/rI
	gDot := 1 - y/rF
	g := A * math.Sqrt(y/μ)
	Rf2 := mat.NewVecDense(3, nil)
	Vi.AddScaledVec(Rf, -f, Ri)
	Vi.ScaleVec(1/g, Vi)
	Rf2.ScaleVec(gDot, Rf)
	Vf.AddScaledVec(Rf2, -1, Ri)
	Vf.ScaleVec(1/g, Vf)
	return
}
