package astroprop

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	// singularε is the threshold under which eccentricity and node vector norms are zero.
	singularε = 1e-11
	// parabolicε is the eccentricity distance to one under which an orbit is parabolic.
	parabolicε = 1e-9
)

// Elements are the classical orbital elements of a state about a central body.
// Angles are in radians. For circular orbits the argument of periapsis is zero and the
// true anomaly holds the argument of latitude (inclined) or the true longitude
// (equatorial). For equatorial orbits the right ascension is zero and the argument of
// periapsis holds the longitude of periapsis.
type Elements struct {
	SMA         float64 // km, negative for hyperbolas
	Ecc         float64
	Inc         float64
	RAAN        float64
	ArgPeri     float64
	TrueAnomaly float64
	Mu          float64
}

// NewElements returns the orbital elements of a state (Vallado's RV2COE).
func NewElements(s State, μ float64) Elements {
	R := s.R[:]
	V := s.V[:]
	hVec := cross(R, V)
	n := cross([]float64{0, 0, 1}, hVec)
	v := norm(V)
	r := norm(R)
	rv := dot(R, V)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v*v-μ/r)*R[i] - rv*V[i]) / μ
	}
	e := norm(eVec)
	h := norm(hVec)
	nNorm := norm(n)
	ξ := (v*v)/2 - μ/r
	a := math.Inf(1)
	if math.Abs(e-1) > parabolicε {
		a = -μ / (2 * ξ)
	}
	i := acos(hVec[2] / h)

	var Ω, ω, ν float64
	if nNorm > singularε {
		Ω = acos(n[0] / nNorm)
		if n[1] < 0 {
			Ω = 2*math.Pi - Ω
		}
	}
	switch {
	case e > singularε && nNorm > singularε:
		ω = acos(dot(n, eVec) / (nNorm * e))
		if eVec[2] < 0 {
			ω = 2*math.Pi - ω
		}
	case e > singularε:
		// Equatorial: longitude of periapsis.
		ω = math.Atan2(eVec[1]*sign(hVec[2]), eVec[0])
	}
	switch {
	case e > singularε:
		ν = acos(dot(eVec, R) / (e * r))
		if rv < 0 {
			ν = 2*math.Pi - ν
		}
	case nNorm > singularε:
		// Circular inclined: argument of latitude.
		ν = acos(dot(n, R) / (nNorm * r))
		if R[2] < 0 {
			ν = 2*math.Pi - ν
		}
	default:
		// Circular equatorial: true longitude.
		ν = math.Atan2(R[1]*sign(hVec[2]), R[0])
	}
	return Elements{a, e, i, wrap2π(Ω), wrap2π(ω), wrap2π(ν), μ}
}

// SemiParameter returns the semi latus rectum in km.
func (o Elements) SemiParameter() float64 {
	if math.IsInf(o.SMA, 0) {
		panic("semi parameter of a parabola is undefined from the elements")
	}
	return o.SMA * (1 - o.Ecc*o.Ecc)
}

// Energy returns the specific mechanical energy.
func (o Elements) Energy() float64 {
	return -o.Mu / (2 * o.SMA)
}

// Periapsis returns the periapsis radius in km.
func (o Elements) Periapsis() float64 {
	return o.SMA * (1 - o.Ecc)
}

// Apoapsis returns the apoapsis radius in km, or +Inf for open orbits.
func (o Elements) Apoapsis() float64 {
	if o.Ecc >= 1 {
		return math.Inf(1)
	}
	return o.SMA * (1 + o.Ecc)
}

// IsElliptical returns whether this orbit is closed.
func (o Elements) IsElliptical() bool {
	return o.Ecc < 1-parabolicε
}

// IsHyperbolic returns whether this orbit is a hyperbola.
func (o Elements) IsHyperbolic() bool {
	return o.Ecc > 1+parabolicε
}

// MeanMotion returns the mean motion in rad/s.
func (o Elements) MeanMotion() float64 {
	return math.Sqrt(o.Mu / math.Pow(math.Abs(o.SMA), 3))
}

// Period returns the period in seconds, or an error for open orbits.
func (o Elements) Period() (float64, error) {
	if !o.IsElliptical() {
		return 0, ErrUnboundOrbit
	}
	return 2 * math.Pi / o.MeanMotion(), nil
}

// MeanAnomaly returns the mean anomaly (hyperbolic for hyperbolas).
func (o Elements) MeanAnomaly() float64 {
	return TrueToMean(o.TrueAnomaly, o.Ecc)
}

// State returns the state at the provided epoch.
func (o Elements) State(epoch Epoch) State {
	p := o.SemiParameter()
	sinν, cosν := math.Sincos(o.TrueAnomaly)
	R := []float64{p * cosν / (1 + o.Ecc*cosν), p * sinν / (1 + o.Ecc*cosν), 0}
	vp := math.Sqrt(o.Mu / p)
	V := []float64{-vp * sinν, vp * (o.Ecc + cosν), 0}
	return NewState(epoch, PQW2ECI(o.Inc, o.ArgPeri, o.RAAN, R), PQW2ECI(o.Inc, o.ArgPeri, o.RAAN, V))
}

// Equals returns whether both element sets are within the provided tolerances (km and rad).
func (o Elements) Equals(o1 Elements, distTol, angleTol float64) bool {
	return scalar.EqualWithinAbs(o.SMA, o1.SMA, distTol) &&
		scalar.EqualWithinAbs(o.Ecc, o1.Ecc, 1e-9) &&
		angleEqual(o.Inc, o1.Inc, angleTol) &&
		angleEqual(o.RAAN, o1.RAAN, angleTol) &&
		angleEqual(o.ArgPeri, o1.ArgPeri, angleTol) &&
		angleEqual(o.TrueAnomaly, o1.TrueAnomaly, angleTol)
}

func (o Elements) String() string {
	return fmt.Sprintf("a=%.3f e=%.6f i=%.6f Ω=%.6f ω=%.6f ν=%.6f", o.SMA, o.Ecc, Rad2deg(o.Inc), Rad2deg(o.RAAN), Rad2deg(o.ArgPeri), Rad2deg(o.TrueAnomaly))
}

// TrueToMean converts a true anomaly to the mean anomaly.
func TrueToMean(ν, e float64) float64 {
	if e > 1 {
		H := 2 * math.Atanh(math.Sqrt((e-1)/(e+1))*math.Tan(ν/2))
		return e*math.Sinh(H) - H
	}
	E := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(ν/2), math.Sqrt(1+e)*math.Cos(ν/2))
	return wrap2π(E - e*math.Sin(E))
}

// SolveKepler returns the true anomaly of the provided mean anomaly by Newton iterations
// on Kepler's equation (elliptic or hyperbolic).
func SolveKepler(M, e float64) (ν float64, err error) {
	const tol = 1e-13
	switch {
	case math.Abs(e-1) <= parabolicε:
		return 0, fmt.Errorf("parabolic orbit: %w", ErrKeplerConvergence)
	case e < 1:
		M = wrap2π(M)
		E := M
		if e > 0.8 {
			E = math.Pi
		}
		for iter := 0; iter < 100; iter++ {
			δ := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
			E -= δ
			if math.Abs(δ) < tol {
				return wrap2π(2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))), nil
			}
		}
	default:
		H := math.Asinh(M / e)
		for iter := 0; iter < 100; iter++ {
			δ := (e*math.Sinh(H) - H - M) / (e*math.Cosh(H) - 1)
			H -= δ
			if math.Abs(δ) < tol {
				return 2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(H/2)), nil
			}
		}
	}
	return 0, ErrKeplerConvergence
}

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}

// acos is math.Acos with its argument clamped to [-1, 1].
func acos(x float64) float64 {
	return math.Acos(math.Max(-1, math.Min(1, x)))
}

func wrap2π(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func angleEqual(a, b, tol float64) bool {
	d := math.Abs(wrap2π(a) - wrap2π(b))
	return d <= tol || 2*math.Pi-d <= tol
}
