package astroprop

import "math"

// Force is anything which contributes an acceleration (km/s^2) to the equations of motion.
type Force interface {
	Acceleration(s State) []float64
}

// Gravity is the point mass attraction of the central body.
type Gravity struct {
	Mu float64
}

// NewGravity returns the point mass gravity of a body of gravitational parameter μ.
func NewGravity(μ float64) Gravity {
	return Gravity{μ}
}

// Acceleration implements the Force interface.
func (g Gravity) Acceleration(s State) []float64 {
	r := s.RNorm()
	return scale(-g.Mu/(r*r*r), s.R[:])
}

// ThirdBodyGravity is the perturbation of the Moon and/or the Sun on a geocentric orbit.
type ThirdBodyGravity struct {
	ephem     Ephemeris
	moon, sun bool
}

// NewThirdBodyGravity returns the third body perturbation of the enabled bodies.
func NewThirdBodyGravity(ephem Ephemeris, moon, sun bool) *ThirdBodyGravity {
	return &ThirdBodyGravity{ephem, moon, sun}
}

// Acceleration implements the Force interface.
func (t *ThirdBodyGravity) Acceleration(s State) []float64 {
	acc := make([]float64, 3)
	if t.moon {
		thirdBody(acc, s.R[:], t.ephem.MoonPosition(s.Epoch), MoonMu)
	}
	if t.sun {
		thirdBody(acc, s.R[:], t.ephem.SunPosition(s.Epoch), SunMu)
	}
	return acc
}

// thirdBody adds the direct minus indirect attraction of a body at rBody to acc.
func thirdBody(acc, r, rBody []float64, μ float64) {
	d := sub(rBody, r)
	dNorm3 := math.Pow(norm(d), 3)
	bNorm3 := math.Pow(norm(rBody), 3)
	for i := 0; i < 3; i++ {
		acc[i] += μ * (d[i]/dNorm3 - rBody[i]/bNorm3)
	}
}
