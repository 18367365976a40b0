package astroprop

import "math"

// SolarPressure is the solar radiation pressure at one AU (N/m^2).
const SolarPressure = 4.56e-6

// SolarRadiationPressure is the acceleration of the solar flux on a spacecraft, including
// the penumbra and umbra of the Earth.
type SolarRadiationPressure struct {
	sun  Ephemeris
	mass float64 // kg
	area float64 // m^2
	cr   float64
}

// NewSolarRadiationPressure returns a new SRP force.
func NewSolarRadiationPressure(sun Ephemeris, mass, area, Cr float64) *SolarRadiationPressure {
	return &SolarRadiationPressure{sun, mass, area, Cr}
}

// Acceleration implements the Force interface.
func (p *SolarRadiationPressure) Acceleration(s State) []float64 {
	rSun := p.sun.SunPosition(s.Epoch)
	ratio := ShadowRatio(s.R[:], rSun)
	if ratio == 0 {
		return []float64{0, 0, 0}
	}
	d := sub(rSun, s.R[:])
	dNorm := norm(d)
	au := AU / dNorm
	mag := ratio * SolarPressure * au * au * p.cr * p.area / p.mass * 1e-3
	return scale(-mag/dNorm, d)
}

// ShadowRatio returns the visible fraction of the solar disk from position r (km) given the
// Sun position, using a conical shadow of the Earth: 1 in full sun, 0 in umbra.
func ShadowRatio(r, rSun []float64) float64 {
	d := sub(rSun, r)
	rNorm := norm(r)
	dNorm := norm(d)
	a := math.Asin(SunRadius / dNorm)
	b := math.Asin(EarthRadius / rNorm)
	cosc := -dot(r, d) / (rNorm * dNorm)
	c := acos(cosc)
	switch {
	case c >= a+b:
		return 1
	case c < b-a:
		return 0
	case c < a-b:
		// Annular: the Earth is entirely within the solar disk.
		return 1 - b*b/(a*a)
	}
	x := (c*c + a*a - b*b) / (2 * c)
	y := math.Sqrt(math.Max(0, a*a-x*x))
	area := a*a*acos(x/a) + b*b*acos((c-x)/b) - c*y
	return 1 - area/(math.Pi*a*a)
}
