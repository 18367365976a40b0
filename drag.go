package astroprop

import (
	"math"
	"sort"
)

const (
	// bulgeLag is the lag of the diurnal density bulge behind the Sun right ascension.
	bulgeLag = 30 * deg2rad
	// DefaultCosinePower is the Harris-Priester exponent for low inclination orbits.
	DefaultCosinePower = 2
)

// DensityBracket holds the two table rows surrounding an altitude. Densities are in g/km^3.
type DensityBracket struct {
	H0, H1     float64 // km
	Min0, Min1 float64
	Max0, Max1 float64
}

// Interpolate returns the minimum and maximum densities at the provided altitude,
// assuming an exponential decay between both rows.
func (b DensityBracket) Interpolate(altitude float64) (ρmin, ρmax float64) {
	hMin := (b.H0 - b.H1) / math.Log(b.Min1/b.Min0)
	hMax := (b.H0 - b.H1) / math.Log(b.Max1/b.Max0)
	ρmin = b.Min0 * math.Exp((b.H0-altitude)/hMin)
	ρmax = b.Max0 * math.Exp((b.H0-altitude)/hMax)
	return
}

// Atmosphere is a read-only density table.
type Atmosphere interface {
	// Bracket returns the rows surrounding the altitude (km), and false if the altitude
	// is outside of the table.
	Bracket(altitude float64) (DensityBracket, bool)
}

// DensityTable is an Atmosphere of tabulated minimum and maximum densities.
type DensityTable struct {
	h, min, max []float64
}

// NewDensityTable returns a new table. Altitudes must be strictly increasing.
func NewDensityTable(h, min, max []float64) *DensityTable {
	if len(h) != len(min) || len(h) != len(max) || len(h) < 2 {
		panic("density table columns must have the same length of at least two")
	}
	return &DensityTable{h, min, max}
}

// Bracket implements the Atmosphere interface.
func (t *DensityTable) Bracket(altitude float64) (DensityBracket, bool) {
	last := len(t.h) - 1
	if altitude < t.h[0] || altitude >= t.h[last] {
		return DensityBracket{}, false
	}
	// Index of the first altitude strictly above.
	i := sort.Search(len(t.h), func(i int) bool { return t.h[i] > altitude }) - 1
	return DensityBracket{t.h[i], t.h[i+1], t.min[i], t.min[i+1], t.max[i], t.max[i+1]}, true
}

// HarrisPriester returns the Harris-Priester density table for mean solar activity
// (Montenbruck & Gill, table 3.8).
func HarrisPriester() *DensityTable {
	h := []float64{
		100, 120, 130, 140, 150, 160, 170, 180, 190, 200,
		210, 220, 230, 240, 250, 260, 270, 280, 290, 300,
		320, 340, 360, 380, 400, 420, 440, 460, 480, 500,
		520, 540, 560, 580, 600, 620, 640, 660, 680, 700,
		720, 740, 760, 780, 800, 840, 880, 920, 960, 1000,
	}
	min := []float64{
		4.974e+05, 2.490e+04, 8.377e+03, 3.899e+03, 2.122e+03, 1.263e+03, 8.008e+02, 5.283e+02, 3.617e+02, 2.557e+02,
		1.839e+02, 1.341e+02, 9.949e+01, 7.488e+01, 5.709e+01, 4.403e+01, 3.430e+01, 2.697e+01, 2.139e+01, 1.708e+01,
		1.099e+01, 7.214e+00, 4.824e+00, 3.274e+00, 2.249e+00, 1.558e+00, 1.091e+00, 7.701e-01, 5.474e-01, 3.916e-01,
		2.819e-01, 2.042e-01, 1.488e-01, 1.092e-01, 8.070e-02, 6.012e-02, 4.519e-02, 3.430e-02, 2.632e-02, 2.043e-02,
		1.607e-02, 1.281e-02, 1.036e-02, 8.496e-03, 7.069e-03, 4.680e-03, 3.200e-03, 2.210e-03, 1.560e-03, 1.150e-03,
	}
	max := []float64{
		4.974e+05, 2.490e+04, 8.710e+03, 4.059e+03, 2.215e+03, 1.344e+03, 8.758e+02, 6.010e+02, 4.297e+02, 3.162e+02,
		2.396e+02, 1.853e+02, 1.455e+02, 1.157e+02, 9.308e+01, 7.555e+01, 6.182e+01, 5.095e+01, 4.226e+01, 3.526e+01,
		2.511e+01, 1.819e+01, 1.337e+01, 9.955e+00, 7.492e+00, 5.684e+00, 4.355e+00, 3.362e+00, 2.612e+00, 2.042e+00,
		1.605e+00, 1.267e+00, 1.005e+00, 7.997e-01, 6.390e-01, 5.123e-01, 4.121e-01, 3.325e-01, 2.691e-01, 2.185e-01,
		1.779e-01, 1.452e-01, 1.190e-01, 9.776e-02, 8.059e-02, 5.741e-02, 4.210e-02, 3.130e-02, 2.360e-02, 1.810e-02,
	}
	return NewDensityTable(h, min, max)
}

// AtmosphericDrag is the Harris-Priester drag on a spacecraft.
type AtmosphericDrag struct {
	atmosphere Atmosphere
	frame      BodyFrame
	sun        Ephemeris
	mass       float64 // kg
	area       float64 // m^2
	cd         float64
	n          float64 // cosine power
}

// NewAtmosphericDrag returns a new drag force. A cosine power of zero is replaced
// by DefaultCosinePower.
func NewAtmosphericDrag(atmosphere Atmosphere, frame BodyFrame, sun Ephemeris, mass, area, Cd, cosinePower float64) *AtmosphericDrag {
	if cosinePower <= 0 {
		cosinePower = DefaultCosinePower
	}
	return &AtmosphericDrag{atmosphere, frame, sun, mass, area, Cd, cosinePower}
}

// Density returns the atmospheric density in kg/km^3 at the spacecraft position.
func (d *AtmosphericDrag) Density(s State) float64 {
	altitude, _ := Geodetic(d.frame.ToBodyFixed(s.Epoch, s.R[:]))
	bracket, ok := d.atmosphere.Bracket(altitude)
	if !ok {
		return 0
	}
	ρmin, ρmax := bracket.Interpolate(altitude)
	// Apex of the diurnal bulge.
	rSun := d.sun.SunPosition(s.Epoch)
	α := math.Atan2(rSun[1], rSun[0])
	δ := math.Atan2(rSun[2], math.Sqrt(rSun[0]*rSun[0]+rSun[1]*rSun[1]))
	sδ, cδ := math.Sincos(δ)
	sα, cα := math.Sincos(α + bulgeLag)
	eb := []float64{cδ * cα, cδ * sα, sδ}
	cosψ2 := 0.5 + 0.5*dot(s.R[:], eb)/s.RNorm()
	ρ := ρmin + (ρmax-ρmin)*math.Pow(cosψ2, d.n/2)
	return ρ * 1e-3
}

// Acceleration implements the Force interface.
func (d *AtmosphericDrag) Acceleration(s State) []float64 {
	ρ := d.Density(s)
	if ρ == 0 {
		return []float64{0, 0, 0}
	}
	ω := []float64{0, 0, d.frame.RotationRate()}
	vRel := sub(s.V[:], cross(ω, s.R[:]))
	return scale(-0.5*ρ*d.cd*d.area*1e-6/d.mass*norm(vRel), vRel)
}
