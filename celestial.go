package astroprop

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
	// EarthMu is the gravitational parameter of the Earth (km^3/s^2).
	EarthMu = 398600.4415
	// EarthRadius is the equatorial radius of the Earth (km).
	EarthRadius = 6378.1363
	// EarthFlattening is the flattening of the reference ellipsoid.
	EarthFlattening = 1 / 298.257223563
	// EarthRotationRate is the average Earth rotation rate in radians per second.
	EarthRotationRate = 7.2921158553e-5
	// MoonMu is the gravitational parameter of the Moon (km^3/s^2).
	MoonMu = 4902.800066
	// SunMu is the gravitational parameter of the Sun (km^3/s^2).
	SunMu = 1.32712440017987e11
	// SunRadius is the radius of the Sun (km).
	SunRadius = 695700.0
)

// Ephemeris returns the geocentric inertial positions (km) of the Sun and the Moon.
type Ephemeris interface {
	SunPosition(Epoch) []float64
	MoonPosition(Epoch) []float64
}

// BodyFrame converts between the inertial frame and the frame fixed to the central body.
type BodyFrame interface {
	ToBodyFixed(e Epoch, R []float64) []float64
	ToInertial(e Epoch, R []float64) []float64
	RotationRate() float64 // rad/s about the third axis
}

// MeeusEphemeris computes the Sun and Moon positions from Meeus' analytical theories.
// Those are apparent positions of date, which is plenty for perturbation modeling.
type MeeusEphemeris struct{}

// SunPosition implements the Ephemeris interface.
func (MeeusEphemeris) SunPosition(e Epoch) []float64 {
	jde := e.JD()
	α, δ := solar.ApparentEquatorial(jde)
	r := solar.Radius(base.J2000Century(jde)) * AU
	return radec2cartesian(r, α.Rad(), δ.Rad())
}

// MoonPosition implements the Ephemeris interface.
func (MeeusEphemeris) MoonPosition(e Epoch) []float64 {
	jde := e.JD()
	λ, β, Δ := moonposition.Position(jde)
	sε, cε := math.Sincos(nutation.MeanObliquity(jde).Rad())
	α, δ := coord.EclToEq(λ, β, sε, cε)
	return radec2cartesian(Δ, α.Rad(), δ.Rad())
}

func radec2cartesian(r, α, δ float64) []float64 {
	sα, cα := math.Sincos(α)
	sδ, cδ := math.Sincos(δ)
	return []float64{r * cδ * cα, r * cδ * sα, r * sδ}
}

// EarthRotation rotates about the pole by the Greenwich mean sidereal time.
// Precession, nutation and polar motion are ignored.
type EarthRotation struct{}

// GMST returns the Greenwich mean sidereal angle in radians.
func (EarthRotation) GMST(e Epoch) float64 {
	return float64(sidereal.Mean(e.JD())) * 2 * math.Pi / secondsPerDay
}

// ToBodyFixed implements the BodyFrame interface.
func (f EarthRotation) ToBodyFixed(e Epoch, R []float64) []float64 {
	return MxV33(R3(f.GMST(e)), R)
}

// ToInertial implements the BodyFrame interface.
func (f EarthRotation) ToInertial(e Epoch, R []float64) []float64 {
	return MxV33(R3(-f.GMST(e)), R)
}

// RotationRate implements the BodyFrame interface.
func (EarthRotation) RotationRate() float64 {
	return EarthRotationRate
}

// Geodetic returns the geodetic altitude (km) and latitude (rad) of a body fixed vector,
// using the Earth reference ellipsoid.
func Geodetic(rBF []float64) (altitude, latitude float64) {
	e2 := EarthFlattening * (2 - EarthFlattening)
	x, y, z := rBF[0], rBF[1], rBF[2]
	ρ2 := x*x + y*y
	dz := e2 * z
	var zdz, nh, N float64
	for iter := 0; iter < 20; iter++ {
		zdz = z + dz
		nh = math.Sqrt(ρ2 + zdz*zdz)
		sinφ := zdz / nh
		N = EarthRadius / math.Sqrt(1-e2*sinφ*sinφ)
		dzNew := N * e2 * sinφ
		if math.Abs(dz-dzNew) < 1e-9 {
			dz = dzNew
			break
		}
		dz = dzNew
	}
	zdz = z + dz
	nh = math.Sqrt(ρ2 + zdz*zdz)
	latitude = math.Atan2(zdz, math.Sqrt(ρ2))
	altitude = nh - N
	return
}
