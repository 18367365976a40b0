package astroprop

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const eps = 1e-9

// vectorsEqual returns whether two vectors are equal within a relative eps.
func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !scalar.EqualWithinAbsOrRel(a[i], b[i], eps, eps) {
			return false
		}
	}
	return true
}

// anglesEqual returns whether two angles in radians are equal.
func anglesEqual(a, b float64) (bool, error) {
	diff := math.Abs(a - b)
	if diff < eps || math.Abs(diff-2*math.Pi) < eps {
		return true, nil
	}
	return false, fmt.Errorf("difference of %3.10fπ", diff/math.Pi)
}

// fixedEphemeris places the Sun and the Moon at fixed inertial positions.
type fixedEphemeris struct {
	sun, moon []float64
}

func (f fixedEphemeris) SunPosition(Epoch) []float64  { return f.sun }
func (f fixedEphemeris) MoonPosition(Epoch) []float64 { return f.moon }

// sunOnX is a fixed ephemeris with the Sun on the +X axis at 1 AU.
var sunOnX = fixedEphemeris{sun: []float64{AU, 0, 0}, moon: []float64{0, 384400, 0}}

// identityFrame is a body fixed frame aligned with the inertial frame which does not rotate.
type identityFrame struct{}

func (identityFrame) ToBodyFixed(_ Epoch, R []float64) []float64 { return append([]float64(nil), R...) }
func (identityFrame) ToInertial(_ Epoch, R []float64) []float64  { return append([]float64(nil), R...) }
func (identityFrame) RotationRate() float64                      { return 0 }

// circularLEO returns the r = 7000 km circular orbit and its period.
func circularLEO() (State, float64) {
	r := 7000.0
	v := math.Sqrt(EarthMu / r)
	return NewState(0, []float64{r, 0, 0}, []float64{0, v, 0}), 2 * math.Pi * math.Sqrt(r*r*r/EarthMu)
}

// inclinedOrbit returns an eccentric inclined orbit starting past its ascending node.
func inclinedOrbit() State {
	return Elements{SMA: 8000, Ecc: 0.1, Inc: Deg2rad(45), RAAN: Deg2rad(30), ArgPeri: Deg2rad(60), TrueAnomaly: Deg2rad(20), Mu: EarthMu}.State(0)
}
