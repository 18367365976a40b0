package astroprop

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestMeeusEphemeris(t *testing.T) {
	e := EpochFromCalendar(2016, 7, 4)
	var eph MeeusEphemeris
	sun := norm(eph.SunPosition(e)) / AU
	if sun < 0.983 || sun > 1.017 {
		t.Fatalf("Sun distance of %f AU", sun)
	}
	moon := norm(eph.MoonPosition(e))
	if moon < 356000 || moon > 407000 {
		t.Fatalf("Moon distance of %f km", moon)
	}
	// Northern summer: the Sun is above the equator.
	if eph.SunPosition(e)[2] <= 0 {
		t.Fatal("Sun should have a positive declination in July")
	}
}

func TestEarthRotation(t *testing.T) {
	var f EarthRotation
	e := EpochFromCalendar(2017, 1, 1)
	R := []float64{7000, -1200, 3000}
	bf := f.ToBodyFixed(e, R)
	if !floats.EqualApprox(f.ToInertial(e, bf), R, 1e-12) {
		t.Fatal("body frame round trip failed")
	}
	if bf[2] != R[2] || !scalar.EqualWithinAbs(norm(bf), norm(R), 1e-9) {
		t.Fatal("rotation should be about the pole")
	}
	// One sidereal day later, the frame is back.
	later := e.Roll(2 * math.Pi / EarthRotationRate)
	if !floats.EqualApprox(f.ToBodyFixed(later, R), bf, 1e-4) {
		t.Fatal("GMST should rotate once per sidereal day")
	}
}

func TestGeodetic(t *testing.T) {
	alt, lat := Geodetic([]float64{EarthRadius + 400, 0, 0})
	if !scalar.EqualWithinAbs(alt, 400, 1e-9) || !scalar.EqualWithinAbs(lat, 0, 1e-12) {
		t.Fatalf("equator: alt=%f lat=%f", alt, lat)
	}
	polar := EarthRadius * (1 - EarthFlattening)
	alt, lat = Geodetic([]float64{0, 0, polar + 100})
	if !scalar.EqualWithinAbs(alt, 100, 1e-6) || !scalar.EqualWithinAbs(lat, math.Pi/2, 1e-12) {
		t.Fatalf("pole: alt=%f lat=%f", alt, lat)
	}
	// Geodetic latitude is further from the equator than geocentric latitude.
	_, lat = Geodetic([]float64{5000, 0, 5000})
	if lat <= math.Pi/4 {
		t.Fatalf("geodetic latitude %f should exceed 45 degrees", Rad2deg(lat))
	}
}
