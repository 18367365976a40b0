package astroprop

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPointMassGravity(t *testing.T) {
	s, _ := circularLEO()
	acc := NewGravity(EarthMu).Acceleration(s)
	if !floats.EqualApprox(acc, []float64{-EarthMu / (7000 * 7000), 0, 0}, 1e-15) {
		t.Fatalf("invalid point mass acceleration %v", acc)
	}
}

func TestThirdBodyGravity(t *testing.T) {
	// Sun on +X at 1 AU, Moon on +Y at 384400 km, spacecraft at 7000 km on +X.
	s, _ := circularLEO()
	for _, tc := range []struct {
		name      string
		moon, sun bool
		exp       []float64
	}{
		{"sun", false, true, []float64{5.550011931582355e-10, 0, 0}},
		{"moon", true, false, []float64{-6.039153892900064e-10, -1.6497495459305463e-11, 0}},
		{"both", true, true, []float64{-4.891419613177091e-11, -1.6497495459305463e-11, 0}},
		{"none", false, false, []float64{0, 0, 0}},
	} {
		acc := NewThirdBodyGravity(sunOnX, tc.moon, tc.sun).Acceleration(s)
		for i := range acc {
			if !scalar.EqualWithinAbs(acc[i], tc.exp[i], 1e-20) {
				t.Fatalf("%s: expected %v got %v", tc.name, tc.exp, acc)
			}
		}
	}
	// The perturbation is tidal: it vanishes at the center of the central body.
	center := NewState(0, []float64{0, 0, 0}, []float64{0, 0, 0})
	if !floats.Equal(NewThirdBodyGravity(sunOnX, true, true).Acceleration(center), []float64{0, 0, 0}) {
		t.Fatal("third body acceleration at the central body should be zero")
	}
}
