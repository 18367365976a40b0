package astroprop

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestR1R2R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r2 := R2(x)
	r3 := R3(x)
	// Test items equal to 1.
	if r1.At(0, 0) != r2.At(1, 1) || r1.At(0, 0) != r3.At(2, 2) || r3.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R2.At(1, 1) = R3.At(2, 2) = 1\n")
	}
	// Test items equal to 0.
	if r1.At(0, 1) != r1.At(0, 2) || r1.At(1, 0) != r1.At(2, 0) || r1.At(0, 1) != 0 {
		t.Fatal("misplaced zeros in R1\n")
	}
	if r2.At(0, 1) != r2.At(1, 2) || r2.At(1, 0) != r2.At(1, 2) || r2.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R2\n")
	}
	if r3.At(2, 0) != r3.At(2, 1) || r3.At(0, 2) != r3.At(1, 2) || r3.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R3\n")
	}
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced\n")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced\n")
	}
	if r2.At(0, 0) != r2.At(2, 2) || r2.At(2, 2) != c {
		t.Fatal("expected R2 cosines misplaced\n")
	}
	if r2.At(2, 0) != -r2.At(0, 2) || r2.At(2, 0) != s {
		t.Fatal("expected R2 sines misplaced\n")
	}
	if r3.At(1, 1) != r3.At(0, 0) || r3.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced\n")
	}
	if r3.At(0, 1) != -r3.At(1, 0) || r3.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced\n")
	}
	var id mat.Dense
	id.Mul(R3(x), R3(-x))
	if !mat.EqualApprox(&id, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-15) {
		t.Fatal("R3(x)R3(-x) is not the identity")
	}
}

func TestPQW2ECI(t *testing.T) {
	// Vallado example 2-6.
	i := Deg2rad(87.87)
	ω := Deg2rad(53.38)
	Ω := Deg2rad(227.89)
	Rp := PQW2ECI(i, ω, Ω, []float64{-466.7639, 11447.0219, 0})
	Re := []float64{6525.368103709379, 6861.531814548294, 6449.118636407358}
	if !floats.EqualApprox(Re, Rp, 1e-8) {
		t.Fatalf("R conversion failed: %v", Rp)
	}
	Vp := PQW2ECI(i, ω, Ω, []float64{-5.996222, 4.753601, 0})
	Ve := []float64{4.902278620687254, 5.533139558121602, -1.9757104281719946}
	if !floats.EqualApprox(Ve, Vp, 1e-12) {
		t.Fatalf("V conversion failed: %v", Vp)
	}
}

func TestRIC(t *testing.T) {
	s := inclinedOrbit()
	// The radial direction is the position, the cross-track direction the momentum.
	if !floats.EqualApprox(RIC2Inertial(s, []float64{1, 0, 0}), unit(s.R[:]), 1e-12) {
		t.Fatal("radial direction is not along R")
	}
	if !floats.EqualApprox(RIC2Inertial(s, []float64{0, 0, 1}), unit(cross(s.R[:], s.V[:])), 1e-12) {
		t.Fatal("cross-track direction is not along H")
	}
	intrack := RIC2Inertial(s, []float64{0, 1, 0})
	if dot(intrack, s.V[:]) <= 0 || math.Abs(dot(intrack, s.R[:])) > 1e-9 {
		t.Fatal("in-track direction should be prograde and orthogonal to R")
	}
	ric := []float64{1.5, -2, 0.25}
	if !floats.EqualApprox(Inertial2RIC(s, RIC2Inertial(s, ric)), ric, 1e-12) {
		t.Fatal("RIC round trip failed")
	}
}
