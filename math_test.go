package astroprop

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCross(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := []float64{0, 0, 1}
	if !vectorsEqual(cross(i, j), k) {
		t.Fatal("i x j != k")
	}
	if !vectorsEqual(cross(j, k), i) {
		t.Fatal("j x k != i")
	}
	if !vectorsEqual(Cross([]float64{2, 3, 4}, []float64{5, 6, 7}), []float64{-3, 6, -3}) {
		t.Fatal("cross fail")
	}
	// From Vallado
	if !vectorsEqual(cross([]float64{6524.834, 6862.875, 6448.296}, []float64{4.901327, 5.533756, -1.976341}), []float64{-4.924667792015100e4, 4.450050424118601e4, 0.246964476137900e4}) {
		t.Fatal("cross fail")
	}
}

func TestAngles(t *testing.T) {
	for i := 0.0; i < 360; i += 0.5 {
		if !scalar.EqualWithinAbs(i, Rad2deg(Deg2rad(i)), 1e-10) {
			t.Fatalf("incorrect conversion for %3.2f", i)
		}
	}
	if !scalar.EqualWithinAbs(Deg2rad(90), math.Pi/2, 1e-15) {
		t.Fatal("90 deg != π/2")
	}
	if ok, err := anglesEqual(Deg2rad(1), Deg2rad(-359.)); !ok {
		t.Fatalf("incorrect conversion for -359: %s", err)
	}
	if ok, err := anglesEqual(math.Pi/3, Deg2rad(Rad2deg(-5*math.Pi/3))); !ok {
		t.Fatalf("incorrect conversion for -5π/3: %s", err)
	}
}

func TestMisc(t *testing.T) {
	if vectorsEqual([]float64{1, 0}, []float64{1, 0, 0}) {
		t.Fatal("vectors of different sizes should not be equal")
	}
	if sign(10) != 1 || sign(-10) != -1 || sign(0) != 1 {
		t.Fatal("invalid sign")
	}
	nilVec := []float64{0, 0, 0}
	if norm(nilVec) != 0 {
		t.Fatal("norm of a nil vector was not nil")
	}
	five0 := []float64{5, 6, 7}
	if Norm(five0) != math.Sqrt(110) {
		t.Fatal("norm of [5, 6, 7] is invalid")
	}
	if !vectorsEqual(unit(nilVec), nilVec) {
		t.Fatal("unit of the nil vector should be the nil vector")
	}
	if !scalar.EqualWithinAbs(norm(unit(five0)), 1, 1e-15) {
		t.Fatal("unit vector is not unitary")
	}
	if dot(five0, []float64{1, 1, 1}) != 18 {
		t.Fatal("invalid dot product")
	}
	s := scale(2, five0)
	if !vectorsEqual(s, []float64{10, 12, 14}) || five0[0] != 5 {
		t.Fatal("scale should not modify its input")
	}
	if isFinite([]float64{1, math.NaN()}) || isFinite([]float64{math.Inf(-1)}) || !isFinite(five0) {
		t.Fatal("invalid finiteness")
	}
}
