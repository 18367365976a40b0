package tools

import (
	"testing"

	"github.com/ChristopherRabotin/astroprop"
	"gonum.org/v1/gonum/floats"
)

func testOrbit() astroprop.State {
	return astroprop.Elements{
		SMA: 8000, Ecc: 0.05, Inc: astroprop.Deg2rad(40), RAAN: astroprop.Deg2rad(20),
		ArgPeri: astroprop.Deg2rad(70), TrueAnomaly: astroprop.Deg2rad(10), Mu: astroprop.EarthMu,
	}.State(0)
}

func j2ForceModel() *astroprop.ForceModel {
	return astroprop.NewForceModel().SetCentralGravity(astroprop.NewEarthGravity(astroprop.EGM96Degree4(), astroprop.EarthRotation{}, 2, 0))
}

func TestTargetPosition(t *testing.T) {
	s := testOrbit()
	for name, tc := range map[string]struct {
		p   astroprop.Propagator
		tol float64
	}{
		"kepler": {astroprop.NewKeplerPropagator(s, astroprop.EarthMu), 1e-4},
		"j2":     {astroprop.NewRungeKuttaAdaptive(s, j2ForceModel()), 1e-2},
	} {
		burn := astroprop.NewImpulsiveThrust(600, 5, 10, -3)
		ref := tc.p.Clone()
		if _, err := ref.Maneuver(burn, 0); err != nil {
			t.Fatal(err)
		}
		reached, err := ref.Propagate(2400)
		if err != nil {
			t.Fatal(err)
		}
		goal := PositionGoal{Epoch: 2400, R: reached.R[:]}
		got, err := NewTargeter(nil).TargetPosition(tc.p, 600, goal)
		if err != nil {
			t.Fatalf("%s: %s", name, err)
		}
		if got.Center != 600 || !got.IsImpulsive() {
			t.Fatalf("%s: invalid burn %s", name, got)
		}
		if !floats.EqualApprox(got.DeltaV(), burn.DeltaV(), tc.tol) {
			t.Fatalf("%s: expected %s got %s", name, burn, got)
		}
		if !tc.p.State().Equals(s, 0, 0) {
			t.Fatalf("%s: targeting moved the propagator", name)
		}
	}
}

func TestTargetPositionErrors(t *testing.T) {
	p := astroprop.NewKeplerPropagator(testOrbit(), astroprop.EarthMu)
	if _, err := NewTargeter(nil).TargetPosition(p, 600, PositionGoal{Epoch: 600, R: []float64{8000, 0, 0}}); err == nil {
		t.Fatal("a goal at the burn epoch should fail")
	}
}
