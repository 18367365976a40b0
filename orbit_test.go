package astroprop

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestElementsRV2COE(t *testing.T) {
	// Vallado, example 2-5.
	s := NewState(0, []float64{6524.834, 6862.875, 6448.296}, []float64{4.901327, 5.533756, -1.976341})
	o := NewElements(s, EarthMu)
	exp := Elements{36127.343, 0.832853, Deg2rad(87.869126), Deg2rad(227.898260), Deg2rad(53.384931), Deg2rad(92.335157), EarthMu}
	if !scalar.EqualWithinAbs(o.SMA, exp.SMA, 1e-2) || !scalar.EqualWithinAbs(o.Ecc, exp.Ecc, 1e-6) {
		t.Fatalf("invalid shape: %s", o)
	}
	for i, pair := range [][2]float64{{o.Inc, exp.Inc}, {o.RAAN, exp.RAAN}, {o.ArgPeri, exp.ArgPeri}, {o.TrueAnomaly, exp.TrueAnomaly}} {
		if !angleEqual(pair[0], pair[1], 1e-6) {
			t.Fatalf("angle #%d invalid: %f != %f", i, Rad2deg(pair[0]), Rad2deg(pair[1]))
		}
	}
	if !scalar.EqualWithinAbs(o.Energy(), -5.516604, 1e-6) {
		t.Fatalf("incorrect energy ξ=%f", o.Energy())
	}
	if !o.IsElliptical() || o.IsHyperbolic() {
		t.Fatal("orbit should be elliptical")
	}
}

func TestElementsRoundTrip(t *testing.T) {
	for _, o := range []Elements{
		{8000, 0.1, Deg2rad(45), Deg2rad(30), Deg2rad(60), Deg2rad(20), EarthMu},
		{42164, 0.3, Deg2rad(5), Deg2rad(300), Deg2rad(120), Deg2rad(200), EarthMu},
		{26600, 0.74, Deg2rad(63.4), Deg2rad(80), Deg2rad(270), Deg2rad(359), EarthMu},
		{-20000, 1.5, Deg2rad(120), Deg2rad(10), Deg2rad(10), Deg2rad(60), EarthMu},
	} {
		s := o.State(0)
		o1 := NewElements(s, EarthMu)
		if !o.Equals(o1, 1e-6, 1e-9) {
			t.Fatalf("round trip failed\n%s\n%s", o, o1)
		}
		if !s.Equals(o1.State(0), 1e-6, 1e-9) {
			t.Fatal("state round trip failed")
		}
	}
}

func TestElementsSingular(t *testing.T) {
	r := 7000.0
	v := math.Sqrt(EarthMu / r)
	sin30, cos30 := math.Sincos(Deg2rad(30))
	// Circular equatorial: the true anomaly is the true longitude.
	o := NewElements(NewState(0, []float64{r * cos30, r * sin30, 0}, []float64{-v * sin30, v * cos30, 0}), EarthMu)
	if o.Ecc > singularε || o.Inc != 0 || o.RAAN != 0 || o.ArgPeri != 0 {
		t.Fatalf("invalid circular equatorial elements: %s", o)
	}
	if ok, err := anglesEqual(o.TrueAnomaly, Deg2rad(30)); !ok {
		t.Fatalf("true longitude invalid: %s", err)
	}
	// Circular inclined: the true anomaly is the argument of latitude.
	o = NewElements(NewState(0, []float64{r, 0, 0}, []float64{0, v * cos30, v * sin30}), EarthMu)
	if o.Ecc > singularε || o.ArgPeri != 0 || o.RAAN != 0 {
		t.Fatalf("invalid circular inclined elements: %s", o)
	}
	if ok, err := anglesEqual(o.Inc, Deg2rad(30)); !ok {
		t.Fatalf("inclination invalid: %s", err)
	}
	o1 := Elements{r, 0, Deg2rad(30), Deg2rad(40), 0, Deg2rad(100), EarthMu}
	if o2 := NewElements(o1.State(0), EarthMu); !o1.Equals(o2, 1e-6, 1e-9) {
		t.Fatalf("argument of latitude invalid\n%s\n%s", o1, o2)
	}
	// Eccentric equatorial: the argument of periapsis is the longitude of periapsis.
	o1 = Elements{8000, 0.1, 0, 0, Deg2rad(75), Deg2rad(15), EarthMu}
	if o2 := NewElements(o1.State(0), EarthMu); !o1.Equals(o2, 1e-6, 1e-9) {
		t.Fatalf("longitude of periapsis invalid\n%s\n%s", o1, o2)
	}
	for _, s := range []State{
		NewState(0, []float64{r, 0, 0}, []float64{0, v, 0}),
		NewState(0, []float64{r, 0, 0}, []float64{0, -v, 0}),
		inclinedOrbit(),
	} {
		o := NewElements(s, EarthMu)
		for _, a := range []float64{o.Inc, o.RAAN, o.ArgPeri, o.TrueAnomaly, o.SMA, o.Ecc} {
			if math.IsNaN(a) {
				t.Fatalf("NaN in %s", o)
			}
		}
	}
}

func TestElementsPeriod(t *testing.T) {
	s, period := circularLEO()
	o := NewElements(s, EarthMu)
	P, err := o.Period()
	if err != nil || !scalar.EqualWithinAbs(P, period, 1e-6) {
		t.Fatalf("invalid period %f (%v)", P, err)
	}
	if !scalar.EqualWithinAbs(P, 5828.5166, 1e-3) {
		t.Fatalf("invalid LEO period %f", P)
	}
	hyp := Elements{-20000, 1.5, 0, 0, 0, 0, EarthMu}
	if _, err := hyp.Period(); !errors.Is(err, ErrUnboundOrbit) {
		t.Fatal("a hyperbola has no period")
	}
	if !math.IsInf(hyp.Apoapsis(), 1) || !scalar.EqualWithinAbs(hyp.Periapsis(), 10000, 1e-9) {
		t.Fatal("invalid hyperbolic radii")
	}
	if !hyp.IsHyperbolic() || hyp.IsElliptical() {
		t.Fatal("invalid hyperbolic classification")
	}
}

func TestSolveKepler(t *testing.T) {
	for _, e := range []float64{0, 0.01, 0.5, 0.9, 0.99} {
		for ν := 0.; ν < 2*math.Pi; ν += 0.1 {
			M := TrueToMean(ν, e)
			ν1, err := SolveKepler(M, e)
			if err != nil {
				t.Fatalf("e=%f ν=%f: %s", e, ν, err)
			}
			if !angleEqual(ν, ν1, 1e-9) {
				t.Fatalf("e=%f: ν=%f != %f", e, ν, ν1)
			}
		}
	}
	for _, e := range []float64{1.1, 2, 5} {
		νmax := math.Acos(-1/e) - 1e-2
		for ν := -νmax; ν < νmax; ν += 0.1 {
			ν1, err := SolveKepler(TrueToMean(ν, e), e)
			if err != nil || !scalar.EqualWithinAbs(ν, ν1, 1e-9) {
				t.Fatalf("e=%f: ν=%f != %f (%v)", e, ν, ν1, err)
			}
		}
	}
	if _, err := SolveKepler(1, 1); !errors.Is(err, ErrKeplerConvergence) {
		t.Fatal("parabolic orbits are not supported")
	}
}

func TestRadii2ae(t *testing.T) {
	a, e := Radii2ae(8800, 7200)
	if !scalar.EqualWithinAbs(a, 8000, 1e-12) || !scalar.EqualWithinAbs(e, 0.1, 1e-12) {
		t.Fatalf("a=%f e=%f", a, e)
	}
	mustPanic(t, "inverted radii", func() { Radii2ae(7200, 8800) })
}
