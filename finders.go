package astroprop

import (
	"math"
)

const (
	finderSlices    = 8
	finderTolerance = 1e-4 // seconds
)

var invφ = (math.Sqrt(5) - 1) / 2

// AscendingNode returns the first ascending node crossing after start. The provided
// propagator is left untouched: the search runs on a clone.
func AscendingNode(p Propagator, start Epoch) (Epoch, State, error) {
	return findNode(p, start, true)
}

// DescendingNode returns the first descending node crossing after start.
func DescendingNode(p Propagator, start Epoch) (Epoch, State, error) {
	return findNode(p, start, false)
}

// Apogee returns the apoapsis passage within one period after start.
func Apogee(p Propagator, start Epoch) (Epoch, State, error) {
	return findApsis(p, start, true)
}

// Perigee returns the periapsis passage within one period after start.
func Perigee(p Propagator, start Epoch) (Epoch, State, error) {
	return findApsis(p, start, false)
}

// sampleOrbit propagates a clone to start and returns it with the epochs and states
// of one period in finderSlices slices.
func sampleOrbit(p Propagator, start Epoch) (Propagator, []State, error) {
	c := p.Clone()
	s, err := c.Propagate(start)
	if err != nil {
		return nil, nil, err
	}
	period, err := NewElements(s, CentralMu(c.ForceModel())).Period()
	if err != nil {
		return nil, nil, err
	}
	slice := period / finderSlices
	samples := []State{s}
	for k := 1; k <= finderSlices; k++ {
		s, err = c.Propagate(start.Roll(float64(k) * slice))
		if err != nil {
			return nil, nil, err
		}
		samples = append(samples, s)
	}
	return c, samples, nil
}

func findNode(p Propagator, start Epoch, ascending bool) (Epoch, State, error) {
	return findCrossing(p, start, ascending, func(s State) float64 {
		return s.R[2]
	}, func(s State) float64 {
		return math.Abs(s.R[2])
	})
}

// findApsis brackets the sign change of the radial velocity, which goes from negative to
// positive through the periapsis.
func findApsis(p Propagator, start Epoch, apoapsis bool) (Epoch, State, error) {
	sgn := 1.
	if apoapsis {
		sgn = -1
	}
	return findCrossing(p, start, !apoapsis, func(s State) float64 {
		return dot(s.R[:], s.V[:])
	}, func(s State) float64 {
		return sgn * s.RNorm()
	})
}

// findCrossing returns the first state over one period after start where g crosses zero in
// the requested direction, refined by minimizing f over the bracketing slice.
func findCrossing(p Propagator, start Epoch, rising bool, g, f func(State) float64) (Epoch, State, error) {
	c, samples, err := sampleOrbit(p, start)
	if err != nil {
		return 0, State{}, err
	}
	for k := 0; k < finderSlices; k++ {
		g0, g1 := g(samples[k]), g(samples[k+1])
		if g0*g1 > 0 || g0 == g1 || (g1 > g0) != rising {
			continue
		}
		if g0 == 0 {
			return samples[k].Epoch, samples[k], nil
		}
		return refine(c, samples[k], samples[k+1].Epoch, f)
	}
	return 0, State{}, ErrNoCrossing
}

// refine minimizes f over [from.Epoch, to] with a golden-section search, branching each
// evaluation from a checkpoint at from.
func refine(c Propagator, from State, to Epoch, f func(State) float64) (Epoch, State, error) {
	if _, err := c.Propagate(from.Epoch); err != nil {
		return 0, State{}, err
	}
	idx, err := c.Checkpoint()
	if err != nil {
		return 0, State{}, err
	}
	at := func(t float64) (State, error) {
		if err := c.Restore(idx); err != nil {
			return State{}, err
		}
		return c.Propagate(from.Epoch.Roll(t))
	}
	dt, err := goldenSection(func(t float64) (float64, error) {
		s, err := at(t)
		return f(s), err
	}, 0, to.Sub(from.Epoch), finderTolerance)
	if err != nil {
		return 0, State{}, err
	}
	s, err := at(dt)
	return s.Epoch, s, err
}

// goldenSection returns the abscissa minimizing the unimodal f over [a, b].
func goldenSection(f func(float64) (float64, error), a, b, tol float64) (float64, error) {
	x1 := b - invφ*(b-a)
	x2 := a + invφ*(b-a)
	f1, err := f(x1)
	if err != nil {
		return 0, err
	}
	f2, err := f(x2)
	if err != nil {
		return 0, err
	}
	for math.Abs(b-a) > tol {
		if f1 < f2 {
			b, x2, f2 = x2, x1, f1
			x1 = b - invφ*(b-a)
			if f1, err = f(x1); err != nil {
				return 0, err
			}
		} else {
			a, x1, f1 = x1, x2, f2
			x2 = a + invφ*(b-a)
			if f2, err = f(x2); err != nil {
				return 0, err
			}
		}
	}
	return (a + b) / 2, nil
}

// CentralMu returns the gravitational parameter of the central body of a force model,
// defaulting to the Earth's.
func CentralMu(fm *ForceModel) float64 {
	if fm == nil {
		return EarthMu
	}
	switch g := fm.CentralGravity().(type) {
	case Gravity:
		return g.Mu
	case *EarthGravity:
		return g.field.Mu()
	}
	return EarthMu
}
