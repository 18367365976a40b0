package astroprop

import (
	kitlog "github.com/go-kit/kit/log"
)

// KeplerPropagator propagates in closed form around a point mass. Its force model only
// reports the central gravity and finite burns are applied impulsively at their center,
// which makes it a cheap low fidelity stand-in for the numerical propagators.
type KeplerPropagator struct {
	propagator
}

// NewKeplerPropagator returns a new two body propagator about a body of parameter μ.
func NewKeplerPropagator(initial State, μ float64) *KeplerPropagator {
	p := newPropagator(initial, NewTwoBodyForceModel(μ), &keplerEngine{μ})
	p.impulsiveOnly = true
	return &KeplerPropagator{p}
}

// Elements returns the current orbital elements.
func (p *KeplerPropagator) Elements() Elements {
	return NewElements(p.state, p.engine.(*keplerEngine).mu)
}

// Clone implements the Propagator interface.
func (p *KeplerPropagator) Clone() Propagator {
	return &KeplerPropagator{p.cloneBase()}
}

type keplerEngine struct {
	mu float64
}

func (k *keplerEngine) advance(_ *ForceModel, s State, target Epoch) (State, error) {
	if s.Epoch == target {
		return s, nil
	}
	o := NewElements(s, k.mu)
	if !o.IsElliptical() && !o.IsHyperbolic() {
		return s, &PropagationError{s.Epoch, ErrUnboundOrbit}
	}
	M := o.MeanAnomaly() + o.MeanMotion()*target.Sub(s.Epoch)
	ν, err := SolveKepler(M, o.Ecc)
	if err != nil {
		return s, &PropagationError{s.Epoch, err}
	}
	o.TrueAnomaly = ν
	next := o.State(target)
	if !next.Finite() {
		return s, &PropagationError{s.Epoch, ErrNonFinite}
	}
	return next, nil
}

func (k *keplerEngine) stepSize() float64 { return 0 }

func (k *keplerEngine) setStepSize(float64) {}

func (k *keplerEngine) observe(kitlog.Logger, *StepMetrics) {}

func (k *keplerEngine) clone() engine {
	c := *k
	return &c
}
