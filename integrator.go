package astroprop

import (
	"math"

	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/floats"
)

const (
	// MinStepSize is the smallest step the error control may propose, in seconds.
	MinStepSize = 1e-5
	// MaxStepSize is the largest step the error control may propose, in seconds.
	MaxStepSize = 1000.0
	// DefaultStepSize is the initial step of the propagators, in seconds.
	DefaultStepSize = 10.0
	// DefaultTolerance is the default local error tolerance of the adaptive propagators.
	DefaultTolerance = 1e-9

	safety    = 0.9
	minFactor = 0.2
	maxFactor = 5.0
)

// engine advances a state under a force model. The propagators share all the
// maneuver, sampling and checkpointing logic and only differ by their engine.
type engine interface {
	advance(fm *ForceModel, s State, target Epoch) (State, error)
	stepSize() float64
	setStepSize(h float64)
	observe(logger kitlog.Logger, metrics *StepMetrics)
	clone() engine
}

// rkResult is the outcome of a single Runge-Kutta step.
type rkResult struct {
	state    State
	err      float64 // local error estimate
	proposal float64 // proposed next step, signed like the step
}

// rkEngine integrates with any explicit Runge-Kutta tableau.
type rkEngine struct {
	tableau   *Tableau
	tolerance float64
	step      float64 // magnitude of the next step
	logger    kitlog.Logger
	metrics   *StepMetrics
}

func newRKEngine(tableau *Tableau, tolerance, step float64) *rkEngine {
	if tableau == nil {
		panic("nil tableau")
	}
	if step <= 0 || math.IsNaN(step) {
		panic("step size must be strictly positive")
	}
	return &rkEngine{tableau: tableau, tolerance: tolerance, step: step, logger: kitlog.NewNopLogger()}
}

func (rk *rkEngine) stepSize() float64 {
	return rk.step
}

func (rk *rkEngine) setStepSize(h float64) {
	rk.step = h
}

func (rk *rkEngine) observe(logger kitlog.Logger, metrics *StepMetrics) {
	rk.logger = logger
	rk.metrics = metrics
}

func (rk *rkEngine) clone() engine {
	c := *rk
	return &c
}

// integrate performs one step of size h (which may be negative) from s.
func (rk *rkEngine) integrate(fm *ForceModel, s State, h float64) rkResult {
	t := rk.tableau
	y0 := s.Vector()
	k := make([][]float64, t.Stages())
	yi := make([]float64, len(y0))
	for i := range k {
		copy(yi, y0)
		for j, bij := range t.Matrix[i] {
			if bij != 0 {
				floats.AddScaled(yi, bij, k[j])
			}
		}
		k[i] = fm.Derivative(StateFromVector(s.Epoch.Roll(t.Nodes[i]*h), yi))
		floats.Scale(h, k[i])
	}
	rk.metrics.evaluated(len(k))

	y1 := make([]float64, len(y0))
	copy(y1, y0)
	for i, ch := range t.High {
		if ch != 0 {
			floats.AddScaled(y1, ch, k[i])
		}
	}
	res := rkResult{state: StateFromVector(s.Epoch.Roll(h), y1), proposal: h}
	if !t.Adaptive() {
		return res
	}
	y2 := make([]float64, len(y0))
	copy(y2, y0)
	for i, c := range t.Low {
		if c != 0 {
			floats.AddScaled(y2, c, k[i])
		}
	}
	res.err = floats.Distance(y1, y2, 2)
	res.proposal = rk.propose(h, res.err)
	return res
}

// propose returns the next step size from the current one and its error.
func (rk *rkEngine) propose(h, err float64) float64 {
	factor := maxFactor
	if err > 0 {
		factor = safety * math.Pow(rk.tolerance/err, 1/float64(rk.tableau.Order))
		factor = math.Max(minFactor, math.Min(maxFactor, factor))
	}
	mag := math.Max(MinStepSize, math.Min(MaxStepSize, math.Abs(h)*factor))
	return math.Copysign(mag, h)
}

// advance integrates from s to the target epoch. The step covering the remainder is sized
// to land exactly on the target, which ends the loop. A step rejected at the minimum step
// size is accepted anyway with a warning.
func (rk *rkEngine) advance(fm *ForceModel, s State, target Epoch) (State, error) {
	for s.Epoch != target {
		remaining := target.Sub(s.Epoch)
		last := math.Abs(remaining) <= rk.step
		h := math.Copysign(math.Min(math.Abs(remaining), rk.step), remaining)
		res := rk.integrate(fm, s, h)
		if rk.tableau.Adaptive() {
			if res.err > rk.tolerance && math.Abs(h) > MinStepSize {
				rk.metrics.reject()
				rk.step = math.Abs(res.proposal)
				continue
			}
			if res.err > rk.tolerance {
				rk.logger.Log("level", "warning", "subsys", "prop", "message", "tolerance not reached at minimum step", "epoch", s.Epoch, "error", res.err)
			}
			rk.step = math.Abs(res.proposal)
		}
		if last {
			res.state.Epoch = target
		}
		if !res.state.Finite() {
			return s, &PropagationError{s.Epoch, ErrNonFinite}
		}
		rk.metrics.accept(math.Abs(h))
		if rk.tableau.Adaptive() {
			rk.metrics.estimated(res.err / rk.tolerance)
		}
		s = res.state
	}
	return s, nil
}
