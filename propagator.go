package astroprop

import (
	"sort"

	kitlog "github.com/go-kit/kit/log"
)

// DefaultCheckpointCapacity is the default number of checkpoints a propagator can hold.
const DefaultCheckpointCapacity = 1024

// Propagator is the contract every consumer of the engine programs against.
// A propagator is not safe for concurrent use: use Clone to work in parallel.
type Propagator interface {
	// State returns the cached current state.
	State() State
	ForceModel() *ForceModel
	// Propagate moves the cached state to the provided epoch (forward or backward).
	Propagate(Epoch) (State, error)
	// Maneuver executes the thrust and returns the post-burn state if it is impulsive,
	// or the burn trajectory sampled every interval seconds otherwise.
	Maneuver(t Thrust, interval float64) ([]State, error)
	// Ephemeris returns the trajectory from start to stop (both included) every interval seconds.
	Ephemeris(start, stop Epoch, interval float64) ([]State, error)
	// EphemerisManeuver is Ephemeris which executes the provided burns along the way.
	EphemerisManeuver(start, stop Epoch, interval float64, burns []Thrust) ([]State, error)
	Checkpoint() (int, error)
	Restore(int) error
	ClearCheckpoints()
	// Reset returns to the construction state and drops all the checkpoints.
	Reset()
	// Clone returns an independent copy sharing only the read-only forces.
	Clone() Propagator
}

// rkCheckpoint is a saved cached state and the step size at that time.
type rkCheckpoint struct {
	state State
	step  float64
}

// impulseFrame is the RIC frame of the last impulsive burn and the state it produced.
// Impulses applied back to back at the same epoch share this frame.
type impulseFrame struct {
	frame, post State
	ok          bool
}

// propagator implements the Propagator logic shared by all the engines.
type propagator struct {
	engine        engine
	fm            *ForceModel
	state         State
	initial       State
	initialStep   float64
	checkpoints   []rkCheckpoint
	capacity      int
	impulsiveOnly bool // finite burns are executed at their center
	impulse       impulseFrame
	logger        kitlog.Logger
	metrics       *StepMetrics
}

func newPropagator(initial State, fm *ForceModel, e engine) propagator {
	if fm == nil {
		fm = NewTwoBodyForceModel(EarthMu)
	}
	return propagator{
		engine:      e,
		fm:          fm,
		state:       initial,
		initial:     initial,
		initialStep: e.stepSize(),
		capacity:    DefaultCheckpointCapacity,
		logger:      kitlog.NewNopLogger(),
	}
}

// SetLogger sets the logger of this propagator.
func (p *propagator) SetLogger(logger kitlog.Logger) {
	p.logger = logger
	p.engine.observe(p.logger, p.metrics)
}

// SetMetrics sets the metrics recorded by this propagator (nil disables them).
func (p *propagator) SetMetrics(m *StepMetrics) {
	p.metrics = m
	p.engine.observe(p.logger, p.metrics)
}

// SetCheckpointCapacity changes the maximum number of checkpoints.
func (p *propagator) SetCheckpointCapacity(n int) {
	p.capacity = n
}

// StepSize returns the magnitude of the next integration step in seconds.
func (p *propagator) StepSize() float64 {
	return p.engine.stepSize()
}

// State implements the Propagator interface.
func (p *propagator) State() State {
	return p.state
}

// ForceModel implements the Propagator interface.
func (p *propagator) ForceModel() *ForceModel {
	return p.fm
}

// Propagate implements the Propagator interface. On error, the cached state is the last
// one successfully reached.
func (p *propagator) Propagate(target Epoch) (State, error) {
	if !isFinite([]float64{float64(target)}) {
		return p.state, ErrEpoch
	}
	s, err := p.engine.advance(p.fm, p.state, target)
	p.state = s
	return s, err
}

// Maneuver implements the Propagator interface. Impulses executed back to back at the
// same epoch are all expressed in the RIC frame of the state before the first one, so
// that an opposite impulse restores the velocity.
func (p *propagator) Maneuver(t Thrust, interval float64) ([]State, error) {
	if t.IsImpulsive() || p.impulsiveOnly {
		if _, err := p.Propagate(t.Center); err != nil {
			return nil, err
		}
		frame := p.state
		if p.impulse.ok && p.impulse.post == p.state {
			frame = p.impulse.frame
		}
		p.state = t.ApplyInFrame(p.state, frame)
		p.impulse = impulseFrame{frame, p.state, true}
		p.logger.Log("level", "info", "subsys", "prop", "burn", t, "state", p.state)
		return []State{p.state}, nil
	}
	if interval <= 0 {
		return nil, ErrInterval
	}
	if _, err := p.Propagate(t.Start()); err != nil {
		return nil, err
	}
	p.logger.Log("level", "info", "subsys", "prop", "message", "ignition", "burn", t)
	p.fm.setManeuver(t)
	defer p.fm.clearManeuver()
	states := []State{p.state}
	more, err := p.sampleTo(t.Stop(), interval)
	states = append(states, more...)
	if err == nil {
		p.logger.Log("level", "info", "subsys", "prop", "message", "cut-off", "state", p.state)
	}
	return states, err
}

// sampleTo propagates to stop and returns the states every interval seconds after the
// current epoch, stop included.
func (p *propagator) sampleTo(stop Epoch, interval float64) ([]State, error) {
	start := p.state.Epoch
	span := stop.Sub(start)
	if span == 0 {
		return nil, nil
	}
	if span < 0 {
		interval = -interval
	}
	var states []State
	for k := 1; ; k++ {
		next := start.Roll(float64(k) * interval)
		if (span > 0 && !next.Before(stop)) || (span < 0 && !next.After(stop)) {
			next = stop
		}
		s, err := p.Propagate(next)
		if err != nil {
			return states, err
		}
		states = append(states, s)
		if next == stop {
			return states, nil
		}
	}
}

// Ephemeris implements the Propagator interface.
func (p *propagator) Ephemeris(start, stop Epoch, interval float64) ([]State, error) {
	return p.EphemerisManeuver(start, stop, interval, nil)
}

// EphemerisManeuver implements the Propagator interface. Burns which do not fit within
// [start, stop] are skipped. An impulsive burn yields two samples at its center, before
// and after the Δv.
func (p *propagator) EphemerisManeuver(start, stop Epoch, interval float64, burns []Thrust) ([]State, error) {
	if interval <= 0 || !isFinite([]float64{interval}) {
		return nil, ErrInterval
	}
	if !isFinite([]float64{float64(stop)}) {
		return nil, ErrEpoch
	}
	s, err := p.Propagate(start)
	if err != nil {
		return nil, err
	}
	states := []State{s}
	sorted := append([]Thrust(nil), burns...)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, _ := p.burnWindow(sorted[i])
		sj, _ := p.burnWindow(sorted[j])
		return si < sj
	})
	for _, t := range sorted {
		ignition, cutoff := p.burnWindow(t)
		if ignition.Before(p.state.Epoch) || cutoff.After(stop) || stop.Before(start) {
			p.logger.Log("level", "warning", "subsys", "prop", "message", "burn skipped", "burn", t)
			continue
		}
		more, err := p.sampleTo(ignition, interval)
		states = append(states, more...)
		if err != nil {
			return states, err
		}
		burn, err := p.Maneuver(t, interval)
		if len(burn) > 0 && !t.IsImpulsive() && !p.impulsiveOnly {
			// The first burn sample is the ignition state, already sampled.
			burn = burn[1:]
		}
		states = append(states, burn...)
		if err != nil {
			return states, err
		}
	}
	more, err := p.sampleTo(stop, interval)
	return append(states, more...), err
}

// burnWindow returns the epochs at which this propagator starts and ends the burn.
func (p *propagator) burnWindow(t Thrust) (Epoch, Epoch) {
	if p.impulsiveOnly {
		return t.Center, t.Center
	}
	return t.Start(), t.Stop()
}

// Checkpoint implements the Propagator interface.
func (p *propagator) Checkpoint() (int, error) {
	if len(p.checkpoints) >= p.capacity {
		return -1, ErrCheckpointCapacity
	}
	p.checkpoints = append(p.checkpoints, rkCheckpoint{p.state, p.engine.stepSize()})
	return len(p.checkpoints) - 1, nil
}

// Restore implements the Propagator interface.
func (p *propagator) Restore(i int) error {
	if i < 0 || i >= len(p.checkpoints) {
		return ErrCheckpointIndex
	}
	c := p.checkpoints[i]
	p.state = c.state
	p.engine.setStepSize(c.step)
	return nil
}

// ClearCheckpoints implements the Propagator interface.
func (p *propagator) ClearCheckpoints() {
	p.checkpoints = p.checkpoints[:0]
}

// Reset implements the Propagator interface.
func (p *propagator) Reset() {
	p.state = p.initial
	p.impulse = impulseFrame{}
	p.engine.setStepSize(p.initialStep)
	p.fm.clearManeuver()
	p.ClearCheckpoints()
}

// cloneBase returns a deep copy of everything but the forces.
func (p *propagator) cloneBase() propagator {
	c := *p
	c.engine = p.engine.clone()
	c.fm = p.fm.Clone()
	c.checkpoints = append([]rkCheckpoint(nil), p.checkpoints...)
	return c
}
