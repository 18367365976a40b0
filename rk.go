package astroprop

// RungeKuttaAdaptive propagates with an embedded Runge-Kutta pair and adaptive step size.
type RungeKuttaAdaptive struct {
	propagator
	rk *rkEngine
}

// NewRungeKuttaAdaptive is the same as NewPreciseRungeKuttaAdaptive with the Dormand-Prince
// pair, the default tolerance and the default initial step. A nil force model is the point
// mass gravity of the Earth.
func NewRungeKuttaAdaptive(initial State, fm *ForceModel) *RungeKuttaAdaptive {
	return NewPreciseRungeKuttaAdaptive(initial, fm, DormandPrince54, DefaultTolerance, DefaultStepSize)
}

// NewPreciseRungeKuttaAdaptive returns a new adaptive propagator with custom tableau, tolerance
// and initial step size (in seconds). It panics if the tableau has no embedded error estimate.
func NewPreciseRungeKuttaAdaptive(initial State, fm *ForceModel, tableau *Tableau, tolerance, step float64) *RungeKuttaAdaptive {
	if tableau == nil || !tableau.Adaptive() {
		panic("adaptive propagation requires an embedded tableau")
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	rk := newRKEngine(tableau, tolerance, step)
	return &RungeKuttaAdaptive{newPropagator(initial, fm, rk), rk}
}

// Tableau returns the Butcher tableau of this propagator.
func (p *RungeKuttaAdaptive) Tableau() *Tableau {
	return p.rk.tableau
}

// Tolerance returns the local error tolerance.
func (p *RungeKuttaAdaptive) Tolerance() float64 {
	return p.rk.tolerance
}

// Clone implements the Propagator interface.
func (p *RungeKuttaAdaptive) Clone() Propagator {
	base := p.cloneBase()
	return &RungeKuttaAdaptive{base, base.engine.(*rkEngine)}
}

// RungeKutta4 propagates with the classical Runge-Kutta method at a fixed step.
type RungeKutta4 struct {
	propagator
}

// NewRungeKutta4 returns a new fixed step propagator. It panics if the step is not strictly positive.
func NewRungeKutta4(initial State, fm *ForceModel, step float64) *RungeKutta4 {
	return &RungeKutta4{newPropagator(initial, fm, newRKEngine(ClassicRK4, 0, step))}
}

// Clone implements the Propagator interface.
func (p *RungeKutta4) Clone() Propagator {
	return &RungeKutta4{p.cloneBase()}
}
