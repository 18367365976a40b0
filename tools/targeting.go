package tools

import (
	"errors"
	"fmt"

	"github.com/ChristopherRabotin/astroprop"
	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultTargetTolerance is the default position miss distance, in km.
	DefaultTargetTolerance = 1e-5
	targetMaxIterations    = 25
	targetPerturbation     = 1e-3 // m/s
)

// ErrTargetConvergence is returned when the corrector does not reach the goal.
var ErrTargetConvergence = errors.New("targeting did not converge")

// PositionGoal is a position to reach at an epoch.
type PositionGoal struct {
	Epoch     astroprop.Epoch
	R         []float64 // km, inertial
	Tolerance float64   // km, DefaultTargetTolerance if unset
}

// Targeter finds the impulsive burn which reaches a position goal.
type Targeter struct {
	logger kitlog.Logger
}

// NewTargeter returns a new targeter. A nil logger discards everything.
func NewTargeter(logger kitlog.Logger) *Targeter {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Targeter{kitlog.With(logger, "subsys", "target")}
}

// TargetPosition returns the impulsive RIC burn at the provided epoch which brings the
// spacecraft to the goal position. The initial guess is the two body Lambert solution,
// refined by a differential corrector on the full force model of the propagator. The
// search runs on a clone so the provided propagator is left untouched.
func (tg *Targeter) TargetPosition(p astroprop.Propagator, burn astroprop.Epoch, goal PositionGoal) (astroprop.Thrust, error) {
	tol := goal.Tolerance
	if tol <= 0 {
		tol = DefaultTargetTolerance
	}
	if !goal.Epoch.After(burn) {
		return astroprop.Thrust{}, fmt.Errorf("goal epoch %s is not after the burn %s", goal.Epoch, burn)
	}
	c := p.Clone()
	s, err := c.Propagate(burn)
	if err != nil {
		return astroprop.Thrust{}, err
	}
	idx, err := c.Checkpoint()
	if err != nil {
		return astroprop.Thrust{}, err
	}
	// miss returns the goal position minus the reached one.
	miss := func(Δv []float64) ([]float64, error) {
		if err := c.Restore(idx); err != nil {
			return nil, err
		}
		if _, err := c.Maneuver(astroprop.NewImpulsiveThrust(burn, Δv[0], Δv[1], Δv[2]), 0); err != nil {
			return nil, err
		}
		reached, err := c.Propagate(goal.Epoch)
		if err != nil {
			return nil, err
		}
		return []float64{goal.R[0] - reached.R[0], goal.R[1] - reached.R[1], goal.R[2] - reached.R[2]}, nil
	}

	Δv := tg.lambertGuess(s, goal, astroprop.CentralMu(c.ForceModel()))
	for iter := 0; iter < targetMaxIterations; iter++ {
		δR, err := miss(Δv)
		if err != nil {
			return astroprop.Thrust{}, err
		}
		dist := floats.Norm(δR, 2)
		tg.logger.Log("level", "debug", "iter", iter, "miss", dist, "Δv", fmt.Sprintf("%v", Δv))
		if dist < tol {
			tg.logger.Log("level", "info", "iterations", iter, "miss", dist, "Δv", floats.Norm(Δv, 2))
			return astroprop.NewImpulsiveThrust(burn, Δv[0], Δv[1], Δv[2]), nil
		}
		// Finite difference Jacobian of the reached position with respect to the Δv.
		jacob := mat.NewDense(3, 3, nil)
		for j := 0; j < 3; j++ {
			pert := append([]float64(nil), Δv...)
			pert[j] += targetPerturbation
			δRj, err := miss(pert)
			if err != nil {
				return astroprop.Thrust{}, err
			}
			for i := 0; i < 3; i++ {
				jacob.Set(i, j, (δR[i]-δRj[i])/targetPerturbation)
			}
		}
		var correction mat.VecDense
		if err := correction.SolveVec(jacob, mat.NewVecDense(3, δR)); err != nil {
			return astroprop.Thrust{}, fmt.Errorf("singular targeting Jacobian: %w", err)
		}
		for i := 0; i < 3; i++ {
			Δv[i] += correction.AtVec(i)
		}
	}
	return astroprop.Thrust{}, ErrTargetConvergence
}

// lambertGuess returns the two body RIC Δv in m/s, or a null guess if Lambert fails.
func (tg *Targeter) lambertGuess(s astroprop.State, goal PositionGoal, μ float64) []float64 {
	h := astroprop.Cross(s.R[:], s.V[:])
	dm := 1.
	if floats.Dot(astroprop.Cross(s.R[:], goal.R), h) < 0 {
		dm = -1
	}
	Vi, _, _, err := Lambert(mat.NewVecDense(3, append([]float64(nil), s.R[:]...)), mat.NewVecDense(3, append([]float64(nil), goal.R...)), goal.Epoch.Sub(s.Epoch), dm, μ)
	if err != nil {
		tg.logger.Log("level", "warning", "msg", "no Lambert guess", "err", err)
		return []float64{0, 0, 0}
	}
	Δv := make([]float64, 3)
	for i := 0; i < 3; i++ {
		Δv[i] = (Vi.AtVec(i) - s.V[i]) * 1e3
	}
	return astroprop.Inertial2RIC(s, Δv)
}
