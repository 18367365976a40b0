package tools

import (
	"context"
	"errors"
	"math"
	"runtime"

	"github.com/ChristopherRabotin/astroprop"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

const stateSize = 6

// ErrCovariance is returned for a covariance which is not symmetric positive definite.
var ErrCovariance = errors.New("covariance is not positive definite")

// PropagatorFactory returns a new propagator starting at the provided state. Each
// sample is propagated by its own instance.
type PropagatorFactory func(astroprop.State) astroprop.Propagator

// SigmaPoints returns the 2n symmetric sigma points of a mean state and its 6x6 covariance
// (km and km/s): the mean plus or minus the columns of the Cholesky factor scaled by √n.
func SigmaPoints(mean astroprop.State, cov *mat.SymDense) ([]astroprop.State, error) {
	if n, _ := cov.Dims(); n != stateSize {
		return nil, errors.New("covariance must be 6x6")
	}
	var chol mat.Cholesky
	if !chol.Factorize(cov) {
		return nil, ErrCovariance
	}
	var L mat.TriDense
	chol.LTo(&L)
	x := mean.Vector()
	γ := math.Sqrt(stateSize)
	points := make([]astroprop.State, 0, 2*stateSize)
	for j := 0; j < stateSize; j++ {
		plus := make([]float64, stateSize)
		minus := make([]float64, stateSize)
		for i := 0; i < stateSize; i++ {
			plus[i] = x[i] + γ*L.At(i, j)
			minus[i] = x[i] - γ*L.At(i, j)
		}
		points = append(points, astroprop.StateFromVector(mean.Epoch, plus), astroprop.StateFromVector(mean.Epoch, minus))
	}
	return points, nil
}

// PropagateSigmaPoints propagates the sigma points of the mean and covariance to the
// provided epoch, each on an independent propagator, and returns the recombined mean and
// covariance.
func PropagateSigmaPoints(ctx context.Context, newProp PropagatorFactory, mean astroprop.State, cov *mat.SymDense, epoch astroprop.Epoch) (astroprop.State, *mat.SymDense, error) {
	points, err := SigmaPoints(mean, cov)
	if err != nil {
		return astroprop.State{}, nil, err
	}
	propagated, err := propagateAll(ctx, newProp, points, epoch)
	if err != nil {
		return astroprop.State{}, nil, err
	}
	m, P := recombine(propagated)
	return astroprop.StateFromVector(epoch, m), P, nil
}

// propagateAll propagates each state to the epoch concurrently.
func propagateAll(ctx context.Context, newProp PropagatorFactory, states []astroprop.State, epoch astroprop.Epoch) ([]astroprop.State, error) {
	out := make([]astroprop.State, len(states))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, s := range states {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := newProp(s).Propagate(epoch)
			if err != nil {
				return err
			}
			out[i] = st
			return nil
		})
	}
	return out, g.Wait()
}

// recombine returns the equally weighted sample mean and covariance.
func recombine(states []astroprop.State) ([]float64, *mat.SymDense) {
	w := 1 / float64(len(states))
	m := make([]float64, stateSize)
	for _, s := range states {
		x := s.Vector()
		for i := range m {
			m[i] += w * x[i]
		}
	}
	P := mat.NewSymDense(stateSize, nil)
	δ := mat.NewVecDense(stateSize, nil)
	for _, s := range states {
		x := s.Vector()
		for i := range m {
			δ.SetVec(i, x[i]-m[i])
		}
		P.SymRankOne(P, w, δ)
	}
	return m, P
}

// Dispersions returns n Monte Carlo samples of the initial state drawn from the normal
// distribution of the mean and covariance. A nil source uses the global one.
func Dispersions(mean astroprop.State, cov *mat.SymDense, n int, src rand.Source) ([]astroprop.State, error) {
	normal, ok := distmv.NewNormal(mean.Vector(), cov, src)
	if !ok {
		return nil, ErrCovariance
	}
	samples := make([]astroprop.State, n)
	for k := range samples {
		samples[k] = astroprop.StateFromVector(mean.Epoch, normal.Rand(nil))
	}
	return samples, nil
}

// PropagateDispersions propagates Monte Carlo samples to the epoch concurrently and
// returns the final states in the same order.
func PropagateDispersions(ctx context.Context, newProp PropagatorFactory, samples []astroprop.State, epoch astroprop.Epoch) ([]astroprop.State, error) {
	return propagateAll(ctx, newProp, samples, epoch)
}
