package astroprop

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// State stores the position (km) and velocity (km/s) of a spacecraft at an epoch, in the
// inertial frame. It is a value: the arrays are copied on assignment, so no
// transformation can alter a State held by someone else.
type State struct {
	Epoch Epoch
	R     [3]float64
	V     [3]float64
}

// NewState returns a new State from the provided slices (only the first three items
// of each are used).
func NewState(epoch Epoch, R, V []float64) State {
	s := State{Epoch: epoch}
	copy(s.R[:], R)
	copy(s.V[:], V)
	return s
}

// StateFromVector builds a State from a [R V] vector.
func StateFromVector(epoch Epoch, y []float64) State {
	return NewState(epoch, y[0:3], y[3:6])
}

// Vector returns the [R V] 6-vector of this state.
func (s State) Vector() []float64 {
	return []float64{s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2]}
}

// RNorm returns the norm of the radius vector.
func (s State) RNorm() float64 {
	return norm(s.R[:])
}

// VNorm returns the norm of the velocity vector.
func (s State) VNorm() float64 {
	return norm(s.V[:])
}

// At returns a copy of this state at another epoch, without moving it.
func (s State) At(epoch Epoch) State {
	s.Epoch = epoch
	return s
}

// WithVelocity returns a copy of this state with the provided velocity.
func (s State) WithVelocity(V []float64) State {
	copy(s.V[:], V)
	return s
}

// Finite returns whether all the components of the state are finite.
func (s State) Finite() bool {
	return isFinite(s.Vector())
}

// Equals returns whether both states are at the same epoch and within the provided
// position (km) and velocity (km/s) tolerances.
func (s State) Equals(o State, rTol, vTol float64) bool {
	return s.Epoch == o.Epoch &&
		floats.Distance(s.R[:], o.R[:], 2) <= rTol &&
		floats.Distance(s.V[:], o.V[:], 2) <= vTol
}

func (s State) String() string {
	return fmt.Sprintf("%s R=[%.6f %.6f %.6f] V=[%.9f %.9f %.9f]", s.Epoch, s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2])
}
