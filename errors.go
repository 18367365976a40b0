package astroprop

import (
	"errors"
	"fmt"
)

var (
	// ErrNonFinite is returned when the integration produced NaN or infinite values.
	ErrNonFinite = errors.New("state is not finite")
	// ErrCheckpointIndex is returned when restoring a checkpoint which does not exist.
	ErrCheckpointIndex = errors.New("invalid checkpoint index")
	// ErrCheckpointCapacity is returned when the checkpoint arena is full.
	ErrCheckpointCapacity = errors.New("checkpoint capacity reached")
	// ErrInterval is returned when a sampling interval is not strictly positive.
	ErrInterval = errors.New("sampling interval must be positive")
	// ErrEpoch is returned when a target epoch is NaN or infinite.
	ErrEpoch = errors.New("target epoch is not finite")
	// ErrUnboundOrbit is returned when an operation requires a closed orbit.
	ErrUnboundOrbit = errors.New("orbit is not elliptical")
	// ErrNoCrossing is returned by the finders when no event happens within one period.
	ErrNoCrossing = errors.New("no crossing found within one period")
	// ErrKeplerConvergence is returned when Kepler's equation could not be solved.
	ErrKeplerConvergence = errors.New("kepler equation did not converge")
)

// PropagationError wraps an error raised while propagating.
type PropagationError struct {
	Epoch Epoch // last epoch successfully reached
	Err   error
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("propagation failed after %s: %s", e.Epoch, e.Err)
}

// Unwrap returns the underlying error.
func (e *PropagationError) Unwrap() error {
	return e.Err
}
