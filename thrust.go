package astroprop

import "fmt"

// Thrust is a maneuver centered on an epoch. The Δv components are in m/s in the RIC
// frame of the spacecraft, and DurationRate (s per m/s) sets the burn duration.
// A zero DurationRate is an impulsive maneuver.
type Thrust struct {
	Center                      Epoch
	Radial, Intrack, Crosstrack float64
	DurationRate                float64
}

// NewImpulsiveThrust returns an impulsive maneuver at the provided epoch.
func NewImpulsiveThrust(center Epoch, radial, intrack, crosstrack float64) Thrust {
	return Thrust{Center: center, Radial: radial, Intrack: intrack, Crosstrack: crosstrack}
}

// DeltaV returns the RIC Δv in m/s.
func (t Thrust) DeltaV() []float64 {
	return []float64{t.Radial, t.Intrack, t.Crosstrack}
}

// Magnitude returns the norm of the Δv in m/s.
func (t Thrust) Magnitude() float64 {
	return norm(t.DeltaV())
}

// Duration returns the burn duration in seconds.
func (t Thrust) Duration() float64 {
	return t.Magnitude() * t.DurationRate
}

// IsImpulsive returns whether this maneuver has no duration.
func (t Thrust) IsImpulsive() bool {
	return t.Duration() <= 0
}

// Start returns the ignition epoch.
func (t Thrust) Start() Epoch {
	return t.Center.Roll(-t.Duration() / 2)
}

// Stop returns the cut-off epoch.
func (t Thrust) Stop() Epoch {
	return t.Center.Roll(t.Duration() / 2)
}

// Active returns whether the maneuver is burning at the provided epoch.
func (t Thrust) Active(e Epoch) bool {
	return !t.IsImpulsive() && !e.Before(t.Start()) && !e.After(t.Stop())
}

// Acceleration implements the Force interface: constant magnitude along the RIC
// direction of the current state while the maneuver is active.
func (t Thrust) Acceleration(s State) []float64 {
	if !t.Active(s.Epoch) {
		return []float64{0, 0, 0}
	}
	return RIC2Inertial(s, scale(1e-3/t.Duration(), t.DeltaV()))
}

// Apply returns the state after an instantaneous application of the full Δv in the RIC
// frame of s. A cross-track Δv turns that frame, so Apply(-Δv) does not undo Apply(Δv):
// use ApplyInFrame with the pre-burn state for that.
func (t Thrust) Apply(s State) State {
	return t.ApplyInFrame(s, s)
}

// ApplyInFrame is Apply with the Δv expressed in the RIC frame of another state.
func (t Thrust) ApplyInFrame(s, frame State) State {
	dv := RIC2Inertial(frame, scale(1e-3, t.DeltaV()))
	for i := 0; i < 3; i++ {
		s.V[i] += dv[i]
	}
	return s
}

func (t Thrust) String() string {
	return fmt.Sprintf("Δv=[%.3f %.3f %.3f] m/s @ %s (%.1f s)", t.Radial, t.Intrack, t.Crosstrack, t.Center, t.Duration())
}
