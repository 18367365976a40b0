package astroprop

// ForceModel composes the forces acting on a spacecraft. It holds at most one force per
// category plus any number of custom forces, and an optional active maneuver which is
// managed by the propagators.
type ForceModel struct {
	central   Force
	thirdBody Force
	srp       Force
	drag      Force
	extra     []Force
	maneuver  *Thrust
}

// NewForceModel returns an empty force model: the spacecraft moves in a straight line.
func NewForceModel() *ForceModel {
	return &ForceModel{}
}

// NewTwoBodyForceModel returns a force model with only the point mass gravity of μ.
func NewTwoBodyForceModel(μ float64) *ForceModel {
	return &ForceModel{central: NewGravity(μ)}
}

// SetCentralGravity sets the gravity of the central body (point mass or harmonics).
func (fm *ForceModel) SetCentralGravity(f Force) *ForceModel {
	fm.central = f
	return fm
}

// SetThirdBody sets the third body perturbation.
func (fm *ForceModel) SetThirdBody(f Force) *ForceModel {
	fm.thirdBody = f
	return fm
}

// SetSRP sets the solar radiation pressure.
func (fm *ForceModel) SetSRP(f Force) *ForceModel {
	fm.srp = f
	return fm
}

// SetDrag sets the atmospheric drag.
func (fm *ForceModel) SetDrag(f Force) *ForceModel {
	fm.drag = f
	return fm
}

// Add appends a custom force.
func (fm *ForceModel) Add(f Force) *ForceModel {
	fm.extra = append(fm.extra, f)
	return fm
}

// CentralGravity returns the central gravity, if any.
func (fm *ForceModel) CentralGravity() Force {
	return fm.central
}

// Maneuver returns the active maneuver, or nil.
func (fm *ForceModel) Maneuver() *Thrust {
	return fm.maneuver
}

func (fm *ForceModel) setManeuver(t Thrust) {
	fm.maneuver = &t
}

func (fm *ForceModel) clearManeuver() {
	fm.maneuver = nil
}

// IsEmpty returns whether no force is enabled.
func (fm *ForceModel) IsEmpty() bool {
	return fm.central == nil && fm.thirdBody == nil && fm.srp == nil && fm.drag == nil && len(fm.extra) == 0 && fm.maneuver == nil
}

// Acceleration returns the sum of all the enabled accelerations in km/s^2.
func (fm *ForceModel) Acceleration(s State) []float64 {
	acc := []float64{0, 0, 0}
	add := func(f Force) {
		if f == nil {
			return
		}
		a := f.Acceleration(s)
		for i := 0; i < 3; i++ {
			acc[i] += a[i]
		}
	}
	add(fm.central)
	add(fm.thirdBody)
	add(fm.srp)
	add(fm.drag)
	for _, f := range fm.extra {
		add(f)
	}
	if fm.maneuver != nil {
		add(*fm.maneuver)
	}
	return acc
}

// Derivative returns the time derivative [V, a] of the state.
func (fm *ForceModel) Derivative(s State) []float64 {
	a := fm.Acceleration(s)
	return []float64{s.V[0], s.V[1], s.V[2], a[0], a[1], a[2]}
}

// Clone returns a copy which shares the (read-only) forces but has no active maneuver.
func (fm *ForceModel) Clone() *ForceModel {
	c := *fm
	c.extra = append([]Force(nil), fm.extra...)
	c.maneuver = nil
	return &c
}
