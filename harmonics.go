package astroprop

import "math"

const (
	// MaxHarmonicsDegree is the largest supported degree (and order) of the spherical harmonics.
	MaxHarmonicsDegree = 36
)

// GravityField is a read-only table of normalized spherical harmonics coefficients.
type GravityField interface {
	// Coefficients returns the normalized (C̄nm, S̄nm), or zeros if not tabulated.
	Coefficients(n, m int) (C, S float64)
	MaxDegree() int
	Mu() float64
	Radius() float64
}

// GravityCoefficients is a GravityField backed by triangular coefficient tables
// indexed as C[n][m].
type GravityCoefficients struct {
	mu, radius float64
	c, s       [][]float64
}

// NewGravityCoefficients returns a new coefficients table. The slices are not copied
// and must not be modified afterwards.
func NewGravityCoefficients(μ, radius float64, C, S [][]float64) *GravityCoefficients {
	return &GravityCoefficients{μ, radius, C, S}
}

// Coefficients implements the GravityField interface.
func (g *GravityCoefficients) Coefficients(n, m int) (C, S float64) {
	if n < len(g.c) && m < len(g.c[n]) {
		C = g.c[n][m]
	}
	if n < len(g.s) && m < len(g.s[n]) {
		S = g.s[n][m]
	}
	return
}

// MaxDegree implements the GravityField interface.
func (g *GravityCoefficients) MaxDegree() int {
	return len(g.c) - 1
}

// Mu implements the GravityField interface.
func (g *GravityCoefficients) Mu() float64 {
	return g.mu
}

// Radius implements the GravityField interface.
func (g *GravityCoefficients) Radius() float64 {
	return g.radius
}

// EGM96Degree4 returns the EGM96 normalized coefficients up to degree and order four.
func EGM96Degree4() *GravityCoefficients {
	C := [][]float64{
		{1},
		{0, 0},
		{-4.84165371736e-4, -1.869876e-10, 2.43914352398e-6},
		{9.57254173792e-7, 2.03046201047e-6, 9.04787894809e-7, 7.21321757121e-7},
		{5.39873863789e-7, -5.36157389388e-7, 3.50501623962e-7, 9.90856766672e-7, -1.88519633023e-7},
	}
	S := [][]float64{
		{0},
		{0, 0},
		{0, 1.19528e-9, -1.40016683654e-6},
		{0, 2.48200415856e-7, -6.19005475177e-7, 1.41434926192e-6},
		{0, -4.73567346518e-7, 6.62480026275e-7, -2.00956723567e-7, 3.08803882149e-7},
	}
	return NewGravityCoefficients(EarthMu, EarthRadius, C, S)
}

// EarthGravity is the non spherical gravity of a body, computed from its harmonics.
type EarthGravity struct {
	field         GravityField
	frame         BodyFrame
	degree, order int
}

// NewEarthGravity returns the spherical harmonics gravity up to the provided degree and order.
// Both are clamped to [0, MaxHarmonicsDegree] and the order cannot exceed the degree.
func NewEarthGravity(field GravityField, frame BodyFrame, degree, order int) *EarthGravity {
	degree = clampInt(degree, 0, MaxHarmonicsDegree)
	order = clampInt(order, 0, degree)
	return &EarthGravity{field, frame, degree, order}
}

// Degree returns the degree and order of this model.
func (g *EarthGravity) Degree() (degree, order int) {
	return g.degree, g.order
}

// Acceleration implements the Force interface.
func (g *EarthGravity) Acceleration(s State) []float64 {
	μ := g.field.Mu()
	if g.degree < 2 {
		return Gravity{μ}.Acceleration(s)
	}
	rBF := g.frame.ToBodyFixed(s.Epoch, s.R[:])
	x, y, z := rBF[0], rBF[1], rBF[2]
	r := norm(rBF)
	ρ2 := x*x + y*y
	ρ := math.Sqrt(ρ2)
	sinφ := z / r
	cosφ := ρ / r
	tanφ := sinφ / cosφ
	λ := math.Atan2(y, x)
	P := legendre(g.degree, sinφ, cosφ)

	var dUdr, dUdφ, dUdλ float64
	ratio := g.field.Radius() / r
	rn := ratio
	for n := 2; n <= g.degree; n++ {
		rn *= ratio
		mMax := n
		if g.order < mMax {
			mMax = g.order
		}
		for m := 0; m <= mMax; m++ {
			C, S := g.field.Coefficients(n, m)
			sinmλ, cosmλ := math.Sincos(float64(m) * λ)
			cs := C*cosmλ + S*sinmλ
			k := 1.
			if m == 0 {
				k = 0.5
			}
			dP := math.Sqrt(float64((n-m)*(n+m+1))*k)*P[n][m+1] - float64(m)*tanφ*P[n][m]
			dUdr -= float64(n+1) * rn * P[n][m] * cs
			dUdφ += rn * dP * cs
			dUdλ += rn * float64(m) * P[n][m] * (S*cosmλ - C*sinmλ)
		}
	}
	dUdr = -μ/(r*r) + dUdr*μ/(r*r)
	dUdφ *= μ / r
	dUdλ *= μ / r

	radial := dUdr/r - z/(r*r*ρ)*dUdφ
	acc := []float64{
		radial*x - dUdλ/ρ2*y,
		radial*y + dUdλ/ρ2*x,
		dUdr/r*z + ρ/(r*r)*dUdφ,
	}
	return g.frame.ToInertial(s.Epoch, acc)
}

// legendre returns the fully normalized associated Legendre functions P̄nm(sinφ) up to
// the provided degree. The table has two extra rows and columns so that P̄n(m+1) is
// always addressable and zero beyond the sectoral term.
func legendre(degree int, sinφ, cosφ float64) [][]float64 {
	P := make([][]float64, degree+3)
	for i := range P {
		P[i] = make([]float64, degree+3)
	}
	P[0][0] = 1
	P[1][1] = math.Sqrt(3) * cosφ
	for m := 2; m <= degree; m++ {
		P[m][m] = cosφ * math.Sqrt(float64(2*m+1)/float64(2*m)) * P[m-1][m-1]
	}
	for m := 0; m < degree; m++ {
		P[m+1][m] = math.Sqrt(float64(2*m+3)) * sinφ * P[m][m]
	}
	for m := 0; m <= degree; m++ {
		for n := m + 2; n <= degree; n++ {
			fn, fm := float64(n), float64(m)
			a := math.Sqrt((2*fn + 1) * (2*fn - 1) / ((fn - fm) * (fn + fm)))
			b := math.Sqrt((2*fn + 1) * (fn + fm - 1) * (fn - fm - 1) / ((fn - fm) * (fn + fm) * (2*fn - 3)))
			P[n][m] = a*sinφ*P[n-1][m] - b*P[n-2][m]
		}
	}
	return P
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
