package astroprop

// Tableau is the Butcher tableau of an explicit Runge-Kutta method. Embedded pairs carry
// a Low order combination used to estimate the local error; a nil Low is a fixed step
// method.
type Tableau struct {
	Name   string
	Order  int         // order used for step size control
	Nodes  []float64   // a_i, time fraction of each stage
	Matrix [][]float64 // b_ij, row i has i entries
	High   []float64   // ch_i, combination which is propagated
	Low    []float64   // c_i, embedded combination
}

// Stages returns the number of stages.
func (t *Tableau) Stages() int {
	return len(t.Nodes)
}

// Adaptive returns whether the tableau has an embedded error estimate.
func (t *Tableau) Adaptive() bool {
	return t.Low != nil
}

// DormandPrince54 is the 5(4) Dormand-Prince pair, propagating the fifth order solution.
var DormandPrince54 = &Tableau{
	Name:  "dormand-prince-5(4)",
	Order: 5,
	Nodes: []float64{0, 1. / 5, 3. / 10, 4. / 5, 8. / 9, 1, 1},
	Matrix: [][]float64{
		{},
		{1. / 5},
		{3. / 40, 9. / 40},
		{44. / 45, -56. / 15, 32. / 9},
		{19372. / 6561, -25360. / 2187, 64448. / 6561, -212. / 729},
		{9017. / 3168, -355. / 33, 46732. / 5247, 49. / 176, -5103. / 18656},
		{35. / 384, 0, 500. / 1113, 125. / 192, -2187. / 6784, 11. / 84},
	},
	High: []float64{35. / 384, 0, 500. / 1113, 125. / 192, -2187. / 6784, 11. / 84, 0},
	Low:  []float64{5179. / 57600, 0, 7571. / 16695, 393. / 640, -92097. / 339200, 187. / 2100, 1. / 40},
}

// Fehlberg45 is the Runge-Kutta-Fehlberg 4(5) pair, propagating the fifth order solution.
var Fehlberg45 = &Tableau{
	Name:  "fehlberg-4(5)",
	Order: 5,
	Nodes: []float64{0, 1. / 4, 3. / 8, 12. / 13, 1, 1. / 2},
	Matrix: [][]float64{
		{},
		{1. / 4},
		{3. / 32, 9. / 32},
		{1932. / 2197, -7200. / 2197, 7296. / 2197},
		{439. / 216, -8, 3680. / 513, -845. / 4104},
		{-8. / 27, 2, -3544. / 2565, 1859. / 4104, -11. / 40},
	},
	High: []float64{16. / 135, 0, 6656. / 12825, 28561. / 56430, -9. / 50, 2. / 55},
	Low:  []float64{25. / 216, 0, 1408. / 2565, 2197. / 4104, -1. / 5, 0},
}

// Fehlberg78 is the Runge-Kutta-Fehlberg 7(8) pair, propagating the eighth order solution.
var Fehlberg78 = &Tableau{
	Name:  "fehlberg-7(8)",
	Order: 8,
	Nodes: []float64{0, 2. / 27, 1. / 9, 1. / 6, 5. / 12, 1. / 2, 5. / 6, 1. / 6, 2. / 3, 1. / 3, 1, 0, 1},
	Matrix: [][]float64{
		{},
		{2. / 27},
		{1. / 36, 1. / 12},
		{1. / 24, 0, 1. / 8},
		{5. / 12, 0, -25. / 16, 25. / 16},
		{1. / 20, 0, 0, 1. / 4, 1. / 5},
		{-25. / 108, 0, 0, 125. / 108, -65. / 27, 125. / 54},
		{31. / 300, 0, 0, 0, 61. / 225, -2. / 9, 13. / 900},
		{2, 0, 0, -53. / 6, 704. / 45, -107. / 9, 67. / 90, 3},
		{-91. / 108, 0, 0, 23. / 108, -976. / 135, 311. / 54, -19. / 60, 17. / 6, -1. / 12},
		{2383. / 4100, 0, 0, -341. / 164, 4496. / 1025, -301. / 82, 2133. / 4100, 45. / 82, 45. / 164, 18. / 41},
		{3. / 205, 0, 0, 0, 0, -6. / 41, -3. / 205, -3. / 41, 3. / 41, 6. / 41, 0},
		{-1777. / 4100, 0, 0, -341. / 164, 4496. / 1025, -289. / 82, 2193. / 4100, 51. / 82, 33. / 164, 12. / 41, 0, 1},
	},
	High: []float64{0, 0, 0, 0, 0, 34. / 105, 9. / 35, 9. / 35, 9. / 280, 9. / 280, 0, 41. / 840, 41. / 840},
	Low:  []float64{41. / 840, 0, 0, 0, 0, 34. / 105, 9. / 35, 9. / 35, 9. / 280, 9. / 280, 41. / 840, 0, 0},
}

// ClassicRK4 is the classical fourth order Runge-Kutta method.
var ClassicRK4 = &Tableau{
	Name:  "rk4",
	Order: 4,
	Nodes: []float64{0, 1. / 2, 1. / 2, 1},
	Matrix: [][]float64{
		{},
		{1. / 2},
		{0, 1. / 2},
		{0, 0, 1},
	},
	High: []float64{1. / 6, 1. / 3, 1. / 3, 1. / 6},
}

// TableauByName returns one of the shipped tableaux, or nil.
func TableauByName(name string) *Tableau {
	for _, t := range []*Tableau{DormandPrince54, Fehlberg45, Fehlberg78, ClassicRK4} {
		if t.Name == name {
			return t
		}
	}
	switch name {
	case "dp54", "dopri":
		return DormandPrince54
	case "rkf45":
		return Fehlberg45
	case "rkf78":
		return Fehlberg78
	}
	return nil
}
