// Package minimax fits degree-2 polynomials that minimize the
// worst-case (L∞) absolute error against a target function on a closed
// interval.
//
// A least-squares fit gives a good average-case polynomial but says
// nothing about peak error, which is what bit-accuracy budgets are
// written against. The fitter therefore seeds with least squares and
// then refines the coefficients with a global derivative-free search
// whose objective is the maximum absolute deviation on a dense grid.
package minimax

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/whyuwhyi/tanhv2/lut"
)

const (
	// seedSamples is the grid density for the least-squares seed.
	seedSamples = 500

	// objectiveSamples is the grid density for the L∞ objective during
	// refinement. Denser than the seed grid so the search sees error
	// peaks the seed fit smoothed over.
	objectiveSamples = 3000
)

// Per-coefficient search radius around the least-squares seed.
var seedRadius = [3]float64{0.1, 0.2, 0.2}

// Bounds is a closed search range for one coefficient.
type Bounds struct {
	Lo, Hi float64
}

// Clamp returns x limited to [Lo, Hi].
func (b Bounds) Clamp(x float64) float64 {
	return math.Min(math.Max(x, b.Lo), b.Hi)
}

// Objective is a scalar function to be minimized.
type Objective func(x []float64) float64

// Result reports the outcome of one minimization.
type Result struct {
	// X is the best candidate found.
	X []float64

	// F is the objective value at X.
	F float64

	// Iterations is the number of generations/iterations consumed.
	Iterations int

	// Converged reports whether the strategy's own convergence
	// criterion was met within the iteration budget. A false value is
	// not an error: the best-found candidate is still returned.
	Converged bool
}

// Minimizer is the global-search capability: given an objective and
// per-dimension bounds, return a candidate minimizing the objective
// within the strategy's budget. Implementations must be usable from
// multiple goroutines when used by value.
type Minimizer interface {
	Minimize(obj Objective, bounds []Bounds) (Result, error)
}

// Fitter computes minimax quadratic coefficients for a target function.
type Fitter struct {
	target func(float64) float64
	min    Minimizer
}

// NewFitter creates a Fitter approximating target with the given
// minimization strategy. A nil target defaults to math.Tanh.
func NewFitter(target func(float64) float64, min Minimizer) *Fitter {
	if target == nil {
		target = math.Tanh
	}
	return &Fitter{target: target, min: min}
}

// Fit computes the coefficient triple for the interval [a, b].
// The interval must be non-degenerate; callers filter inactive
// segments before invoking the fitter.
func (f *Fitter) Fit(a, b float64) (lut.Coeffs, Result, error) {
	if !(a < b) {
		return lut.Coeffs{}, Result{}, fmt.Errorf("minimax: degenerate interval [%v, %v]", a, b)
	}

	seed, err := f.leastSquaresSeed(a, b)
	if err != nil {
		return lut.Coeffs{}, Result{}, err
	}

	bounds := make([]Bounds, len(seed))
	for i, c := range seed {
		bounds[i] = Bounds{Lo: c - seedRadius[i], Hi: c + seedRadius[i]}
	}

	obj := f.linfObjective(a, b, objectiveSamples)

	res, err := f.min.Minimize(obj, bounds)
	if err != nil {
		return lut.Coeffs{}, Result{}, fmt.Errorf("minimax: refine [%v, %v]: %w", a, b, err)
	}

	c := lut.Coeffs{C0: res.X[0], C1: res.X[1], C2: res.X[2]}
	return c, res, nil
}

// leastSquaresSeed solves the overdetermined system [1 x x²]c = f(x)
// on a uniform grid, giving a stable starting point and a natural
// per-coefficient perturbation scale.
func (f *Fitter) leastSquaresSeed(a, b float64) ([]float64, error) {
	xs := linspace(a, b, seedSamples)

	design := mat.NewDense(len(xs), 3, nil)
	rhs := mat.NewVecDense(len(xs), nil)
	for i, x := range xs {
		design.Set(i, 0, 1)
		design.Set(i, 1, x)
		design.Set(i, 2, x*x)
		rhs.SetVec(i, f.target(x))
	}

	var c mat.VecDense
	if err := c.SolveVec(design, rhs); err != nil {
		return nil, fmt.Errorf("minimax: least-squares seed [%v, %v]: %w", a, b, err)
	}

	return []float64{c.AtVec(0), c.AtVec(1), c.AtVec(2)}, nil
}

// linfObjective returns the maximum absolute deviation between the
// candidate quadratic and the target, sampled on n uniform points.
func (f *Fitter) linfObjective(a, b float64, n int) Objective {
	xs := linspace(a, b, n)
	ys := make([]float64, n)
	for i, x := range xs {
		ys[i] = f.target(x)
	}

	return func(c []float64) float64 {
		worst := 0.0
		for i, x := range xs {
			d := math.Abs(ys[i] - (c[0] + x*(c[1]+x*c[2])))
			if d > worst {
				worst = d
			}
		}
		return worst
	}
}

// MaxAbsError evaluates the worst-case absolute error of the quadratic
// against target on n uniform samples of [a, b]. The pipeline uses this
// with a denser grid than the fit objective, as an independent re-check
// against peaks falling between the optimizer's grid points.
func MaxAbsError(target func(float64) float64, c lut.Coeffs, a, b float64, n int) float64 {
	worst := 0.0
	for _, x := range linspace(a, b, n) {
		if d := math.Abs(target(x) - c.Eval(x)); d > worst {
			worst = d
		}
	}
	return worst
}

// linspace returns n uniformly spaced points over [a, b], endpoints
// included.
func linspace(a, b float64, n int) []float64 {
	if n < 2 {
		return []float64{a}
	}
	xs := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range xs {
		xs[i] = a + float64(i)*step
	}
	xs[n-1] = b
	return xs
}
