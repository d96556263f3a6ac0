package minimax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/whyuwhyi/tanhv2/lut"
)

func coeffsOf(c0, c1, c2 float64) lut.Coeffs {
	return lut.Coeffs{C0: c0, C1: c1, C2: c2}
}

// sphere has its minimum at the given center.
func sphere(center []float64) Objective {
	return func(x []float64) float64 {
		var s float64
		for i := range x {
			d := x[i] - center[i]
			s += d * d
		}
		return s
	}
}

func TestDiffEvo_FindsSphereMinimum(t *testing.T) {
	de := DefaultDiffEvo(1)
	bounds := []Bounds{{-1, 1}, {-2, 2}, {-1, 3}}
	center := []float64{0.3, -1.1, 2.2}

	res, err := de.Minimize(sphere(center), bounds)
	require.NoError(t, err)
	require.Less(t, res.F, 1e-10)
	for i := range center {
		require.InDelta(t, center[i], res.X[i], 1e-5)
	}
}

func TestDiffEvo_RespectsBounds(t *testing.T) {
	de := DefaultDiffEvo(3)
	bounds := []Bounds{{0, 1}, {0, 1}, {0, 1}}

	// Minimum outside the box: the best feasible point is a corner.
	res, err := de.Minimize(sphere([]float64{2, 2, 2}), bounds)
	require.NoError(t, err)
	for i, b := range bounds {
		require.GreaterOrEqual(t, res.X[i], b.Lo)
		require.LessOrEqual(t, res.X[i], b.Hi)
	}
	require.InDelta(t, 3.0, res.F, 1e-6) // (2-1)² per dimension
}

func TestDiffEvo_DeterministicPerSeed(t *testing.T) {
	bounds := []Bounds{{-1, 1}, {-1, 1}, {-1, 1}}
	obj := sphere([]float64{0.5, -0.25, 0.125})

	a, err := DiffEvo{MaxIter: 50, PopSize: 10, CrossoverProb: 0.7, Seed: 99}.Minimize(obj, bounds)
	require.NoError(t, err)
	b, err := DiffEvo{MaxIter: 50, PopSize: 10, CrossoverProb: 0.7, Seed: 99}.Minimize(obj, bounds)
	require.NoError(t, err)
	require.Equal(t, a.X, b.X)
	require.Equal(t, a.F, b.F)

	c, err := DiffEvo{MaxIter: 50, PopSize: 10, CrossoverProb: 0.7, Seed: 100}.Minimize(obj, bounds)
	require.NoError(t, err)
	require.NotEqual(t, a.X, c.X)
}

func TestDiffEvo_ConvergenceReported(t *testing.T) {
	de := DiffEvo{MaxIter: 1000, PopSize: 10, Tol: 1e-8, Atol: 1e-10, CrossoverProb: 0.7, Seed: 5}
	res, err := de.Minimize(sphere([]float64{0, 0, 0}), []Bounds{{-1, 1}, {-1, 1}, {-1, 1}})
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.LessOrEqual(t, res.Iterations, de.MaxIter)
}

func TestDiffEvo_BudgetExhaustionIsNotAnError(t *testing.T) {
	// One generation on a hard landscape: no convergence, but the best
	// candidate found is still returned.
	de := DiffEvo{MaxIter: 1, PopSize: 5, CrossoverProb: 0.7, Seed: 11}
	obj := func(x []float64) float64 {
		return math.Abs(math.Sin(50*x[0])) + math.Abs(math.Sin(50*x[1]))
	}

	res, err := de.Minimize(obj, []Bounds{{-3, 3}, {-3, 3}})
	require.NoError(t, err)
	require.False(t, res.Converged)
	require.Equal(t, 1, res.Iterations)
	require.Len(t, res.X, 2)
}

func TestDiffEvo_PolishImprovesOrKeeps(t *testing.T) {
	bounds := []Bounds{{-1, 1}, {-1, 1}, {-1, 1}}
	obj := sphere([]float64{0.123, 0.456, -0.789})

	rough := DiffEvo{MaxIter: 10, PopSize: 5, CrossoverProb: 0.7, Seed: 21}
	polished := rough
	polished.Polish = true

	r1, err := rough.Minimize(obj, bounds)
	require.NoError(t, err)
	r2, err := polished.Minimize(obj, bounds)
	require.NoError(t, err)
	require.LessOrEqual(t, r2.F, r1.F)
}
