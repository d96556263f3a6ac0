package minimax

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/optimize"
)

// DiffEvo is a differential-evolution Minimizer using the best/1/bin
// strategy: each trial vector mutates the current best member with the
// scaled difference of two random members, then binomially recombines
// with its parent.
//
// DiffEvo is a value type: Minimize builds all per-run state (including
// the RNG) locally, so distinct calls may run concurrently as long as
// each uses its own copy.
type DiffEvo struct {
	// MaxIter bounds the number of generations. Stands in for a
	// timeout; there is no other cancellation.
	MaxIter int

	// PopSize is the population multiplier: the population holds
	// PopSize * dims members.
	PopSize int

	// Tol and Atol terminate the search once the population's energy
	// spread satisfies std <= Atol + Tol*|mean|.
	Tol  float64
	Atol float64

	// CrossoverProb is the binomial recombination probability.
	CrossoverProb float64

	// Seed makes runs reproducible. Two Minimize calls with identical
	// inputs and Seed return identical candidates.
	Seed int64

	// Polish runs a Nelder–Mead refinement from the best member after
	// the evolution loop.
	Polish bool
}

// DefaultDiffEvo returns the strategy configuration used for LUT
// generation: tight tolerances and a generous generation budget, since
// each run only searches a 3-dimensional box.
func DefaultDiffEvo(seed int64) DiffEvo {
	return DiffEvo{
		MaxIter:       500,
		PopSize:       20,
		Tol:           1e-14,
		Atol:          1e-14,
		CrossoverProb: 0.7,
		Seed:          seed,
		Polish:        true,
	}
}

// Minimize implements Minimizer.
func (de DiffEvo) Minimize(obj Objective, bounds []Bounds) (Result, error) {
	dims := len(bounds)
	np := de.PopSize * dims
	if np < 4 {
		np = 4 // best/1/bin needs the best plus two distinct others per trial
	}

	rng := rand.New(rand.NewSource(de.Seed))

	// Uniform random initialization inside the box.
	pop := make([][]float64, np)
	energy := make([]float64, np)
	for i := range pop {
		pop[i] = make([]float64, dims)
		for d, b := range bounds {
			pop[i][d] = b.Lo + rng.Float64()*(b.Hi-b.Lo)
		}
		energy[i] = obj(pop[i])
	}

	best := 0
	for i := 1; i < np; i++ {
		if energy[i] < energy[best] {
			best = i
		}
	}

	res := Result{Iterations: de.MaxIter}
	trial := make([]float64, dims)

	for gen := 0; gen < de.MaxIter; gen++ {
		// Dithered mutation factor, redrawn each generation.
		f := 0.5 + 0.5*rng.Float64()

		for i := 0; i < np; i++ {
			r1 := rng.Intn(np)
			for r1 == i {
				r1 = rng.Intn(np)
			}
			r2 := rng.Intn(np)
			for r2 == i || r2 == r1 {
				r2 = rng.Intn(np)
			}

			jrand := rng.Intn(dims)
			for d := 0; d < dims; d++ {
				if d == jrand || rng.Float64() < de.CrossoverProb {
					trial[d] = bounds[d].Clamp(pop[best][d] + f*(pop[r1][d]-pop[r2][d]))
				} else {
					trial[d] = pop[i][d]
				}
			}

			if e := obj(trial); e < energy[i] {
				copy(pop[i], trial)
				energy[i] = e
				if e < energy[best] {
					best = i
				}
			}
		}

		if mean, std := meanStd(energy); std <= de.Atol+de.Tol*math.Abs(mean) {
			res.Iterations = gen + 1
			res.Converged = true
			break
		}
	}

	res.X = append([]float64(nil), pop[best]...)
	res.F = energy[best]

	if de.Polish {
		de.polish(obj, bounds, &res)
	}

	return res, nil
}

// polish refines the best candidate with a local simplex search. The
// objective is evaluated on box-clamped points so the polished result
// cannot leave the search bounds.
func (de DiffEvo) polish(obj Objective, bounds []Bounds, res *Result) {
	clamped := make([]float64, len(bounds))
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			for d, b := range bounds {
				clamped[d] = b.Clamp(x[d])
			}
			return obj(clamped)
		},
	}

	out, err := optimize.Minimize(problem, res.X, nil, &optimize.NelderMead{})
	if err != nil || out == nil {
		return // keep the evolved candidate
	}

	x := make([]float64, len(bounds))
	for d, b := range bounds {
		x[d] = b.Clamp(out.X[d])
	}
	if f := obj(x); f < res.F {
		res.X = x
		res.F = f
	}
}

func meanStd(xs []float64) (mean, std float64) {
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		std += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(std / float64(len(xs)))
}
