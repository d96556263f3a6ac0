package tanhv2

import (
	"fmt"
	"math"

	"github.com/whyuwhyi/tanhv2/segment"
)

// FitConfig holds the optimizer budget for one segment's minimax fit.
type FitConfig struct {
	// MaxIter bounds the differential-evolution generation count.
	MaxIter int `json:"max_iter"`

	// PopSize is the population multiplier (members per dimension).
	PopSize int `json:"pop_size"`

	// Tol and Atol are the relative/absolute convergence tolerances on
	// the population's objective spread.
	Tol  float64 `json:"tol"`
	Atol float64 `json:"atol"`

	// Seed is the base RNG seed. Each segment derives its own seed from
	// it, so results are reproducible regardless of worker scheduling.
	Seed int64 `json:"seed"`

	// Polish enables the final simplex refinement of the best candidate.
	Polish bool `json:"polish"`
}

// Config fully determines a pipeline run. All knobs that were implicit
// in earlier table-generation scripts (domain bounds, exponent range,
// target error, optimizer budget) are explicit named fields here.
type Config struct {
	// XMin and XMax bound the approximated domain.
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`

	// ExpMin and ExpMax are the lowest and highest binary exponents
	// covered by the table. The range must span exactly
	// segment.NumExponents consecutive integers.
	ExpMin int `json:"exp_min"`
	ExpMax int `json:"exp_max"`

	// MantissaBins is the significand subdivision count per exponent
	// band. The (offset<<3 | bin) address layout fixes it at
	// segment.NumMantissaBins; the field exists so a misconfiguration
	// is rejected loudly instead of silently producing a skewed table.
	MantissaBins int `json:"mantissa_bins"`

	// TargetError is the per-segment worst-case error bound the run is
	// validated against.
	TargetError float64 `json:"target_error"`

	// Fit is the per-segment optimizer budget.
	Fit FitConfig `json:"fit"`
}

// DefaultConfig returns the production table configuration: domain
// [2^-5, 8], exponents -5..2, target error 2^-12.
func DefaultConfig() Config {
	return Config{
		XMin:         math.Ldexp(1, -5),
		XMax:         8.0,
		ExpMin:       -5,
		ExpMax:       2,
		MantissaBins: segment.NumMantissaBins,
		TargetError:  math.Ldexp(1, -12),
		Fit: FitConfig{
			MaxIter: 500,
			PopSize: 20,
			Tol:     1e-14,
			Atol:    1e-14,
			Seed:    42,
			Polish:  true,
		},
	}
}

// Validate rejects configurations the partitioner and fitter must never
// see. It is called by NewPipeline before any work starts.
func (c Config) Validate() error {
	if math.IsNaN(c.XMin) || math.IsInf(c.XMin, 0) ||
		math.IsNaN(c.XMax) || math.IsInf(c.XMax, 0) || c.XMin >= c.XMax {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidDomain, c.XMin, c.XMax)
	}
	if c.ExpMax-c.ExpMin+1 != segment.NumExponents {
		return &ErrInvalidExponentRange{Min: c.ExpMin, Max: c.ExpMax}
	}
	if c.MantissaBins != segment.NumMantissaBins {
		return fmt.Errorf("%w: got %d", ErrInvalidMantissaBins, c.MantissaBins)
	}
	if c.TargetError <= 0 {
		return fmt.Errorf("target error must be positive: %v", c.TargetError)
	}
	if c.Fit.MaxIter <= 0 {
		return &ErrInvalidFitParams{Field: "max_iter", Value: c.Fit.MaxIter}
	}
	if c.Fit.PopSize <= 0 {
		return &ErrInvalidFitParams{Field: "pop_size", Value: c.Fit.PopSize}
	}
	return nil
}
