package tanhv2

import (
	"errors"
	"fmt"

	"github.com/whyuwhyi/tanhv2/segment"
)

var (
	// ErrInvalidDomain is returned when the configured domain is empty
	// or non-finite.
	ErrInvalidDomain = errors.New("domain lower bound must be finite and below upper bound")

	// ErrInvalidMantissaBins is returned when the mantissa subdivision
	// count does not match the hardware address layout.
	ErrInvalidMantissaBins = fmt.Errorf("mantissa subdivision count must be %d", segment.NumMantissaBins)
)

// ErrInvalidExponentRange indicates an exponent range that does not
// span the required number of consecutive exponents.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidExponentRange struct {
	Min, Max int
	cause    error
}

func (e *ErrInvalidExponentRange) Error() string {
	return fmt.Sprintf("invalid exponent range [%d, %d]: must span %d consecutive exponents",
		e.Min, e.Max, segment.NumExponents)
}

func (e *ErrInvalidExponentRange) Unwrap() error { return e.cause }

// ErrInvalidFitParams indicates non-positive optimizer budget settings.
type ErrInvalidFitParams struct {
	Field string
	Value int
}

func (e *ErrInvalidFitParams) Error() string {
	return fmt.Sprintf("invalid fit parameter %s: %d (must be positive)", e.Field, e.Value)
}
