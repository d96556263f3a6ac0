// Package segment partitions the tanh input domain into the 64
// address-indexed regions used by the hardware LUT.
//
// The address layout is the hardware contract: for an input with binary
// exponent e and leading significand bits m, the evaluator looks up
// entry (e-offset)<<3 | m. Partitioning mirrors that layout exactly so
// that every representable magnitude inside the domain maps onto the
// segment whose coefficients were fitted for it.
package segment

import "math"

const (
	// NumExponents is the number of consecutive binary exponents covered
	// by the table.
	NumExponents = 8

	// NumMantissaBins is the number of uniform subdivisions of the
	// significand fraction within one exponent band. The address layout
	// (off<<3 | m) encodes the bin in the low 3 bits.
	NumMantissaBins = 8

	// NumSegments is the fixed table size. Every partition yields exactly
	// this many segments regardless of how many are active.
	NumSegments = NumExponents * NumMantissaBins

	// minWidth is the negligible-width threshold: a clipped interval
	// narrower than this is treated as degenerate and left inactive.
	minWidth = 1e-9
)

// Segment is one address-indexed sub-interval of the input domain.
// Segments are immutable once constructed; an inactive segment carries
// no interval and maps to the zero coefficient triple downstream.
type Segment struct {
	// Address is (exponentOffset << 3) | mantissaIndex, in [0, NumSegments).
	Address int

	// A and B bound the clipped interval [A, B). Both are zero when the
	// segment is inactive.
	A float64
	B float64

	// Active reports whether the segment's natural interval intersects
	// the configured domain with non-negligible width.
	Active bool
}

// Width returns B - A, or 0 for an inactive segment.
func (s Segment) Width() float64 {
	if !s.Active {
		return 0
	}
	return s.B - s.A
}

// Partition derives the full table of NumSegments segments from the
// global domain [xmin, xmax] and the lowest covered exponent expMin.
// The exponent range is always the NumExponents consecutive integers
// starting at expMin.
//
// For exponent e and mantissa bin m the natural interval is
//
//	[2^e * (1 + m/8), 2^e * (1 + (m+1)/8)]
//
// which is the exact magnitude range of floats with that exponent and
// those leading significand bits. Natural intervals entirely at or
// below xmin, or at or above xmax, produce inactive segments; intervals
// straddling a domain edge are clipped rather than dropped, so coverage
// stays contiguous up to the boundary.
//
// Partition is a pure function of its arguments; callers validate the
// domain before calling.
func Partition(xmin, xmax float64, expMin int) [NumSegments]Segment {
	var segs [NumSegments]Segment

	for off := 0; off < NumExponents; off++ {
		expVal := math.Ldexp(1, expMin+off)

		for m := 0; m < NumMantissaBins; m++ {
			addr := off<<3 | m
			segs[addr] = Segment{Address: addr}

			a := expVal * (1 + float64(m)/NumMantissaBins)
			b := expVal * (1 + float64(m+1)/NumMantissaBins)

			if b <= xmin || a >= xmax {
				continue
			}

			a = math.Max(a, xmin)
			b = math.Min(b, xmax)
			if b-a <= minWidth {
				continue
			}

			segs[addr].A = a
			segs[addr].B = b
			segs[addr].Active = true
		}
	}

	return segs
}
