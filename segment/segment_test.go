package segment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	defaultXMin   = 0.03125 // 2^-5
	defaultXMax   = 8.0
	defaultExpMin = -5
)

func TestPartition_AddressBijection(t *testing.T) {
	tests := []struct {
		name   string
		xmin   float64
		xmax   float64
		expMin int
	}{
		{"default", defaultXMin, defaultXMax, defaultExpMin},
		{"narrow domain", 0.5, 1.0, defaultExpMin},
		{"shifted exponents", 0.25, 16.0, -2},
		{"domain below all bands", 1e-6, 1e-5, defaultExpMin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Partition(tt.xmin, tt.xmax, tt.expMin)
			require.Len(t, segs[:], NumSegments)

			seen := make(map[int]bool, NumSegments)
			for i, s := range segs {
				require.Equal(t, i, s.Address)
				require.False(t, seen[s.Address], "duplicate address %d", s.Address)
				seen[s.Address] = true
			}
			require.Len(t, seen, NumSegments)
		})
	}
}

func TestPartition_ActiveIntervalsInsideDomain(t *testing.T) {
	segs := Partition(defaultXMin, defaultXMax, defaultExpMin)

	active := 0
	for _, s := range segs {
		if !s.Active {
			require.Zero(t, s.A)
			require.Zero(t, s.B)
			continue
		}
		active++
		require.Less(t, s.A, s.B)
		require.GreaterOrEqual(t, s.A, defaultXMin)
		require.LessOrEqual(t, s.B, defaultXMax)
		require.Greater(t, s.Width(), 1e-9)
	}
	require.Greater(t, active, 0)
	require.Less(t, active, NumSegments)
}

func TestPartition_FirstSegmentNaturalInterval(t *testing.T) {
	segs := Partition(defaultXMin, defaultXMax, defaultExpMin)

	s := segs[0]
	require.True(t, s.Active)
	require.Equal(t, 0.03125, s.A)
	require.Equal(t, 0.03125*1.125, s.B)
}

func TestPartition_LastSegmentClipsAtDomainEdge(t *testing.T) {
	segs := Partition(defaultXMin, defaultXMax, defaultExpMin)

	// Exponent offset 7 (2^2), mantissa bin 7: natural interval [7.5, 8.0].
	// b == xmax, so clipping leaves it unchanged and the segment stays active.
	s := segs[7<<3|7]
	require.True(t, s.Active)
	require.Equal(t, 7.5, s.A)
	require.Equal(t, 8.0, s.B)
}

func TestPartition_BandAboveDomainInactive(t *testing.T) {
	// With xmax = 4.0 the whole 2^2 band starts at or above the domain edge,
	// so all 8 of its mantissa bins must be inactive.
	segs := Partition(defaultXMin, 4.0, defaultExpMin)

	for m := 0; m < NumMantissaBins; m++ {
		s := segs[7<<3|m]
		require.False(t, s.Active, "segment %d should be inactive", s.Address)
	}
}

func TestPartition_BandBelowDomainInactive(t *testing.T) {
	segs := Partition(0.0625, defaultXMax, defaultExpMin)

	// The entire 2^-5 band tops out at 2^-5*2 = 0.0625 == xmin.
	for m := 0; m < NumMantissaBins; m++ {
		s := segs[m]
		require.False(t, s.Active, "segment %d should be inactive", s.Address)
	}
}

func TestPartition_ContiguousCoverage(t *testing.T) {
	segs := Partition(defaultXMin, defaultXMax, defaultExpMin)

	// Successive active segments must tile the domain without gaps.
	prevB := math.NaN()
	for _, s := range segs {
		if !s.Active {
			continue
		}
		if !math.IsNaN(prevB) {
			require.InDelta(t, prevB, s.A, 1e-12)
		}
		prevB = s.B
	}
	require.Equal(t, defaultXMax, prevB)
}
