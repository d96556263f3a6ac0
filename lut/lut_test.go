package lut

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloatBits_KnownPatterns(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"+0", 0, "h00000000"},
		{"+1", 1, "h3f800000"},
		{"-1", -1, "hbf800000"},
		{"0.5", 0.5, "h3f000000"},
		{"2^-5", 0.03125, "h3d000000"},
		{"tanh-ish", 0.76159415595, "h3f42f7d6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FloatBits(tt.in))
		})
	}
}

func TestFloatBits_RoundTrip(t *testing.T) {
	vals := []float64{0, 1, -1, 0.03125, 7.9999, 0.99998, -0.2143652, 3.0517578125e-05}

	for _, v := range vals {
		got, err := ParseBits(FloatBits(v))
		require.NoError(t, err)
		require.Equal(t, math.Float32bits(float32(v)), math.Float32bits(got),
			"bit pattern mismatch for %v", v)
	}
}

func TestParseBits_Malformed(t *testing.T) {
	for _, s := range []string{"", "h", "0x3f800000", "h3f80000", "h3f8000000", "h3f80zz00"} {
		_, err := ParseBits(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestTable_WriteFormat(t *testing.T) {
	var tab Table
	tab[0] = Coeffs{C0: 1, C1: 0.5, C2: -1}

	var buf bytes.Buffer
	require.NoError(t, tab.Write(&buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, NumEntries)
	require.Equal(t, "0 h3f800000 h3f000000 hbf800000", lines[0])
	require.Equal(t, "1 h00000000 h00000000 h00000000", lines[1])
	require.Equal(t, "63 h00000000 h00000000 h00000000", lines[63])
}

func TestTable_WriteReadRoundTrip(t *testing.T) {
	var tab Table
	for i := range tab {
		tab[i] = Coeffs{
			C0: float64(float32(0.01 * float64(i))),
			C1: float64(float32(1 - 0.002*float64(i))),
			C2: float64(float32(-0.1 + 0.001*float64(i))),
		}
	}

	var buf bytes.Buffer
	require.NoError(t, tab.Write(&buf))

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, &tab, got)
}

func TestRead_RejectsBadTables(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"truncated", "0 h00000000 h00000000 h00000000\n"},
		{"wrong index", "1 h00000000 h00000000 h00000000\n"},
		{"missing field", "0 h00000000 h00000000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.in))
			require.Error(t, err)
		})
	}
}

func TestCoeffs_Eval(t *testing.T) {
	c := Coeffs{C0: 1, C1: 2, C2: 3}
	require.Equal(t, 1.0, c.Eval(0))
	require.Equal(t, 6.0, c.Eval(1))
	require.Equal(t, 1+2*0.5+3*0.25, c.Eval(0.5))
}
