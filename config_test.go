package tanhv2

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 0.03125, cfg.XMin)
	require.Equal(t, 8.0, cfg.XMax)
	require.Equal(t, math.Ldexp(1, -12), cfg.TargetError)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"inverted domain", func(c *Config) { c.XMin, c.XMax = c.XMax, c.XMin }, ErrInvalidDomain},
		{"empty domain", func(c *Config) { c.XMax = c.XMin }, ErrInvalidDomain},
		{"NaN bound", func(c *Config) { c.XMin = math.NaN() }, ErrInvalidDomain},
		{"infinite bound", func(c *Config) { c.XMax = math.Inf(1) }, ErrInvalidDomain},
		{"bad mantissa bins", func(c *Config) { c.MantissaBins = 4 }, ErrInvalidMantissaBins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfig_ValidateExponentRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExpMax = 5

	err := cfg.Validate()
	require.Error(t, err)

	var er *ErrInvalidExponentRange
	require.ErrorAs(t, err, &er)
	require.Equal(t, -5, er.Min)
	require.Equal(t, 5, er.Max)
}

func TestConfig_ValidateFitParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fit.MaxIter = 0

	var fp *ErrInvalidFitParams
	require.ErrorAs(t, cfg.Validate(), &fp)
	require.Equal(t, "max_iter", fp.Field)

	cfg = DefaultConfig()
	cfg.Fit.PopSize = -1
	require.ErrorAs(t, cfg.Validate(), &fp)
	require.Equal(t, "pop_size", fp.Field)
}

func TestConfig_ValidateTargetError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetError = 0
	require.Error(t, cfg.Validate())
}
