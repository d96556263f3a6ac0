package tanhv2

import (
	"time"

	"github.com/whyuwhyi/tanhv2/artifact"
	"github.com/whyuwhyi/tanhv2/minimax"
)

type options struct {
	logger           *Logger
	workers          int
	minimizer        minimax.Minimizer
	target           func(float64) float64
	store            artifact.Store
	tableName        string
	reportName       string
	gzipReport       bool
	progressInterval time.Duration
}

// Option configures pipeline construction.
type Option func(*options)

// WithLogger configures structured logging for the run.
// If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithWorkers configures the number of concurrent segment fits.
// Per-segment fits are independent (disjoint intervals, no shared
// state) and each derives its own RNG seed, so the emitted table is
// identical for any worker count. If n <= 0, fits run sequentially.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithMinimizer swaps the per-segment global-search strategy. The
// default is differential evolution seeded per segment address; a
// replacement strategy owns its own determinism.
func WithMinimizer(m minimax.Minimizer) Option {
	return func(o *options) {
		o.minimizer = m
	}
}

// WithTarget overrides the approximated function. The default is
// math.Tanh. Exists for test harnesses fitting cheaper functions.
func WithTarget(f func(float64) float64) Option {
	return func(o *options) {
		o.target = f
	}
}

// WithArtifactStore configures where Run writes the table and report.
// If unset, Run only returns the report and writes nothing.
func WithArtifactStore(s artifact.Store) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithTableName overrides the emitted table artifact name ("lut.txt").
func WithTableName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.tableName = name
		}
	}
}

// WithReportName overrides the report artifact name ("report.json").
func WithReportName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.reportName = name
		}
	}
}

// WithGzipReport gzip-compresses the report artifact and appends ".gz"
// to its name.
func WithGzipReport(enabled bool) Option {
	return func(o *options) {
		o.gzipReport = enabled
	}
}

// WithProgressInterval sets the minimum spacing between progress log
// lines while segments are being fitted.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.progressInterval = d
		}
	}
}
