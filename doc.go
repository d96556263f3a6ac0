// Package tanhv2 generates the piecewise-quadratic tanh lookup table
// consumed by the TANH_V2 hardware evaluator.
//
// The evaluator indexes 64 coefficient triples by the input's binary
// exponent and leading mantissa bits. This package produces that table:
// it partitions the input domain into exponent/mantissa-aligned
// segments, fits a degree-2 minimax polynomial per segment, validates
// worst-case error against a target bound, and encodes the result as a
// hardware-readable hex table.
//
// # Quick Start
//
//	ctx := context.Background()
//	p, _ := tanhv2.NewPipeline(tanhv2.DefaultConfig())
//	report, _ := p.Run(ctx)
//
//	f, _ := os.Create("lut.txt")
//	defer f.Close()
//	_ = report.Table.Write(f)
//
// Custom configuration and publishing:
//
//	cfg := tanhv2.DefaultConfig()
//	cfg.TargetError = 1.0 / (1 << 10)
//
//	store := artifact.NewLocalStore("./build")
//	p, _ := tanhv2.NewPipeline(cfg,
//	    tanhv2.WithWorkers(8),
//	    tanhv2.WithArtifactStore(store),
//	)
//	report, err := p.Run(ctx)
//
// The quality gate is advisory: a run whose worst-case error exceeds
// the target still emits the full table (Status FAIL in the report), so
// a failing run yields an inspectable artifact. IO failures abort.
package tanhv2
