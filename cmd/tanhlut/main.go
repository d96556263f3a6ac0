// Command tanhlut generates the piecewise-quadratic tanh coefficient
// table for the TANH_V2 hardware evaluator.
//
// It writes lut.txt (the 64-entry hardware hex table) and report.json
// (the structured run report) to the output directory, and can
// additionally publish both to an object store:
//
//	tanhlut
//	tanhlut -dir build -workers 8
//	tanhlut -publish s3://hw-artifacts/tanh-v2
//	tanhlut -publish minio://minio.local:9000/hw-artifacts/tanh-v2
//
// The quality gate is advisory by default: a run exceeding the target
// error prints FAIL but still exits 0 and writes the table. Pass
// -strict to exit nonzero on FAIL for CI gating.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/whyuwhyi/tanhv2"
	"github.com/whyuwhyi/tanhv2/artifact"
	minioartifact "github.com/whyuwhyi/tanhv2/artifact/minio"
	s3artifact "github.com/whyuwhyi/tanhv2/artifact/s3"
	"github.com/whyuwhyi/tanhv2/lut"
)

func main() {
	def := tanhv2.DefaultConfig()

	var (
		dir        = flag.String("dir", ".", "output directory for lut.txt and report.json")
		tableName  = flag.String("out", "lut.txt", "table artifact name")
		reportName = flag.String("report", "report.json", "report artifact name")
		gzipReport = flag.Bool("gzip-report", false, "gzip-compress the report artifact")
		publish    = flag.String("publish", "", "also publish artifacts to s3://bucket/prefix or minio://endpoint/bucket/prefix")

		xmin      = flag.Float64("xmin", def.XMin, "domain lower bound")
		xmax      = flag.Float64("xmax", def.XMax, "domain upper bound")
		expMin    = flag.Int("exp-min", def.ExpMin, "lowest covered binary exponent")
		expMax    = flag.Int("exp-max", def.ExpMax, "highest covered binary exponent")
		targetErr = flag.Float64("target", def.TargetError, "worst-case error bound")

		seed    = flag.Int64("seed", def.Fit.Seed, "base RNG seed for reproducible tables")
		maxIter = flag.Int("maxiter", def.Fit.MaxIter, "optimizer generation budget per segment")
		popSize = flag.Int("popsize", def.Fit.PopSize, "optimizer population multiplier")
		tol     = flag.Float64("tol", def.Fit.Tol, "relative convergence tolerance")
		atol    = flag.Float64("atol", def.Fit.Atol, "absolute convergence tolerance")
		polish  = flag.Bool("polish", def.Fit.Polish, "run simplex polish after evolution")

		workers   = flag.Int("workers", 1, "concurrent segment fits")
		strict    = flag.Bool("strict", false, "exit nonzero when the quality gate fails")
		verbose   = flag.Bool("v", false, "debug logging")
		logFormat = flag.String("log", "text", "log format: text or json")
	)
	flag.Parse()

	cfg := tanhv2.Config{
		XMin:         *xmin,
		XMax:         *xmax,
		ExpMin:       *expMin,
		ExpMax:       *expMax,
		MantissaBins: def.MantissaBins,
		TargetError:  *targetErr,
		Fit: tanhv2.FitConfig{
			MaxIter: *maxIter,
			PopSize: *popSize,
			Tol:     *tol,
			Atol:    *atol,
			Seed:    *seed,
			Polish:  *polish,
		},
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	var logger *tanhv2.Logger
	if *logFormat == "json" {
		logger = tanhv2.NewJSONLogger(level)
	} else {
		logger = tanhv2.NewTextLogger(level)
	}

	ctx := context.Background()

	store, err := buildStore(ctx, *dir, *publish)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tanhlut: %v\n", err)
		os.Exit(1)
	}

	p, err := tanhv2.NewPipeline(cfg,
		tanhv2.WithLogger(logger),
		tanhv2.WithWorkers(*workers),
		tanhv2.WithArtifactStore(store),
		tanhv2.WithTableName(*tableName),
		tanhv2.WithReportName(*reportName),
		tanhv2.WithGzipReport(*gzipReport),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tanhlut: %v\n", err)
		os.Exit(1)
	}

	report, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tanhlut: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Total segments: %d\n", report.TotalSegments)
	fmt.Printf("Valid segments: %d/%d\n", report.ActiveSegments, report.TotalSegments)
	fmt.Printf("Max error: %.10e\n", report.MaxError)
	fmt.Printf("Target:    %.10e\n", report.TargetError)
	fmt.Printf("Status:    %s\n", report.Status)
	fmt.Printf("\nSaved to %s\n", *tableName)
	fmt.Printf("Entries: %d\n", lut.NumEntries)
	fmt.Printf("Size: %d bytes\n", lut.PayloadBytes)

	if *strict && !report.Pass() {
		os.Exit(1)
	}
}

// buildStore assembles the artifact destination: the local output
// directory, optionally fanned out to an object store.
func buildStore(ctx context.Context, dir, publish string) (artifact.Store, error) {
	local := artifact.NewLocalStore(dir)
	if publish == "" {
		return local, nil
	}

	remote, err := remoteStore(ctx, publish)
	if err != nil {
		return nil, err
	}
	return artifact.NewMultiStore(local, remote), nil
}

func remoteStore(ctx context.Context, target string) (artifact.Store, error) {
	switch {
	case strings.HasPrefix(target, "s3://"):
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(target, "s3://"), "/")
		if bucket == "" {
			return nil, fmt.Errorf("publish target %q: missing bucket", target)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		return s3artifact.NewStore(awss3.NewFromConfig(awsCfg), bucket, prefix), nil

	case strings.HasPrefix(target, "minio://"):
		rest := strings.TrimPrefix(target, "minio://")
		endpoint, rest, _ := strings.Cut(rest, "/")
		bucket, prefix, _ := strings.Cut(rest, "/")
		if endpoint == "" || bucket == "" {
			return nil, fmt.Errorf("publish target %q: expected minio://endpoint/bucket[/prefix]", target)
		}
		client, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: os.Getenv("MINIO_INSECURE") == "",
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return minioartifact.NewStore(client, bucket, prefix), nil

	default:
		return nil, fmt.Errorf("unsupported publish target %q (want s3:// or minio://)", target)
	}
}
