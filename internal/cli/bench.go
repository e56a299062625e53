package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/lenslab/internal/bench"
	"github.com/roach88/lenslab/internal/engine"
	"github.com/roach88/lenslab/internal/hasher"
	"github.com/roach88/lenslab/internal/ir"
	"github.com/roach88/lenslab/internal/store"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	*RootOptions
	Input    string
	Database string
	bench.Config
}

// BenchOutput is the JSON payload of the bench command.
type BenchOutput struct {
	Part2      int    `json:"part2"`
	Warmup     int    `json:"warmup"`
	Iterations int    `json:"iterations"`
	Workers    int    `json:"workers"`
	TotalNS    int64  `json:"total_ns"`
	AvgNS      int64  `json:"avg_ns"`
	RunID      string `json:"run_id,omitempty"`
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BenchOptions{RootOptions: rootOpts, Config: bench.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated Part 2 simulations",
		Long: `Run the Part 2 simulation repeatedly and report the average time per run.

A warmup loop runs first and is not timed. With --workers > 1 the timed
iterations are split across goroutines, each with its own boxes.

Example:
  lenslab bench -i input.txt
  lenslab bench -i input.txt --iterations 100000 --workers 4 --db ./lenslab.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input file (default: stdin)")
	cmd.Flags().IntVar(&opts.Warmup, "warmup", bench.DefaultWarmup, "untimed warmup runs")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", bench.DefaultIterations, "timed runs")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "parallel workers")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject tokens outside the instruction grammar")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the benchmark in this SQLite database")

	return cmd
}

func runBench(opts *BenchOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if err := opts.Config.Validate(); err != nil {
		_ = f.Error(ErrCodeInvalidConfig, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid benchmark configuration", err)
	}

	line, err := ReadInputLine(opts.Input, cmd.InOrStdin())
	if err != nil {
		_ = f.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	slog.Debug("benchmark starting", "warmup", opts.Warmup, "iterations", opts.Iterations, "workers", opts.Workers)
	res, err := bench.Measure(ctx, line, opts.Config)
	if err != nil {
		if engine.IsMalformedTokenError(err) {
			_ = f.Error(ErrCodeMalformedToken, err.Error(), nil)
			return WrapExitError(ExitFailure, "malformed input", err)
		}
		_ = f.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "benchmark failed", err)
	}
	slog.Debug("benchmark complete", "total", res.Total, "avg", res.Avg)

	out := BenchOutput{
		Part2:      res.Checksum,
		Warmup:     res.Warmup,
		Iterations: res.Iterations,
		Workers:    res.Workers,
		TotalNS:    res.Total.Nanoseconds(),
		AvgNS:      res.Avg.Nanoseconds(),
	}

	if opts.Database != "" {
		runID, err := recordBenchmark(ctx, opts, line, out)
		if err != nil {
			_ = f.Error(ErrCodeDatabase, err.Error(), nil)
			return err
		}
		out.RunID = runID
	}

	if f.IsJSON() {
		return f.Success(out)
	}
	text := fmt.Sprintf("Part2: %d\nPart2 duration avg: %d ns (%d runs, %d workers)",
		out.Part2, out.AvgNS, out.Iterations, out.Workers)
	if out.RunID != "" {
		text += "\nRun: " + out.RunID
	}
	return f.Success(text)
}

// recordBenchmark stores a run for the measured line plus the benchmark row.
func recordBenchmark(ctx context.Context, opts *BenchOptions, line string, out BenchOutput) (string, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	var simOpts []engine.Option
	if opts.Strict {
		simOpts = append(simOpts, engine.WithStrict())
	}
	sim := engine.New(simOpts...)
	if err := sim.Exec(line); err != nil {
		return "", WrapExitError(ExitFailure, "malformed input", err)
	}

	result := ir.Result{Part1: hasher.Sum(line), Part2: sim.Checksum()}
	run, err := st.WriteRun(ctx, line, len(hasher.Tokens(line)), result, sim.Snapshot())
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to record run", err)
	}

	b, err := st.WriteBenchmark(ctx, store.Benchmark{
		RunID:      run.ID,
		Warmup:     out.Warmup,
		Iterations: out.Iterations,
		Workers:    out.Workers,
		TotalNS:    out.TotalNS,
		AvgNS:      out.AvgNS,
	})
	if err != nil {
		return "", WrapExitError(ExitCommandError, "failed to record benchmark", err)
	}
	slog.Info("benchmark recorded", "run", run.ID, "benchmark", b.ID, "db", opts.Database)
	return run.ID, nil
}
