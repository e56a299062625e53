// Package bench times repeated simulations of an input line.
//
// A measurement runs a warmup loop followed by a timed loop and reports the
// average duration of one simulation. The timed loop can be split across
// workers; each worker runs its own simulators, so no state is shared.
// Each worker times its own share, and the average is taken over the
// summed worker time, so it stays a per-run duration with many workers.
package bench

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/lenslab/internal/engine"
)

// Defaults match the classic harness: 1000 warmup runs, 20000 timed runs.
const (
	DefaultWarmup     = 1000
	DefaultIterations = 20000
)

// cancelCheckInterval is how many iterations run between context checks.
const cancelCheckInterval = 64

// Config controls a measurement.
type Config struct {
	Warmup     int
	Iterations int
	Workers    int
	Strict     bool
}

// DefaultConfig returns the default single-worker configuration.
func DefaultConfig() Config {
	return Config{Warmup: DefaultWarmup, Iterations: DefaultIterations, Workers: 1}
}

// Validate checks that the configuration can be measured.
func (c Config) Validate() error {
	if c.Warmup < 0 {
		return fmt.Errorf("warmup must be >= 0, got %d", c.Warmup)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be > 0, got %d", c.Iterations)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be > 0, got %d", c.Workers)
	}
	return nil
}

// Result is the outcome of a measurement.
type Result struct {
	Config
	Checksum int           `json:"checksum"`
	Total    time.Duration `json:"total_ns"` // wall time of the timed loop
	Avg      time.Duration `json:"avg_ns"`   // mean duration of one run
}

// Measure benchmarks engine.Run on line.
//
// The line is simulated once up front; a compile error is returned before
// any timing starts. Every timed run must reproduce the same checksum.
func Measure(ctx context.Context, line string, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	var opts []engine.Option
	if cfg.Strict {
		opts = append(opts, engine.WithStrict())
	}

	want, err := engine.Run(line, opts...)
	if err != nil {
		return Result{}, err
	}

	if err := loop(ctx, line, cfg.Warmup, want, opts); err != nil {
		return Result{}, fmt.Errorf("warmup: %w", err)
	}

	shares := split(cfg.Iterations, cfg.Workers)
	elapsed := make([]time.Duration, len(shares))

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w, n := range shares {
		if n == 0 {
			continue
		}
		g.Go(func() error {
			workerStart := time.Now()
			if err := loop(gctx, line, n, want, opts); err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			elapsed[w] = time.Since(workerStart)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	total := time.Since(start)

	var busy time.Duration
	for _, d := range elapsed {
		busy += d
	}

	return Result{
		Config:   cfg,
		Checksum: want,
		Total:    total,
		Avg:      busy / time.Duration(cfg.Iterations),
	}, nil
}

// loop runs n simulations, checking ctx periodically.
func loop(ctx context.Context, line string, n, want int, opts []engine.Option) error {
	for i := 0; i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		got, err := engine.Run(line, opts...)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("nondeterministic checksum: got %d, want %d", got, want)
		}
	}
	return nil
}

// split divides n iterations across workers as evenly as possible.
func split(n, workers int) []int {
	shares := make([]int, workers)
	for i := range shares {
		shares[i] = n / workers
		if i < n%workers {
			shares[i]++
		}
	}
	return shares
}
