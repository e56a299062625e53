package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lenslab/internal/ir"
	"github.com/roach88/lenslab/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database   string
	Input      string // restrict to runs of this input file's line
	Limit      int
	Benchmarks bool
}

// HistoryEntry is one run in history output.
type HistoryEntry struct {
	store.Run
	Benchmarks []store.Benchmark `json:"benchmarks,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded by "solve --db" and "bench --db", newest first.

With --input, only runs of that file's line are listed, oldest first.

Example:
  lenslab history --db ./lenslab.db --limit 5 --benchmarks
  lenslab history --db ./lenslab.db --input input.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "only runs of this input file")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 for all)")
	cmd.Flags().BoolVar(&opts.Benchmarks, "benchmarks", false, "include benchmark timings")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = f.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	runs, err := readHistory(ctx, st, opts)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			_ = f.Error(ErrCodeNotFound, err.Error(), nil)
			return err
		}
		_ = f.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read runs", err)
	}

	entries := make([]HistoryEntry, len(runs))
	for i, run := range runs {
		entries[i] = HistoryEntry{Run: run}
		if !opts.Benchmarks {
			continue
		}
		bs, err := st.ReadBenchmarks(ctx, run.ID)
		if err != nil {
			_ = f.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to read benchmarks", err)
		}
		entries[i].Benchmarks = bs
	}

	if f.IsJSON() {
		return f.Success(entries)
	}
	if len(entries) == 0 {
		return f.Success("No runs recorded.")
	}
	return f.Success(formatHistoryText(entries))
}

// readHistory lists runs newest first, or the runs of opts.Input oldest
// first, capped at opts.Limit.
func readHistory(ctx context.Context, st *store.Store, opts *HistoryOptions) ([]store.Run, error) {
	if opts.Input == "" {
		return st.ReadRuns(ctx, opts.Limit)
	}

	line, err := ReadInputLine(opts.Input, nil)
	if err != nil {
		return nil, err
	}
	runs, err := st.ReadRunsByInput(ctx, ir.InputDigest(line))
	if err != nil {
		return nil, err
	}
	if opts.Limit > 0 && len(runs) > opts.Limit {
		runs = runs[len(runs)-opts.Limit:]
	}
	return runs, nil
}

func formatHistoryText(entries []HistoryEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "#%d %s input=%s tokens=%d part1=%d part2=%d\n",
			e.Seq, e.ID, e.InputDigest[:12], e.TokenCount, e.Part1, e.Part2)
		for _, bm := range e.Benchmarks {
			fmt.Fprintf(&b, "    bench %s avg=%dns runs=%d workers=%d\n", bm.ID, bm.AvgNS, bm.Iterations, bm.Workers)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
