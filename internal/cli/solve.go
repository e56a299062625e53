package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lenslab/internal/engine"
	"github.com/roach88/lenslab/internal/hasher"
	"github.com/roach88/lenslab/internal/ir"
	"github.com/roach88/lenslab/internal/store"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Input     string
	Part      int // 0 = both
	Strict    bool
	ShowBoxes bool
	Database  string
}

// SolveOutput is the JSON payload of the solve command.
type SolveOutput struct {
	Part1 *int           `json:"part1,omitempty"`
	Part2 *int           `json:"part2,omitempty"`
	Boxes []ir.BoxLayout `json:"boxes,omitempty"`
	RunID string         `json:"run_id,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute Part 1 and Part 2 checksums",
		Long: `Compute the checksums of an instruction line.

Part 1 is the sum of the hash of every comma-separated token.
Part 2 runs the box simulation and reports the focusing power.

By default tokens are sliced positionally and not validated; --strict
rejects tokens outside "<label>=<digit>" and "<label>-". With --part 1
tokens are only hashed, so any comma-separated line is accepted unless
--show-boxes or --db asks for the simulation as well.

Example:
  lenslab solve -i input.txt
  echo "rn=1,cm-,qp=3" | lenslab solve --part 2 --show-boxes
  lenslab solve -i input.txt --db ./lenslab.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "input file (default: stdin)")
	cmd.Flags().IntVar(&opts.Part, "part", 0, "part to compute (1, 2, or 0 for both)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject tokens outside the instruction grammar")
	cmd.Flags().BoolVar(&opts.ShowBoxes, "show-boxes", false, "print the final box layout")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")

	return cmd
}

func runSolve(opts *SolveOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if opts.Part < 0 || opts.Part > 2 {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid part %d: must be 0, 1, or 2", opts.Part))
	}

	line, err := ReadInputLine(opts.Input, cmd.InOrStdin())
	if err != nil {
		_ = f.Error(ErrCodeNotFound, err.Error(), nil)
		return err
	}
	slog.Debug("input loaded", "bytes", len(line), "tokens", len(hasher.Tokens(line)))

	result := ir.Result{Part1: hasher.Sum(line)}
	var snapshot []ir.BoxLayout

	// Part 1 hashes raw tokens, so a Part 1 only solve never parses them.
	if opts.needsSimulation() {
		var simOpts []engine.Option
		if opts.Strict {
			simOpts = append(simOpts, engine.WithStrict())
		}
		sim := engine.New(simOpts...)
		if err := sim.Exec(line); err != nil {
			_ = f.Error(ErrCodeMalformedToken, err.Error(), nil)
			return WrapExitError(ExitFailure, "malformed input", err)
		}
		result.Part2 = sim.Checksum()
		snapshot = sim.Snapshot()
		slog.Debug("simulation complete", "part1", result.Part1, "part2", result.Part2, "boxes", len(snapshot))
	}

	out := SolveOutput{}
	if opts.Part != 2 {
		out.Part1 = &result.Part1
	}
	if opts.Part != 1 {
		out.Part2 = &result.Part2
	}
	if opts.ShowBoxes {
		out.Boxes = snapshot
	}

	if opts.Database != "" {
		run, err := recordRun(cmd.Context(), opts.Database, line, result, snapshot)
		if err != nil {
			_ = f.Error(ErrCodeDatabase, err.Error(), nil)
			return err
		}
		out.RunID = run.ID
		f.VerboseLog("recorded run %s (seq %d)", run.ID, run.Seq)
	}

	if f.IsJSON() {
		return f.Success(out)
	}
	return f.Success(formatSolveText(out))
}

// needsSimulation reports whether the boxes must be simulated: for Part 2,
// for the box layout, or to record a complete run.
func (o *SolveOptions) needsSimulation() bool {
	return o.Part != 1 || o.ShowBoxes || o.Database != ""
}

// recordRun opens the history database and writes one run.
func recordRun(ctx context.Context, path, line string, result ir.Result, snapshot []ir.BoxLayout) (store.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(path)
	if err != nil {
		return store.Run{}, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	run, err := st.WriteRun(ctx, line, len(hasher.Tokens(line)), result, snapshot)
	if err != nil {
		return store.Run{}, WrapExitError(ExitCommandError, "failed to record run", err)
	}
	slog.Info("run recorded", "id", run.ID, "seq", run.Seq, "db", path)
	return run, nil
}

// formatSolveText renders solve output in the classic "Part1: N" form,
// preceded by the box layout when requested.
func formatSolveText(out SolveOutput) string {
	var b strings.Builder
	for _, layout := range out.Boxes {
		fmt.Fprintf(&b, "Box %d:", layout.Index)
		for _, e := range layout.Entries {
			fmt.Fprintf(&b, " [%s %d]", e.Label, e.FocalLength)
		}
		b.WriteByte('\n')
	}
	if out.Part1 != nil {
		fmt.Fprintf(&b, "Part1: %d\n", *out.Part1)
	}
	if out.Part2 != nil {
		fmt.Fprintf(&b, "Part2: %d\n", *out.Part2)
	}
	if out.RunID != "" {
		fmt.Fprintf(&b, "Run: %s\n", out.RunID)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
