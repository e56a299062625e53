package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/lenslab/internal/ir"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const runColumns = `id, seq, input_digest, token_count, part1, part2, snapshot, snapshot_digest`

// ReadRun returns the run with the given ID, or ErrNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ReadRuns returns the most recent runs, newest first.
// A limit of 0 or less returns every run.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ReadRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRunsByInput returns every run of the input line with the given digest,
// oldest first.
func (s *Store) ReadRunsByInput(ctx context.Context, inputDigest string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE input_digest = ? ORDER BY seq ASC`, inputDigest)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadBenchmarks returns the benchmarks recorded for a run, in insertion order.
func (s *Store) ReadBenchmarks(ctx context.Context, runID string) ([]Benchmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, warmup, iterations, workers, total_ns, avg_ns
		FROM benchmarks
		WHERE run_id = ?
		ORDER BY rowid ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query benchmarks: %w", err)
	}
	defer rows.Close()

	benchmarks := []Benchmark{}
	for rows.Next() {
		var b Benchmark
		if err := rows.Scan(&b.ID, &b.RunID, &b.Warmup, &b.Iterations, &b.Workers, &b.TotalNS, &b.AvgNS); err != nil {
			return nil, fmt.Errorf("scan benchmark: %w", err)
		}
		benchmarks = append(benchmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate benchmarks: %w", err)
	}
	return benchmarks, nil
}

func scanRun(sc scanner) (Run, error) {
	var (
		run      Run
		snapshot string
	)
	err := sc.Scan(
		&run.ID,
		&run.Seq,
		&run.InputDigest,
		&run.TokenCount,
		&run.Part1,
		&run.Part2,
		&snapshot,
		&run.SnapshotDigest,
	)
	if err != nil {
		return Run{}, err
	}

	layouts := []ir.BoxLayout{}
	if err := json.Unmarshal([]byte(snapshot), &layouts); err != nil {
		return Run{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	run.Snapshot = layouts
	return run, nil
}
