package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/lenslab/internal/ir"
)

// Write retry policy for SQLITE_BUSY / SQLITE_LOCKED from another process
// holding the write lock past busy_timeout.
const (
	maxWriteAttempts = 5
	writeRetryDelay  = 50 * time.Millisecond
)

// WriteRun records a solve and returns the stored run with its assigned
// ID and seq. Snapshot is serialized to canonical JSON.
func (s *Store) WriteRun(ctx context.Context, line string, tokenCount int, result ir.Result, snapshot []ir.BoxLayout) (Run, error) {
	snapshotJSON, err := ir.MarshalCanonical(ir.LayoutValue(snapshot))
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	snapshotDigest, err := ir.SnapshotDigest(snapshot)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	run := Run{
		ID:             s.ids.Generate(),
		InputDigest:    ir.InputDigest(line),
		TokenCount:     tokenCount,
		Part1:          result.Part1,
		Part2:          result.Part2,
		Snapshot:       snapshot,
		SnapshotDigest: snapshotDigest,
	}

	// seq is assigned inside the INSERT so the read of MAX(seq) and the
	// write happen in one implicit transaction. Within a process the single
	// connection serializes writers; across processes a conflicting writer
	// surfaces as SQLITE_BUSY and the insert is retried.
	err = withBusyRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO runs
			(id, seq, input_digest, token_count, part1, part2, snapshot, snapshot_digest)
			VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?, ?, ?)
			RETURNING seq
		`,
			run.ID,
			run.InputDigest,
			run.TokenCount,
			run.Part1,
			run.Part2,
			string(snapshotJSON),
			run.SnapshotDigest,
		).Scan(&run.Seq)
	})
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	return run, nil
}

// WriteBenchmark records a benchmark for an existing run.
// The run referenced by b.RunID must exist (foreign key constraint).
func (s *Store) WriteBenchmark(ctx context.Context, b Benchmark) (Benchmark, error) {
	if b.ID == "" {
		b.ID = s.ids.Generate()
	}

	err := withBusyRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO benchmarks
			(id, run_id, warmup, iterations, workers, total_ns, avg_ns)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			b.ID,
			b.RunID,
			b.Warmup,
			b.Iterations,
			b.Workers,
			b.TotalNS,
			b.AvgNS,
		)
		return err
	})
	if err != nil {
		return Benchmark{}, fmt.Errorf("write benchmark: %w", err)
	}

	return b, nil
}

// withBusyRetry runs write, retrying with linear backoff while SQLite
// reports the database busy or locked.
func withBusyRetry(ctx context.Context, write func() error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = write()
		if err == nil || !isBusy(err) || attempt == maxWriteAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * writeRetryDelay):
		}
	}
}

// isBusy reports whether err is a transient SQLite lock conflict.
func isBusy(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
}
