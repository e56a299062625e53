package store

import "github.com/roach88/lenslab/internal/ir"

// Run is one recorded solve of an input line.
type Run struct {
	ID             string         `json:"id"`
	Seq            int64          `json:"seq"`
	InputDigest    string         `json:"input_digest"`
	TokenCount     int            `json:"token_count"`
	Part1          int            `json:"part1"`
	Part2          int            `json:"part2"`
	Snapshot       []ir.BoxLayout `json:"snapshot"`
	SnapshotDigest string         `json:"snapshot_digest"`
}

// Benchmark is one recorded timing of a run's input line.
type Benchmark struct {
	ID         string `json:"id"`
	RunID      string `json:"run_id"`
	Warmup     int    `json:"warmup"`
	Iterations int    `json:"iterations"`
	Workers    int    `json:"workers"`
	TotalNS    int64  `json:"total_ns"`
	AvgNS      int64  `json:"avg_ns"`
}
