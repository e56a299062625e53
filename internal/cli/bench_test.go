package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchCommandText(t *testing.T) {
	out, err := executeRoot(t, sampleLine, "bench", "--warmup", "2", "--iterations", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Part2: 145\n")
	assert.Contains(t, out, "Part2 duration avg: ")
	assert.Contains(t, out, "(10 runs, 1 workers)")
}

func TestBenchCommandJSON(t *testing.T) {
	out, err := executeRoot(t, sampleLine, "--format", "json", "bench", "--warmup", "0", "--iterations", "12", "--workers", "3")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   BenchOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 145, resp.Data.Part2)
	assert.Equal(t, 12, resp.Data.Iterations)
	assert.Equal(t, 3, resp.Data.Workers)
	assert.GreaterOrEqual(t, resp.Data.TotalNS, resp.Data.AvgNS)
}

func TestBenchInvalidConfig(t *testing.T) {
	tests := map[string][]string{
		"zero iterations": {"--iterations", "0"},
		"negative warmup": {"--warmup", "-1"},
		"zero workers":    {"--workers", "0"},
	}

	for name, flags := range tests {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"bench"}, flags...)
			out, err := executeRoot(t, sampleLine, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error [E030]")
		})
	}
}

func TestBenchMalformedInput(t *testing.T) {
	out, err := executeRoot(t, "rn=1,5", "bench", "--iterations", "1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E010]")
}

func TestBenchRecordsBenchmark(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lenslab.db")

	_, err := executeRoot(t, sampleLine, "bench", "--warmup", "1", "--iterations", "5", "--db", db)
	require.NoError(t, err)

	out, err := executeRoot(t, "", "--format", "json", "history", "--db", db, "--benchmarks")
	require.NoError(t, err)

	var hist struct {
		Data []HistoryEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &hist))
	require.Len(t, hist.Data, 1)
	require.Len(t, hist.Data[0].Benchmarks, 1)

	b := hist.Data[0].Benchmarks[0]
	assert.Equal(t, hist.Data[0].ID, b.RunID)
	assert.Equal(t, 1, b.Warmup)
	assert.Equal(t, 5, b.Iterations)
	assert.Equal(t, 1, b.Workers)
}
