package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupTestStore opens a fresh store in a temp dir with deterministic IDs.
func setupTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()

	var opts []Option
	if len(ids) > 0 {
		opts = append(opts, WithIDGenerator(NewFixedGenerator(ids...)))
	}
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
