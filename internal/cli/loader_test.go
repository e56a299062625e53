package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", sampleLine + "\n", sampleLine},
		{"no trailing newline", "rn=1,cm-", "rn=1,cm-"},
		{"crlf", "rn=1\r\n", "rn=1"},
		{"leading blank lines", "\n  \nrn=1\nqp=3\n", "rn=1"},
		{"empty", "", ""},
		{"only blanks", "\n\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadInputLine("", strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadInputLineFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleLine+"\n"), 0644))

	got, err := ReadInputLine(path, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, sampleLine, got)
}

func TestReadInputLineMissingFile(t *testing.T) {
	_, err := ReadInputLine(filepath.Join(t.TempDir(), "nope.txt"), nil)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "input file not found")
}

func TestReadInputLineNilReader(t *testing.T) {
	got, err := ReadInputLine("", nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
