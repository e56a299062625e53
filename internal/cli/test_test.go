package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lenslab/internal/harness"
)

const passingScenario = `name: sample
description: canonical sample line
line: "rn=1,cm-,qp=3,cm=2,qp-,pc=4,ot=9,ab=5,pc-,pc=6,ot=7"
expect:
  part1: 1320
  part2: 145
assertions:
  - type: box_contents
    box: 0
    entries:
      - {label: rn, focal_length: 1}
      - {label: cm, focal_length: 2}
`

const failingScenario = `name: wrong
description: deliberately wrong checksum
line: "rn=1"
expect:
  part2: 2
`

func writeScenario(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func executeTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := executeTest(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := executeTest(t, "text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := executeTest(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := executeTest(t, "json", t.TempDir())
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 0, resp.Data.Total)
}

func TestTestCommandPassing(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "sample.yaml", passingScenario)

	out, err := executeTest(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sample")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandFailing(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "sample.yaml", passingScenario)
	writeScenario(t, dir, "wrong.yml", failingScenario)

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong")
	assert.Contains(t, out, "part2 = 1, want 2")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommandFailingJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "wrong.yaml", failingScenario)

	out, err := executeTest(t, "json", dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "wrong", resp.Data.Scenarios[0].Name)
	assert.NotEmpty(t, resp.Data.Scenarios[0].Errors)
}

func TestTestCommandInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken.yaml", "name: broken\nunknown_field: 1\n")

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "sample.yaml", passingScenario)
	writeScenario(t, dir, "wrong.yaml", failingScenario)

	out, err := executeTest(t, "text", dir, "--filter", "sam*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
	assert.NotContains(t, out, "wrong")
}

func TestTestCommandUpdateRequiresGolden(t *testing.T) {
	_, err := executeTest(t, "text", t.TempDir(), "--update")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--update requires --golden")
}

func TestTestCommandGolden(t *testing.T) {
	dir := t.TempDir()
	goldenDir := filepath.Join(t.TempDir(), "golden")
	writeScenario(t, dir, "sample.yaml", passingScenario)

	// Missing golden file fails.
	_, err := executeTest(t, "text", dir, "--golden", goldenDir)
	require.Error(t, err)

	out, err := executeTest(t, "text", dir, "--golden", goldenDir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")

	data, err := os.ReadFile(filepath.Join(goldenDir, "sample.golden"))
	require.NoError(t, err)

	scenario, err := harness.ParseScenario([]byte(passingScenario))
	require.NoError(t, err)
	result, err := harness.Run(scenario)
	require.NoError(t, err)
	want, err := harness.MarshalSnapshot("sample", result)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(data))

	out, err = executeTest(t, "text", dir, "--golden", goldenDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sample")

	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "sample.golden"), []byte("{}"), 0644))
	out, err = executeTest(t, "text", dir, "--golden", goldenDir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "b.yaml", passingScenario)
	writeScenario(t, dir, "a.yml", passingScenario)
	writeScenario(t, dir, "notes.txt", "ignored")

	files, err := findScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.yml"), filepath.Join(dir, "b.yaml")}, files)

	_, err = findScenarioFiles(dir, "[")
	require.Error(t, err)
}
