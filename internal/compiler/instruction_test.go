package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lenslab/internal/ir"
)

func TestCompileInstruction(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  ir.Instruction
	}{
		{name: "insert", token: "rn=1", want: ir.Insert("rn", 1)},
		{name: "insert zero", token: "abc=0", want: ir.Insert("abc", 0)},
		{name: "insert nine", token: "x=9", want: ir.Insert("x", 9)},
		{name: "remove", token: "cm-", want: ir.Remove("cm")},
		{name: "remove long label", token: "qwerty-", want: ir.Remove("qwerty")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompileInstruction(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileInstruction_PositionalSlicing(t *testing.T) {
	// Multi-digit focal lengths are not supported: only the last digit is
	// read and exactly two bytes are dropped.
	got, err := CompileInstruction("ab=12")
	require.NoError(t, err)
	assert.Equal(t, ir.Insert("ab=", 2), got)

	// Any non-digit terminator is treated as a remove of everything before it.
	got, err = CompileInstruction("ab?")
	require.NoError(t, err)
	assert.Equal(t, ir.Remove("ab"), got)
}

func TestCompileInstruction_TooShort(t *testing.T) {
	_, err := CompileInstruction("5")
	require.Error(t, err)
	assert.True(t, IsCompileError(err))
	assert.Contains(t, err.Error(), "too short")

	_, err = CompileInstruction("")
	require.Error(t, err)
	assert.True(t, IsCompileError(err))
}

func TestCompileInstruction_Strict(t *testing.T) {
	valid := []string{"rn=1", "cm-", "abc=0"}
	for _, tok := range valid {
		t.Run("valid "+tok, func(t *testing.T) {
			_, err := CompileInstruction(tok, WithStrict())
			assert.NoError(t, err)
		})
	}

	invalid := map[string]string{
		"ab=12": "expected",
		"a=b=1": "must not contain",
		"ab?":   "expected",
		"=4":    "empty label",
		"-":     "empty label",
		"a-b-":  "must not contain",
		"ab4":   "expected",
	}
	for tok, msg := range invalid {
		t.Run("invalid "+tok, func(t *testing.T) {
			_, err := CompileInstruction(tok, WithStrict())
			require.Error(t, err)
			assert.True(t, IsCompileError(err))
			assert.Contains(t, err.Error(), msg)
		})
	}
}

func TestCompileLine(t *testing.T) {
	got, err := CompileLine(" rn=1, cm-,qp=3\n")
	require.NoError(t, err)
	assert.Equal(t, []ir.Instruction{
		ir.Insert("rn", 1),
		ir.Remove("cm"),
		ir.Insert("qp", 3),
	}, got)
}

func TestCompileLine_Empty(t *testing.T) {
	got, err := CompileLine("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCompileLine_ReportsIndex(t *testing.T) {
	_, err := CompileLine("rn=1,cm-,5", WithStrict())
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Index)
	assert.Equal(t, "5", ce.Token)
	assert.Contains(t, err.Error(), "token 2")
}
