package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputDigestDeterminism(t *testing.T) {
	line := "rn=1,cm-,qp=3"

	d1 := InputDigest(line)
	d2 := InputDigest(line)

	assert.Equal(t, d1, d2, "InputDigest must be deterministic")
	assert.Len(t, d1, 64, "SHA-256 hex is 64 characters")
	assert.NotEqual(t, d1, InputDigest(line+",ot=7"))
}

func TestDomainSeparation(t *testing.T) {
	data := []byte("payload")
	assert.NotEqual(t,
		hashWithDomain(DomainInput, data),
		hashWithDomain(DomainSnapshot, data),
		"different domains must produce different hashes")
}

func TestSnapshotDigest(t *testing.T) {
	a := []BoxLayout{{Index: 0, Entries: []Entry{{Label: "rn", FocalLength: 1}}}}
	b := []BoxLayout{{Index: 0, Entries: []Entry{{Label: "rn", FocalLength: 2}}}}

	da, err := SnapshotDigest(a)
	require.NoError(t, err)
	db, err := SnapshotDigest(b)
	require.NoError(t, err)

	assert.Len(t, da, 64)
	assert.NotEqual(t, da, db)
}

func TestInstructionString(t *testing.T) {
	assert.Equal(t, "rn=1", Insert("rn", 1).String())
	assert.Equal(t, "cm-", Remove("cm").String())
}
