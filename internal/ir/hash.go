package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainInput    = "lenslab/input/v1"
	DomainSnapshot = "lenslab/snapshot/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// InputDigest identifies an input line. Stored runs are keyed by it so
// repeated solves of the same puzzle input can be grouped.
func InputDigest(line string) string {
	return hashWithDomain(DomainInput, []byte(line))
}

// SnapshotDigest identifies a box layout by its canonical JSON.
func SnapshotDigest(layouts []BoxLayout) (string, error) {
	data, err := MarshalCanonical(LayoutValue(layouts))
	if err != nil {
		return "", err
	}
	return hashWithDomain(DomainSnapshot, data), nil
}
