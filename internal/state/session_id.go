package state

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// ComputeSessionID computes a stable session ID from a working directory.
// Equivalent spellings of the same directory produce the same ID.
func ComputeSessionID(dir string) string {
	hash := sha256.Sum256([]byte(filepath.Clean(dir)))
	return hex.EncodeToString(hash[:])
}
