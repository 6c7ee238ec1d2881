package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ArtifactKey derives the cache key for a rendered artifact from the raw
// input descriptor, the output format, and the layout options. Any change
// to input or options produces a different key - there is no partial
// invalidation.
//
// The full SHA-256 hash (256 bits) is kept to prevent collisions.
func ArtifactKey(descriptor []byte, format string, opts any) string {
	optData, _ := json.Marshal(opts)
	sum := sha256.Sum256(append(append([]byte{}, descriptor...), optData...))
	return fmt.Sprintf("artifact:%s:%s", format, hex.EncodeToString(sum[:]))
}
