package collections

import (
	"crypto/sha256"
	"encoding/hex"
)

// BytesSha256 computes the sha256 of the given content
func BytesSha256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
