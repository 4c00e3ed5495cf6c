package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short stable identifier for data, suitable for logs
// where the content itself must not appear.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
