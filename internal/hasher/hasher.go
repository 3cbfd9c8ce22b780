// Package hasher normalizes and hashes PII the way the conversions API matches it:
// trim, lowercase, SHA-256, lowercase hex.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the digest of value and true, or "" and false when value is empty.
func Hash(value string) (string, bool) {
	if value == "" {
		return "", false
	}

	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(value))))
	return hex.EncodeToString(sum[:]), true
}

// HashPtr is Hash for optional fields: nil means absent.
func HashPtr(value string) *string {
	digest, ok := Hash(value)
	if !ok {
		return nil
	}
	return &digest
}
