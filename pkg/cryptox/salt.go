package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// SaltSize is the number of random bytes in a generated salt.
const SaltSize = 8

// GenerateSalt returns size random bytes hex encoded. Upstream records carry
// their own salt, so this only feeds decoy hashing for unknown identifiers.
func GenerateSalt(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("salt size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
