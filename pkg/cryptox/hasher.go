package cryptox

import (
	"crypto/subtle"
	"fmt"
)

// Scheme names understood by NewHasher.
const (
	SchemePBKDF2SHA512 = "pbkdf2-sha512"
	SchemeArgon2id     = "argon2id"
)

// Hasher derives a fixed-length hex credential from a salt and a password.
// Implementations are deterministic and safe for concurrent use.
type Hasher interface {
	// Name identifies the convention. It is stored next to every credential
	// so a verifier can refuse records produced under another convention.
	Name() string
	// Hash returns the lowercase hex credential for salt and password.
	Hash(salt, password string) string
	// Size is the length of the hex string returned by Hash.
	Size() int
}

// NewHasher returns the hasher registered under scheme with its default
// parameters. An empty scheme selects SchemePBKDF2SHA512.
func NewHasher(scheme string) (Hasher, error) {
	switch scheme {
	case "", SchemePBKDF2SHA512:
		return NewPBKDF2SHA512(), nil
	case SchemeArgon2id:
		return NewArgon2id(), nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", scheme)
	}
}

// Equal reports whether two credential strings are identical without
// short-circuiting on the first differing byte.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
