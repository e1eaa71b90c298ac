package cryptox

import (
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultPBKDF2Iterations is the work factor used for enrolled users.
	DefaultPBKDF2Iterations = 100_000
	pbkdf2KeyLength         = sha512.Size
)

// PBKDF2SHA512 implements the default credential convention:
// PBKDF2-HMAC-SHA512 with the password bytes as key material and the salt
// bytes, exactly as given, as the PBKDF2 salt. Output is 64 bytes hex encoded.
type PBKDF2SHA512 struct {
	Iterations int
}

// NewPBKDF2SHA512 returns the hasher with DefaultPBKDF2Iterations.
func NewPBKDF2SHA512() *PBKDF2SHA512 {
	return &PBKDF2SHA512{Iterations: DefaultPBKDF2Iterations}
}

func (h *PBKDF2SHA512) Name() string { return SchemePBKDF2SHA512 }

func (h *PBKDF2SHA512) Size() int { return hex.EncodedLen(pbkdf2KeyLength) }

func (h *PBKDF2SHA512) Hash(salt, password string) string {
	iter := h.Iterations
	if iter <= 0 {
		iter = DefaultPBKDF2Iterations
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iter, pbkdf2KeyLength, sha512.New)
	return hex.EncodeToString(key)
}
