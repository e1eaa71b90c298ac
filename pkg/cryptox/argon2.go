package cryptox

import (
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP baseline: 19 MiB, t=2, p=1).
const (
	argon2Time      = 2
	argon2Memory    = 19 * 1024
	argon2Threads   = 1
	argon2KeyLength = 32
)

// Argon2id is the memory-hard alternative to PBKDF2SHA512. The upstream salt
// is used verbatim, so records must be enrolled and verified under the same
// scheme.
type Argon2id struct {
	Time    uint32
	Memory  uint32
	Threads uint8
}

// NewArgon2id returns the hasher with the default parameters.
func NewArgon2id() *Argon2id {
	return &Argon2id{Time: argon2Time, Memory: argon2Memory, Threads: argon2Threads}
}

func (h *Argon2id) Name() string { return SchemeArgon2id }

func (h *Argon2id) Size() int { return hex.EncodedLen(argon2KeyLength) }

func (h *Argon2id) Hash(salt, password string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), h.Time, h.Memory, h.Threads, argon2KeyLength)
	return hex.EncodeToString(key)
}
