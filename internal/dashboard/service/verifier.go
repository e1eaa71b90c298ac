package service

import (
	"fmt"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/pkg/cryptox"
	"github.com/go-playground/validator/v10"
)

// CredentialVerifier checks a password attempt against a stored record. It
// holds no state besides its hasher and is safe for concurrent use.
type CredentialVerifier struct {
	hasher   cryptox.Hasher
	validate *validator.Validate
	hashRule string
}

func NewCredentialVerifier(h cryptox.Hasher) *CredentialVerifier {
	return &CredentialVerifier{
		hasher:   h,
		validate: validator.New(),
		hashRule: fmt.Sprintf("required,len=%d,hexadecimal,lowercase,startsnotwith=0x", h.Size()),
	}
}

// HashCredential is the enrollment half of the convention.
func (v *CredentialVerifier) HashCredential(salt, password string) string {
	return v.hasher.Hash(salt, password)
}

// Verify recomputes the credential for attempted and compares it with the
// stored one. It returns ErrMalformedRecord when the record cannot be
// verified at all; a plain mismatch is (false, nil). Empty attempts are
// hashed like any other. A record with no scheme is read as using the
// verifier's own.
func (v *CredentialVerifier) Verify(record domain.UserRecord, attempted string) (bool, error) {
	if record.Scheme != "" && record.Scheme != v.hasher.Name() {
		return false, fmt.Errorf("%w: scheme %q, verifier uses %q", domain.ErrMalformedRecord, record.Scheme, v.hasher.Name())
	}
	if err := v.validate.Var(record.Salt, "required"); err != nil {
		return false, fmt.Errorf("%w: missing salt", domain.ErrMalformedRecord)
	}
	if err := v.validate.Var(record.CredentialHash, v.hashRule); err != nil {
		return false, fmt.Errorf("%w: credential hash: %v", domain.ErrMalformedRecord, err)
	}

	return cryptox.Equal(v.hasher.Hash(record.Salt, attempted), record.CredentialHash), nil
}
