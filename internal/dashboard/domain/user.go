package domain

import "time"

// UserRecord is one enrolled user. CredentialHash is produced by the hasher
// named in Scheme from Salt and the user's password; the password itself is
// never kept.
type UserRecord struct {
	Identifier     string // email, unique within a batch
	FirstName      string
	LastName       string
	DateOfBirth    string
	Salt           string
	CredentialHash string
	Scheme         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasCredential reports whether the record carries both salt and hash.
func (u UserRecord) HasCredential() bool {
	return u.Salt != "" && u.CredentialHash != ""
}

// SourceRecord is a user as delivered by a source, before ingestion. Remote
// sources fill Password; persisted sources fill CredentialHash and Scheme.
// A nil Password means the source sent none; an empty one is a real password.
type SourceRecord struct {
	Identifier     string `validate:"required"`
	FirstName      string
	LastName       string
	DateOfBirth    string
	Salt           string
	Password       *string
	CredentialHash string
	Scheme         string
}
