package domain

import "errors"

var (
	// ErrSourceUnavailable means a batch could not be fetched or parsed in
	// full. Callers never see a partial batch.
	ErrSourceUnavailable = errors.New("user source unavailable")

	// ErrMalformedRecord means a record lacks what is needed to verify it,
	// or a source payload is missing its identifier.
	ErrMalformedRecord = errors.New("malformed user record")
)
