package service

import "errors"

var (
	// ErrAuthenticationFailed is the only failure a login caller sees. The
	// concrete reason is logged and counted, never returned.
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrInvalidCountry      = errors.New("invalid country code")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
