package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/metrics"
	"github.com/aussiebroadwan/holidash/pkg/cryptox"
	"github.com/aussiebroadwan/holidash/pkg/slogx"
)

// UserLookup is the read side of the user directory.
type UserLookup interface {
	Lookup(identifier string) (domain.UserRecord, bool)
}

// LoginService performs single-shot credential checks. It issues no
// session or token.
type LoginService struct {
	users    UserLookup
	verifier *CredentialVerifier
	metrics  *metrics.Metrics

	// decoySalt is hashed against for unknown identifiers so that they cost
	// about as much as a wrong password.
	decoySalt string
}

func NewLoginService(users UserLookup, verifier *CredentialVerifier, m *metrics.Metrics) *LoginService {
	salt, err := cryptox.GenerateSalt(cryptox.SaltSize)
	if err != nil {
		salt = "holidash-decoy"
	}
	return &LoginService{users: users, verifier: verifier, metrics: m, decoySalt: salt}
}

// Authenticate returns the user's record when password matches. Every
// failure, whatever the cause, is ErrAuthenticationFailed.
func (s *LoginService) Authenticate(ctx context.Context, identifier, password string) (domain.UserRecord, error) {
	log := slogx.FromContext(ctx).With("identifier", identifier)

	user, ok := s.users.Lookup(identifier)
	if !ok {
		_ = s.verifier.HashCredential(s.decoySalt, password)
		return s.fail(ctx, log, metrics.OutcomeUnknownIdentifier, nil)
	}

	match, err := s.verifier.Verify(user, password)
	switch {
	case err != nil:
		return s.fail(ctx, log, metrics.OutcomeMalformedRecord, err)
	case !match:
		return s.fail(ctx, log, metrics.OutcomeWrongPassword, nil)
	}

	s.metrics.Login(metrics.OutcomeSuccess)
	log.Info("login succeeded")
	return user, nil
}

func (s *LoginService) fail(ctx context.Context, log *slog.Logger, outcome string, cause error) (domain.UserRecord, error) {
	s.metrics.Login(outcome)

	attrs := []slog.Attr{slog.String("reason", outcome)}
	if cause != nil {
		attrs = append(attrs, slog.String("error", cause.Error()))
	}
	log.LogAttrs(ctx, slog.LevelWarn, "login failed", attrs...)

	return domain.UserRecord{}, ErrAuthenticationFailed
}
