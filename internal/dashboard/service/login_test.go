package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/metrics"
	"github.com/aussiebroadwan/holidash/pkg/cryptox"
	"github.com/aussiebroadwan/holidash/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type mapLookup map[string]domain.UserRecord

func (m mapLookup) Lookup(id string) (domain.UserRecord, bool) {
	u, ok := m[id]
	return u, ok
}

func TestAuthenticate(t *testing.T) {
	h := &cryptox.PBKDF2SHA512{Iterations: 1000}
	jane := enrolled(h, "abc123", "hunter2-correct")
	broken := domain.UserRecord{Identifier: "broken@example.com", FirstName: "B"}
	users := mapLookup{jane.Identifier: jane, broken.Identifier: broken}

	tests := []struct {
		name       string
		identifier string
		password   string
		outcome    string
	}{
		{"unknown identifier", "nobody@example.com", "attempt-unknown", metrics.OutcomeUnknownIdentifier},
		{"malformed record", broken.Identifier, "attempt-malformed", metrics.OutcomeMalformedRecord},
		{"wrong password", jane.Identifier, "Hunter2-correct", metrics.OutcomeWrongPassword},
		{"empty password", jane.Identifier, "", metrics.OutcomeWrongPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.New()
			svc := NewLoginService(users, NewCredentialVerifier(h), m)

			var logs bytes.Buffer
			ctx := slogx.WithContext(context.Background(), slog.New(slog.NewJSONHandler(&logs, nil)))

			u, err := svc.Authenticate(ctx, tt.identifier, tt.password)
			require.ErrorIs(t, err, ErrAuthenticationFailed)
			require.Equal(t, domain.UserRecord{}, u)

			require.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(tt.outcome)))
			require.Contains(t, logs.String(), `"reason":"`+tt.outcome+`"`)
			if tt.password != "" {
				require.NotContains(t, logs.String(), tt.password)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		m := metrics.New()
		svc := NewLoginService(users, NewCredentialVerifier(h), m)

		u, err := svc.Authenticate(context.Background(), jane.Identifier, "hunter2-correct")
		require.NoError(t, err)
		require.Equal(t, "Jane", u.FirstName)
		require.Equal(t, "Doe", u.LastName)
		require.Equal(t, jane.DateOfBirth, u.DateOfBirth)
		require.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess)))
	})
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	h := &cryptox.PBKDF2SHA512{Iterations: 1000}
	jane := enrolled(h, "abc123", "pw")
	svc := NewLoginService(mapLookup{jane.Identifier: jane}, NewCredentialVerifier(h), nil)
	ctx := context.Background()

	_, errUnknown := svc.Authenticate(ctx, "nobody@example.com", "pw")
	_, errWrong := svc.Authenticate(ctx, jane.Identifier, "nope")
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}
