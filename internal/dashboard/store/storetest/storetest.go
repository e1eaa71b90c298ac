// Package storetest is a conformance suite every store driver runs.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	"github.com/stretchr/testify/require"
)

// Record builds a stored user for index i.
func Record(i int) domain.UserRecord {
	return domain.UserRecord{
		Identifier:     fmt.Sprintf("user-%03d@example.com", i),
		FirstName:      fmt.Sprintf("First%d", i),
		LastName:       fmt.Sprintf("Last%d", i),
		DateOfBirth:    "1980-01-01T10:00:00.000Z",
		Salt:           fmt.Sprintf("salt-%d", i),
		CredentialHash: fmt.Sprintf("%064x", i),
		Scheme:         "argon2id",
	}
}

// Run exercises s. The store must be empty and migrated.
func Run(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()
	users := s.Users()

	t.Run("starts empty", func(t *testing.T) {
		empty, err := users.IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)

		n, err := users.Count(ctx)
		require.NoError(t, err)
		require.Zero(t, n)

		_, err = users.GetByIdentifier(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		list, err := users.List(ctx, 10)
		require.NoError(t, err)
		require.Empty(t, list)
	})

	t.Run("put batch and read back", func(t *testing.T) {
		batch := []domain.UserRecord{Record(2), Record(0), Record(1)}
		require.NoError(t, users.PutBatch(ctx, batch))

		n, err := users.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, n)

		got, err := users.GetByIdentifier(ctx, Record(1).Identifier)
		require.NoError(t, err)
		requireSameUser(t, Record(1), got)
		require.False(t, got.CreatedAt.IsZero())
		require.False(t, got.UpdatedAt.IsZero())

		list, err := users.List(ctx, 2)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, Record(0).Identifier, list[0].Identifier)
		require.Equal(t, Record(1).Identifier, list[1].Identifier)
	})

	t.Run("upsert keeps created_at", func(t *testing.T) {
		before, err := users.GetByIdentifier(ctx, Record(0).Identifier)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		changed := Record(0)
		changed.FirstName = "Renamed"
		changed.CredentialHash = fmt.Sprintf("%064x", 999)
		require.NoError(t, users.PutBatch(ctx, []domain.UserRecord{changed}))

		after, err := users.GetByIdentifier(ctx, changed.Identifier)
		require.NoError(t, err)
		requireSameUser(t, changed, after)
		require.WithinDuration(t, before.CreatedAt, after.CreatedAt, time.Millisecond)
		require.True(t, after.UpdatedAt.After(before.UpdatedAt) || after.UpdatedAt.Equal(before.UpdatedAt))

		n, err := users.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, n)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		require.NoError(t, users.PutBatch(ctx, nil))
	})

	t.Run("large batch", func(t *testing.T) {
		batch := make([]domain.UserRecord, 0, 150)
		for i := 100; i < 250; i++ {
			batch = append(batch, Record(i))
		}
		require.NoError(t, users.PutBatch(ctx, batch))

		n, err := users.Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 153, n)

		empty, err := users.IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, s.Ping(ctx))
	})
}

func requireSameUser(t *testing.T, want, got domain.UserRecord) {
	t.Helper()
	require.Equal(t, want.Identifier, got.Identifier)
	require.Equal(t, want.FirstName, got.FirstName)
	require.Equal(t, want.LastName, got.LastName)
	require.Equal(t, want.DateOfBirth, got.DateOfBirth)
	require.Equal(t, want.Salt, got.Salt)
	require.Equal(t, want.CredentialHash, got.CredentialHash)
	require.Equal(t, want.Scheme, got.Scheme)
}
