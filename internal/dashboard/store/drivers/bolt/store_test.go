package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store/drivers/bolt"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s, err := bolt.NewStore(filepath.Join(t.TempDir(), "holidash.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	storetest.Run(t, s)
}

func TestStore_Unmigrated(t *testing.T) {
	s, err := bolt.NewStore(filepath.Join(t.TempDir(), "holidash.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.Error(t, s.Ping(context.Background()))
	_, err = s.Users().Count(context.Background())
	require.Error(t, err)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidash.bolt")
	ctx := context.Background()

	s, err := bolt.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Users().PutBatch(ctx, []domain.UserRecord{storetest.Record(1)}))
	require.NoError(t, s.Close())

	s, err = bolt.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Users().GetByIdentifier(ctx, storetest.Record(1).Identifier)
	require.NoError(t, err)
	require.Equal(t, storetest.Record(1).CredentialHash, got.CredentialHash)
}
