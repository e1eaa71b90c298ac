package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/holidash/internal/dashboard/store/drivers/sqlite"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store/storetest"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, dsn string) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestStore_File(t *testing.T) {
	storetest.Run(t, newStore(t, sqlite.DSN(filepath.Join(t.TempDir(), "holidash.db"))))
}

func TestStore_Memory(t *testing.T) {
	storetest.Run(t, newStore(t, ":memory:"))
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	s := newStore(t, sqlite.DSN(filepath.Join(t.TempDir(), "holidash.db")))
	require.NoError(t, s.ApplyMigrations())
}
