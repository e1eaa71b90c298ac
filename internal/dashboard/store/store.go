package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers (sqlite, bolt,
// postgres) implement this. Persistence is optional: the directory works
// without one and only uses it to survive restarts.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the backend is still reachable.
	Ping(ctx context.Context) error
}

type Users interface {
	// PutBatch upserts every record keyed by identifier, atomically. On
	// conflict the stored created_at is kept and everything else replaced.
	PutBatch(ctx context.Context, users []domain.UserRecord) error

	// GetByIdentifier returns ErrNotFound for unknown identifiers.
	GetByIdentifier(ctx context.Context, identifier string) (domain.UserRecord, error)

	// List returns up to limit records ordered by identifier.
	List(ctx context.Context, limit int) ([]domain.UserRecord, error)

	Count(ctx context.Context) (int, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}
