// Package bolt stores users as JSON documents in a bbolt file, one key per
// identifier.
package bolt

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	bolt "go.etcd.io/bbolt"
)

var usersBucket = []byte("users")

var errNoBucket = errors.New("bolt: users bucket missing, run migrations")

type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) the database at path. A second process
// holding the file makes this fail after one second.
func NewStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// ApplyMigrations creates the users bucket.
func (s *Store) ApplyMigrations() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(usersBucket)
		return err
	})
}

func (s *Store) Close() error { return s.db.Close() }

// Ping checks the file is open and migrated.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(usersBucket) == nil {
			return errNoBucket
		}
		return nil
	})
}

func (s *Store) Users() store.Users { return &usersRepo{db: s.db} }
