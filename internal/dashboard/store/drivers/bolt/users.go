package bolt

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	bolt "go.etcd.io/bbolt"
)

type usersRepo struct {
	db *bolt.DB
}

type userDoc struct {
	Identifier     string    `json:"identifier"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    string    `json:"date_of_birth"`
	Salt           string    `json:"salt"`
	CredentialHash string    `json:"credential_hash"`
	Scheme         string    `json:"scheme"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *usersRepo) PutBatch(ctx context.Context, users []domain.UserRecord) error {
	if len(users) == 0 {
		return nil
	}

	now := time.Now().UTC()
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return errNoBucket
		}

		for _, u := range users {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := []byte(u.Identifier)
			doc := toDoc(u)
			doc.CreatedAt, doc.UpdatedAt = now, now

			if prev := b.Get(key); prev != nil {
				var old userDoc
				if err := json.Unmarshal(prev, &old); err == nil {
					doc.CreatedAt = old.CreatedAt
				}
			}

			js, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			if err := b.Put(key, js); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *usersRepo) GetByIdentifier(_ context.Context, identifier string) (domain.UserRecord, error) {
	var doc userDoc
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return errNoBucket
		}
		v := b.Get([]byte(identifier))
		if v == nil {
			return store.ErrNotFound
		}
		return json.Unmarshal(v, &doc)
	})
	if err != nil {
		return domain.UserRecord{}, err
	}
	return doc.record(), nil
}

// List walks keys in byte order, which for identifiers is the same order
// the SQL drivers use.
func (r *usersRepo) List(_ context.Context, limit int) ([]domain.UserRecord, error) {
	var out []domain.UserRecord
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return errNoBucket
		}

		c := b.Cursor()
		for k, v := c.First(); k != nil && len(out) < limit; k, v = c.Next() {
			var doc userDoc
			if err := json.NewDecoder(bytes.NewReader(v)).Decode(&doc); err != nil {
				return err
			}
			out = append(out, doc.record())
		}
		return nil
	})
	return out, err
}

func (r *usersRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return errNoBucket
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

func (r *usersRepo) IsEmpty(_ context.Context) (bool, error) {
	empty := true
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(usersBucket)
		if b == nil {
			return errNoBucket
		}
		k, _ := b.Cursor().First()
		empty = k == nil
		return nil
	})
	return empty, err
}

func toDoc(u domain.UserRecord) userDoc {
	return userDoc{
		Identifier:     u.Identifier,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		DateOfBirth:    u.DateOfBirth,
		Salt:           u.Salt,
		CredentialHash: u.CredentialHash,
		Scheme:         u.Scheme,
	}
}

func (d userDoc) record() domain.UserRecord {
	return domain.UserRecord{
		Identifier:     d.Identifier,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		DateOfBirth:    d.DateOfBirth,
		Salt:           d.Salt,
		CredentialHash: d.CredentialHash,
		Scheme:         d.Scheme,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
