package postgres

import (
	"context"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/jackc/pgx/v5"
)

type usersRepo struct {
	s *Store
}

const userColumns = `identifier, first_name, last_name, date_of_birth, salt, credential_hash, scheme, created_at, updated_at`

const upsertUser = `
INSERT INTO users (identifier, first_name, last_name, date_of_birth, salt, credential_hash, scheme)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (identifier) DO UPDATE SET
    first_name      = EXCLUDED.first_name,
    last_name       = EXCLUDED.last_name,
    date_of_birth   = EXCLUDED.date_of_birth,
    salt            = EXCLUDED.salt,
    credential_hash = EXCLUDED.credential_hash,
    scheme          = EXCLUDED.scheme,
    updated_at      = now()`

func (r *usersRepo) PutBatch(ctx context.Context, users []domain.UserRecord) error {
	if len(users) == 0 {
		return nil
	}

	return r.s.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, u := range users {
			batch.Queue(upsertUser, u.Identifier, u.FirstName, u.LastName, u.DateOfBirth, u.Salt, u.CredentialHash, u.Scheme)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (r *usersRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.UserRecord, error) {
	rows, err := r.s.pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE identifier = $1`, identifier)
	if err != nil {
		return domain.UserRecord{}, err
	}
	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		return domain.UserRecord{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context, limit int) ([]domain.UserRecord, error) {
	rows, err := r.s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY identifier LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanUser)
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var exists bool
	err := r.s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&exists)
	return !exists, err
}

func scanUser(row pgx.CollectableRow) (domain.UserRecord, error) {
	var u domain.UserRecord
	err := row.Scan(
		&u.Identifier, &u.FirstName, &u.LastName, &u.DateOfBirth,
		&u.Salt, &u.CredentialHash, &u.Scheme, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}
