package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

type queries struct {
	db dbtx
}

type userRow struct {
	Identifier     string
	FirstName      string
	LastName       string
	DateOfBirth    string
	Salt           string
	CredentialHash string
	Scheme         string
	CreatedAt      int64
	UpdatedAt      int64
}

const userColumns = `identifier, first_name, last_name, date_of_birth, salt, credential_hash, scheme, created_at, updated_at`

const upsertUser = `
INSERT INTO users (` + userColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (identifier) DO UPDATE SET
    first_name      = excluded.first_name,
    last_name       = excluded.last_name,
    date_of_birth   = excluded.date_of_birth,
    salt            = excluded.salt,
    credential_hash = excluded.credential_hash,
    scheme          = excluded.scheme,
    updated_at      = excluded.updated_at`

func (q *queries) upsertUser(ctx context.Context, stmt *sql.Stmt, r userRow) error {
	_, err := stmt.ExecContext(ctx,
		r.Identifier, r.FirstName, r.LastName, r.DateOfBirth,
		r.Salt, r.CredentialHash, r.Scheme, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (q *queries) prepareUpsert(ctx context.Context) (*sql.Stmt, error) {
	return q.db.PrepareContext(ctx, upsertUser)
}

const getUserByIdentifier = `SELECT ` + userColumns + ` FROM users WHERE identifier = ?`

func (q *queries) getUserByIdentifier(ctx context.Context, identifier string) (userRow, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByIdentifier, identifier))
}

const listUsers = `SELECT ` + userColumns + ` FROM users ORDER BY identifier LIMIT ?`

func (q *queries) listUsers(ctx context.Context, limit int) ([]userRow, error) {
	rows, err := q.db.QueryContext(ctx, listUsers, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []userRow
	for rows.Next() {
		r, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const countUsers = `SELECT COUNT(*) FROM users`

func (q *queries) countUsers(ctx context.Context) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx, countUsers).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (userRow, error) {
	var r userRow
	err := s.Scan(
		&r.Identifier, &r.FirstName, &r.LastName, &r.DateOfBirth,
		&r.Salt, &r.CredentialHash, &r.Scheme, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}
