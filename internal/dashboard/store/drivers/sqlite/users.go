package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
)

type usersRepo struct {
	s *Store
}

func (r *usersRepo) PutBatch(ctx context.Context, users []domain.UserRecord) error {
	if len(users) == 0 {
		return nil
	}

	now := toMillis(time.Now())
	return r.s.withTx(ctx, func(q *queries) error {
		stmt, err := q.prepareUpsert(ctx)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, u := range users {
			if err := q.upsertUser(ctx, stmt, userRow{
				Identifier:     u.Identifier,
				FirstName:      u.FirstName,
				LastName:       u.LastName,
				DateOfBirth:    u.DateOfBirth,
				Salt:           u.Salt,
				CredentialHash: u.CredentialHash,
				Scheme:         u.Scheme,
				CreatedAt:      now,
				UpdatedAt:      now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *usersRepo) GetByIdentifier(ctx context.Context, identifier string) (domain.UserRecord, error) {
	row, err := r.s.q.getUserByIdentifier(ctx, identifier)
	if err != nil {
		return domain.UserRecord{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) List(ctx context.Context, limit int) ([]domain.UserRecord, error) {
	rows, err := r.s.q.listUsers(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapUser(row))
	}
	return out, nil
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	return r.s.q.countUsers(ctx)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.s.q.countUsers(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func mapUser(row userRow) domain.UserRecord {
	return domain.UserRecord{
		Identifier:     row.Identifier,
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		DateOfBirth:    row.DateOfBirth,
		Salt:           row.Salt,
		CredentialHash: row.CredentialHash,
		Scheme:         row.Scheme,
		CreatedAt:      fromMillis(row.CreatedAt),
		UpdatedAt:      fromMillis(row.UpdatedAt),
	}
}
