package directory

import (
	"context"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	"github.com/aussiebroadwan/holidash/pkg/upstream"
)

// DefaultSeed makes randomuser.me return the same users on every run.
const DefaultSeed = "usageai"

var randomUserFields = []string{"name", "dob", "email", "login"}

// RandomUserSource fetches users from randomuser.me.
type RandomUserSource struct {
	client *upstream.RandomUser
	seed   string
}

func NewRandomUserSource(client *upstream.RandomUser, seed string) *RandomUserSource {
	if seed == "" {
		seed = DefaultSeed
	}
	return &RandomUserSource{client: client, seed: seed}
}

func (s *RandomUserSource) Name() string { return "randomuser" }

func (s *RandomUserSource) Fetch(ctx context.Context, n int) ([]domain.SourceRecord, error) {
	users, err := s.client.Users(ctx, upstream.Query{Results: n, Seed: s.seed, Include: randomUserFields})
	if err != nil {
		return nil, err
	}

	out := make([]domain.SourceRecord, 0, len(users))
	for _, u := range users {
		out = append(out, domain.SourceRecord{
			Identifier:  u.Email,
			FirstName:   u.Name.First,
			LastName:    u.Name.Last,
			DateOfBirth: u.DOB.Date,
			Salt:        u.Login.Salt,
			Password:    u.Login.Password,
		})
	}
	return out, nil
}

// StoreSource replays users persisted by an earlier load.
type StoreSource struct {
	users store.Users
}

func NewStoreSource(s store.Store) *StoreSource { return &StoreSource{users: s.Users()} }

func (s *StoreSource) Name() string { return "store" }

func (s *StoreSource) Fetch(ctx context.Context, n int) ([]domain.SourceRecord, error) {
	users, err := s.users.List(ctx, n)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SourceRecord, 0, len(users))
	for _, u := range users {
		out = append(out, domain.SourceRecord{
			Identifier:     u.Identifier,
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			DateOfBirth:    u.DateOfBirth,
			Salt:           u.Salt,
			CredentialHash: u.CredentialHash,
			Scheme:         u.Scheme,
		})
	}
	return out, nil
}
