// Package directory holds the in-memory user directory that login attempts
// are checked against. A directory is populated in whole batches from a
// Source; readers always see either the previous batch or the new one.
package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
	"github.com/aussiebroadwan/holidash/internal/dashboard/metrics"
	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	"github.com/aussiebroadwan/holidash/pkg/cryptox"
	"github.com/aussiebroadwan/holidash/pkg/idx"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// DefaultLoadTimeout bounds a source fetch.
const DefaultLoadTimeout = 10 * time.Second

var ErrInvalidBatchSize = errors.New("directory: batch size must be positive")

// Source delivers exactly n user records or an error.
type Source interface {
	Name() string
	Fetch(ctx context.Context, n int) ([]domain.SourceRecord, error)
}

type Option func(*Directory)

// WithStore persists every remote batch before it is published.
func WithStore(s store.Store) Option { return func(d *Directory) { d.store = s } }

func WithLoadTimeout(timeout time.Duration) Option {
	return func(d *Directory) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Directory) {
		if l != nil {
			d.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option { return func(d *Directory) { d.metrics = m } }

type Directory struct {
	source  Source
	hasher  cryptox.Hasher
	store   store.Store
	timeout time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics

	validate *validator.Validate

	// loadMu serialises loads; lookups never take it.
	loadMu  sync.Mutex
	current atomic.Pointer[snapshot]
}

type snapshot struct {
	users    map[string]domain.UserRecord
	loadID   idx.ID
	source   string
	loadedAt time.Time
}

// New creates an empty directory that loads from source and enrolls
// plaintext passwords with hasher.
func New(source Source, hasher cryptox.Hasher, opts ...Option) *Directory {
	d := &Directory{
		source:   source,
		hasher:   hasher,
		timeout:  DefaultLoadTimeout,
		log:      slog.Default(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Load fetches n records from the directory's source, persists them when a
// store is configured and publishes them as the new directory. On any error
// the previous directory stays in place.
func (d *Directory) Load(ctx context.Context, n int) ([]domain.UserRecord, error) {
	return d.load(ctx, d.source, n, d.store != nil)
}

// LoadFrom is Load with another source and no persistence. It is used to
// restore a directory from the store it was persisted to.
func (d *Directory) LoadFrom(ctx context.Context, src Source, n int) ([]domain.UserRecord, error) {
	return d.load(ctx, src, n, false)
}

// Lookup returns the record for identifier. It never blocks on a load.
func (d *Directory) Lookup(identifier string) (domain.UserRecord, bool) {
	snap := d.current.Load()
	if snap == nil {
		return domain.UserRecord{}, false
	}
	u, ok := snap.users[identifier]
	return u, ok
}

// Len is the size of the published directory.
func (d *Directory) Len() int {
	snap := d.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.users)
}

// Ready reports whether any batch has been published.
func (d *Directory) Ready() bool { return d.current.Load() != nil }

// Hasher is the enrollment hasher, which verification must match.
func (d *Directory) Hasher() cryptox.Hasher { return d.hasher }

func (d *Directory) load(ctx context.Context, src Source, n int, persist bool) (users []domain.UserRecord, err error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, n)
	}

	d.loadMu.Lock()
	defer d.loadMu.Unlock()

	loadID := idx.New()
	log := d.log.With("load_id", loadID.String(), "source", src.Name(), "batch_size", n)
	start := time.Now()

	var collisions int
	defer func() {
		d.metrics.DirectoryLoaded(src.Name(), len(users), collisions, err)
		if err != nil {
			log.Error("directory load failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		}
	}()

	records, err := d.fetch(ctx, src, n)
	if err != nil {
		return nil, err
	}

	users, err = d.ingest(ctx, records)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.UserRecord, len(users))
	order := make([]string, 0, len(users))
	for _, u := range users {
		if _, dup := byID[u.Identifier]; dup {
			collisions++
		} else {
			order = append(order, u.Identifier)
		}
		byID[u.Identifier] = u
	}
	if collisions > 0 {
		log.Warn("duplicate identifiers in batch, later records win", "collisions", collisions)
	}

	users = make([]domain.UserRecord, 0, len(order))
	for _, id := range order {
		users = append(users, byID[id])
	}

	if persist {
		if err := d.store.Users().PutBatch(ctx, users); err != nil {
			return nil, fmt.Errorf("persist users: %w", err)
		}
	}

	d.current.Store(&snapshot{users: byID, loadID: loadID, source: src.Name(), loadedAt: time.Now()})

	log.Info("directory loaded",
		"size", len(byID),
		"collisions", collisions,
		"persisted", persist,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}

// fetch calls the source under the load timeout and insists on a full batch.
func (d *Directory) fetch(ctx context.Context, src Source, n int) ([]domain.SourceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	records, err := src.Fetch(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	if len(records) != n {
		return nil, fmt.Errorf("%w: expected %d records, got %d", domain.ErrSourceUnavailable, n, len(records))
	}
	return records, nil
}

// ingest validates every record and hashes plaintext passwords in parallel.
// A record without an identifier invalidates the whole batch. A record
// without salt or password is kept with no credential and will never verify.
// A precomputed hash with no scheme is taken to follow the directory's one.
func (d *Directory) ingest(ctx context.Context, records []domain.SourceRecord) ([]domain.UserRecord, error) {
	for i, rec := range records {
		if err := d.validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w: %v", domain.ErrSourceUnavailable, i, domain.ErrMalformedRecord, err)
		}
	}

	out := make([]domain.UserRecord, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, rec := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = d.enroll(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Directory) enroll(rec domain.SourceRecord) domain.UserRecord {
	u := domain.UserRecord{
		Identifier:  rec.Identifier,
		FirstName:   rec.FirstName,
		LastName:    rec.LastName,
		DateOfBirth: rec.DateOfBirth,
		Salt:        rec.Salt,
	}

	switch {
	case rec.CredentialHash != "":
		u.CredentialHash = rec.CredentialHash
		u.Scheme = rec.Scheme
		if u.Scheme == "" {
			u.Scheme = d.hasher.Name()
		}
	case rec.Salt != "" && rec.Password != nil:
		u.CredentialHash = d.hasher.Hash(rec.Salt, *rec.Password)
		u.Scheme = d.hasher.Name()
	}
	return u
}
