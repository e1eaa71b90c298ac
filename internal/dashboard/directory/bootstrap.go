package directory

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/holidash/internal/dashboard/domain"
)

// Bootstrap populates the directory at startup. With a store that already
// holds n users enrolled under the current scheme, it restores from the
// store and makes no network call. Otherwise it loads from the remote source
// and persists the result. It returns the name of the source used.
func (d *Directory) Bootstrap(ctx context.Context, n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidBatchSize, n)
	}
	if d.store == nil {
		_, err := d.Load(ctx, n)
		return d.source.Name(), err
	}

	count, err := d.store.Users().Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count stored users: %w", err)
	}

	if count >= n {
		src := NewStoreSource(d.store)
		users, err := d.LoadFrom(ctx, src, n)
		if err == nil && d.schemeMatches(users) {
			return src.Name(), nil
		}
		if err != nil {
			d.log.Warn("restoring directory from store failed, falling back to remote", "error", err)
		} else {
			d.log.Warn("stored users were enrolled under another scheme, re-enrolling", "scheme", d.hasher.Name())
		}
	}

	_, err = d.Load(ctx, n)
	return d.source.Name(), err
}

// schemeMatches reports whether every credentialed record can be verified
// with the directory's hasher.
func (d *Directory) schemeMatches(users []domain.UserRecord) bool {
	for _, u := range users {
		if u.HasCredential() && u.Scheme != d.hasher.Name() {
			return false
		}
	}
	return true
}
