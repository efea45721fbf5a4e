package git

import (
	"context"
	"os"

	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

var _ ports.SourceFetcher = (*LocalFetcher)(nil)

// LocalFetcher reads file:// dependencies in place. It never copies or
// mutates the source tree, so the revision it reports is whatever the
// repository at the path currently has checked out.
type LocalFetcher struct{}

// NewLocalFetcher creates a new LocalFetcher.
func NewLocalFetcher() *LocalFetcher {
	return &LocalFetcher{}
}

// Fetch returns the locator's own path together with the repository's
// current HEAD. dest is ignored; nothing is written. A revision request
// only verifies: a tree sitting at some other commit cannot be moved
// without mutating the user's working copy, so a mismatch is a fetch
// failure.
func (f *LocalFetcher) Fetch(ctx context.Context, locator domain.Locator, _ string, opts ports.FetchOptions) (domain.CacheEntry, error) {
	path := locator.Path()

	if _, err := os.Stat(path); err != nil {
		return domain.CacheEntry{}, describe(zerr.With(zerr.Wrap(domain.ErrFetch, err.Error()), "path", path), locator)
	}

	revision, err := headRevision(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.CacheEntry{}, ctxErr
		}
		return domain.CacheEntry{}, describe(zerr.Wrap(err, "no repository metadata at path"), locator)
	}

	if opts.Revision != "" && revision != opts.Revision {
		return domain.CacheEntry{}, describe(zerr.With(zerr.With(
			zerr.Wrap(domain.ErrFetch, "local repository is not at the locked revision"),
			"locked", opts.Revision),
			"checked_out", revision), locator)
	}

	return domain.CacheEntry{Locator: locator, Path: path, Revision: revision}, nil
}
