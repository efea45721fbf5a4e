package ports

import (
	"context"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

// EnsureOptions controls how the cache materializes a locator.
type EnsureOptions struct {
	// Refresh forces a fresh fetch even when a usable entry exists.
	Refresh bool

	// Revision asks for an exact revision instead of the tip. An entry
	// checked out at a different revision is re-fetched.
	Revision string
}

// PackageCache is the on-disk store of fetched working copies, one slot
// per locator. Concurrent Ensure calls are safe: distinct locators
// never interfere, and calls for the same locator collapse into a
// single fetch.
//
//go:generate mockgen -source=package_cache.go -destination=mocks/mock_package_cache.go -package=mocks
type PackageCache interface {
	// Ensure returns a working copy for the locator, invoking the
	// fetcher only when the cache has no usable entry or opts demand
	// it. It is idempotent: two consecutive calls without Refresh
	// return the same entry with one fetch at most.
	Ensure(ctx context.Context, locator domain.Locator, fetcher SourceFetcher, opts EnsureOptions) (domain.CacheEntry, error)

	// Clean removes the cache root. Entries are recreated transparently
	// by later Ensure calls.
	Clean() error
}
