// Package ports defines the core interfaces of the application.
package ports

import (
	"context"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

// FetchOptions carries the optional exact-revision request.
type FetchOptions struct {
	// Revision pins the fetch to an exact revision. Empty means the tip
	// of the source's default line of history.
	Revision string
}

// SourceFetcher makes the content behind a locator available locally
// and reports the revision it resolved to. There are exactly two
// implementations: one for remote repositories and one for local
// file:// paths; the engine dispatches between them once per locator.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type SourceFetcher interface {
	// Fetch materializes the locator's content. dest is the directory
	// the fetcher may write into; the local variant ignores it and
	// returns the locator's own path. The returned entry names the
	// working copy path and the revision checked out there.
	Fetch(ctx context.Context, locator domain.Locator, dest string, opts FetchOptions) (domain.CacheEntry, error)
}
