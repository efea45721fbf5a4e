// Package pkgcache stores fetched working copies on disk, one
// directory per locator, and collapses concurrent fetches for the same
// locator into a single call.
package pkgcache

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

var _ ports.PackageCache = (*Cache)(nil)

// Cache implements ports.PackageCache. The on-disk layout is one
// directory per locator under root, named by the locator's cache key;
// an in-process index remembers which revision each directory holds.
// The index is not persisted: after a restart the first Ensure per
// locator fetches again, which only costs time.
type Cache struct {
	root string

	requestGroup singleflight.Group

	mu      sync.RWMutex
	entries map[domain.Locator]domain.CacheEntry
}

// New creates a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{
		root:    dir,
		entries: make(map[domain.Locator]domain.CacheEntry),
	}
}

// Ensure returns a working copy for the locator, invoking the fetcher
// only when no usable entry exists or opts demand it. Concurrent calls
// for the same locator collapse into a single fetch; distinct locators
// proceed independently.
func (c *Cache) Ensure(ctx context.Context, locator domain.Locator, fetcher ports.SourceFetcher, opts ports.EnsureOptions) (domain.CacheEntry, error) {
	result, err, _ := c.requestGroup.Do(string(locator), func() (any, error) {
		if entry, ok := c.lookup(locator, opts); ok {
			return entry, nil
		}

		entry, err := c.fetch(ctx, locator, fetcher, opts)
		if err != nil {
			return nil, err
		}

		return entry, nil
	})
	if err != nil {
		return domain.CacheEntry{}, err
	}

	return result.(domain.CacheEntry), nil
}

// lookup reports whether the indexed entry for locator satisfies opts.
func (c *Cache) lookup(locator domain.Locator, opts ports.EnsureOptions) (domain.CacheEntry, bool) {
	if opts.Refresh {
		return domain.CacheEntry{}, false
	}

	c.mu.RLock()
	entry, ok := c.entries[locator]
	c.mu.RUnlock()

	if !ok {
		return domain.CacheEntry{}, false
	}
	if opts.Revision != "" && entry.Revision != opts.Revision {
		return domain.CacheEntry{}, false
	}
	if _, err := os.Stat(entry.Path); err != nil {
		// The working copy was cleaned away behind our back.
		return domain.CacheEntry{}, false
	}

	return entry, true
}

func (c *Cache) fetch(ctx context.Context, locator domain.Locator, fetcher ports.SourceFetcher, opts ports.EnsureOptions) (domain.CacheEntry, error) {
	if err := os.MkdirAll(c.root, domain.DirPerm); err != nil {
		return domain.CacheEntry{}, zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", c.root)
	}

	dest := filepath.Join(c.root, locator.CacheKey())
	entry, err := fetcher.Fetch(ctx, locator, dest, ports.FetchOptions{Revision: opts.Revision})
	if err != nil {
		return domain.CacheEntry{}, err
	}

	c.mu.Lock()
	c.entries[locator] = entry
	c.mu.Unlock()

	return entry, nil
}

// Clean removes the cache root and forgets every entry. Later Ensure
// calls repopulate transparently.
func (c *Cache) Clean() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(c.root); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", c.root)
	}
	c.entries = make(map[domain.Locator]domain.CacheEntry)

	return nil
}
