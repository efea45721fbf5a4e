package pkgcache_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln-lang/kiln/internal/adapters/pkgcache"
	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

// fetcherFunc adapts a function to ports.SourceFetcher.
type fetcherFunc func(ctx context.Context, locator domain.Locator, dest string, opts ports.FetchOptions) (domain.CacheEntry, error)

func (f fetcherFunc) Fetch(ctx context.Context, locator domain.Locator, dest string, opts ports.FetchOptions) (domain.CacheEntry, error) {
	return f(ctx, locator, dest, opts)
}

// materializing returns a fetcher that creates the destination
// directory, counts its calls and reports the requested revision (or
// tip when none was requested).
func materializing(calls *atomic.Int64, tip string) fetcherFunc {
	return func(_ context.Context, locator domain.Locator, dest string, opts ports.FetchOptions) (domain.CacheEntry, error) {
		calls.Add(1)
		if err := os.MkdirAll(dest, 0o750); err != nil {
			return domain.CacheEntry{}, err
		}

		revision := tip
		if opts.Revision != "" {
			revision = opts.Revision
		}

		return domain.CacheEntry{Locator: locator, Path: dest, Revision: revision}, nil
	}
}

func TestCache_Ensure_Idempotent(t *testing.T) {
	var calls atomic.Int64
	cache := pkgcache.New(t.TempDir())
	loc := domain.Locator("github.com/kiln-lang/http")
	fetcher := materializing(&calls, "rev-a")

	first, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)

	second, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, calls.Load())
}

func TestCache_Ensure_DestinationUnderRoot(t *testing.T) {
	var calls atomic.Int64
	root := t.TempDir()
	cache := pkgcache.New(root)
	loc := domain.Locator("github.com/kiln-lang/http")

	entry, err := cache.Ensure(context.Background(), loc, materializing(&calls, "rev-a"), ports.EnsureOptions{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, loc.CacheKey()), entry.Path)
	assert.DirExists(t, entry.Path)
}

func TestCache_Ensure_Refresh(t *testing.T) {
	var calls atomic.Int64
	cache := pkgcache.New(t.TempDir())
	loc := domain.Locator("github.com/kiln-lang/http")
	fetcher := materializing(&calls, "rev-a")

	_, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)

	_, err = cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{Refresh: true})
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_Ensure_RevisionMatchReusesEntry(t *testing.T) {
	var calls atomic.Int64
	cache := pkgcache.New(t.TempDir())
	loc := domain.Locator("github.com/kiln-lang/http")
	fetcher := materializing(&calls, "rev-a")

	_, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)

	entry, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{Revision: "rev-a"})
	require.NoError(t, err)

	assert.Equal(t, "rev-a", entry.Revision)
	assert.EqualValues(t, 1, calls.Load())
}

func TestCache_Ensure_RevisionMismatchRefetches(t *testing.T) {
	var calls atomic.Int64
	cache := pkgcache.New(t.TempDir())
	loc := domain.Locator("github.com/kiln-lang/http")
	fetcher := materializing(&calls, "rev-a")

	_, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)

	entry, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{Revision: "rev-b"})
	require.NoError(t, err)

	assert.Equal(t, "rev-b", entry.Revision)
	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_Ensure_RefetchesWhenDirectoryMissing(t *testing.T) {
	var calls atomic.Int64
	cache := pkgcache.New(t.TempDir())
	loc := domain.Locator("github.com/kiln-lang/http")
	fetcher := materializing(&calls, "rev-a")

	entry, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(entry.Path))

	_, err = cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_Ensure_DoesNotIndexFailures(t *testing.T) {
	var calls atomic.Int64
	cache := pkgcache.New(t.TempDir())
	loc := domain.Locator("github.com/kiln-lang/http")

	failing := fetcherFunc(func(context.Context, domain.Locator, string, ports.FetchOptions) (domain.CacheEntry, error) {
		calls.Add(1)
		return domain.CacheEntry{}, assert.AnError
	})

	_, err := cache.Ensure(context.Background(), loc, failing, ports.EnsureOptions{})
	require.ErrorIs(t, err, assert.AnError)

	// The failure is not remembered; the next call fetches again.
	_, err = cache.Ensure(context.Background(), loc, materializing(&calls, "rev-a"), ports.EnsureOptions{})
	require.NoError(t, err)

	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_Clean(t *testing.T) {
	var calls atomic.Int64
	root := filepath.Join(t.TempDir(), "pkg")
	cache := pkgcache.New(root)
	loc := domain.Locator("github.com/kiln-lang/http")
	fetcher := materializing(&calls, "rev-a")

	entry, err := cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)
	require.DirExists(t, entry.Path)

	require.NoError(t, cache.Clean())
	assert.NoDirExists(t, root)

	// The next Ensure starts from scratch.
	_, err = cache.Ensure(context.Background(), loc, fetcher, ports.EnsureOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestCache_Ensure_CollapsesConcurrentFetches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls atomic.Int64
		release := make(chan struct{})
		cache := pkgcache.New(t.TempDir())
		loc := domain.Locator("github.com/kiln-lang/http")

		blocking := fetcherFunc(func(_ context.Context, locator domain.Locator, dest string, _ ports.FetchOptions) (domain.CacheEntry, error) {
			calls.Add(1)
			<-release
			return domain.CacheEntry{Locator: locator, Path: dest, Revision: "rev-a"}, nil
		})

		const workers = 4
		entries := make([]domain.CacheEntry, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				entries[i], errs[i] = cache.Ensure(context.Background(), loc, blocking, ports.EnsureOptions{})
			}()
		}

		// Every worker is now parked on the one in-flight fetch.
		synctest.Wait()
		assert.EqualValues(t, 1, calls.Load())

		close(release)
		wg.Wait()

		for i := range workers {
			require.NoError(t, errs[i])
			assert.Equal(t, entries[0], entries[i])
		}
	})
}

func TestCache_Ensure_DistinctLocatorsInFlightTogether(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var inFlight atomic.Int64
		release := make(chan struct{})
		cache := pkgcache.New(t.TempDir())

		blocking := fetcherFunc(func(_ context.Context, locator domain.Locator, dest string, _ ports.FetchOptions) (domain.CacheEntry, error) {
			inFlight.Add(1)
			<-release
			return domain.CacheEntry{Locator: locator, Path: dest, Revision: "rev"}, nil
		})

		var wg sync.WaitGroup
		for _, loc := range []domain.Locator{"github.com/org/alpha", "github.com/org/beta"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := cache.Ensure(context.Background(), loc, blocking, ports.EnsureOptions{})
				assert.NoError(t, err)
			}()
		}

		// One locator's fetch must not gate the other's.
		synctest.Wait()
		assert.EqualValues(t, 2, inFlight.Load())

		close(release)
		wg.Wait()
	})
}
