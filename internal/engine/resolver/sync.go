package resolver

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

// Sync brings every locked dependency into the cache at its pinned
// revision and verifies its checksum. Entries fail independently: one
// broken dependency never stops the others. The returned results are in
// lockfile order, one per entry, regardless of the error.
func (r *Resolver) Sync(ctx context.Context, dir string) ([]domain.SyncResult, error) {
	m, err := r.manifests.Load(domain.ManifestPath(dir))
	if err != nil {
		return nil, err
	}

	lock, err := r.locks.Load(domain.LockPath(dir))
	if err != nil {
		return nil, err
	}

	if err := checkConsistency(m, lock); err != nil {
		return nil, err
	}

	entries := lock.Entries
	steps := make([]string, len(entries))
	for i, entry := range entries {
		steps[i] = entry.Locator.String()
	}
	r.renderer.OnPlan("sync", steps)

	parallel := r.parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	results := make([]domain.SyncResult, len(entries))

	var g errgroup.Group
	g.SetLimit(parallel)

	for i, entry := range entries {
		g.Go(func() error {
			results[i] = r.syncEntry(ctx, entry)
			return nil
		})
	}

	// Workers record their outcome in results and never return errors,
	// so a failed entry cannot cancel its siblings.
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, zerr.With(domain.ErrSyncFailed, "failed", failed)
	}

	r.logger.Info(fmt.Sprintf("synced %d package(s)", len(results)))
	return results, nil
}

// syncEntry fetches one locked dependency at its pinned revision and
// checks the content hash against the lockfile.
func (r *Resolver) syncEntry(ctx context.Context, locked domain.LockEntry) domain.SyncResult {
	result := domain.SyncResult{Locator: locked.Locator}

	err := r.step(ctx, locked.Locator.String(), func(ctx context.Context) error {
		entry, err := r.cache.Ensure(ctx, locked.Locator, r.fetcherFor(locked.Locator), ports.EnsureOptions{
			Revision: locked.Revision,
		})
		if err != nil {
			result.State = domain.SyncFetchFailed
			return zerr.With(err, "stage", "fetch")
		}

		checksum, err := r.hasher.Digest(ctx, entry.Path)
		if err != nil {
			result.State = domain.SyncFetchFailed
			return zerr.With(err, "stage", "hash")
		}

		if checksum != locked.Checksum {
			result.State = domain.SyncIntegrityMismatch
			mismatch := zerr.With(domain.ErrIntegrity, "locked", locked.Checksum)
			return zerr.With(mismatch, "computed", checksum)
		}

		result.State = domain.SyncVerified
		return nil
	})
	if err != nil {
		result.Err = zerr.With(err, "locator", locked.Locator.String())
	}

	return result
}

// checkConsistency verifies the manifest and lockfile pin the same
// dependency set, in any order.
func checkConsistency(m *domain.Manifest, lock *domain.Lockfile) error {
	declared := make(map[domain.Locator]struct{}, len(m.Dependencies))
	for _, locator := range m.Locators() {
		declared[locator] = struct{}{}
	}
	locked := make(map[domain.Locator]struct{}, len(lock.Entries))
	for _, locator := range lock.Locators() {
		locked[locator] = struct{}{}
	}

	var missingFromLock, missingFromManifest []string
	for locator := range declared {
		if _, ok := locked[locator]; !ok {
			missingFromLock = append(missingFromLock, locator.String())
		}
	}
	for locator := range locked {
		if _, ok := declared[locator]; !ok {
			missingFromManifest = append(missingFromManifest, locator.String())
		}
	}
	if len(missingFromLock) == 0 && len(missingFromManifest) == 0 {
		return nil
	}

	slices.Sort(missingFromLock)
	slices.Sort(missingFromManifest)

	err := error(domain.ErrInconsistentLock)
	if len(missingFromLock) > 0 {
		err = zerr.With(err, "missing_from_lockfile", strings.Join(missingFromLock, ", "))
	}
	if len(missingFromManifest) > 0 {
		err = zerr.With(err, "missing_from_manifest", strings.Join(missingFromManifest, ", "))
	}
	return err
}
