// Package resolver implements the engine that turns manifest edits into
// lockfile state and verified working copies.
package resolver

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

// Resolver coordinates manifest and lockfile state with the package
// cache. Get adds or refreshes one dependency; Sync materializes and
// verifies everything the lockfile pins.
type Resolver struct {
	manifests ports.ManifestStore
	locks     ports.LockStore
	cache     ports.PackageCache
	hasher    ports.TreeHasher
	remote    ports.SourceFetcher
	local     ports.SourceFetcher
	logger    ports.Logger
	tracer    trace.Tracer
	renderer  ports.Renderer
	parallel  int
}

// NewResolver creates a new Resolver with the given dependencies.
func NewResolver(
	manifests ports.ManifestStore,
	locks ports.LockStore,
	cache ports.PackageCache,
	hasher ports.TreeHasher,
	remote ports.SourceFetcher,
	local ports.SourceFetcher,
	logger ports.Logger,
	tracer trace.Tracer,
	renderer ports.Renderer,
	parallel int,
) *Resolver {
	return &Resolver{
		manifests: manifests,
		locks:     locks,
		cache:     cache,
		hasher:    hasher,
		remote:    remote,
		local:     local,
		logger:    logger,
		tracer:    tracer,
		renderer:  renderer,
		parallel:  parallel,
	}
}

// Get resolves one locator at the tip of its history and records the
// result: the locator joins the manifest, the pinned revision and
// checksum join the lockfile. Re-getting a declared dependency
// re-resolves it to the current tip.
func (r *Resolver) Get(ctx context.Context, dir string, locator domain.Locator) error {
	manifestPath := domain.ManifestPath(dir)
	m, err := r.manifests.Load(manifestPath)
	if err != nil {
		return err
	}

	lockPath := domain.LockPath(dir)
	lock, err := r.locks.Load(lockPath)
	if err != nil {
		return err
	}

	r.renderer.OnPlan("get", []string{locator.String()})

	var entry domain.LockEntry
	err = r.step(ctx, locator.String(), func(ctx context.Context) error {
		var resolveErr error
		entry, resolveErr = r.resolve(ctx, locator, ports.EnsureOptions{Refresh: true})
		return resolveErr
	})
	if err != nil {
		return zerr.With(err, "locator", locator.String())
	}

	m.AddDependency(locator)
	lock.Upsert(entry)
	for _, removed := range lock.Prune(m.Locators()) {
		r.logger.Info(fmt.Sprintf("removed %s", removed))
	}

	// The manifest is written first: a crash between the two writes
	// leaves an undeclared lock entry, which the next get prunes, not
	// an unlocked dependency.
	if err := r.manifests.Save(m, manifestPath); err != nil {
		return zerr.With(err, "stage", "write")
	}
	if err := r.locks.Save(lock, lockPath); err != nil {
		return zerr.With(err, "stage", "write")
	}

	r.logger.Info(fmt.Sprintf("added %s at %s", locator, shortRevision(entry.Revision)))
	return nil
}

// resolve materializes the locator and computes its lock entry.
func (r *Resolver) resolve(ctx context.Context, locator domain.Locator, opts ports.EnsureOptions) (domain.LockEntry, error) {
	entry, err := r.cache.Ensure(ctx, locator, r.fetcherFor(locator), opts)
	if err != nil {
		return domain.LockEntry{}, zerr.With(err, "stage", "fetch")
	}

	checksum, err := r.hasher.Digest(ctx, entry.Path)
	if err != nil {
		return domain.LockEntry{}, zerr.With(err, "stage", "hash")
	}

	return domain.LockEntry{
		Locator:  locator,
		Revision: entry.Revision,
		Checksum: checksum,
	}, nil
}

// step runs fn inside a span named after the resolution step, so the
// renderer sees one row per locator.
func (r *Resolver) step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return err
	}
	return nil
}

// fetcherFor picks the transport for a locator. Local paths are read in
// place; everything else goes through git.
func (r *Resolver) fetcherFor(locator domain.Locator) ports.SourceFetcher {
	if locator.IsLocal() {
		return r.local
	}
	return r.remote
}

// shortRevision abbreviates a revision for log output.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
