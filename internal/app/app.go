// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/kiln-lang/kiln/internal/adapters/detector"
	"github.com/kiln-lang/kiln/internal/adapters/linear"
	"github.com/kiln-lang/kiln/internal/adapters/telemetry"
	"github.com/kiln-lang/kiln/internal/adapters/tui"
	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
	"github.com/kiln-lang/kiln/internal/engine/resolver"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	manifests    ports.ManifestStore
	locks        ports.LockStore
	cache        ports.PackageCache
	hasher       ports.TreeHasher
	remote       ports.SourceFetcher
	local        ports.SourceFetcher
	logger       ports.Logger
	stderr       io.Writer
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	manifests ports.ManifestStore,
	locks ports.LockStore,
	cache ports.PackageCache,
	hasher ports.TreeHasher,
	remote ports.SourceFetcher,
	local ports.SourceFetcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		manifests:    manifests,
		locks:        locks,
		cache:        cache,
		hasher:       hasher,
		remote:       remote,
		local:        local,
		logger:       log,
		stderr:       os.Stderr,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithStderr redirects progress output. This is primarily used for
// testing; it defaults to os.Stderr.
func (a *App) WithStderr(w io.Writer) *App {
	if w != nil {
		a.stderr = w
	}
	return a
}

// RunOptions configuration for the Get and Sync methods.
type RunOptions struct {
	OutputMode string
}

// Get adds or refreshes one dependency: it resolves the locator to the
// current tip, records the pinned revision and checksum, and persists
// the updated manifest and lockfile.
func (a *App) Get(ctx context.Context, dir string, locator domain.Locator, opts RunOptions) error {
	return a.withRenderer(ctx, opts, func(ctx context.Context, eng *resolver.Resolver) error {
		return eng.Get(ctx, dir, locator)
	})
}

// Sync materializes every locked dependency at its pinned revision and
// verifies its content. Failed entries are logged individually once the
// renderer has released the terminal; the returned error summarizes the
// run.
func (a *App) Sync(ctx context.Context, dir string, opts RunOptions) error {
	var results []domain.SyncResult

	runErr := a.withRenderer(ctx, opts, func(ctx context.Context, eng *resolver.Resolver) error {
		var err error
		results, err = eng.Sync(ctx, dir)
		return err
	})

	failed := false
	for _, res := range results {
		if res.Err != nil {
			a.logger.Error(res.Err)
			failed = true
		}
	}
	if failed {
		return errors.Join(domain.ErrSyncFailed, runErr)
	}

	return runErr
}

// withRenderer assembles the per-run pipeline around fn: a renderer
// picked from the output mode, a telemetry provider bridging engine
// spans to it, and a resolver wired to both. The renderer and fn run
// concurrently; fn's error is reported after the renderer has shut
// down.
func (a *App) withRenderer(ctx context.Context, opts RunOptions, fn func(ctx context.Context, eng *resolver.Resolver) error) error {
	cfg, err := a.configLoader.Load()
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	choice := opts.OutputMode
	if choice == "" {
		choice = cfg.OutputMode
	}
	mode := detector.ResolveMode(detector.DetectEnvironment(), choice)

	var renderer ports.Renderer
	if mode == detector.ModeTUI {
		model := tui.NewModel(a.stderr)
		teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
		renderer = tui.NewRenderer(&model, teaOpts...)
	} else {
		renderer = linear.NewRenderer(a.stderr)
	}

	provider := telemetry.NewProvider(renderer)
	defer func() {
		_ = provider.Shutdown(ctx)
	}()

	eng := resolver.NewResolver(
		a.manifests,
		a.locks,
		a.cache,
		a.hasher,
		a.remote,
		a.local,
		a.logger,
		provider.Tracer("kiln"),
		renderer,
		cfg.Parallel,
	)

	g, ctx := errgroup.WithContext(ctx)

	// Renderer routine.
	g.Go(func() error {
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		// Wait blocks until the renderer has terminated.
		return renderer.Wait()
	})

	// Resolution routine. It records its outcome instead of returning
	// it so a failed resolution never cancels the renderer mid-frame;
	// Stop lets the renderer finish its final view.
	var opErr error
	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(a.stderr, "resolver panic: %v\n", r)
			}
			_ = renderer.Stop()
		}()

		opErr = fn(ctx, eng)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return opErr
}

// mainTemplate is the entry point scaffold written by Init.
const mainTemplate = `def main():
    print("Hello, Kiln!")

main()
`

// Init creates a new project in dir: a manifest carrying the project
// name, an empty lockfile and a src/main.kiln scaffold. It refuses to
// touch a directory that already has a manifest.
func (a *App) Init(_ context.Context, dir, name string) error {
	manifestPath := domain.ManifestPath(dir)
	if _, err := os.Stat(manifestPath); err == nil {
		return zerr.With(domain.ErrManifestExists, "path", manifestPath)
	}

	if err := a.manifests.Save(domain.NewManifest(name), manifestPath); err != nil {
		return err
	}
	a.logger.Info("created " + domain.ManifestName)

	if err := a.locks.Save(&domain.Lockfile{}, domain.LockPath(dir)); err != nil {
		return err
	}
	a.logger.Info("created " + domain.LockName)

	created, err := writeScaffold(dir)
	if err != nil {
		return err
	}
	if created {
		a.logger.Info("created " + filepath.Join(domain.SrcDirName, domain.MainFileName))
	}

	return nil
}

// writeScaffold writes src/main.kiln unless one already exists, and
// reports whether it did.
func writeScaffold(dir string) (bool, error) {
	srcDir := filepath.Join(dir, domain.SrcDirName)
	if err := os.MkdirAll(srcDir, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", srcDir)
	}

	mainPath := filepath.Join(srcDir, domain.MainFileName)
	if _, err := os.Stat(mainPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", mainPath)
	}

	if err := os.WriteFile(mainPath, []byte(mainTemplate), domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", mainPath)
	}
	return true, nil
}

// Clean removes the package cache. Entries are refetched on demand by
// the next get or sync.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info("removing package cache...")
	if err := a.cache.Clean(); err != nil {
		return err
	}
	a.logger.Info("removed package cache")
	return nil
}
