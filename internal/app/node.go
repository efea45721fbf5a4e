package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/kiln-lang/kiln/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"github.com/kiln-lang/kiln/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"github.com/kiln-lang/kiln/internal/adapters/git"      //nolint:depguard // Wired in app layer
	"github.com/kiln-lang/kiln/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/kiln-lang/kiln/internal/adapters/modfile"  //nolint:depguard // Wired in app layer
	"github.com/kiln-lang/kiln/internal/adapters/pkgcache" //nolint:depguard // Wired in app layer
	"github.com/kiln-lang/kiln/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			modfile.ManifestNodeID,
			modfile.LockNodeID,
			pkgcache.NodeID,
			fs.HasherNodeID,
			git.RemoteNodeID,
			git.LocalNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	locks, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.PackageCache](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.TreeHasher](ctx)
	if err != nil {
		return nil, err
	}

	remote, err := graft.Dep[*git.RemoteFetcher](ctx)
	if err != nil {
		return nil, err
	}

	local, err := graft.Dep[*git.LocalFetcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, manifests, locks, cache, hasher, remote, local, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(application, log), nil
}
