package pkgcache

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/kiln-lang/kiln/internal/adapters/config" //nolint:depguard // Wired in adapter wiring
	"github.com/kiln-lang/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the package cache Graft node.
const NodeID graft.ID = "adapter.pkgcache"

func init() {
	graft.Register(graft.Node[ports.PackageCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.PackageCache, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := loader.Load()
			if err != nil {
				return nil, err
			}

			return New(cfg.CacheDir), nil
		},
	})
}
