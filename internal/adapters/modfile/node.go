package modfile

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/kiln-lang/kiln/internal/core/ports"
)

// ManifestNodeID is the unique identifier for the manifest store Graft node.
const ManifestNodeID graft.ID = "adapter.manifeststore"

// LockNodeID is the unique identifier for the lock store Graft node.
const LockNodeID graft.ID = "adapter.lockstore"

func init() {
	graft.Register(graft.Node[ports.ManifestStore]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestStore, error) {
			return NewManifestStore(), nil
		},
	})

	graft.Register(graft.Node[ports.LockStore]{
		ID:        LockNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockStore, error) {
			return NewLockStore(), nil
		},
	})
}
