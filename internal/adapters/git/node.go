package git

import (
	"context"

	"github.com/grindlemire/graft"
)

const (
	RemoteNodeID graft.ID = "adapter.git.remote"
	LocalNodeID  graft.ID = "adapter.git.local"
)

func init() {
	// Remote fetcher Node
	graft.Register(graft.Node[*RemoteFetcher]{
		ID:        RemoteNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*RemoteFetcher, error) {
			return NewRemoteFetcher(), nil
		},
	})

	// Local fetcher Node
	graft.Register(graft.Node[*LocalFetcher]{
		ID:        LocalNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*LocalFetcher, error) {
			return NewLocalFetcher(), nil
		},
	})
}
