package ports

import "context"

// TreeHasher computes a deterministic integrity digest over a source
// tree. The digest is a pure function of relative file paths and file
// bytes, independent of the version control system's own hashing, so it
// detects content drift even when upstream history is rewritten.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type TreeHasher interface {
	// Digest hashes every regular file under root, excluding version
	// control metadata directories. The result is stable across
	// operating systems.
	Digest(ctx context.Context, root string) (string, error)
}
