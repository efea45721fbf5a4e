package ports

import "github.com/kiln-lang/kiln/internal/core/domain"

// LockStore parses and serializes lockfiles.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Load reads the lockfile at path. A missing file is an empty
	// lockfile, not an error; malformed content is domain.ErrParse.
	Load(path string) (*domain.Lockfile, error)

	// Save writes the lockfile atomically with entries sorted by
	// locator, so re-saving an unchanged lockfile produces no diff.
	Save(l *domain.Lockfile, path string) error
}
