package ports

import "github.com/kiln-lang/kiln/internal/core/domain"

// ManifestStore parses and serializes project manifests.
//
//go:generate mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Load reads the manifest at path. It returns
	// domain.ErrManifestNotFound when no file exists and domain.ErrParse
	// on malformed content.
	Load(path string) (*domain.Manifest, error)

	// Save writes the manifest atomically (temporary file plus rename)
	// so a crash mid-write never leaves a truncated manifest. Content
	// the tool does not interpret is written back byte-for-byte.
	Save(m *domain.Manifest, path string) error
}
