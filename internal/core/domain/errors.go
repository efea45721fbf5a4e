package domain

import "go.trai.ch/zerr"

var (
	// ErrParse is returned when manifest or lockfile content cannot be parsed.
	ErrParse = zerr.New("malformed file content")

	// ErrFetch is returned when a dependency source cannot be fetched.
	ErrFetch = zerr.New("failed to fetch source")

	// ErrIntegrity is returned when fetched content does not hash to the locked checksum.
	ErrIntegrity = zerr.New("checksum verification failed")

	// ErrInconsistentLock is returned when the manifest and lockfile disagree about which dependencies exist.
	ErrInconsistentLock = zerr.New("manifest and lockfile are out of sync, run 'kiln get' to re-resolve")

	// ErrIO is returned when a manifest or lockfile cannot be read or written.
	ErrIO = zerr.New("filesystem operation failed")

	// ErrManifestNotFound is returned when no manifest exists where one is required.
	ErrManifestNotFound = zerr.New("no kiln.mod found, run 'kiln mod init' first")

	// ErrManifestExists is returned when init would overwrite an existing manifest.
	ErrManifestExists = zerr.New("kiln.mod already exists")

	// ErrSyncFailed is returned when one or more dependencies fail to sync.
	ErrSyncFailed = zerr.New("failed to sync dependencies")
)
