package domain

import (
	"os"
	"path/filepath"
)

const (
	// ManifestName is the name of the project manifest file.
	ManifestName = "kiln.mod"

	// LockName is the name of the lockfile.
	LockName = "kiln.lock"

	// KilnDirName is the per-user kiln directory under the home directory.
	KilnDirName = ".kiln"

	// PkgDirName is the package cache directory inside KilnDirName.
	PkgDirName = "pkg"

	// SrcDirName is the source directory created by mod init.
	SrcDirName = "src"

	// MainFileName is the entry-point file created by mod init.
	MainFileName = "main.kiln"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ManifestPath returns the manifest path inside dir.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestName)
}

// LockPath returns the lockfile path inside dir.
func LockPath(dir string) string {
	return filepath.Join(dir, LockName)
}

// DefaultCacheDir returns the per-user package cache root, ~/.kiln/pkg.
// When the home directory cannot be resolved it falls back to a
// relative .kiln/pkg.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(KilnDirName, PkgDirName)
	}
	return filepath.Join(home, KilnDirName, PkgDirName)
}
