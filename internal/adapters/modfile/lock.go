package modfile

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

// lockHeader is the first line of every lockfile kiln writes.
const lockHeader = "# This file is generated by kiln. Do not edit manually.\n"

type lockPackage struct {
	Name     string `toml:"name"`
	Source   string `toml:"source"`
	Checksum string `toml:"checksum"`
}

type lockSchema struct {
	Packages []lockPackage `toml:"package"`
}

// LockStore implements ports.LockStore on the local filesystem.
type LockStore struct{}

// NewLockStore creates a new LockStore.
func NewLockStore() *LockStore {
	return &LockStore{}
}

// Load reads the lockfile at path. A missing file is not an error and
// yields an empty lockfile.
func (s *LockStore) Load(path string) (*domain.Lockfile, error) {
	// #nosec G304 -- path is the project's own lockfile location
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.Lockfile{}, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", path)
	}

	var schema lockSchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return nil, parseError(err, path)
	}

	lock := &domain.Lockfile{}
	for _, pkg := range schema.Packages {
		if pkg.Name == "" {
			e := zerr.Wrap(domain.ErrParse, "lockfile entry is missing a name")
			return nil, zerr.With(e, "path", path)
		}
		lock.Entries = append(lock.Entries, domain.LockEntry{
			Locator:  domain.Locator(pkg.Name),
			Revision: pkg.Source,
			Checksum: pkg.Checksum,
		})
	}
	return lock, nil
}

// Save writes the lockfile to path atomically. Entries are serialized
// sorted by locator so re-saving an unchanged lockfile never produces a
// diff.
func (s *LockStore) Save(l *domain.Lockfile, path string) error {
	return writeFileAtomic(path, renderLock(l))
}

func renderLock(l *domain.Lockfile) []byte {
	var b strings.Builder
	b.WriteString(lockHeader)
	for _, e := range l.Sorted() {
		b.WriteString("\n[[package]]\n")
		b.WriteString("name = " + strconv.Quote(string(e.Locator)) + "\n")
		b.WriteString("source = " + strconv.Quote(e.Revision) + "\n")
		b.WriteString("checksum = " + strconv.Quote(e.Checksum) + "\n")
	}
	return []byte(b.String())
}
