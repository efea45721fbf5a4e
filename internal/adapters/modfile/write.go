package modfile

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

// writeFileAtomic writes data to path through a temp file in the same
// directory followed by a rename, so readers never observe a partial
// file and a failed write leaves any existing file untouched.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return ioError(err, path)
	}
	tmpName := tmpFile.Name()

	// Clean up the temp file on any failure past this point
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return ioError(err, path)
	}

	if err := tmpFile.Close(); err != nil {
		return ioError(err, path)
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return ioError(err, path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return ioError(err, path)
	}

	return nil
}

func ioError(err error, path string) error {
	return zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", path)
}
