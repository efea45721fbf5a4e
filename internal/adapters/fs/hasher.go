package fs

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/ports"
)

var _ ports.TreeHasher = (*TreeHasher)(nil)

// DigestPrefix names the digest algorithm in serialized checksums.
const DigestPrefix = "blake3:"

// TreeHasher computes content digests over whole source trees.
type TreeHasher struct {
	walker *Walker
}

// NewTreeHasher creates a new TreeHasher.
func NewTreeHasher(walker *Walker) *TreeHasher {
	return &TreeHasher{walker: walker}
}

// Digest hashes every regular file under root in sorted relative-path
// order. Each file contributes its slash-relative path, its size and
// its content, so renames, truncations and edits all change the
// result. Identical trees produce identical digests on any machine.
func (h *TreeHasher) Digest(ctx context.Context, root string) (string, error) {
	files, err := h.walker.RelativeFiles(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to walk source tree"), "root", root)
	}

	hasher := blake3.New()
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := h.hashFile(hasher, root, rel); err != nil {
			return "", err
		}
	}

	return DigestPrefix + hex.EncodeToString(hasher.Sum(nil)), nil
}

func (h *TreeHasher) hashFile(hasher io.Writer, root, rel string) error {
	path := filepath.Join(root, filepath.FromSlash(rel))

	// #nosec G304 -- path enumerates a tree the caller owns
	f, err := os.Open(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat file"), "path", path)
	}

	_, _ = hasher.Write([]byte(rel))
	_, _ = hasher.Write([]byte{0})
	if err := binary.Write(hasher, binary.BigEndian, uint64(info.Size())); err != nil {
		return zerr.Wrap(err, "failed to write size to digest")
	}

	if _, err := io.Copy(hasher, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return nil
}
