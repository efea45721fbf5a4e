// Package fs provides filesystem adapters: tree walking and content
// digesting for fetched packages.
package fs

import (
	"io/fs"
	"path/filepath"
	"slices"
)

// Walker enumerates the regular files of a source tree.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// vcsDirs are bookkeeping directories excluded from walks, so a tree
// digests identically whether it was cloned or exported.
var vcsDirs = map[string]bool{
	".git": true,
	".jj":  true,
}

// RelativeFiles returns every regular file under root as a sorted,
// slash-separated path relative to root. Symlinks and other special
// files are not listed.
func (w *Walker) RelativeFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && vcsDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}
