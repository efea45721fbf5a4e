// Package modfile reads and writes the kiln.mod manifest and the
// kiln.lock lockfile.
package modfile

import (
	"errors"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

// manifestSchema is the decoded shape of kiln.mod, used for validation
// and field extraction. The raw document lines are kept separately so
// unknown sections survive a rewrite byte-for-byte.
type manifestSchema struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies map[string]string `toml:"dependencies"`
}

// ManifestStore implements ports.ManifestStore on the local filesystem.
type ManifestStore struct{}

// NewManifestStore creates a new ManifestStore.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{}
}

// Load reads and parses the manifest at path.
func (s *ManifestStore) Load(path string) (*domain.Manifest, error) {
	// #nosec G304 -- path is the project's own manifest location
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrIO, err.Error()), "path", path)
	}

	var schema manifestSchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return nil, parseError(err, path)
	}
	if schema.Package.Name == "" {
		e := zerr.Wrap(domain.ErrParse, "manifest is missing the [package] name")
		return nil, zerr.With(e, "path", path)
	}

	doc := splitSections(string(data))
	m := &domain.Manifest{
		Name:     schema.Package.Name,
		Version:  schema.Package.Version,
		Document: doc,
	}

	// The schema map validates the entries but loses their order; the
	// line scan restores it.
	seen := make(map[string]bool, len(schema.Dependencies))
	for _, key := range dependencyKeys(doc.Section(domain.DependenciesSection)) {
		if _, ok := schema.Dependencies[key]; !ok || seen[key] {
			continue
		}
		seen[key] = true
		m.Dependencies = append(m.Dependencies, domain.Dependency{Locator: domain.Locator(key)})
	}

	// Entries the line scan could not recognize still count; append them
	// in sorted order so no declared dependency is dropped.
	if len(m.Dependencies) < len(schema.Dependencies) {
		rest := make([]string, 0, len(schema.Dependencies)-len(m.Dependencies))
		for key := range schema.Dependencies {
			if !seen[key] {
				rest = append(rest, key)
			}
		}
		slices.Sort(rest)
		for _, key := range rest {
			m.Dependencies = append(m.Dependencies, domain.Dependency{Locator: domain.Locator(key)})
		}
	}

	return m, nil
}

// Save writes the manifest document to path atomically.
func (s *ManifestStore) Save(m *domain.Manifest, path string) error {
	return writeFileAtomic(path, m.Document.Bytes())
}

// splitSections breaks raw manifest text into header-delimited sections,
// keeping every line verbatim. Content before the first header lands in
// an unnamed leading section; blank lines belong to the section that
// precedes them.
func splitSections(text string) domain.Document {
	var doc domain.Document
	current := domain.Section{}
	flush := func() {
		if len(current.Lines) > 0 {
			doc.Sections = append(doc.Sections, current)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := sectionName(line); ok {
			flush()
			current = domain.Section{Name: name}
		}
		current.Lines = append(current.Lines, line)
	}
	flush()

	return doc
}

// sectionName recognizes a "[name]" table header line.
func sectionName(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "[") || !strings.HasSuffix(t, "]") {
		return "", false
	}
	return strings.TrimSpace(strings.Trim(t, "[]")), true
}

// dependencyKeys returns the keys of [dependencies] entry lines in file
// order. Quoted keys are unquoted; lines that do not look like entries
// are skipped.
func dependencyKeys(sec *domain.Section) []string {
	if sec == nil {
		return nil
	}

	var keys []string
	for _, line := range sec.Lines {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "[") {
			continue
		}
		eq := strings.Index(t, "=")
		if eq < 0 {
			continue
		}
		key := strings.TrimSpace(t[:eq])
		if unquoted, err := strconv.Unquote(key); err == nil {
			key = unquoted
		}
		keys = append(keys, key)
	}
	return keys
}

// parseError classifies a go-toml failure under ErrParse, attaching the
// document position when the decoder reports one.
func parseError(err error, path string) error {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		e := zerr.Wrap(domain.ErrParse, derr.Error())
		e = zerr.With(e, "path", path)
		e = zerr.With(e, "line", row)
		return zerr.With(e, "column", col)
	}
	return zerr.With(zerr.Wrap(domain.ErrParse, err.Error()), "path", path)
}
