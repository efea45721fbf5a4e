package domain

import (
	"slices"
	"strconv"
	"strings"
)

// Manifest section names interpreted by the tool. Every other section
// is carried through writes byte-for-byte.
const (
	PackageSection      = "package"
	DependenciesSection = "dependencies"
)

// Dependency is one declared dependency. The locator doubles as the
// manifest key and the dependency's display name.
type Dependency struct {
	Locator Locator
}

// Section is a contiguous region of a manifest document: a header line
// such as "[package]" plus every raw line up to the next header. The
// region before the first header has an empty name. Lines are stored
// verbatim, including blanks and comments.
type Section struct {
	Name  string
	Lines []string
}

// insertEntry places a new entry line after the section's last
// non-blank line so trailing blank separators stay at the end.
func (s *Section) insertEntry(line string) {
	i := len(s.Lines)
	for i > 0 && strings.TrimSpace(s.Lines[i-1]) == "" {
		i--
	}
	s.Lines = slices.Insert(s.Lines, i, line)
}

// Document is the line-preserving form of a manifest file. Saving an
// unmodified document reproduces its input bytes exactly.
type Document struct {
	Sections []Section
}

// Section returns the section with the given name, or nil.
func (d *Document) Section(name string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i]
		}
	}
	return nil
}

// Bytes renders the document by joining its raw lines.
func (d *Document) Bytes() []byte {
	var lines []string
	for _, s := range d.Sections {
		lines = append(lines, s.Lines...)
	}
	return []byte(strings.Join(lines, "\n"))
}

// appendSection adds a new section at the end of the document, moving a
// trailing end-of-file blank into the new section so the file keeps its
// final-newline convention.
func (d *Document) appendSection(name string, entries ...string) {
	if len(d.Sections) == 0 {
		lines := append([]string{"[" + name + "]"}, entries...)
		lines = append(lines, "")
		d.Sections = append(d.Sections, Section{Name: name, Lines: lines})
		return
	}

	lines := append([]string{"", "[" + name + "]"}, entries...)
	last := &d.Sections[len(d.Sections)-1]
	if k := len(last.Lines); k > 0 && last.Lines[k-1] == "" {
		last.Lines = last.Lines[:k-1]
		lines = append(lines, "")
	}
	d.Sections = append(d.Sections, Section{Name: name, Lines: lines})
}

// Manifest is a project's dependency declaration: its identity from
// [package], the ordered [dependencies] entries, and the full document
// carrying everything the tool does not interpret.
type Manifest struct {
	Name         string
	Version      string
	Dependencies []Dependency
	Document     Document
}

// InitialVersion is the package version written by mod init.
const InitialVersion = "0.1.0"

// NewManifest returns the manifest mod init writes: a [package] section
// with the given name at InitialVersion and an empty [dependencies]
// section.
func NewManifest(name string) *Manifest {
	return &Manifest{
		Name:    name,
		Version: InitialVersion,
		Document: Document{
			Sections: []Section{
				{Name: PackageSection, Lines: []string{
					"[package]",
					"name = " + strconv.Quote(name),
					"version = " + strconv.Quote(InitialVersion),
					"",
				}},
				{Name: DependenciesSection, Lines: []string{
					"[dependencies]",
					"",
				}},
			},
		},
	}
}

// HasDependency reports whether the locator is already declared.
func (m *Manifest) HasDependency(loc Locator) bool {
	return slices.ContainsFunc(m.Dependencies, func(d Dependency) bool {
		return d.Locator == loc
	})
}

// Locators returns the declared locators in manifest order.
func (m *Manifest) Locators() []Locator {
	locs := make([]Locator, len(m.Dependencies))
	for i, d := range m.Dependencies {
		locs[i] = d.Locator
	}
	return locs
}

// AddDependency appends the locator to the [dependencies] section,
// creating the section when the manifest has none. Existing entries are
// left exactly in place. It reports whether the manifest changed; a
// locator that is already declared is a no-op.
func (m *Manifest) AddDependency(loc Locator) bool {
	if m.HasDependency(loc) {
		return false
	}
	m.Dependencies = append(m.Dependencies, Dependency{Locator: loc})

	if sec := m.Document.Section(DependenciesSection); sec != nil {
		sec.insertEntry(DependencyLine(loc))
	} else {
		m.Document.appendSection(DependenciesSection, DependencyLine(loc))
	}
	return true
}

// DependencyLine renders one manifest dependency entry. The locator is
// used as both key and value, quoted because locators contain
// characters bare keys do not allow.
func DependencyLine(loc Locator) string {
	q := strconv.Quote(string(loc))
	return q + " = " + q
}
