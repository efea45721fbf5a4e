package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln-lang/kiln/internal/core/domain"
)

// testManifest builds a manifest whose document mirrors what mod init
// writes: [package], a blank separator, [dependencies], final newline.
func testManifest() *domain.Manifest {
	return &domain.Manifest{
		Name:    "consumer",
		Version: "0.1.0",
		Document: domain.Document{
			Sections: []domain.Section{
				{Name: domain.PackageSection, Lines: []string{
					"[package]",
					`name = "consumer"`,
					`version = "0.1.0"`,
					"",
				}},
				{Name: domain.DependenciesSection, Lines: []string{
					"[dependencies]",
					"",
				}},
			},
		},
	}
}

func TestManifest_AddDependency(t *testing.T) {
	t.Run("appends entry and document line", func(t *testing.T) {
		m := testManifest()

		changed := m.AddDependency("file:///tmp/dummy-pkg")
		require.True(t, changed)
		require.Len(t, m.Dependencies, 1)
		assert.Equal(t, domain.Locator("file:///tmp/dummy-pkg"), m.Dependencies[0].Locator)

		sec := m.Document.Section(domain.DependenciesSection)
		require.NotNil(t, sec)
		assert.Contains(t, sec.Lines, `"file:///tmp/dummy-pkg" = "file:///tmp/dummy-pkg"`)
		// the trailing blank stays at the end of the section
		assert.Equal(t, "", sec.Lines[len(sec.Lines)-1])
	})

	t.Run("is idempotent", func(t *testing.T) {
		m := testManifest()

		require.True(t, m.AddDependency("github.com/org/repo"))
		before := string(m.Document.Bytes())

		assert.False(t, m.AddDependency("github.com/org/repo"))
		assert.Len(t, m.Dependencies, 1)
		assert.Equal(t, before, string(m.Document.Bytes()))
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		m := testManifest()

		require.True(t, m.AddDependency("github.com/org/zeta"))
		require.True(t, m.AddDependency("github.com/org/alpha"))

		assert.Equal(t, []domain.Locator{
			"github.com/org/zeta",
			"github.com/org/alpha",
		}, m.Locators())

		sec := m.Document.Section(domain.DependenciesSection)
		require.NotNil(t, sec)
		assert.Equal(t, []string{
			"[dependencies]",
			`"github.com/org/zeta" = "github.com/org/zeta"`,
			`"github.com/org/alpha" = "github.com/org/alpha"`,
			"",
		}, sec.Lines)
	})

	t.Run("creates missing dependencies section", func(t *testing.T) {
		m := &domain.Manifest{
			Name: "bare",
			Document: domain.Document{
				Sections: []domain.Section{
					{Name: domain.PackageSection, Lines: []string{
						"[package]",
						`name = "bare"`,
						"",
					}},
				},
			},
		}

		require.True(t, m.AddDependency("github.com/org/repo"))

		want := "[package]\n" +
			`name = "bare"` + "\n" +
			"\n" +
			"[dependencies]\n" +
			`"github.com/org/repo" = "github.com/org/repo"` + "\n"
		assert.Equal(t, want, string(m.Document.Bytes()))
	})

	t.Run("leaves unknown sections untouched", func(t *testing.T) {
		m := testManifest()
		m.Document.Sections = append(m.Document.Sections, domain.Section{
			Name: "native",
			Lines: []string{
				"[native]",
				"# hand-written notes survive",
				`libfoo = "2.1"`,
				"",
			},
		})
		// move the final newline marker where it belongs
		deps := m.Document.Section(domain.DependenciesSection)
		deps.Lines = []string{"[dependencies]", ""}

		require.True(t, m.AddDependency("github.com/org/repo"))

		native := m.Document.Section("native")
		require.NotNil(t, native)
		assert.Equal(t, []string{
			"[native]",
			"# hand-written notes survive",
			`libfoo = "2.1"`,
			"",
		}, native.Lines)
	})
}

func TestNewManifest(t *testing.T) {
	m := domain.NewManifest("consumer")

	assert.Equal(t, "consumer", m.Name)
	assert.Equal(t, domain.InitialVersion, m.Version)
	assert.Empty(t, m.Dependencies)

	want := "[package]\n" +
		`name = "consumer"` + "\n" +
		`version = "0.1.0"` + "\n" +
		"\n" +
		"[dependencies]\n"
	assert.Equal(t, want, string(m.Document.Bytes()))
}

func TestManifest_HasDependency(t *testing.T) {
	m := testManifest()
	require.True(t, m.AddDependency("github.com/org/repo"))

	assert.True(t, m.HasDependency("github.com/org/repo"))
	assert.False(t, m.HasDependency("github.com/org/other"))
	// locators are raw strings; near-misses are distinct keys
	assert.False(t, m.HasDependency("file://github.com/org/repo"))
}

func TestDocument_Bytes(t *testing.T) {
	t.Run("unmodified document reproduces its lines", func(t *testing.T) {
		doc := domain.Document{
			Sections: []domain.Section{
				{Name: "", Lines: []string{"# header comment", ""}},
				{Name: "package", Lines: []string{"[package]", `name = "x"`, ""}},
			},
		}
		assert.Equal(t, "# header comment\n\n[package]\nname = \"x\"\n", string(doc.Bytes()))
	})

	t.Run("empty document adds no bytes", func(t *testing.T) {
		var doc domain.Document
		assert.Empty(t, doc.Bytes())
	})
}

func TestDependencyLine(t *testing.T) {
	assert.Equal(t,
		`"file:///tmp/dep" = "file:///tmp/dep"`,
		domain.DependencyLine("file:///tmp/dep"))
}
