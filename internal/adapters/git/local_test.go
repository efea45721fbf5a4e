package git_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiln-lang/kiln/internal/adapters/git"
	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

func TestLocalFetcher_Fetch(t *testing.T) {
	requireGit(t)

	source := initRepo(t, map[string]string{"src/main.kiln": "fn main() {}"})
	head := gitCmd(t, source, "rev-parse", "HEAD")

	entry, err := git.NewLocalFetcher().Fetch(context.Background(),
		domain.Locator("file://"+source), filepath.Join(t.TempDir(), "ignored"), ports.FetchOptions{})
	require.NoError(t, err)

	assert.Equal(t, source, entry.Path, "local sources are read in place")
	assert.Equal(t, head, entry.Revision)
}

func TestLocalFetcher_Fetch_RevisionMatch(t *testing.T) {
	requireGit(t)

	source := initRepo(t, map[string]string{"src/main.kiln": "fn main() {}"})
	head := gitCmd(t, source, "rev-parse", "HEAD")

	entry, err := git.NewLocalFetcher().Fetch(context.Background(),
		domain.Locator("file://"+source), "", ports.FetchOptions{Revision: head})
	require.NoError(t, err)

	assert.Equal(t, head, entry.Revision)
}

func TestLocalFetcher_Fetch_RevisionMismatch(t *testing.T) {
	requireGit(t)

	source := initRepo(t, map[string]string{"src/main.kiln": "fn main() {}"})
	head := gitCmd(t, source, "rev-parse", "HEAD")

	_, err := git.NewLocalFetcher().Fetch(context.Background(),
		domain.Locator("file://"+source), "", ports.FetchOptions{Revision: strings.Repeat("a", 40)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)

	// The source tree is left exactly where it was.
	assert.Equal(t, head, gitCmd(t, source, "rev-parse", "HEAD"))
}

func TestLocalFetcher_Fetch_NotARepository(t *testing.T) {
	requireGit(t)

	dir := t.TempDir()

	_, err := git.NewLocalFetcher().Fetch(context.Background(),
		domain.Locator("file://"+dir), "", ports.FetchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
}

func TestLocalFetcher_Fetch_MissingPath(t *testing.T) {
	_, err := git.NewLocalFetcher().Fetch(context.Background(),
		domain.Locator("file:///does/not/exist"), "", ports.FetchOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetch)
}
