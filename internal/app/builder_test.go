package app_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"

	"github.com/kiln-lang/kiln/internal/app"
	_ "github.com/kiln-lang/kiln/internal/wiring" // Register providers
)

func TestAppWiring(t *testing.T) {
	// Keep the wired cache out of the real home directory.
	t.Setenv("KILN_CACHE_DIR", t.TempDir())

	// Verify that the application graph can be constructed
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
