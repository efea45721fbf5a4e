// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/kiln-lang/kiln/internal/adapters/config"
	_ "github.com/kiln-lang/kiln/internal/adapters/fs"
	_ "github.com/kiln-lang/kiln/internal/adapters/git"
	_ "github.com/kiln-lang/kiln/internal/adapters/logger"
	_ "github.com/kiln-lang/kiln/internal/adapters/modfile"
	_ "github.com/kiln-lang/kiln/internal/adapters/pkgcache"
	// Register app nodes.
	_ "github.com/kiln-lang/kiln/internal/app"
)
