package domain

// Config is the resolved user configuration.
type Config struct {
	// CacheDir is the package cache root.
	CacheDir string

	// OutputMode selects the renderer: "auto", "tui" or "linear".
	OutputMode string

	// Parallel bounds concurrent fetches during sync. Zero means one
	// worker per CPU.
	Parallel int
}
