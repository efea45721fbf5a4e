package config

// File is the on-disk shape of the user config. Every field is
// optional; zero values fall back to defaults.
type File struct {
	CacheDir   string `yaml:"cache_dir"`
	OutputMode string `yaml:"output_mode"`
	Parallel   int    `yaml:"parallel"`
}
