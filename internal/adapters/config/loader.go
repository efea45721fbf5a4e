// Package config provides the user configuration loader for kiln.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/kiln-lang/kiln/internal/core/domain"
	"github.com/kiln-lang/kiln/internal/core/ports"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Environment variables recognized by the loader. Each overrides the
// corresponding config file field; KILN_CONFIG overrides the file
// location itself.
const (
	EnvConfig   = "KILN_CONFIG"
	EnvCacheDir = "KILN_CACHE_DIR"
	EnvOutput   = "KILN_OUTPUT"
)

const (
	configDirName  = "kiln"
	configFileName = "config.yaml"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load resolves the configuration in three layers: defaults, then the
// config file, then environment overrides. A missing file at the
// default location is not an error; a missing file named explicitly
// via KILN_CONFIG is.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := &domain.Config{
		CacheDir:   domain.DefaultCacheDir(),
		OutputMode: "auto",
	}

	path, explicit := configPath()
	if path != "" {
		var file File
		err := readAndUnmarshalYAML(path, &file)
		switch {
		case err == nil:
			file.applyTo(cfg)
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// No config file; defaults apply.
		default:
			return nil, err
		}
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		cfg.CacheDir = dir
	}
	if mode := os.Getenv(EnvOutput); mode != "" {
		cfg.OutputMode = mode
	}

	if cfg.Parallel <= 0 {
		cfg.Parallel = runtime.NumCPU()
	}

	return cfg, nil
}

// configPath returns the config file location and whether the user
// named it explicitly.
func configPath() (string, bool) {
	if path := os.Getenv(EnvConfig); path != "" {
		return path, true
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}

	return filepath.Join(base, configDirName, configFileName), false
}

func (f *File) applyTo(cfg *domain.Config) {
	if f.CacheDir != "" {
		cfg.CacheDir = f.CacheDir
	}
	if f.OutputMode != "" {
		cfg.OutputMode = f.OutputMode
	}
	if f.Parallel > 0 {
		cfg.Parallel = f.Parallel
	}
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path comes from the user's own environment
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, "failed to read config file")
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.With(zerr.Wrap(parseErr, "failed to parse config file"), "path", path)
	}

	return nil
}
