package ports

import "github.com/kiln-lang/kiln/internal/core/domain"

// ConfigLoader resolves the user configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the user config file, applies environment overrides
	// and fills defaults. A missing config file yields the defaults.
	Load() (*domain.Config, error)
}
