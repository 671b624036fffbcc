package ports

import "go.trai.ch/gitres/internal/core/domain"

// ConfigLoader defines the interface for loading the gitres configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. An empty path triggers discovery from cwd.
	Load(path, cwd string) (ConfigProvider, error)
}

// ConfigProvider exposes a validated configuration.
type ConfigProvider interface {
	// Config returns the full configuration.
	Config() *domain.Config

	// EnabledRepositories returns the enabled repositories, highest priority first.
	EnabledRepositories() []domain.RepositoryConfig

	// RepositoryConfig looks up a repository by its owner/name key.
	RepositoryConfig(key string) (domain.RepositoryConfig, bool)
}
