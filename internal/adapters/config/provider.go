package config

import (
	"go.trai.ch/gitres/internal/core/domain"
)

// Provider implements ports.ConfigProvider over a loaded configuration.
type Provider struct {
	cfg *domain.Config
}

// NewProvider wraps cfg.
func NewProvider(cfg *domain.Config) *Provider {
	return &Provider{cfg: cfg}
}

// Config returns the full configuration.
func (p *Provider) Config() *domain.Config {
	return p.cfg
}

// EnabledRepositories returns the enabled repositories, highest priority first.
func (p *Provider) EnabledRepositories() []domain.RepositoryConfig {
	return p.cfg.EnabledRepositories()
}

// RepositoryConfig looks up a repository by its owner/name key.
func (p *Provider) RepositoryConfig(key string) (domain.RepositoryConfig, bool) {
	return p.cfg.Repository(key)
}
