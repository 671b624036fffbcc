package cache

import (
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
)

// Factory implements ports.CacheFactory.
type Factory struct {
	Logger ports.Logger
}

// NewFactory creates a Factory whose stores log through logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{Logger: logger}
}

// Open creates the store described by cfg.
func (f *Factory) Open(cfg domain.CacheConfig) (ports.ContentCache, error) {
	store, err := NewStore(cfg, f.Logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}
