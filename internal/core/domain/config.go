package domain

import (
	"cmp"
	"slices"
	"time"
)

// Config is the validated gitres configuration.
type Config struct {
	Enabled      bool
	Cache        CacheConfig
	Discovery    DiscoveryConfig
	Repositories []RepositoryConfig
}

// CacheConfig tunes the content cache.
type CacheConfig struct {
	Enabled bool
	Dir     string
	TTL     time.Duration
	MaxSize int
}

// DiscoveryConfig tunes repository scanning.
type DiscoveryConfig struct {
	Enabled     bool
	MaxDepth    int
	Extensions  []string
	Concurrency int
}

// RepositoryConfig describes one remote repository.
type RepositoryConfig struct {
	Owner    string
	Name     string
	Branch   string
	RootPath string
	Priority int
	Enabled  bool
	Token    string
	CacheTTL time.Duration
}

// Key returns the owner/name key of the repository.
func (r RepositoryConfig) Key() string {
	return RepoKey(r.Owner, r.Name)
}

// EffectiveBranch returns the configured branch or DefaultBranch.
func (r RepositoryConfig) EffectiveBranch() string {
	if r.Branch != "" {
		return r.Branch
	}
	return DefaultBranch
}

// EnabledRepositories returns enabled repositories, highest priority first, then by key.
// It returns nil when the configuration as a whole is disabled.
func (c *Config) EnabledRepositories() []RepositoryConfig {
	if !c.Enabled {
		return nil
	}
	var out []RepositoryConfig
	for _, r := range c.Repositories {
		if r.Enabled {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b RepositoryConfig) int {
		if byPriority := cmp.Compare(b.Priority, a.Priority); byPriority != 0 {
			return byPriority
		}
		return cmp.Compare(a.Key(), b.Key())
	})
	return out
}

// Repository looks up a repository by its owner/name key.
func (c *Config) Repository(key string) (RepositoryConfig, bool) {
	for _, r := range c.Repositories {
		if r.Key() == key {
			return r, true
		}
	}
	return RepositoryConfig{}, false
}
