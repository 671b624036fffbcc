package config

// File represents the structure of the gitres.yaml configuration file.
type File struct {
	Enabled      *bool           `yaml:"enabled"`
	Cache        CacheDTO        `yaml:"cache"`
	Discovery    DiscoveryDTO    `yaml:"discovery"`
	Repositories []RepositoryDTO `yaml:"repositories"`
}

// CacheDTO represents the cache section.
type CacheDTO struct {
	Enabled    *bool  `yaml:"enabled"`
	Dir        string `yaml:"dir"`
	TTLSeconds int    `yaml:"ttlSeconds"`
	MaxSize    int    `yaml:"maxSize"`
}

// DiscoveryDTO represents the discovery section.
type DiscoveryDTO struct {
	Enabled     *bool    `yaml:"enabled"`
	MaxDepth    int      `yaml:"maxDepth"`
	Extensions  []string `yaml:"extensions"`
	Concurrency int      `yaml:"concurrency"`
}

// RepositoryDTO represents a repository definition in the configuration.
type RepositoryDTO struct {
	Owner           string `yaml:"owner"`
	Name            string `yaml:"name"`
	Branch          string `yaml:"branch"`
	RootPath        string `yaml:"rootPath"`
	Priority        int    `yaml:"priority"`
	Enabled         *bool  `yaml:"enabled"`
	Token           string `yaml:"token"`
	CacheTTLSeconds int    `yaml:"cacheTtlSeconds"`
}
