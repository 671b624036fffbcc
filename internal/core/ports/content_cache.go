package ports

import (
	"time"

	"go.trai.ch/gitres/internal/core/domain"
)

// ContentCache stores fetched remote files in memory and on disk.
// Storage failures are logged by implementations and surface as misses.
//
//go:generate mockgen -source=content_cache.go -destination=mocks/mock_content_cache.go -package=mocks
type ContentCache interface {
	// Get returns the unexpired entry for key.
	Get(key domain.CacheKey) (*domain.CacheEntry, bool)

	// Set stores content under key. A ttl <= 0 uses the cache default.
	Set(key domain.CacheKey, content string, meta domain.FileMetadata, ttl time.Duration)

	// IsValid checks the entry for key against remote metadata.
	IsValid(key domain.CacheKey, remote domain.RemoteMetadata) bool

	// Peek returns the entry for key even if it has expired.
	Peek(key domain.CacheKey) (*domain.CacheEntry, bool)

	// Delete removes the entry for key from both tiers.
	Delete(key domain.CacheKey) error

	// ClearRepository removes every entry of owner/repo. An empty branch matches all branches.
	ClearRepository(owner, repo, branch string) (int, error)

	// Clear removes every entry.
	Clear() error

	// Prune removes expired and unreadable persisted entries.
	Prune() (int, error)

	// Stats reports the size of both tiers.
	Stats() domain.CacheStats
}

// CacheFactory opens a ContentCache for a cache configuration.
type CacheFactory interface {
	Open(cfg domain.CacheConfig) (ContentCache, error)
}
