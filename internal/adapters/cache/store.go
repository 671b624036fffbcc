// Package cache implements the dual-tier content cache for remote files.
package cache

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ContentCache with an in-memory index over a
// directory of JSON records, one file per key.
type Store struct {
	dir     string
	ttl     time.Duration
	maxSize int
	enabled bool

	logger ports.Logger
	now    func() time.Time

	mu     sync.RWMutex
	memory map[string]*domain.CacheEntry

	// dirMu serializes lock holders within the process; flock locks are per file description.
	dirMu sync.Mutex
	lock  *flock.Flock
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used for expiry and write times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore opens the cache described by cfg.
// A disabled configuration yields a pass-through store that never touches disk.
func NewStore(cfg domain.CacheConfig, logger ports.Logger, opts ...Option) (*Store, error) {
	s := &Store{
		dir:     cfg.Dir,
		ttl:     cfg.TTL,
		maxSize: cfg.MaxSize,
		enabled: cfg.Enabled,
		logger:  logger,
		now:     time.Now,
		memory:  make(map[string]*domain.CacheEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ttl <= 0 {
		s.ttl = domain.DefaultCacheTTL
	}
	if s.maxSize <= 0 {
		s.maxSize = domain.DefaultCacheMaxSize
	}
	if s.dir == "" {
		s.dir = domain.DefaultCachePath()
	}

	if !s.enabled {
		return s, nil
	}

	if err := ensureDir(s.dir); err != nil {
		return nil, err
	}
	s.lock = flock.New(lockPath(s.dir))

	removed, err := s.Prune()
	if err != nil {
		s.logger.Warn("startup cache sweep failed", "dir", s.dir, "error", err)
	} else if removed > 0 {
		s.logger.Debug("startup cache sweep", "dir", s.dir, "removed", removed)
	}

	return s, nil
}

// Dir returns the directory of the persisted tier.
func (s *Store) Dir() string {
	return s.dir
}

// Get returns the unexpired entry for key, promoting persisted records into memory.
// Expired and corrupt records are removed.
func (s *Store) Get(key domain.CacheKey) (*domain.CacheEntry, bool) {
	if !s.enabled {
		return nil, false
	}

	hash := keyHash(key)
	now := s.now()

	s.mu.RLock()
	entry, inMemory := s.memory[hash]
	s.mu.RUnlock()

	if !inMemory {
		var ok bool
		if entry, ok = s.load(key, hash); !ok {
			return nil, false
		}
	}

	if entry.Expired(now) {
		s.logger.Debug("cache entry expired", "key", key.String())
		s.remove(hash)
		return nil, false
	}

	if !inMemory {
		s.mu.Lock()
		s.memory[hash] = entry
		s.mu.Unlock()
	}

	return entry, true
}

// Peek returns the entry for key without regard to expiry and without promoting it.
func (s *Store) Peek(key domain.CacheKey) (*domain.CacheEntry, bool) {
	if !s.enabled {
		return nil, false
	}

	hash := keyHash(key)

	s.mu.RLock()
	entry, ok := s.memory[hash]
	s.mu.RUnlock()
	if ok {
		return entry, true
	}

	return s.load(key, hash)
}

// Set stores content under key and enforces the size bound.
// A ttl <= 0 uses the store default. Persistence failures are logged.
func (s *Store) Set(key domain.CacheKey, content string, meta domain.FileMetadata, ttl time.Duration) {
	if !s.enabled {
		return
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	now := s.now()
	entry := domain.NewCacheEntry(key, content, meta, now, ttl)
	hash := keyHash(key)

	s.mu.Lock()
	s.memory[hash] = entry
	s.mu.Unlock()

	if err := writeEntry(s.dir, hash, entry, now); err != nil {
		s.logger.Warn("cache write failed", "key", key.String(), "error", err)
		return
	}

	if err := s.withDirLock(s.evict); err != nil {
		s.logger.Warn("cache eviction failed", "dir", s.dir, "error", err)
	}
}

// IsValid checks the entry for key against remote metadata using domain.ValidityRules.
// Expired entries are still considered so that a matching fingerprint revalidates them.
func (s *Store) IsValid(key domain.CacheKey, remote domain.RemoteMetadata) bool {
	entry, ok := s.Peek(key)
	if !ok {
		return false
	}
	return entry.IsValid(remote, s.now())
}

// Delete removes the entry for key from both tiers.
func (s *Store) Delete(key domain.CacheKey) error {
	if !s.enabled {
		return nil
	}

	hash := keyHash(key)
	s.mu.Lock()
	delete(s.memory, hash)
	s.mu.Unlock()

	return removeRecord(s.dir, hash)
}

// ClearRepository removes every entry of owner/repo, restricted to branch when it is not empty.
// It returns the number of distinct entries removed.
func (s *Store) ClearRepository(owner, repo, branch string) (int, error) {
	if !s.enabled {
		return 0, nil
	}

	matches := func(e *domain.CacheEntry) bool {
		return e.Owner == owner && e.Repo == repo && (branch == "" || e.Branch == branch)
	}

	removed := make(map[string]struct{})

	s.mu.Lock()
	for hash, e := range s.memory {
		if matches(e) {
			delete(s.memory, hash)
			removed[hash] = struct{}{}
		}
	}
	s.mu.Unlock()

	err := s.withDirLock(func() error {
		records, err := listRecords(s.dir)
		if err != nil {
			return err
		}
		for _, rec := range records {
			e, readErr := readEntry(rec.path)
			if readErr != nil || !matches(e) {
				continue
			}
			if err := removeRecord(s.dir, rec.hash); err != nil {
				return err
			}
			removed[rec.hash] = struct{}{}
		}
		return nil
	})

	return len(removed), err
}

// Clear removes every entry from both tiers.
func (s *Store) Clear() error {
	if !s.enabled {
		return nil
	}

	s.mu.Lock()
	clear(s.memory)
	s.mu.Unlock()

	return s.withDirLock(func() error {
		records, err := listRecords(s.dir)
		if err != nil {
			return err
		}
		for _, rec := range records {
			if err := removeRecord(s.dir, rec.hash); err != nil {
				return err
			}
		}
		return nil
	})
}

// Prune removes expired entries from both tiers and unreadable persisted records.
// It returns the number of distinct entries removed.
func (s *Store) Prune() (int, error) {
	if !s.enabled {
		return 0, nil
	}

	now := s.now()
	removed := make(map[string]struct{})

	s.mu.Lock()
	for hash, e := range s.memory {
		if e.Expired(now) {
			delete(s.memory, hash)
			removed[hash] = struct{}{}
		}
	}
	s.mu.Unlock()

	err := s.withDirLock(func() error {
		records, err := listRecords(s.dir)
		if err != nil {
			return err
		}
		for _, rec := range records {
			e, readErr := readEntry(rec.path)
			if readErr == nil && !e.Expired(now) {
				continue
			}
			if err := removeRecord(s.dir, rec.hash); err != nil {
				return err
			}
			removed[rec.hash] = struct{}{}
		}
		return nil
	})

	return len(removed), err
}

// Stats reports both tiers. Persisted items are ordered newest first.
func (s *Store) Stats() domain.CacheStats {
	stats := domain.CacheStats{
		Enabled:   s.enabled,
		DiskCache: domain.DiskCacheStats{Items: []domain.CacheItemStats{}},
	}
	if !s.enabled {
		return stats
	}

	s.mu.RLock()
	stats.MemoryCache.Size = len(s.memory)
	s.mu.RUnlock()

	records, err := listRecords(s.dir)
	if err != nil {
		s.logger.Warn("cache stats unavailable", "dir", s.dir, "error", err)
		return stats
	}

	for _, rec := range records {
		stats.DiskCache.Size++
		stats.DiskCache.TotalBytes += rec.size

		e, readErr := readEntry(rec.path)
		if readErr != nil {
			continue
		}
		stats.DiskCache.Items = append(stats.DiskCache.Items, domain.CacheItemStats{
			Key:       e.Key().String(),
			Path:      rec.path,
			Size:      rec.size,
			WriteTime: rec.modTime,
			RepoKey:   domain.RepoKey(e.Owner, e.Repo),
			Branch:    e.Branch,
		})
	}

	slices.SortStableFunc(stats.DiskCache.Items, func(a, b domain.CacheItemStats) int {
		return b.WriteTime.Compare(a.WriteTime)
	})

	return stats
}

// load reads the persisted record for key. Corrupt records are deleted.
func (s *Store) load(key domain.CacheKey, hash string) (*domain.CacheEntry, bool) {
	entry, err := readEntry(recordPath(s.dir, hash))
	switch {
	case err == nil:
	case isNotExist(err):
		return nil, false
	case errors.Is(err, domain.ErrCorruptCacheEntry):
		s.logger.Warn("removing corrupt cache entry", "key", key.String(), "error", err)
		s.remove(hash)
		return nil, false
	default:
		s.logger.Warn("cache read failed", "key", key.String(), "error", err)
		return nil, false
	}

	if entry.Key() != key {
		return nil, false
	}
	return entry, true
}

// remove drops hash from both tiers, logging persistence failures.
func (s *Store) remove(hash string) {
	s.mu.Lock()
	delete(s.memory, hash)
	s.mu.Unlock()

	if err := removeRecord(s.dir, hash); err != nil {
		s.logger.Warn("cache delete failed", "record", hash, "error", err)
	}
}

// evict removes the oldest persisted records until the size bound holds.
// Callers hold the directory lock.
func (s *Store) evict() error {
	records, err := listRecords(s.dir)
	if err != nil {
		return err
	}
	excess := len(records) - s.maxSize
	if excess <= 0 {
		return nil
	}

	slices.SortFunc(records, func(a, b record) int {
		if c := a.modTime.Compare(b.modTime); c != 0 {
			return c
		}
		return strings.Compare(a.hash, b.hash)
	})

	for _, rec := range records[:excess] {
		s.mu.Lock()
		delete(s.memory, rec.hash)
		s.mu.Unlock()

		if err := removeRecord(s.dir, rec.hash); err != nil {
			return err
		}
		s.logger.Debug("evicted cache entry", "record", rec.hash)
	}
	return nil
}

func (s *Store) withDirLock(fn func() error) error {
	s.dirMu.Lock()
	defer s.dirMu.Unlock()

	if err := s.lock.Lock(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheLockFailed, err.Error()), "dir", s.dir)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			s.logger.Warn("failed to release cache lock", "dir", s.dir, "error", err)
		}
	}()

	return fn()
}
