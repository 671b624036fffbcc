package domain

import "time"

// CacheKey addresses one cached remote file.
type CacheKey struct {
	Owner    string
	Repo     string
	Branch   string
	FilePath string
}

// RepoKey returns the owner/repo key of the cached file.
func (k CacheKey) RepoKey() string {
	return RepoKey(k.Owner, k.Repo)
}

// String renders the key in identifier form.
func (k CacheKey) String() string {
	return FormatReference(k.Owner, k.Repo, k.Branch, k.FilePath)
}

// FileMetadata is the merged metadata recorded for a fetched file.
type FileMetadata struct {
	SHA          string    `json:"sha,omitempty"`
	Size         int       `json:"size"`
	Path         string    `json:"path,omitempty"`
	CommitSHA    string    `json:"commitSha,omitempty"`
	LastModified time.Time `json:"lastModified,omitzero"`
	DownloadURL  string    `json:"downloadUrl,omitempty"`
	HTMLURL      string    `json:"htmlUrl,omitempty"`
}

// Fingerprint returns the value compared against remote metadata during validation.
// The last-commit SHA is preferred because it is what the cheap validation call returns.
func (m FileMetadata) Fingerprint() string {
	if m.CommitSHA != "" {
		return m.CommitSHA
	}
	return m.SHA
}

// RemoteMetadata is the cheap last-modification record used to validate a cache entry.
type RemoteMetadata struct {
	SHA          string    `json:"sha,omitempty"`
	LastModified time.Time `json:"lastModified,omitzero"`
}

// CacheEntry is a cached remote file together with its validation data.
type CacheEntry struct {
	Owner              string       `json:"owner"`
	Repo               string       `json:"repo"`
	FilePath           string       `json:"filePath"`
	Branch             string       `json:"branch"`
	Content            string       `json:"content"`
	Metadata           FileMetadata `json:"metadata"`
	CachedAt           time.Time    `json:"cachedAt"`
	ExpiresAt          time.Time    `json:"expiresAt"`
	Fingerprint        string       `json:"fingerprint,omitempty"`
	LastRemoteModified time.Time    `json:"lastRemoteModified,omitzero"`
}

// NewCacheEntry builds an entry for key that expires ttl after now.
func NewCacheEntry(key CacheKey, content string, meta FileMetadata, now time.Time, ttl time.Duration) *CacheEntry {
	return &CacheEntry{
		Owner:              key.Owner,
		Repo:               key.Repo,
		FilePath:           key.FilePath,
		Branch:             key.Branch,
		Content:            content,
		Metadata:           meta,
		CachedAt:           now,
		ExpiresAt:          now.Add(ttl),
		Fingerprint:        meta.Fingerprint(),
		LastRemoteModified: meta.LastModified,
	}
}

// Key returns the cache key of the entry.
func (e *CacheEntry) Key() CacheKey {
	return CacheKey{Owner: e.Owner, Repo: e.Repo, Branch: e.Branch, FilePath: e.FilePath}
}

// Expired reports whether the entry is past its expiry at now.
func (e *CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// ValidityRule decides whether a cached entry is still valid against remote metadata.
// Decided is false when the rule does not apply and the next rule should be consulted.
type ValidityRule struct {
	Name  string
	Check func(entry *CacheEntry, remote RemoteMetadata, now time.Time) (valid, decided bool)
}

// ValidityRules is the ordered validation policy; the first rule that decides wins.
var ValidityRules = []ValidityRule{
	{
		Name: "fingerprint",
		Check: func(e *CacheEntry, r RemoteMetadata, _ time.Time) (bool, bool) {
			if e.Fingerprint == "" || r.SHA == "" {
				return false, false
			}
			return e.Fingerprint == r.SHA, true
		},
	},
	{
		Name: "last-modified",
		Check: func(e *CacheEntry, r RemoteMetadata, _ time.Time) (bool, bool) {
			if e.LastRemoteModified.IsZero() || r.LastModified.IsZero() {
				return false, false
			}
			return !e.LastRemoteModified.Before(r.LastModified), true
		},
	},
	{
		Name: "ttl",
		Check: func(e *CacheEntry, _ RemoteMetadata, now time.Time) (bool, bool) {
			return !e.Expired(now), true
		},
	},
}

// IsValid evaluates ValidityRules in order.
func (e *CacheEntry) IsValid(remote RemoteMetadata, now time.Time) bool {
	for _, rule := range ValidityRules {
		if valid, decided := rule.Check(e, remote, now); decided {
			return valid
		}
	}
	return false
}

// CacheStats is the stats surface of the content cache.
type CacheStats struct {
	Enabled     bool             `json:"enabled"`
	MemoryCache MemoryCacheStats `json:"memoryCache"`
	DiskCache   DiskCacheStats   `json:"diskCache"`
}

// MemoryCacheStats describes the memory tier.
type MemoryCacheStats struct {
	Size int `json:"size"`
}

// DiskCacheStats describes the persisted tier. Items are ordered newest first.
type DiskCacheStats struct {
	Size       int              `json:"size"`
	TotalBytes int64            `json:"totalBytes"`
	Items      []CacheItemStats `json:"items"`
}

// CacheItemStats describes one persisted entry.
type CacheItemStats struct {
	Key       string    `json:"key"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	WriteTime time.Time `json:"writeTime"`
	RepoKey   string    `json:"repoKey"`
	Branch    string    `json:"branch"`
}
