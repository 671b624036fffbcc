package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the name used for user-level directories.
	AppName = "gitres"

	// ConfigFileName is the name of the project-level configuration file.
	ConfigFileName = "gitres.yaml"

	// UserConfigFileName is the name of the user-level configuration file.
	UserConfigFileName = "config.yaml"

	// CacheDirName is the name of the content cache directory.
	CacheDirName = "content"

	// LockFileName is the name of the advisory lock file inside the cache directory.
	LockFileName = ".lock"

	// TokenEnvVar supplies a default access token for repositories without one.
	TokenEnvVar = "GITRES_GITHUB_TOKEN"

	// APIURLEnvVar points the GitHub client at an alternative API endpoint, such as GitHub Enterprise.
	APIURLEnvVar = "GITRES_GITHUB_API_URL"

	// DefaultBranch is used when neither the identifier nor the repository config names a branch.
	DefaultBranch = "main"

	// DefaultCacheTTL is the default lifetime of a cache entry.
	DefaultCacheTTL = time.Hour

	// DefaultCacheMaxSize is the default bound on persisted cache entries.
	DefaultCacheMaxSize = 500

	// DefaultMaxDepth bounds the recursive listing of a repository.
	DefaultMaxDepth = 5

	// DefaultDiscoveryConcurrency bounds the number of repositories scanned at once.
	DefaultDiscoveryConcurrency = 4

	// DefaultRequestTimeout bounds a single remote request.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultMaxRetries bounds the attempts made for a transiently failing request.
	DefaultMaxRetries = 3

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultExtensions is the listing allowlist used when none is configured.
func DefaultExtensions() []string {
	return []string{".md"}
}

// DefaultCachePath returns the default directory of the persisted cache.
// It falls back to a directory under the system temp dir when no user cache dir exists.
func DefaultCachePath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, AppName, CacheDirName)
}

// DefaultUserConfigPath returns the user-level configuration file path, or "" if unknown.
func DefaultUserConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, AppName, UserConfigFileName)
}
