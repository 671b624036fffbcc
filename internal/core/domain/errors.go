package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidIdentifier is returned when a resource identifier does not match owner/repo[@branch]/path.
	ErrInvalidIdentifier = zerr.New("invalid resource identifier")

	// ErrUnknownRepository is returned when an identifier names a repository that is not configured.
	ErrUnknownRepository = zerr.New("unknown repository")

	// ErrRepositoryDisabled is returned when an identifier names a configured but disabled repository.
	ErrRepositoryDisabled = zerr.New("repository is disabled")

	// ErrRemoteNotFound is returned when the requested path does not exist in the remote repository.
	ErrRemoteNotFound = zerr.New("remote resource not found")

	// ErrResourceNotFound is returned when the registry holds no resource of the requested kind and id.
	ErrResourceNotFound = zerr.New("resource not found")

	// ErrTransientNetwork is returned for connectivity failures, timeouts and remote 5xx responses.
	ErrTransientNetwork = zerr.New("transient network error")

	// ErrRemoteRequestFailed is returned when the remote API rejects a request for a non-transient reason.
	ErrRemoteRequestFailed = zerr.New("remote request failed")

	// ErrRemoteAuthFailed is returned when the remote API rejects the configured credentials.
	ErrRemoteAuthFailed = zerr.New("remote authentication failed")

	// ErrRemoteDecodeFailed is returned when remote file content cannot be decoded.
	ErrRemoteDecodeFailed = zerr.New("failed to decode remote content")

	// ErrCorruptCacheEntry is returned when a persisted cache record cannot be decoded.
	ErrCorruptCacheEntry = zerr.New("corrupt cache entry")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheReadFailed is returned when a persisted cache record cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheWriteFailed is returned when a cache record cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheLockFailed is returned when the cache directory lock cannot be acquired.
	ErrCacheLockFailed = zerr.New("failed to lock cache directory")

	// ErrConfigNotFound is returned when no configuration file can be located.
	ErrConfigNotFound = zerr.New("could not find gitres configuration")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when the configuration fails validation.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrDuplicateRepository is returned when two repository entries share the same owner/name.
	ErrDuplicateRepository = zerr.New("duplicate repository")
)
