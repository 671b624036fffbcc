// Package resolver turns resource identifiers into file content through the content cache.
package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver resolves owner/repo[@branch]/path identifiers.
type Resolver struct {
	config ports.ConfigProvider
	client ports.RepositoryClient
	cache  ports.ContentCache
	logger ports.Logger
	tracer ports.Tracer
	now    func() time.Time
}

// NewResolver creates a new Resolver with the given dependencies.
func NewResolver(
	config ports.ConfigProvider,
	client ports.RepositoryClient,
	cache ports.ContentCache,
	logger ports.Logger,
	tracer ports.Tracer,
) *Resolver {
	return &Resolver{
		config: config,
		client: client,
		cache:  cache,
		logger: logger,
		tracer: tracer,
		now:    time.Now,
	}
}

// target is a parsed identifier pinned to its effective branch, with its repository.
type target struct {
	id   domain.Identifier
	repo domain.RepositoryConfig
}

func (t target) key() domain.CacheKey {
	return t.id.CacheKey()
}

func (t target) logArgs() []any {
	return []any{"repo", t.id.RepoKey(), "branch", t.id.Branch, "path", t.id.FilePath}
}

// target parses identifier and resolves its repository and effective branch.
func (r *Resolver) target(identifier string) (target, error) {
	id, err := domain.ParseIdentifier(identifier)
	if err != nil {
		return target{}, err
	}

	repo, ok := r.config.RepositoryConfig(id.RepoKey())
	if !ok {
		return target{}, zerr.With(zerr.Wrap(domain.ErrUnknownRepository, "repository is not configured"),
			"repo", id.RepoKey())
	}
	if !repo.Enabled || !r.config.Config().Enabled {
		return target{}, zerr.With(zerr.Wrap(domain.ErrRepositoryDisabled, "repository is disabled"),
			"repo", id.RepoKey())
	}

	if id.Branch == "" {
		id = id.WithBranch(repo.EffectiveBranch())
	}

	return target{id: id, repo: repo}, nil
}

// Resolve returns the content of the file named by identifier.
// A cached entry is returned when it is still valid against the last remote
// commit. On transient remote failures any cached entry is served instead.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (string, error) {
	ctx, span := r.tracer.Start(ctx, "resolve")
	defer span.End()

	t, err := r.target(identifier)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttribute("repo", t.id.RepoKey())
	span.SetAttribute("path", t.id.FilePath)

	key := t.key()
	cached, hit := r.cache.Peek(key)
	span.SetAttribute("cache_hit", hit)

	var remote *domain.RemoteMetadata
	if hit {
		last, err := r.client.GetFileLastCommit(ctx, t.repo, t.id.Branch, t.id.FilePath)
		switch {
		case err == nil:
			remote = &last
			if r.cache.IsValid(key, last) {
				r.logger.Debug("cache hit", t.logArgs()...)
				r.renew(t, cached)
				return cached.Content, nil
			}
			r.logger.Debug("cache entry stale", t.logArgs()...)
		case errors.Is(err, domain.ErrTransientNetwork):
			r.degraded(t, err)
			return cached.Content, nil
		case errors.Is(err, domain.ErrRemoteNotFound):
			// Fall through to the fetch, which reports the missing file.
		default:
			// Without remote metadata only the TTL decides.
			r.logger.Debug("last commit unavailable, validating by ttl", append(t.logArgs(), "error", err)...)
			if r.cache.IsValid(key, domain.RemoteMetadata{}) {
				return cached.Content, nil
			}
		}
	}

	content, _, err := r.fetch(ctx, t, remote)
	if err != nil {
		if hit && errors.Is(err, domain.ErrTransientNetwork) {
			r.degraded(t, err)
			return cached.Content, nil
		}
		if hit && errors.Is(err, domain.ErrRemoteNotFound) {
			r.drop(t)
		}
		span.RecordError(err)
		return "", err
	}

	return content, nil
}

// fetch downloads the file, merges in last-commit metadata and writes it through the cache.
// remote is reused when the caller already fetched it.
func (r *Resolver) fetch(
	ctx context.Context,
	t target,
	remote *domain.RemoteMetadata,
) (string, domain.FileMetadata, error) {
	content, meta, err := r.client.GetFileContent(ctx, t.repo, t.id.Branch, t.id.FilePath)
	if err != nil {
		return "", domain.FileMetadata{}, err
	}

	if remote == nil {
		last, err := r.client.GetFileLastCommit(ctx, t.repo, t.id.Branch, t.id.FilePath)
		switch {
		case err == nil:
			remote = &last
		case errors.Is(err, domain.ErrTransientNetwork):
			return "", domain.FileMetadata{}, err
		default:
			r.logger.Debug("last commit unavailable, caching by blob sha", append(t.logArgs(), "error", err)...)
		}
	}
	if remote != nil {
		meta.CommitSHA = remote.SHA
		meta.LastModified = remote.LastModified
	}

	r.cache.Set(t.key(), content, meta, t.repo.CacheTTL)
	r.logger.Debug("cached remote file", t.logArgs()...)

	return content, meta, nil
}

// renew restarts the lifetime of an expired entry that was revalidated remotely.
func (r *Resolver) renew(t target, entry *domain.CacheEntry) {
	if !entry.Expired(r.now()) {
		return
	}
	r.cache.Set(t.key(), entry.Content, entry.Metadata, t.repo.CacheTTL)
}

func (r *Resolver) degraded(t target, err error) {
	r.logger.Warn("remote unavailable, serving cached content", append(t.logArgs(), "error", err)...)
}

func (r *Resolver) drop(t target) {
	if err := r.cache.Delete(t.key()); err != nil {
		r.logger.Warn("failed to drop cache entry", append(t.logArgs(), "error", err)...)
	}
}

// Exists reports whether identifier names an existing remote file.
// Every failure, including malformed identifiers, is reported as false.
func (r *Resolver) Exists(ctx context.Context, identifier string) bool {
	ctx, span := r.tracer.Start(ctx, "exists")
	defer span.End()

	t, err := r.target(identifier)
	if err != nil {
		r.logger.Debug("existence check failed", "identifier", identifier, "error", err)
		return false
	}

	exists, err := r.client.FileExists(ctx, t.repo, t.id.Branch, t.id.FilePath)
	if err != nil {
		span.RecordError(err)
		r.logger.Debug("existence check failed", append(t.logArgs(), "error", err)...)
		return false
	}
	return exists
}

// Metadata returns the merged metadata of the file named by identifier,
// from the cache when an unexpired entry exists.
func (r *Resolver) Metadata(ctx context.Context, identifier string) (domain.FileMetadata, error) {
	ctx, span := r.tracer.Start(ctx, "metadata")
	defer span.End()

	t, err := r.target(identifier)
	if err != nil {
		span.RecordError(err)
		return domain.FileMetadata{}, err
	}

	if entry, ok := r.cache.Get(t.key()); ok {
		return entry.Metadata, nil
	}

	_, meta, err := r.fetch(ctx, t, nil)
	if err != nil {
		span.RecordError(err)
		return domain.FileMetadata{}, err
	}
	return meta, nil
}

// RefreshCache drops the cached entry of identifier so the next resolution refetches it.
func (r *Resolver) RefreshCache(identifier string) error {
	t, err := r.target(identifier)
	if err != nil {
		return err
	}
	return r.cache.Delete(t.key())
}

// ClearRepositoryCache drops every cached entry of repoKey, restricted to branch when set.
func (r *Resolver) ClearRepositoryCache(repoKey, branch string) (int, error) {
	owner, repo, ok := strings.Cut(strings.Trim(repoKey, "/"), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidIdentifier, "expected owner/repo"), "repo", repoKey)
	}
	return r.cache.ClearRepository(owner, repo, branch)
}

// ClearCache drops every cached entry.
func (r *Resolver) ClearCache() error {
	return r.cache.Clear()
}

// Prune removes expired and unreadable cache entries.
func (r *Resolver) Prune() (int, error) {
	return r.cache.Prune()
}

// Stats reports the content cache statistics.
func (r *Resolver) Stats() domain.CacheStats {
	return r.cache.Stats()
}
