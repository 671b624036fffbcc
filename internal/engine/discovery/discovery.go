// Package discovery catalogues the resource files of configured repositories into a registry.
package discovery

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Discoverer scans enabled repositories and builds a Registry.
type Discoverer struct {
	config ports.ConfigProvider
	client ports.RepositoryClient
	logger ports.Logger
	tracer ports.Tracer
	now    func() time.Time

	mu       sync.Mutex
	snapshot *domain.Registry
}

// NewDiscoverer creates a new Discoverer with the given dependencies.
func NewDiscoverer(
	config ports.ConfigProvider,
	client ports.RepositoryClient,
	logger ports.Logger,
	tracer ports.Tracer,
) *Discoverer {
	return &Discoverer{
		config: config,
		client: client,
		logger: logger,
		tracer: tracer,
		now:    time.Now,
	}
}

// Discover scans every enabled repository concurrently and returns a fresh Registry.
// A repository whose scan fails is logged and contributes no resources.
// Only cancellation of ctx is reported as an error.
func (d *Discoverer) Discover(ctx context.Context) (*domain.Registry, error) {
	ctx, span := d.tracer.Start(ctx, "discover")
	defer span.End()

	cfg := d.config.Config()
	registry := domain.NewRegistry()
	if !cfg.Enabled || !cfg.Discovery.Enabled {
		d.logger.Debug("discovery disabled")
		return registry, nil
	}

	repos := d.config.EnabledRepositories()
	if len(repos) == 0 {
		d.logger.Debug("no enabled repositories")
		return registry, nil
	}
	span.SetAttribute("repositories", len(repos))

	scannedAt := d.now().UTC()
	opts := ports.ListOptions{MaxDepth: cfg.Discovery.MaxDepth, Extensions: cfg.Discovery.Extensions}
	results := make([][]domain.ResourceDescriptor, len(repos))

	var g errgroup.Group
	g.SetLimit(max(cfg.Discovery.Concurrency, 1))

	for i, repo := range repos {
		g.Go(func() error {
			descriptors, err := d.scan(ctx, repo, opts, scannedAt)
			if err != nil {
				d.logger.Warn("repository scan failed",
					"repo", repo.Key(), "branch", repo.EffectiveBranch(), "path", repo.RootPath, "error", err)
				return nil
			}
			results[i] = descriptors
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	merge(registry, results, d.logger)
	span.SetAttribute("resources", len(registry.Resources))

	return registry, nil
}

// scan lists one repository and turns its role groups into descriptors.
func (d *Discoverer) scan(
	ctx context.Context,
	repo domain.RepositoryConfig,
	opts ports.ListOptions,
	scannedAt time.Time,
) ([]domain.ResourceDescriptor, error) {
	branch := repo.EffectiveBranch()

	files, err := d.client.ListFilesRecursive(ctx, repo, branch, repo.RootPath, opts)
	if err != nil {
		return nil, err
	}

	var out []domain.ResourceDescriptor
	for _, group := range domain.GroupByRole(repo.RootPath, files) {
		main := domain.SelectMainFile(group)
		if main < 0 {
			continue
		}

		for i, file := range group.Files {
			kind := domain.KindRole
			id := group.RoleID
			if i != main {
				if file.Kind == domain.KindRole || !file.Kind.IsResource() {
					continue
				}
				kind = file.Kind
				id = domain.StripKindSuffix(file.RelPath)
			}
			out = append(out, describe(repo, branch, group.RoleID, id, kind, file.Entry, scannedAt))
		}
	}

	d.logger.Debug("scanned repository", "repo", repo.Key(), "branch", branch, "files", len(files), "resources", len(out))
	return out, nil
}

func describe(
	repo domain.RepositoryConfig,
	branch, roleID, id string,
	kind domain.Kind,
	entry domain.FileEntry,
	scannedAt time.Time,
) domain.ResourceDescriptor {
	return domain.ResourceDescriptor{
		ID:            id,
		Kind:          kind,
		RoleID:        roleID,
		SourceRepoKey: repo.Key(),
		Branch:        branch,
		Reference:     domain.FormatReference(repo.Owner, repo.Name, branch, entry.Path),
		Metadata: domain.ResourceMetadata{
			SHA:                entry.SHA,
			Size:               entry.Size,
			Path:               entry.Path,
			ScannedAt:          scannedAt,
			RepositoryPriority: repo.Priority,
			HTMLURL:            entry.HTMLURL,
			DownloadURL:        entry.DownloadURL,
		},
	}
}

// merge appends per-repository results in repository order. A descriptor whose
// kind and id are already present replaces the earlier one only when it comes
// from a strictly higher priority repository.
func merge(registry *domain.Registry, results [][]domain.ResourceDescriptor, logger ports.Logger) {
	index := make(map[string]int)

	for _, descriptors := range results {
		for _, desc := range descriptors {
			i, seen := index[desc.Key()]
			if !seen {
				index[desc.Key()] = len(registry.Resources)
				registry.Resources = append(registry.Resources, desc)
				continue
			}

			existing := registry.Resources[i]
			if desc.Metadata.RepositoryPriority > existing.Metadata.RepositoryPriority {
				registry.Resources[i] = desc
				continue
			}
			logger.Debug("duplicate resource ignored",
				"id", desc.ID, "kind", desc.Kind.String(), "repo", desc.SourceRepoKey, "kept", existing.SourceRepoKey)
		}
	}
}

// Refresh discards the memoized registry and discovers again.
func (d *Discoverer) Refresh(ctx context.Context) (*domain.Registry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.snapshot = nil
	registry, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}
	d.snapshot = registry
	return registry, nil
}

// Registry returns the memoized registry, discovering on first use.
// Failures degrade to an empty registry and are not memoized.
func (d *Discoverer) Registry(ctx context.Context) *domain.Registry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.snapshot != nil {
		return d.snapshot
	}

	registry, err := d.Discover(ctx)
	if err != nil {
		d.logger.Error(err)
		return domain.NewRegistry()
	}
	d.snapshot = registry
	return registry
}
