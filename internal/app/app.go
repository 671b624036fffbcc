// Package app composes the adapters and engines behind the gitres commands.
package app

import (
	"context"
	"os"
	"sync"

	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"go.trai.ch/gitres/internal/engine/discovery"
	"go.trai.ch/gitres/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Settings are the process-wide options chosen on the command line.
type Settings struct {
	ConfigPath string
	JSONLogs   bool
	Verbose    bool
}

// logSwitcher is implemented by loggers that can change format and level at runtime.
type logSwitcher interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// shutdowner is implemented by tracers that buffer spans.
type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Session is a loaded configuration together with the engines built on it.
type Session struct {
	Config     ports.ConfigProvider
	Cache      ports.ContentCache
	Resolver   *resolver.Resolver
	Discoverer *discovery.Discoverer
}

// App represents the main application logic.
type App struct {
	loader ports.ConfigLoader
	caches ports.CacheFactory
	client ports.RepositoryClient
	logger ports.Logger
	tracer ports.Tracer
	getwd  func() (string, error)

	mu       sync.Mutex
	settings Settings
	session  *Session
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	caches ports.CacheFactory,
	client ports.RepositoryClient,
	logger ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		loader: loader,
		caches: caches,
		client: client,
		logger: logger,
		tracer: tracer,
		getwd:  os.Getwd,
	}
}

// WithWorkingDir pins the directory configuration discovery starts from.
func (a *App) WithWorkingDir(dir string) *App {
	a.getwd = func() (string, error) { return dir, nil }
	return a
}

// Configure applies command line settings. A changed config path discards the current session.
func (a *App) Configure(s Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s.ConfigPath != a.settings.ConfigPath {
		a.session = nil
	}
	a.settings = s

	if ls, ok := a.logger.(logSwitcher); ok {
		ls.SetJSON(s.JSONLogs)
		ls.SetVerbose(s.Verbose)
	}
}

// Session loads the configuration and opens the cache on first use.
func (a *App) Session() (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	cwd, err := a.getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get current working directory")
	}

	cfg, err := a.loader.Load(a.settings.ConfigPath, cwd)
	if err != nil {
		return nil, err
	}

	cache, err := a.caches.Open(cfg.Config().Cache)
	if err != nil {
		return nil, err
	}

	a.session = &Session{
		Config:     cfg,
		Cache:      cache,
		Resolver:   resolver.NewResolver(cfg, a.client, cache, a.logger, a.tracer),
		Discoverer: discovery.NewDiscoverer(cfg, a.client, a.logger, a.tracer),
	}
	return a.session, nil
}

// Resolve returns the content of the identified file.
func (a *App) Resolve(ctx context.Context, identifier string) (string, error) {
	s, err := a.Session()
	if err != nil {
		return "", err
	}
	return s.Resolver.Resolve(ctx, identifier)
}

// Exists reports whether the identified file exists. Only configuration failures are errors.
func (a *App) Exists(ctx context.Context, identifier string) (bool, error) {
	s, err := a.Session()
	if err != nil {
		return false, err
	}
	return s.Resolver.Exists(ctx, identifier), nil
}

// Metadata returns the merged metadata of the identified file.
func (a *App) Metadata(ctx context.Context, identifier string) (domain.FileMetadata, error) {
	s, err := a.Session()
	if err != nil {
		return domain.FileMetadata{}, err
	}
	return s.Resolver.Metadata(ctx, identifier)
}

// Discover returns the resource registry. Refresh forces a new scan and reports its failure.
func (a *App) Discover(ctx context.Context, refresh bool) (*domain.Registry, error) {
	s, err := a.Session()
	if err != nil {
		return nil, err
	}
	if refresh {
		return s.Discoverer.Refresh(ctx)
	}
	return s.Discoverer.Registry(ctx), nil
}

// CacheStats reports the content cache statistics.
func (a *App) CacheStats() (domain.CacheStats, error) {
	s, err := a.Session()
	if err != nil {
		return domain.CacheStats{}, err
	}
	return s.Resolver.Stats(), nil
}

// ClearOptions selects what ClearCache removes.
type ClearOptions struct {
	// RepoKey restricts the clear to one owner/repo. Empty clears everything.
	RepoKey string
	// Branch further restricts a repository clear.
	Branch string
}

// ClearCache removes cached entries and returns how many were removed.
func (a *App) ClearCache(opts ClearOptions) (int, error) {
	s, err := a.Session()
	if err != nil {
		return 0, err
	}

	if opts.RepoKey != "" {
		n, err := s.Resolver.ClearRepositoryCache(opts.RepoKey, opts.Branch)
		if err != nil {
			return 0, err
		}
		a.logger.Info("cleared repository cache", "repo", opts.RepoKey, "branch", opts.Branch, "removed", n)
		return n, nil
	}

	n := s.Resolver.Stats().DiskCache.Size
	if err := s.Resolver.ClearCache(); err != nil {
		return 0, err
	}
	a.logger.Info("cleared cache", "removed", n)
	return n, nil
}

// RefreshCache drops the cached entry of identifier.
func (a *App) RefreshCache(identifier string) error {
	s, err := a.Session()
	if err != nil {
		return err
	}
	return s.Resolver.RefreshCache(identifier)
}

// PruneCache removes expired and unreadable cache entries.
func (a *App) PruneCache() (int, error) {
	s, err := a.Session()
	if err != nil {
		return 0, err
	}
	n, err := s.Resolver.Prune()
	if err != nil {
		return 0, err
	}
	a.logger.Info("pruned cache", "removed", n)
	return n, nil
}

// Close flushes pending spans.
func (a *App) Close(ctx context.Context) error {
	if sd, ok := a.tracer.(shutdowner); ok {
		return sd.Shutdown(ctx)
	}
	return nil
}
