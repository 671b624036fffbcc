// Package config provides the configuration loader for gitres.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem

	// UserConfigPath is consulted when no project file is found. Empty disables it.
	UserConfigPath string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:         logger,
		FS:             NewOSFS(),
		UserConfigPath: domain.DefaultUserConfigPath(),
	}
}

// Load reads the configuration at path, or discovers it from cwd when path is empty.
// Discovery that finds nothing yields the default configuration without repositories.
func (l *Loader) Load(path, cwd string) (ports.ConfigProvider, error) {
	if path == "" {
		found, ok := l.findConfiguration(cwd)
		if !ok {
			l.Logger.Debug("no configuration found, using defaults", "cwd", cwd)
			cfg, err := build(&File{}, cwd)
			if err != nil {
				return nil, err
			}
			return NewProvider(cfg), nil
		}
		path = found
	} else if _, err := l.FS.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "configuration file does not exist"), "path", path)
		}
		err = zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to load configuration")
		return nil, zerr.With(err, "path", path)
	}

	l.Logger.Debug("loading configuration", "path", path)

	var file File
	if err := l.readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg, err := build(&file, filepath.Dir(path))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return NewProvider(cfg), nil
}

// findConfiguration walks up from cwd looking for gitres.yaml, then falls back to the user config file.
func (l *Loader) findConfiguration(cwd string) (string, bool) {
	if cwd != "" {
		currentDir := cwd
		for {
			candidate := filepath.Join(currentDir, domain.ConfigFileName)
			if _, err := l.FS.Stat(candidate); err == nil {
				return candidate, true
			}

			parentDir := filepath.Dir(currentDir)
			if parentDir == currentDir {
				// Reached root
				break
			}
			currentDir = parentDir
		}
	}

	if l.UserConfigPath != "" {
		if _, err := l.FS.Stat(l.UserConfigPath); err == nil {
			return l.UserConfigPath, true
		}
	}

	return "", false
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *File) error {
	data, err := l.FS.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(errors.Join(domain.ErrConfigReadFailed, err), "failed to load configuration")
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(errors.Join(domain.ErrConfigParseFailed, parseErr), "failed to load configuration")
	}

	return nil
}

// build applies defaults, expands tokens and validates the file.
// Relative cache directories are resolved against baseDir.
func build(file *File, baseDir string) (*domain.Config, error) {
	cfg := &domain.Config{
		Enabled: boolOr(file.Enabled, true),
		Cache: domain.CacheConfig{
			Enabled: boolOr(file.Cache.Enabled, true),
			Dir:     resolveDir(baseDir, file.Cache.Dir),
			TTL:     seconds(file.Cache.TTLSeconds, domain.DefaultCacheTTL),
			MaxSize: intOr(file.Cache.MaxSize, domain.DefaultCacheMaxSize),
		},
		Discovery: domain.DiscoveryConfig{
			Enabled:     boolOr(file.Discovery.Enabled, true),
			MaxDepth:    intOr(file.Discovery.MaxDepth, domain.DefaultMaxDepth),
			Extensions:  normalizeExtensions(file.Discovery.Extensions),
			Concurrency: intOr(file.Discovery.Concurrency, domain.DefaultDiscoveryConcurrency),
		},
	}

	if file.Cache.TTLSeconds < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "cache.ttlSeconds must not be negative"),
			"ttlSeconds", file.Cache.TTLSeconds)
	}

	defaultToken := os.Getenv(domain.TokenEnvVar)
	seen := make(map[string]int, len(file.Repositories))

	for i, dto := range file.Repositories {
		repo, err := buildRepository(dto, defaultToken)
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}

		if first, dup := seen[repo.Key()]; dup {
			err := zerr.With(zerr.Wrap(domain.ErrDuplicateRepository, "repository defined twice"), "repo", repo.Key())
			err = zerr.With(err, "first_occurrence", first)
			return nil, zerr.With(err, "duplicate_at", i)
		}
		seen[repo.Key()] = i

		cfg.Repositories = append(cfg.Repositories, repo)
	}

	return cfg, nil
}

func buildRepository(dto RepositoryDTO, defaultToken string) (domain.RepositoryConfig, error) {
	owner := strings.TrimSpace(dto.Owner)
	name := strings.TrimSpace(dto.Name)

	switch {
	case owner == "":
		return domain.RepositoryConfig{}, zerr.Wrap(domain.ErrInvalidConfig, "repository owner is required")
	case name == "":
		return domain.RepositoryConfig{}, zerr.With(
			zerr.Wrap(domain.ErrInvalidConfig, "repository name is required"), "owner", owner)
	case strings.ContainsAny(owner+name, "/@"):
		return domain.RepositoryConfig{}, zerr.With(
			zerr.Wrap(domain.ErrInvalidConfig, "repository owner and name must not contain '/' or '@'"),
			"repo", domain.RepoKey(owner, name))
	case dto.CacheTTLSeconds < 0:
		return domain.RepositoryConfig{}, zerr.With(
			zerr.Wrap(domain.ErrInvalidConfig, "cacheTtlSeconds must not be negative"),
			"repo", domain.RepoKey(owner, name))
	}

	token := os.ExpandEnv(dto.Token)
	if token == "" {
		token = defaultToken
	}

	return domain.RepositoryConfig{
		Owner:    owner,
		Name:     name,
		Branch:   strings.TrimSpace(dto.Branch),
		RootPath: strings.Trim(dto.RootPath, "/"),
		Priority: dto.Priority,
		Enabled:  boolOr(dto.Enabled, true),
		Token:    token,
		CacheTTL: time.Duration(dto.CacheTTLSeconds) * time.Second,
	}, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func seconds(v int, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return time.Duration(v) * time.Second
}

func resolveDir(baseDir, dir string) string {
	dir = os.ExpandEnv(dir)
	switch {
	case dir == "":
		return domain.DefaultCachePath()
	case filepath.IsAbs(dir):
		return filepath.Clean(dir)
	default:
		return filepath.Clean(filepath.Join(baseDir, dir))
	}
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return domain.DefaultExtensions()
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
