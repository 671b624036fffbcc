package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gitres/internal/adapters/config"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	l := config.NewLoader(log)
	l.UserConfigPath = ""
	return l
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("ACME_TOKEN", "secret")
	t.Setenv(domain.TokenEnvVar, "fallback")

	dir := t.TempDir()
	path := writeConfig(t, dir, `
cache:
  dir: .cache/gitres
  ttlSeconds: 60
  maxSize: 10
discovery:
  maxDepth: 3
  extensions: ["md", ".MARKDOWN"]
repositories:
  - owner: acme
    name: prompts
    branch: develop
    rootPath: /resources/
    priority: 10
    token: ${ACME_TOKEN}
    cacheTtlSeconds: 5
  - owner: acme
    name: extras
    enabled: false
`)

	provider, err := newLoader(t).Load(path, "")
	require.NoError(t, err)

	cfg := provider.Config()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, ".cache", "gitres"), cfg.Cache.Dir)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 10, cfg.Cache.MaxSize)
	assert.Equal(t, 3, cfg.Discovery.MaxDepth)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Discovery.Extensions)
	assert.Equal(t, domain.DefaultDiscoveryConcurrency, cfg.Discovery.Concurrency)

	repo, ok := provider.RepositoryConfig("acme/prompts")
	require.True(t, ok)
	assert.Equal(t, "develop", repo.Branch)
	assert.Equal(t, "resources", repo.RootPath)
	assert.Equal(t, "secret", repo.Token)
	assert.Equal(t, 5*time.Second, repo.CacheTTL)

	extras, ok := provider.RepositoryConfig("acme/extras")
	require.True(t, ok)
	assert.False(t, extras.Enabled)
	assert.Equal(t, "fallback", extras.Token)

	enabled := provider.EnabledRepositories()
	require.Len(t, enabled, 1)
	assert.Equal(t, "acme/prompts", enabled[0].Key())
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "repositories: []\n")

	provider, err := newLoader(t).Load(path, "")
	require.NoError(t, err)

	cfg := provider.Config()
	assert.Equal(t, domain.DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, domain.DefaultCacheMaxSize, cfg.Cache.MaxSize)
	assert.Equal(t, domain.DefaultMaxDepth, cfg.Discovery.MaxDepth)
	assert.Equal(t, domain.DefaultExtensions(), cfg.Discovery.Extensions)
	assert.Equal(t, domain.DefaultCachePath(), cfg.Cache.Dir)
}

func TestLoad_DiscoversFromParent(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
repositories:
  - owner: acme
    name: prompts
`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	provider, err := newLoader(t).Load("", nested)
	require.NoError(t, err)

	_, ok := provider.RepositoryConfig("acme/prompts")
	assert.True(t, ok)
}

func TestLoad_UserConfigFallback(t *testing.T) {
	userDir := t.TempDir()
	userPath := writeConfig(t, userDir, `
repositories:
  - owner: me
    name: notes
`)

	l := newLoader(t)
	l.UserConfigPath = userPath

	provider, err := l.Load("", t.TempDir())
	require.NoError(t, err)

	_, ok := provider.RepositoryConfig("me/notes")
	assert.True(t, ok)
}

func TestLoad_NothingFoundUsesDefaults(t *testing.T) {
	provider, err := newLoader(t).Load("", t.TempDir())
	require.NoError(t, err)

	assert.True(t, provider.Config().Enabled)
	assert.Empty(t, provider.EnabledRepositories())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "repositories: [",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "missing owner",
			content: "repositories:\n  - name: prompts\n",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name:    "missing name",
			content: "repositories:\n  - owner: acme\n",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name:    "slash in name",
			content: "repositories:\n  - owner: acme\n    name: a/b\n",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name:    "negative ttl",
			content: "cache:\n  ttlSeconds: -1\n",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name: "duplicate repository",
			content: `
repositories:
  - owner: acme
    name: prompts
  - owner: acme
    name: prompts
    branch: other
`,
			wantErr: domain.ErrDuplicateRepository,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			_, err := newLoader(t).Load(path, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	_, err := newLoader(t).Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
}
