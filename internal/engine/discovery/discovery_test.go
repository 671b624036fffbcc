package discovery_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gitres/internal/core/domain"
	"go.trai.ch/gitres/internal/core/ports"
	"go.trai.ch/gitres/internal/core/ports/mocks"
	"go.trai.ch/gitres/internal/engine/discovery"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var scannedAt = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

var enabledConfig = &domain.Config{
	Enabled: true,
	Discovery: domain.DiscoveryConfig{
		Enabled:     true,
		MaxDepth:    5,
		Extensions:  []string{".md"},
		Concurrency: 2,
	},
}

type fixture struct {
	config *mocks.MockConfigProvider
	client *mocks.MockRepositoryClient
	logger *mocks.MockLogger
	d      *discovery.Discoverer
}

func newFixture(t *testing.T, cfg *domain.Config, repos ...domain.RepositoryConfig) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		config: mocks.NewMockConfigProvider(ctrl),
		client: mocks.NewMockRepositoryClient(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	f.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	f.config.EXPECT().Config().Return(cfg).AnyTimes()
	f.config.EXPECT().EnabledRepositories().Return(repos).AnyTimes()

	f.d = discovery.NewDiscoverer(f.config, f.client, f.logger, tracer)
	f.d.SetClock(func() time.Time { return scannedAt })
	return f
}

func repoConfig(name string, priority int) domain.RepositoryConfig {
	return domain.RepositoryConfig{
		Owner: "acme", Name: name, Branch: "main", RootPath: "resources", Priority: priority, Enabled: true,
	}
}

func listing(paths ...string) []domain.FileEntry {
	files := make([]domain.FileEntry, 0, len(paths))
	for _, p := range paths {
		files = append(files, domain.FileEntry{Path: p, SHA: "sha-" + p, Size: len(p)})
	}
	return files
}

func TestDiscover_Disabled(t *testing.T) {
	t.Parallel()

	cfg := *enabledConfig
	cfg.Discovery.Enabled = false
	f := newFixture(t, &cfg, repoConfig("prompts", 1))

	registry, err := f.d.Discover(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrySourceRemote, registry.Source)
	assert.Empty(t, registry.Resources)
}

func TestDiscover_NoRepositories(t *testing.T) {
	t.Parallel()
	f := newFixture(t, enabledConfig)

	registry, err := f.d.Discover(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, registry.Resources)
	assert.Empty(t, registry.Resources)
}

func TestDiscover_GroupsRoleResources(t *testing.T) {
	t.Parallel()

	repo := repoConfig("prompts", 7)
	f := newFixture(t, enabledConfig, repo)

	f.client.EXPECT().
		ListFilesRecursive(gomock.Any(), repo, "main", "resources",
			ports.ListOptions{MaxDepth: 5, Extensions: []string{".md"}}).
		Return(listing(
			"resources/r/r.role.md",
			"resources/r/thought/r.thought.md",
			"resources/r/execution/deploy.execution.md",
			"resources/r/notes.md",
		), nil)

	registry, err := f.d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, registry.Resources, 3)

	role, ok := registry.Find(domain.KindRole, "r")
	require.True(t, ok)
	assert.Equal(t, "acme/prompts@main/resources/r/r.role.md", role.Reference)
	assert.Equal(t, "acme/prompts", role.SourceRepoKey)
	assert.Equal(t, "r", role.RoleID)
	assert.Equal(t, 7, role.Metadata.RepositoryPriority)
	assert.Equal(t, scannedAt, role.Metadata.ScannedAt)
	assert.Equal(t, "resources/r/r.role.md", role.Metadata.Path)

	thought, ok := registry.Find(domain.KindThought, "r")
	require.True(t, ok)
	assert.Equal(t, "acme/prompts@main/resources/r/thought/r.thought.md", thought.Reference)
	assert.Equal(t, "r", thought.RoleID)

	execution, ok := registry.Find(domain.KindExecution, "deploy")
	require.True(t, ok)
	assert.Equal(t, "r", execution.RoleID)

	// References resolve back to the listed file.
	id, err := domain.ParseIdentifier(thought.Reference)
	require.NoError(t, err)
	assert.Equal(t, "resources/r/thought/r.thought.md", id.FilePath)
	assert.Equal(t, "main", id.Branch)
}

func TestDiscover_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	broken := repoConfig("broken", 9)
	healthy := repoConfig("healthy", 1)
	f := newFixture(t, enabledConfig, broken, healthy)

	f.client.EXPECT().ListFilesRecursive(gomock.Any(), broken, "main", "resources", gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrTransientNetwork, "timeout"))
	f.client.EXPECT().ListFilesRecursive(gomock.Any(), healthy, "main", "resources", gomock.Any()).
		Return(listing("resources/writer.role.md"), nil)
	f.logger.EXPECT().Warn("repository scan failed", gomock.Any()).Times(1)

	registry, err := f.d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, registry.Resources, 1)
	assert.Equal(t, "writer", registry.Resources[0].ID)
	assert.Equal(t, "acme/healthy", registry.Resources[0].SourceRepoKey)
}

func TestDiscover_PriorityCollision(t *testing.T) {
	t.Parallel()

	low := repoConfig("low", 1)
	high := repoConfig("high", 5)

	// Repositories listed low first so the higher priority result must replace in place.
	f := newFixture(t, enabledConfig, low, high)

	f.client.EXPECT().ListFilesRecursive(gomock.Any(), low, "main", "resources", gomock.Any()).
		Return(listing("resources/writer/writer.role.md", "resources/editor/editor.role.md"), nil)
	f.client.EXPECT().ListFilesRecursive(gomock.Any(), high, "main", "resources", gomock.Any()).
		Return(listing("resources/writer/writer.role.md"), nil)

	registry, err := f.d.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, registry.Resources, 2)

	writer, ok := registry.Find(domain.KindRole, "writer")
	require.True(t, ok)
	assert.Equal(t, "acme/high", writer.SourceRepoKey)
	assert.Equal(t, 5, writer.Metadata.RepositoryPriority)

	// The replacement keeps the position of the original entry.
	assert.Equal(t, "editor", registry.Resources[0].ID)
	assert.Equal(t, "writer", registry.Resources[1].ID)
}

func TestDiscover_GroupWithoutMainFileIsSkipped(t *testing.T) {
	t.Parallel()

	repo := repoConfig("prompts", 1)
	f := newFixture(t, enabledConfig, repo)

	f.client.EXPECT().ListFilesRecursive(gomock.Any(), repo, "main", "resources", gomock.Any()).
		Return(listing("resources/readme.txt"), nil)

	registry, err := f.d.Discover(context.Background())
	require.NoError(t, err)
	assert.Empty(t, registry.Resources)
}

func TestRegistry_MemoizesAndRefreshes(t *testing.T) {
	t.Parallel()

	repo := repoConfig("prompts", 1)
	f := newFixture(t, enabledConfig, repo)

	f.client.EXPECT().ListFilesRecursive(gomock.Any(), repo, "main", "resources", gomock.Any()).
		Return(listing("resources/a.role.md"), nil).Times(2)

	first := f.d.Registry(context.Background())
	second := f.d.Registry(context.Background())
	assert.Same(t, first, second)
	require.Len(t, first.Resources, 1)

	refreshed, err := f.d.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, refreshed)
	assert.Same(t, refreshed, f.d.Registry(context.Background()))
}

func TestRegistry_DegradesToEmpty(t *testing.T) {
	t.Parallel()

	repo := repoConfig("prompts", 1)
	f := newFixture(t, enabledConfig, repo)

	f.client.EXPECT().ListFilesRecursive(gomock.Any(), repo, "main", "resources", gomock.Any()).
		Return(nil, context.Canceled).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	f.logger.EXPECT().Error(gomock.Any()).Times(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	registry := f.d.Registry(ctx)
	require.NotNil(t, registry)
	assert.Empty(t, registry.Resources)
}
