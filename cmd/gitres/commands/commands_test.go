package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gitres/cmd/gitres/commands"
	"go.trai.ch/gitres/internal/app"
	"go.trai.ch/gitres/internal/build"
	"go.trai.ch/gitres/internal/core/domain"
)

type mockApp struct {
	settings  app.Settings
	resolved  []string
	refreshed bool
	cleared   *app.ClearOptions

	resolveErr error
	exists     bool
	meta       domain.FileMetadata
	registry   *domain.Registry
	stats      domain.CacheStats
}

func (m *mockApp) Configure(s app.Settings) { m.settings = s }

func (m *mockApp) Resolve(_ context.Context, identifier string) (string, error) {
	m.resolved = append(m.resolved, identifier)
	if m.resolveErr != nil {
		return "", m.resolveErr
	}
	return "# content\n", nil
}

func (m *mockApp) Exists(_ context.Context, _ string) (bool, error) { return m.exists, nil }

func (m *mockApp) Metadata(_ context.Context, _ string) (domain.FileMetadata, error) {
	return m.meta, nil
}

func (m *mockApp) Discover(_ context.Context, refresh bool) (*domain.Registry, error) {
	m.refreshed = refresh
	return m.registry, nil
}

func (m *mockApp) CacheStats() (domain.CacheStats, error) { return m.stats, nil }

func (m *mockApp) ClearCache(opts app.ClearOptions) (int, error) {
	m.cleared = &opts
	return 2, nil
}

func (m *mockApp) RefreshCache(identifier string) error {
	m.resolved = append(m.resolved, identifier)
	return nil
}

func (m *mockApp) PruneCache() (int, error) { return 1, nil }

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()

	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_GlobalFlags(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "-c", "/tmp/gitres.yaml", "--json-logs", "--verbose", "exists", "acme/prompts/a.md")
	require.NoError(t, err)

	assert.Equal(t, app.Settings{ConfigPath: "/tmp/gitres.yaml", JSONLogs: true, Verbose: true}, m.settings)
}

func TestCommands_Resolve(t *testing.T) {
	t.Run("prints content verbatim", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "resolve", "acme/prompts@dev/a.md")
		require.NoError(t, err)
		assert.Equal(t, "# content\n", out)
		assert.Equal(t, []string{"acme/prompts@dev/a.md"}, m.resolved)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		m := &mockApp{resolveErr: domain.ErrRemoteNotFound}
		_, err := execute(t, m, "resolve", "acme/prompts/missing.md")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrRemoteNotFound))
	})

	t.Run("requires an identifier", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "resolve")
		assert.Error(t, err)
	})
}

func TestCommands_Exists(t *testing.T) {
	out, err := execute(t, &mockApp{exists: true}, "exists", "acme/prompts/a.md")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = execute(t, &mockApp{}, "exists", "acme/prompts/a.md")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestCommands_Meta(t *testing.T) {
	m := &mockApp{meta: domain.FileMetadata{SHA: "blob", Size: 9, CommitSHA: "c1"}}
	out, err := execute(t, m, "meta", "acme/prompts/a.md")
	require.NoError(t, err)

	var got domain.FileMetadata
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, m.meta, got)
}

func TestCommands_Discover(t *testing.T) {
	registry := domain.NewRegistry()
	registry.Resources = append(registry.Resources, domain.ResourceDescriptor{
		ID: "writer", Kind: domain.KindRole, RoleID: "writer", SourceRepoKey: "acme/prompts",
		Branch: "main", Reference: "acme/prompts@main/writer/writer.role.md",
	})

	m := &mockApp{registry: registry}
	out, err := execute(t, m, "discover", "--refresh")
	require.NoError(t, err)
	assert.True(t, m.refreshed)
	assert.Contains(t, out, `"source": "remote"`)
	assert.Contains(t, out, `"kind": "role"`)

	_, err = execute(t, m, "discover")
	require.NoError(t, err)
	assert.False(t, m.refreshed)
}

func TestCommands_DiscoverOne(t *testing.T) {
	registry := domain.NewRegistry()
	registry.Resources = append(registry.Resources,
		domain.ResourceDescriptor{ID: "writer", Kind: domain.KindRole, RoleID: "writer"},
		domain.ResourceDescriptor{ID: "writer", Kind: domain.KindThought, RoleID: "writer"},
	)
	m := &mockApp{registry: registry}

	t.Run("prints the matching descriptor", func(t *testing.T) {
		out, err := execute(t, m, "discover", "thought", "writer")
		require.NoError(t, err)

		var got domain.ResourceDescriptor
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, domain.KindThought, got.Kind)
		assert.Equal(t, "writer", got.ID)
	})

	t.Run("missing resource", func(t *testing.T) {
		_, err := execute(t, m, "discover", "knowledge", "writer")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrResourceNotFound))
	})

	t.Run("rejects non-resource kinds", func(t *testing.T) {
		_, err := execute(t, m, "discover", "generic", "writer")
		assert.Error(t, err)
	})

	t.Run("rejects a lone kind", func(t *testing.T) {
		_, err := execute(t, m, "discover", "role")
		assert.Error(t, err)
	})
}

func TestCommands_Cache(t *testing.T) {
	t.Run("stats prints json when not a terminal", func(t *testing.T) {
		m := &mockApp{stats: domain.CacheStats{Enabled: true, DiskCache: domain.DiskCacheStats{Size: 1}}}
		out, err := execute(t, m, "cache", "stats")
		require.NoError(t, err)

		var got domain.CacheStats
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 1, got.DiskCache.Size)
	})

	t.Run("clear everything", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "cache", "clear")
		require.NoError(t, err)
		assert.Equal(t, "removed 2 entries\n", out)
		assert.Equal(t, &app.ClearOptions{}, m.cleared)
	})

	t.Run("clear one branch of a repository", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "cache", "clear", "acme/prompts", "--branch", "dev")
		require.NoError(t, err)
		assert.Equal(t, &app.ClearOptions{RepoKey: "acme/prompts", Branch: "dev"}, m.cleared)
	})

	t.Run("branch without repository", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "cache", "clear", "--branch", "dev")
		require.Error(t, err)
		assert.Nil(t, m.cleared)
	})

	t.Run("refresh", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "cache", "refresh", "acme/prompts/a.md")
		require.NoError(t, err)
		assert.Equal(t, []string{"acme/prompts/a.md"}, m.resolved)
	})

	t.Run("prune", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "cache", "prune")
		require.NoError(t, err)
		assert.Equal(t, "pruned 1 entries\n", out)
	})
}

func TestRenderStats(t *testing.T) {
	stats := domain.CacheStats{
		Enabled:     true,
		MemoryCache: domain.MemoryCacheStats{Size: 1},
		DiskCache: domain.DiskCacheStats{
			Size:       2,
			TotalBytes: 2048,
			Items: []domain.CacheItemStats{
				{
					Key:       "acme/prompts@main/writer/writer.role.md",
					Size:      1536,
					WriteTime: time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
				},
				{
					Key:       "acme/prompts@dev/a.md",
					Size:      512,
					WriteTime: time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC),
				},
			},
		},
	}

	buf := new(bytes.Buffer)
	r := lipgloss.NewRenderer(buf)
	r.SetColorProfile(termenv.Ascii)

	require.NoError(t, commands.RenderStats(buf, r, stats))

	g := goldie.New(t)
	g.Assert(t, "stats", buf.Bytes())
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}

func TestCommands_VersionShorthand(t *testing.T) {
	for _, args := range [][]string{{"-v"}, {"--version"}} {
		out, err := execute(t, &mockApp{}, args...)
		require.NoError(t, err)
		assert.Contains(t, out, "gitres version "+build.Version)
	}
}
