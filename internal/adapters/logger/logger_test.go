package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gitres/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(lg *logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(lg *logger.Logger) { lg.Info("some message") },
			goldenName: "info_basic",
		},
		{
			name:       "info with attributes",
			log:        func(lg *logger.Logger) { lg.Info("cache miss", "repo", "acme/prompts", "branch", "main") },
			goldenName: "info_attrs",
		},
		{
			name:       "warn",
			log:        func(lg *logger.Logger) { lg.Warn("serving stale cache entry", "path", "r/r.role.md") },
			goldenName: "warn_attrs",
		},
		{
			name:       "debug filtered by default",
			log:        func(lg *logger.Logger) { lg.Debug("hidden") },
			goldenName: "debug_filtered",
		},
		{
			name: "debug when verbose",
			log: func(lg *logger.Logger) {
				lg.SetVerbose(true)
				lg.Debug("listing", "depth", 2)
			},
			goldenName: "debug_verbose",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_ZerrChain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(
		zerr.Wrap(
			zerr.Wrap(errors.New("connection refused"), "failed to fetch file"),
			"resolve failed",
		),
		"repo", "acme/prompts",
	)
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "error_chain", buf.Bytes())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Warn("degraded", "repo", "acme/prompts")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "degraded", record["msg"])
	assert.Equal(t, "acme/prompts", record["repo"])
}

func TestCollectErrorEntries(t *testing.T) {
	t.Parallel()

	base := zerr.With(zerr.Wrap(errors.New("boom"), "outer"), "path", "a.md")
	messages, attrs := logger.CollectErrorEntries(base)

	assert.Equal(t, []string{"outer", "boom"}, messages)
	assert.Equal(t, []any{"path", "a.md"}, attrs)
}

func TestFormatErrorEntries(t *testing.T) {
	t.Parallel()

	got := logger.FormatErrorEntries([]string{"top", "middle\ndetail", "root"})
	want := "Error: top\n\n  Caused by:\n    → middle\n      detail\n    → root"
	assert.Equal(t, want, got)
}

func TestPrettyHandler_GroupsAndQuoting(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	log := slog.New(logger.NewPrettyHandler(buf, nil))

	log.With("repo", "acme/prompts").
		WithGroup("cache").
		With("branch", "main").
		Info("evicted", "reason", "size limit", slog.Group("entry", "path", "a.md", "bytes", 12))

	want := `evicted repo=acme/prompts cache.branch=main cache.reason="size limit" ` +
		"cache.entry.path=a.md cache.entry.bytes=12\n"
	assert.Equal(t, want, buf.String())
}

func TestPrettyHandler_SharedPrefix(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	base := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("repo", "acme/prompts")

	base.Debug("one", "path", "a.md")
	base.Warn("two")

	assert.Equal(t, "· one repo=acme/prompts path=a.md\n! two repo=acme/prompts\n", buf.String())
}
