package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/gitres/internal/adapters/telemetry"
	"go.trai.ch/gitres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer("test", recorder)
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })

	_, span := tracer.Start(context.Background(), "resolve")
	span.SetAttribute("repo", "acme/prompts")
	span.SetAttribute("size", 42)
	span.SetAttribute("hit", true)
	span.SetAttribute("other", struct{ X int }{1})
	span.RecordError(errors.New("boom"))
	span.RecordError(nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	s := ended[0]
	assert.Equal(t, "resolve", s.Name())
	assert.Equal(t, codes.Error, s.Status().Code)
	assert.Equal(t, "boom", s.Status().Description)
	assert.Contains(t, s.Attributes(), attribute.String("repo", "acme/prompts"))
	assert.Contains(t, s.Attributes(), attribute.Int("size", 42))
	assert.Contains(t, s.Attributes(), attribute.Bool("hit", true))
	assert.Contains(t, s.Attributes(), attribute.String("other", "{1}"))
}

func TestLogBridge_OnEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug("span finished", gomock.Any()).Times(1)

	tracer := telemetry.NewOTelTracer("test", telemetry.NewLogBridge(log))

	_, span := tracer.Start(context.Background(), "discover")
	span.SetAttribute("repo", "acme/prompts")
	span.End()
}

func TestLogBridge_NilLogger(t *testing.T) {
	tracer := telemetry.NewOTelTracer("test", telemetry.NewLogBridge(nil))

	_, span := tracer.Start(context.Background(), "noop")
	span.End()
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "anything")
	assert.Equal(t, ctx, got)

	span.SetAttribute("k", "v")
	span.RecordError(errors.New("ignored"))
	span.End()
}
