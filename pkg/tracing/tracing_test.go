package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.False(t, config.Enabled)
	assert.Equal(t, "permproof", config.ServiceName)
	assert.Equal(t, "localhost:4317", config.Endpoint)
	assert.Equal(t, 1.0, config.SamplingRatio)
}

func TestNewProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, provider)
	require.NotNil(t, provider.Tracer())

	spanCtx, span := provider.StartSpan(ctx, "test-span")
	assert.NotNil(t, spanCtx)
	span.End()

	assert.NoError(t, provider.Shutdown(ctx))
}

func TestRecordError_NoSpanInContext(t *testing.T) {
	// Must not panic without an active span
	RecordError(context.Background(), errors.New("boom"))
}

func TestSetAttributes_NoSpanInContext(t *testing.T) {
	SetAttributes(context.Background(), attribute.String("k", "v"))
}

func TestProvider_SpanLifecycle(t *testing.T) {
	ctx := context.Background()
	provider, err := NewProvider(ctx, DefaultConfig())
	require.NoError(t, err)
	defer provider.Shutdown(ctx)

	spanCtx, span := provider.StartSpan(ctx, "permissions.Check")
	RecordError(spanCtx, errors.New("simulated"))
	SetAttributes(spanCtx, attribute.Int("rules", 3))
	span.End()
}
