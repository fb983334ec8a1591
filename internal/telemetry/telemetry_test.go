package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetupDisabled(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), "evreg", "")
	require.NoError(t, err)
	require.NotNil(t, tp)
	require.NoError(t, shutdown(context.Background()))

	_, span := tp.Tracer("test").Start(context.Background(), "x")
	defer span.End()
	require.False(t, span.SpanContext().IsValid())
}

func TestSetupEnabled(t *testing.T) {
	// the exporter connects lazily, so no collector is needed here
	tp, shutdown, err := Setup(context.Background(), "evreg", "http://127.0.0.1:4318")
	require.NoError(t, err)
	require.IsType(t, &sdktrace.TracerProvider{}, tp)

	_, span := tp.Tracer("test").Start(context.Background(), "x")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
