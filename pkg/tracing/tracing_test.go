package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/opentracing/opentracing-go"
	"github.com/stretchr/testify/require"
)

func TestInitTracerDisabled(t *testing.T) {
	tracer, closeFn, err := InitTracer(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, opentracing.NoopTracer{}, tracer)
	require.NotPanics(t, closeFn)

	span, ctx := StartSpan(context.Background(), "cycle", map[string]any{"symbol": "BTCUSDT"})
	require.NotNil(t, span)
	require.NotNil(t, opentracing.SpanFromContext(ctx))
	require.NotPanics(t, func() { Finish(span, errors.New("boom")) })
}
