package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func contextWithValidSpan(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestFromContext(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		logger := zap.NewExample()
		assert.Same(t, logger, FromContext(WithContext(context.Background(), logger)))
	})

	t.Run("falls back to nop", func(t *testing.T) {
		got := FromContext(context.Background())
		require.NotNil(t, got)
		assert.NotPanics(t, func() { got.Info("ignored") })
	})
}

func TestRequestIDAndActor(t *testing.T) {
	ctx := WithActor(WithRequestID(context.Background(), "req-1"), "alice")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "alice", GetActor(ctx))

	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetActor(context.Background()))
}

func TestGetTraceID(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	_, span := noop.NewTracerProvider().Tracer("test").Start(context.Background(), "noop")
	defer span.End()
	assert.Empty(t, GetTraceID(trace.ContextWithSpan(context.Background(), span)), "noop spans are invalid")

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", GetTraceID(contextWithValidSpan(t)))
}

func TestL_EnrichesWithCorrelationFields(t *testing.T) {
	base, logs := newObservedLogger()

	ctx := contextWithValidSpan(t)
	ctx = WithRequestID(ctx, "req-42")
	ctx = WithActor(ctx, "operator-7")
	ctx = WithContext(ctx, base)

	L(ctx).Info("materials issued", zap.String("order_id", "o-1"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "operator-7", fields["actor"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	assert.Equal(t, "o-1", fields["order_id"])
}

func TestEnrich_NoFieldsReturnsSameLogger(t *testing.T) {
	base, _ := newObservedLogger()
	assert.Same(t, base, Enrich(context.Background(), base))
	assert.NotNil(t, Enrich(context.Background(), nil))
}
