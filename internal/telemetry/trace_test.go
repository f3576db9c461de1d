package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs a tracer provider backed by an in-memory exporter.
func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	res, err := createResource(DefaultConfig())
	require.NoError(t, err)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	providerMu.Lock()
	globalProvider = tp
	providerMu.Unlock()

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		providerMu.Lock()
		globalProvider = nil
		providerMu.Unlock()
	})
	return exporter
}

func attrMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestStartCommandSpan(t *testing.T) {
	exporter := setupTestTracer(t)

	ctx := context.Background()
	spanCtx, span := StartCommandSpan(ctx, "generate")
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, spanCtx, "span is carried in a derived context")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "command.generate", spans[0].Name)

	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, "generate", attrs["command"].AsString())
	assert.Equal(t, "cli", attrs["component"].AsString())
}

func TestStartOperationSpan_Nested(t *testing.T) {
	exporter := setupTestTracer(t)

	ctx, parent := StartCommandSpan(context.Background(), "item")
	_, child := StartOperationSpan(ctx, "move_item")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "workflow.move_item", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func TestRecordSuccessAndCounts(t *testing.T) {
	exporter := setupTestTracer(t)

	_, span := StartOperationSpan(context.Background(), "generate")
	RecordCounts(span, 5, 23, 5)
	RecordSuccess(span, attribute.String("template", "web"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, int64(5), attrs["backlog.stories"].AsInt64())
	assert.Equal(t, int64(23), attrs["backlog.tasks"].AsInt64())
	assert.Equal(t, "web", attrs["template"].AsString())
}

func TestRecordError(t *testing.T) {
	exporter := setupTestTracer(t)

	_, span := StartOperationSpan(context.Background(), "save")
	RecordError(span, nil)
	RecordError(span, errors.New("disk full"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "disk full", spans[0].Status.Description)
	assert.Len(t, spans[0].Events, 1, "only the non-nil error is recorded")
}
