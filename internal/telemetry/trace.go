package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartCommandSpan creates a span for a CLI command execution.
//
// Usage:
//
//	ctx, span := telemetry.StartCommandSpan(ctx, "generate")
//	defer span.End()
func StartCommandSpan(ctx context.Context, cmdName string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("commands")
	ctx, span := tracer.Start(ctx, "command."+cmdName)

	span.SetAttributes(
		attribute.String("command", cmdName),
		attribute.String("component", "cli"),
	)

	return ctx, span
}

// StartOperationSpan creates a span for a backlog operation such as
// generation or an item edit.
func StartOperationSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("workflow")
	ctx, span := tracer.Start(ctx, "workflow."+operation)

	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.String("component", "workflow"),
	)

	return ctx, span
}

// RecordSuccess marks a span as successful and attaches attrs.
func RecordSuccess(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
}

// RecordError records an error in a span and sets error status.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(
		attribute.Bool("error", true),
	)
}

// RecordCounts records backlog sizes as span attributes.
func RecordCounts(span trace.Span, stories, tasks, risks int) {
	span.SetAttributes(
		attribute.Int("backlog.stories", stories),
		attribute.Int("backlog.tasks", tasks),
		attribute.Int("backlog.risks", risks),
	)
}
