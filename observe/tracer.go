package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// TemplateMeta describes one render for telemetry purposes.
type TemplateMeta struct {
	Logical  string // logical name, e.g. "posts/show"
	Path     string // resolved physical path
	Layout   string // layout logical name, empty when none
	MIMEType string // Content-Type written to the response
	ViewID   string // per-request view identifier
}

// SpanName returns the deterministic span name: view.render.<logical>.
func (m TemplateMeta) SpanName() string {
	return "view.render." + m.Logical
}

func (m TemplateMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("template.logical", m.Logical),
		attribute.String("template.path", m.Path),
	}
	if m.Layout != "" {
		attrs = append(attrs, attribute.String("template.layout", m.Layout))
	}
	if m.MIMEType != "" {
		attrs = append(attrs, attribute.String("template.mime_type", m.MIMEType))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with render span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts the render span for meta.
	StartSpan(ctx context.Context, meta TemplateMeta) (context.Context, trace.Span)

	// EndSpan refreshes the template attributes from meta, records err,
	// and ends the span.
	EndSpan(span trace.Span, meta TemplateMeta, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts an internal span carrying the template attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta TemplateMeta) (context.Context, trace.Span) {
	attrs := append(meta.attributes(), attribute.Bool("template.error", false))
	if meta.ViewID != "" {
		attrs = append(attrs, attribute.String("view.id", meta.ViewID))
	}

	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpan ends the span and records the error status if present. Fields
// learned during the render, such as a layout set by the template, are
// added here.
func (t *tracerImpl) EndSpan(span trace.Span, meta TemplateMeta, err error) {
	span.SetAttributes(meta.attributes()...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("template.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta TemplateMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ TemplateMeta, _ error) {
	span.End()
}
