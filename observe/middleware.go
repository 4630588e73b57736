package observe

import (
	"context"
	"time"
)

// RenderFunc renders the template described by meta and returns the body.
// It may fill in fields that are only known once rendering ran, such as a
// layout chosen by the template itself.
type RenderFunc func(ctx context.Context, meta *TemplateMeta) (string, error)

// Middleware wraps renders with tracing, metrics, and logging.
//
// Contract:
//   - Concurrency: Wrap returns a RenderFunc safe for concurrent use.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
//   - Ownership: the rendered body is passed through unmodified.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware. Nil components are replaced by no-ops.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	if tracer == nil {
		tracer = newNoopTracer()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap instruments fn.
func (m *Middleware) Wrap(fn RenderFunc) RenderFunc {
	return func(ctx context.Context, meta *TemplateMeta) (string, error) {
		if meta == nil {
			meta = &TemplateMeta{}
		}
		ctx, span := m.tracer.StartSpan(ctx, *meta)
		start := time.Now()

		body, err := fn(ctx, meta)

		duration := time.Since(start)
		m.tracer.EndSpan(span, *meta, err)
		m.metrics.RecordRender(ctx, *meta, duration, err)

		log := m.logger.WithTemplate(*meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
		}
		if meta.ViewID != "" {
			fields = append(fields, Field{Key: "view.id", Value: meta.ViewID})
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			log.Error(ctx, "render failed", fields...)
		} else {
			fields = append(fields, Field{Key: "bytes", Value: len(body)})
			log.Info(ctx, "render completed", fields...)
		}

		return body, err
	}
}

// MiddlewareFromObserver builds a Middleware from an Observer's tracer,
// meter, and logger.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(newTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
