// Package observe instruments template rendering with OpenTelemetry traces,
// metrics, and structured JSON logs.
//
// It performs no rendering itself. The view package wraps each Render in a
// Middleware, and cache stores report their counters through
// RegisterCacheStats.
package observe
