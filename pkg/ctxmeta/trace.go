package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceFromContext — trace_id/span_id активного спана для логов.
// Без трейсинга (no-op провайдер) спан невалиден и возвращается ok=false.
func TraceFromContext(ctx context.Context) (traceID, spanID string, ok bool) {
	if ctx == nil {
		return "", "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
