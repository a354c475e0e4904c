// pkg/zapbackend/fields.go
package zapbackend

import (
	"context"

	"github.com/on-site/logtree/pkg/mdc"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ContextFields extracts correlation data from context: the diagnostic
// context entries in key order, then OpenTelemetry span identifiers.
func ContextFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}

	var fields []zap.Field
	if m := mdc.FromContext(ctx); m != nil {
		fields = make([]zap.Field, 0, m.Len()+3)
		m.Range(func(k, v string) {
			fields = append(fields, zap.String(k, v))
		})
	}

	// Trace correlation (from OpenTelemetry)
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		sc := span.SpanContext()
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
		if sc.IsSampled() {
			fields = append(fields, zap.Bool("trace_sampled", true))
		}
	}

	return fields
}
