package obs

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/manifestry/regmanifest/internal/tracing"
)

// TraceChannel is a Channel that records events as span events on the span
// active in the context it was built from. It never starts its own span —
// callers start a span around a unit of work (a Load call, a dependency
// lookup) and pass its context through options before constructing one.
type TraceChannel struct {
	span trace.Span
}

// NewTraceChannel returns a Channel that attaches events to the span found
// in ctx. If ctx carries no active span, events are recorded against the
// no-op span OpenTelemetry returns, which is safe but inert.
func NewTraceChannel(ctx context.Context) TraceChannel {
	return TraceChannel{span: trace.SpanFromContext(ctx)}
}

func (c TraceChannel) Info(msg string, fields ...any) {
	c.span.AddEvent(msg, trace.WithAttributes(toAttributes(fields)...))
}

func (c TraceChannel) Warning(msg string, err error, fields ...any) {
	attrs := toAttributes(fields)
	if err != nil {
		attrs = append(attrs, attribute.String(tracing.AttrErrorMessage, err.Error()))
	}
	c.span.AddEvent(msg, trace.WithAttributes(attrs...))
}

func (c TraceChannel) Error(msg string, err error, fields ...any) {
	attrs := toAttributes(fields)
	if err != nil {
		attrs = append(attrs, attribute.String(tracing.AttrErrorMessage, err.Error()))
		c.span.RecordError(err)
	}
	c.span.AddEvent(msg, trace.WithAttributes(attrs...))
	c.span.SetStatus(codes.Error, msg)
}

// toAttributes converts a key/value field list into OTel attributes,
// stringifying values. A dangling odd field is dropped rather than paired
// with a placeholder — span attributes have no "missing" convention.
func toAttributes(fields []any) []attribute.KeyValue {
	if len(fields) < 2 {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, attribute.String(key, toString(fields[i+1])))
	}
	return attrs
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
