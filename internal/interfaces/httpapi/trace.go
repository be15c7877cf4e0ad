package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/matchday-feed/internal/platform/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("matchday-feed/internal/interfaces/httpapi")

// startSpan only traces handler entry points; helpers share the handler span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !isHandlerSpan(name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return tracing.StartChild(ctx, apiTracer, name, attrs...)
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
