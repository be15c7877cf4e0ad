// Package tracing holds the span helpers shared by the HTTP, usecase and
// scraping layers.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartChild opens a span only when ctx already carries a valid span, so
// scheduled cycles and filtered routes do not produce orphan root spans.
// Otherwise it returns ctx unchanged with a no-op span.
func StartChild(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if strings.TrimSpace(name) == "" || !parent.SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

const maxQueryLength = 512

// FormatQuery collapses whitespace in a SQL statement and truncates it for
// span attributes.
func FormatQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxQueryLength {
		return normalized
	}
	cut := maxQueryLength
	for cut > 0 && !isRuneStart(normalized[cut]) {
		cut--
	}
	return normalized[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
