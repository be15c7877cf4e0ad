package scrape

import (
	"context"

	"github.com/riskibarqy/matchday-feed/internal/platform/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var scrapeTracer = otel.Tracer("matchday-feed/internal/platform/scrape")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracing.StartChild(ctx, scrapeTracer, name, attrs...)
}
