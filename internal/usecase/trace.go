package usecase

import (
	"context"

	"github.com/riskibarqy/matchday-feed/internal/platform/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("matchday-feed/internal/usecase")

func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracing.StartChild(ctx, usecaseTracer, name, attrs...)
}
