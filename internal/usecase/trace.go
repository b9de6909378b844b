package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var usecaseTracer = otel.Tracer("github.com/riskibarqy/league-standings/internal/usecase")

// startUsecaseSpan opens a child span only under an existing request span.
// Startup work such as roster seeding stays untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noop.Span{}
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func scopeAttrs(tournamentID, divisionID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("league.tournament_id", tournamentID),
		attribute.String("league.division_id", divisionID),
	}
}
