package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var handlerTracer = otel.Tracer("github.com/riskibarqy/league-standings/internal/interfaces/httpapi")

var pathAttributes = []struct {
	param string
	key   string
}{
	{param: "tournamentID", key: "league.tournament_id"},
	{param: "divisionID", key: "league.division_id"},
	{param: "playerID", key: "league.player_id"},
	{param: "matchID", key: "league.match_id"},
}

// startHandlerSpan opens "httpapi.Handler.<name>" under the request span
// started by RequestTracing. Outside a traced request it is a no-op.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noop.Span{}
	}
	// The request span is named before routing; rename it to the route.
	if r.Pattern != "" {
		parent.SetName(r.Pattern)
	}
	return handlerTracer.Start(ctx, "httpapi.Handler."+name, trace.WithAttributes(handlerSpanAttributes(r)...))
}

func handlerSpanAttributes(r *http.Request) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(pathAttributes)+1)
	if r.Pattern != "" {
		attrs = append(attrs, attribute.String("http.route", r.Pattern))
	}
	for _, p := range pathAttributes {
		if v := r.PathValue(p.param); v != "" {
			attrs = append(attrs, attribute.String(p.key, v))
		}
	}
	return attrs
}
