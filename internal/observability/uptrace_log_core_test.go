package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestIsHealthProbe(t *testing.T) {
	tests := []struct {
		msg    string
		values map[string]any
		want   bool
	}{
		{msg: "http_request", values: map[string]any{"http_path": "/healthz"}, want: true},
		{msg: "http_request", values: map[string]any{"http_path": "/v1/tournaments"}},
		{msg: "result recorded", values: map[string]any{"http_path": "/healthz"}},
		{msg: "http_request"},
	}
	for _, tt := range tests {
		if got := isHealthProbe(tt.msg, tt.values); got != tt.want {
			t.Fatalf("isHealthProbe(%q, %v)=%v want %v", tt.msg, tt.values, got, tt.want)
		}
	}
}

func TestRecordAttributes_FromZapFields(t *testing.T) {
	values := encodeFields(
		[]zapcore.Field{zap.String("component", "standings")},
		[]zapcore.Field{
			zap.String("division_id", "oro"),
			zap.Int("pints", 3),
			zap.Duration("took", 1500*time.Millisecond),
			zap.Error(errors.New("boom")),
		},
	)

	attrs := recordAttributes(values)
	if len(attrs) != 5 {
		t.Fatalf("expected 5 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "component" || attrs[len(attrs)-1].Key != "took" {
		t.Fatalf("expected attributes sorted by key, got %q..%q", attrs[0].Key, attrs[len(attrs)-1].Key)
	}

	byKey := make(map[string]otellog.Value, len(attrs))
	for _, attr := range attrs {
		byKey[attr.Key] = attr.Value
	}
	if byKey["pints"].AsInt64() != 3 {
		t.Fatalf("unexpected pints attribute: %v", byKey["pints"])
	}
	if byKey["error"].AsString() != "boom" {
		t.Fatalf("unexpected error attribute: %v", byKey["error"])
	}
	if byKey["took"].AsString() != "1.5s" {
		t.Fatalf("unexpected took attribute: %v", byKey["took"])
	}
}

func TestLogValue_NestedAndDepthLimit(t *testing.T) {
	v := logValue(map[string]any{"sets_won": int64(2), "scores": []any{"6-3", "6-4"}}, 0)
	if v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected 2-entry map, got %v", v)
	}

	deep := logValue([]any{"x"}, maxValueDepth)
	if deep.Kind() != otellog.KindString {
		t.Fatalf("expected printed fallback past the depth limit, got %s", deep.Kind())
	}
}

func TestSeverityOf(t *testing.T) {
	tests := map[zapcore.Level]otellog.Severity{
		zapcore.DebugLevel: otellog.SeverityDebug,
		zapcore.InfoLevel:  otellog.SeverityInfo,
		zapcore.WarnLevel:  otellog.SeverityWarn,
		zapcore.ErrorLevel: otellog.SeverityError,
		zapcore.PanicLevel: otellog.SeverityFatal,
	}
	for level, want := range tests {
		if got := severityOf(level); got != want {
			t.Fatalf("severityOf(%s)=%v want %v", level, got, want)
		}
	}
}

func TestUptraceLogCore_RespectsLevel(t *testing.T) {
	core := newUptraceLogCore(zapcore.WarnLevel, "dev")
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be below the core level")
	}
	with := core.With([]zapcore.Field{zap.String("tournament_id", "ppc-winter")})
	if err := with.Write(zapcore.Entry{Level: zapcore.ErrorLevel, Message: "overview failed"}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
}
