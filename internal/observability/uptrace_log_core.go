package observability

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const logScope = "github.com/riskibarqy/league-standings/internal/platform/logging"

// maxValueDepth bounds how far nested arrays and objects are converted
// before falling back to their printed form.
const maxValueDepth = 3

// otelLogCore is a zap core that hands each entry to the global
// OpenTelemetry logger provider, which Uptrace exports.
type otelLogCore struct {
	zapcore.LevelEnabler
	logger otellog.Logger
	fields []zapcore.Field
}

func newUptraceLogCore(level zapcore.LevelEnabler, serviceVersion string) *otelLogCore {
	return &otelLogCore{
		LevelEnabler: level,
		logger:       otelglobal.Logger(logScope, otellog.WithInstrumentationVersion(serviceVersion)),
	}
}

func (c *otelLogCore) With(fields []zapcore.Field) zapcore.Core {
	return &otelLogCore{
		LevelEnabler: c.LevelEnabler,
		logger:       c.logger,
		fields:       append(slices.Clip(c.fields), fields...),
	}
}

func (c *otelLogCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.Enabled(ent.Level) {
		return ce
	}
	return ce.AddCore(ent, c)
}

func (c *otelLogCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	values := encodeFields(c.fields, fields)
	if isHealthProbe(ent.Message, values) {
		return nil
	}

	severity := severityOf(ent.Level)
	ctx := context.Background()
	if !c.logger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: ent.Message}) {
		return nil
	}

	var record otellog.Record
	record.SetTimestamp(ent.Time)
	record.SetObservedTimestamp(time.Now().UTC())
	record.SetSeverity(severity)
	record.SetSeverityText(strings.ToUpper(ent.Level.String()))
	record.SetEventName(ent.Message)
	record.SetBody(otellog.StringValue(ent.Message))
	record.AddAttributes(recordAttributes(values)...)

	c.logger.Emit(ctx, record)
	return nil
}

func (c *otelLogCore) Sync() error { return nil }

// encodeFields flattens zap fields into the plain values zap's map encoder
// produces: strings, int64, float64, bool, time values, []any and
// map[string]any.
func encodeFields(groups ...[]zapcore.Field) map[string]any {
	enc := zapcore.NewMapObjectEncoder()
	for _, group := range groups {
		for _, f := range group {
			f.AddTo(enc)
		}
	}
	return enc.Fields
}

// Health checks are polled constantly and carry no signal.
func isHealthProbe(msg string, values map[string]any) bool {
	return msg == "http_request" && values["http_path"] == "/healthz"
}

func recordAttributes(values map[string]any) []otellog.KeyValue {
	return recordAttributesAt(values, 0)
}

func severityOf(level zapcore.Level) otellog.Severity {
	switch level {
	case zapcore.DebugLevel:
		return otellog.SeverityDebug
	case zapcore.InfoLevel:
		return otellog.SeverityInfo
	case zapcore.WarnLevel:
		return otellog.SeverityWarn
	case zapcore.ErrorLevel:
		return otellog.SeverityError
	default:
		if level < zapcore.DebugLevel {
			return otellog.SeverityTrace
		}
		return otellog.SeverityFatal
	}
}

func logValue(v any, depth int) otellog.Value {
	switch v := v.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int64:
		return otellog.Int64Value(v)
	case int32:
		return otellog.Int64Value(int64(v))
	case uint32:
		return otellog.Int64Value(int64(v))
	case float64:
		return otellog.Float64Value(v)
	case time.Time:
		return otellog.StringValue(v.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return otellog.StringValue(v.String())
	case []any:
		if depth >= maxValueDepth {
			break
		}
		items := make([]otellog.Value, len(v))
		for i, item := range v {
			items[i] = logValue(item, depth+1)
		}
		return otellog.SliceValue(items...)
	case map[string]any:
		if depth >= maxValueDepth {
			break
		}
		return otellog.MapValue(recordAttributesAt(v, depth+1)...)
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	}
	return otellog.StringValue(fmt.Sprint(v))
}

func recordAttributesAt(values map[string]any, depth int) []otellog.KeyValue {
	kvs := make([]otellog.KeyValue, 0, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		kvs = append(kvs, otellog.KeyValue{Key: key, Value: logValue(values[key], depth)})
	}
	return kvs
}
