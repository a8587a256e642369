package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/LerianStudio/lib-pgmanager/pgmanager/postgres"

const (
	spanConnect = "postgres.connect"
	spanExecute = "postgres.execute"
	spanClose   = "postgres.close"

	outcomeSuccess = "success"
	outcomeError   = "error"
)

type telemetry struct {
	tracer     trace.Tracer
	statements metric.Int64Counter
	duration   metric.Float64Histogram
	baseAttrs  []attribute.KeyValue
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider, sessionID string) (*telemetry, error) {
	meter := mp.Meter(instrumentationName)

	statements, err := meter.Int64Counter(
		"pgmanager.statements",
		metric.WithDescription("Statements executed through a postgres manager."),
		metric.WithUnit("{statement}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create statements counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		"pgmanager.statement.duration",
		metric.WithDescription("Statement round-trip time, first row included."),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create statement duration histogram: %w", err)
	}

	return &telemetry{
		tracer:     tp.Tracer(instrumentationName),
		statements: statements,
		duration:   duration,
		baseAttrs: []attribute.KeyValue{
			attribute.String("db.system.name", "postgresql"),
			attribute.String("pgmanager.session_id", sessionID),
		},
	}, nil
}

func (t *telemetry) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := make([]attribute.KeyValue, 0, len(t.baseAttrs)+len(attrs))
	all = append(all, t.baseAttrs...)
	all = append(all, attrs...)

	return t.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(all...),
	)
}

func (t *telemetry) recordStatement(ctx context.Context, operation string, started time.Time, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}

	attrs := metric.WithAttributes(
		attribute.String("db.operation.name", operation),
		attribute.String("outcome", outcome),
	)

	t.statements.Add(ctx, 1, attrs)
	t.duration.Record(ctx, float64(time.Since(started))/float64(time.Millisecond), attrs)
}

var sqlKeywords = map[string]struct{}{
	"ALTER": {}, "ANALYZE": {}, "BEGIN": {}, "CALL": {}, "COMMENT": {},
	"COMMIT": {}, "COPY": {}, "CREATE": {}, "DELETE": {}, "DISCARD": {},
	"DO": {}, "DROP": {}, "EXPLAIN": {}, "GRANT": {}, "INSERT": {},
	"LISTEN": {}, "LOCK": {}, "MERGE": {}, "NOTIFY": {}, "REFRESH": {},
	"REINDEX": {}, "RESET": {}, "REVOKE": {}, "ROLLBACK": {}, "SAVEPOINT": {},
	"SELECT": {}, "SET": {}, "SHOW": {}, "START": {}, "TABLE": {},
	"TRUNCATE": {}, "UPDATE": {}, "VACUUM": {}, "VALUES": {}, "WITH": {},
}

const unknownOperation = "UNKNOWN"

// operationName returns the leading SQL keyword, uppercased, or UNKNOWN
// when it is not a known statement keyword. Statement text is never
// exported because literals may carry sensitive data.
func operationName(sql string) string {
	sql = strings.TrimLeft(sql, " \t\r\n(")

	end := strings.IndexFunc(sql, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end < 0 {
		end = len(sql)
	}

	keyword := strings.ToUpper(sql[:end])
	if _, ok := sqlKeywords[keyword]; !ok {
		return unknownOperation
	}

	return keyword
}
