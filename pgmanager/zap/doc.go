// Package zap adapts go.uber.org/zap to the pgmanager log.Logger interface.
//
// Events logged with a context that carries an OpenTelemetry span are
// annotated with trace_id and span_id so manager diagnostics line up with
// the postgres.connect and postgres.execute spans.
package zap
