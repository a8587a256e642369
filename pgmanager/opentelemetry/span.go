package opentelemetry

import (
	"errors"

	"github.com/LerianStudio/lib-pgmanager/pgmanager/security"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleSpanError sets the status of the span to error and records a
// sanitized copy of err.
func HandleSpanError(span trace.Span, message string, err error) {
	if span == nil || err == nil {
		return
	}

	sanitized := security.SanitizeText(err.Error())

	span.SetStatus(codes.Error, message+": "+sanitized)
	span.RecordError(errors.New(sanitized))
}

// HandleSpanEvent adds an event to the span.
func HandleSpanEvent(span trace.Span, eventName string, attributes ...attribute.KeyValue) {
	if span == nil {
		return
	}

	span.AddEvent(eventName, trace.WithAttributes(attributes...))
}
