// Package opentelemetry holds span helpers shared by the postgres manager.
//
// Error text is scrubbed of credentials before it is attached to a span, so
// connection failures never export passwords to a tracing backend.
package opentelemetry
