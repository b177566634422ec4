// Package tracing provides OpenTelemetry tracing integration.
//
// The HTTP middleware extracts W3C Trace Context from incoming
// requests, opens a server span per request, and echoes the trace ID
// back in the X-Trace-Id response header. Without a configured trace
// provider the global no-op provider is used, so the middleware is
// safe to install unconditionally. Pipeline stages open child spans
// through GetTracer.
package tracing
