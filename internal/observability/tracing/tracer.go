package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is shared by the middleware and any code that opens child
// spans (the generate pipeline stages, the sweep job).
var tracer = otel.Tracer("blogsmith")

// GetTracer exposes the application tracer for manual spans.
func GetTracer() trace.Tracer {
	return tracer
}
