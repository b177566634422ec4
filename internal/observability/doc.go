// Package observability groups the logging and tracing setup shared by
// the API server and the retention worker.
package observability
