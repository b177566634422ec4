// Package logging configures the process-wide slog logger and carries
// request IDs into log lines.
package logging
