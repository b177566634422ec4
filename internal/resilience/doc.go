// Package resilience groups the circuit breaker and retry wrappers that
// sit around the generate pipeline's external calls (Claude, OpenAI,
// AssemblyAI, yt-dlp).
package resilience
