// Package logging configures the zerolog logger used by catalogctl and carries it,
// together with a per-invocation trace ID, through context.Context.
package logging
