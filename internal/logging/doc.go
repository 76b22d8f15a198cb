// Package logging builds the slog loggers used across the orchestrator.
//
// It supplies a human-oriented console handler, a JSON handler for
// machine-readable stack logs, attribute helper functions, and context
// carriage for the standardized stage/scene/pair fields so every
// component logs work units the same way.
package logging
