// Package logging configures the slog loggers used across ffstrip. The
// console handler renders compact key=value lines for interactive use; the
// JSON handler is for machine consumption when output is redirected.
package logging
