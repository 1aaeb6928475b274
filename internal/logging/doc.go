// Package logging assembles structured slog loggers and formatting helpers used
// across nbexport.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so exporter code can tag log
// lines with the run identifier and the notebook being converted. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Diagnostic logs default to stderr so stdout stays reserved for the
// exporter's status lines.
package logging
