// Package logging assembles the structured slog loggers used across sift.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides a no-op logger for tests and wiring code that
// cannot fail. Components tag lines with a "component" attribute, which
// the console handler pulls forward as a message prefix.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
