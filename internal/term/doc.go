// Package term wraps the terminal size query. The underlying OS error is
// propagated unmodified so callers can decide on fallback sizing.
package term
