// Package config loads, normalizes, and validates sift configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SIFT_DEFAULT_COMMAND. The Config type centralizes every knob the CLI
// needs: the source command, ranking tiebreaks, reserved header lines,
// history storage, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, parseable tiebreak tokens, and clear validation errors.
package config
