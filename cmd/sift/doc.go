// Package main hosts the sift CLI entrypoint and command graph.
//
// The Cobra-based command tree wires the ingestion reader, the item pool,
// and the match engine into a non-interactive filter mode, plus
// configuration scaffolding and history maintenance commands. It
// centralizes configuration resolution and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
