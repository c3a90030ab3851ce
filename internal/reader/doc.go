// Package reader coordinates one ingestion run: it obtains a candidate
// stream from a CommandCollector (or a caller-supplied channel), drains it
// on a dedicated collector goroutine into a staging buffer, and hands back
// a Control for harvesting, status checks, and forced termination.
//
// Liveness is tracked through a shared Counter that every spawned worker
// increments at start and decrements at exit, so a zero count is a
// trustworthy fully-stopped signal no matter how many workers a collector
// uses internally. Cancellation is cooperative: Kill closes the interrupt
// channels and waits for the counter to drain, so a collector or external
// process that ignores its interrupt can block Kill indefinitely. That
// trade-off is deliberate; Kill never falsely reports stopped.
package reader
