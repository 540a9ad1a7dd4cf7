// Package app wires the process together: it configures the logger, runs
// the dialect-loading sequence during the single-threaded startup phase,
// and hands the populated, thereafter read-only registry to whoever asked
// for it. A duplicate registration anywhere in the sequence fails the whole
// startup; the process never runs with an inconsistent registry.
package app
