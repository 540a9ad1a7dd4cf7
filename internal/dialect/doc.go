// Package dialect implements the extensibility core of the IR: descriptor
// metadata for dialect-defined operation and type kinds, the per-dialect
// descriptor tables, and the process-wide registry the generic framework
// resolves dialect-qualified names through.
//
// The framework never branches on dialect identity. Parsing, printing and
// verification all reach domain behavior by looking up a descriptor by name
// and dispatching through its hooks, so new dialects extend the IR by adding
// registry entries, not by modifying framework code.
//
// Registration is expected to happen during a single-threaded startup phase,
// before any concurrent IR processing. That precondition is part of the
// contract, not something locking enforces: the registry guards inserts into
// its key space with one mutex as a safety net, but lookups are deliberately
// unsynchronized and rely on the tables being immutable once startup ends.
package dialect
