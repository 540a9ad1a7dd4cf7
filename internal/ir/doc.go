// Package ir defines the in-memory instance model for IR constructs:
// dialect-qualified types, values, and operations.
//
// This package contains instance shapes only. Descriptor metadata, tables,
// and the registry live in internal/dialect; every other internal package
// may import ir, while ir imports nothing internal. That keeps it the
// foundational layer with no circular dependencies.
//
// Instances are plain data. Whether an instance is well formed is decided
// by its descriptor's verifier, not by construction, so a malformed
// operation can exist in memory long enough to be verified and reported.
package ir
