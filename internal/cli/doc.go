// Package cli defines the irkit command tree. The commands are thin: they
// run the startup sequence via internal/app, then reach every dialect
// behavior exclusively through registry lookup, the same dispatch path the
// framework itself uses.
package cli
