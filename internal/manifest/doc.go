// Package manifest is the declarative descriptor source for dialects.
//
// A dialect ships its operation and type kinds as a manifest (HCL is the
// primary format, YAML an equivalent alternate) which is decoded into a
// format-agnostic definition model and then built into the immutable
// descriptor tables the registry serves. Behavior hooks (custom verifiers,
// printers, parsers) cannot live in a manifest, so a manifest names them
// and the dialect's Go code registers functions under those names; building
// the dialect checks the two sides against each other, failing on hooks the
// manifest names but Go never registered and logging hooks Go registered
// but nothing references.
//
// The concrete manifest syntax is deliberately replaceable. Only the
// definition model matters downstream; a new format needs one more loader,
// nothing else.
package manifest
