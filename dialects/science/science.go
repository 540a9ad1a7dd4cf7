// Package science is the science dialect: the one unit of code a domain
// authors to extend the IR. Its manifest (science.hcl, embedded) declares
// the dialect's type and operation kinds; this package supplies the Go
// hooks the manifest names and registers the built dialect exactly once.
//
// Everything downstream (parsing, printing, verification) reaches this
// dialect only through registry lookup.
package science

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/scienceos/irkit/internal/dialect"
	"github.com/scienceos/irkit/internal/manifest"
)

// ID is the dialect's registry namespace.
const ID = "science"

//go:embed science.hcl
var manifestHCL []byte

// Dialect implements dialect.Module.
type Dialect struct{}

// Register builds the science dialect from its embedded manifest and claims
// its namespace in reg. Calling it twice fails with DuplicateDialectError;
// registration is deliberately not idempotent.
func (d *Dialect) Register(ctx context.Context, reg *dialect.Registry) error {
	defs, err := manifest.LoadHCL(ctx, manifestHCL, "science.hcl")
	if err != nil {
		return err
	}
	if len(defs) != 1 || defs[0].ID != ID {
		return fmt.Errorf("science manifest must define exactly the %q dialect", ID)
	}
	entry, err := manifest.Build(ctx, defs[0], hooks())
	if err != nil {
		return err
	}
	return reg.RegisterDialect(ctx, entry)
}

// hooks binds the Go behavior under the names the manifest references.
// Manifest/Go parity is checked by manifest.Build.
func hooks() *manifest.Hooks {
	return manifest.NewHooks().
		Printer("PrintMolecule", printMolecule).
		Parser("ParseMolecule", parseMolecule).
		Printer("PrintSeq", printSeq).
		Parser("ParseSeq", parseSeq).
		Verifier("VerifyPhosphorylate", verifyPhosphorylate).
		Verifier("VerifyInteraction", verifyInteraction).
		Verifier("VerifyInhibit", verifyInhibit).
		Verifier("VerifyExpress", verifyExpress).
		DocVerifier("VerifyDocument", verifyDocument)
}
