package manifest

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/dialect"
	"github.com/scienceos/irkit/internal/ir"
)

// Hooks holds the compiled Go behavior a dialect registers under the names
// its manifest references. The manifest declares structure; hooks supply
// the behavior structure alone cannot express.
type Hooks struct {
	verifiers    map[string]func(op *ir.Operation) []dialect.Violation
	docVerifiers map[string]func(ops []*ir.Operation) []dialect.Violation
	printers     map[string]func(params []cty.Value) string
	parsers      map[string]func(text string) ([]cty.Value, error)
}

// NewHooks creates an empty hook set.
func NewHooks() *Hooks {
	return &Hooks{
		verifiers:    map[string]func(op *ir.Operation) []dialect.Violation{},
		docVerifiers: map[string]func(ops []*ir.Operation) []dialect.Violation{},
		printers:     map[string]func(params []cty.Value) string{},
		parsers:      map[string]func(text string) ([]cty.Value, error){},
	}
}

// Verifier registers an operation verifier hook under name. Registering the
// same name twice is a programming error and panics, matching descriptor
// registration being startup-fatal.
func (h *Hooks) Verifier(name string, fn func(op *ir.Operation) []dialect.Violation) *Hooks {
	if _, exists := h.verifiers[name]; exists {
		panic("manifest: verifier hook " + name + " already registered")
	}
	h.verifiers[name] = fn
	return h
}

// DocVerifier registers a document-level verifier hook under name.
func (h *Hooks) DocVerifier(name string, fn func(ops []*ir.Operation) []dialect.Violation) *Hooks {
	if _, exists := h.docVerifiers[name]; exists {
		panic("manifest: document verifier hook " + name + " already registered")
	}
	h.docVerifiers[name] = fn
	return h
}

// Printer registers a type printer hook under name.
func (h *Hooks) Printer(name string, fn func(params []cty.Value) string) *Hooks {
	if _, exists := h.printers[name]; exists {
		panic("manifest: printer hook " + name + " already registered")
	}
	h.printers[name] = fn
	return h
}

// Parser registers a type parser hook under name.
func (h *Hooks) Parser(name string, fn func(text string) ([]cty.Value, error)) *Hooks {
	if _, exists := h.parsers[name]; exists {
		panic("manifest: parser hook " + name + " already registered")
	}
	h.parsers[name] = fn
	return h
}
