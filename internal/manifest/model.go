package manifest

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/dialect"
)

// Definition is the format-agnostic representation of one dialect manifest,
// the shape every loader decodes into.
type Definition struct {
	ID          string
	Description string
	Types       []*TypeDefinition
	Operations  []*OpDefinition

	// DocVerifier names a Go hook run over all of the dialect's operations
	// in a document; empty means no document-level invariants.
	DocVerifier string
}

// TypeDefinition declares one type kind.
type TypeDefinition struct {
	Name        string
	Description string
	RoundTrip   bool
	Params      []ParamDefinition

	// Printer and Parser name Go hooks the dialect must register. Empty
	// means the schema-driven defaults.
	Printer string
	Parser  string
}

// ParamDefinition is one slot in a type kind's parameter schema.
type ParamDefinition struct {
	Name string
	Kind cty.Type
}

// OpDefinition declares one operation kind.
type OpDefinition struct {
	Name        string
	Description string
	Operands    dialect.AritySpec
	Results     dialect.AritySpec
	Attributes  []AttrDefinition
	Traits      []string

	// Verifier names a Go hook; empty means no custom invariants.
	Verifier string
}

// AttrDefinition declares one attribute in an operation's schema.
type AttrDefinition struct {
	Name     string
	Type     cty.Type
	Required bool
}
