package manifest

import (
	"github.com/hashicorp/hcl/v2"
)

// hclFile represents the top-level structure of a dialect manifest file.
type hclFile struct {
	Dialects []*hclDialect `hcl:"dialect,block"`
}

// hclDialect represents one `dialect` block.
type hclDialect struct {
	ID          string          `hcl:"id,label"`
	Description string          `hcl:"description,optional"`
	DocVerifier string          `hcl:"doc_verifier,optional"`
	Types       []*hclType      `hcl:"type,block"`
	Operations  []*hclOperation `hcl:"operation,block"`
}

// hclType represents a `type` block: one type kind and its parameter schema.
type hclType struct {
	Name        string      `hcl:"name,label"`
	Description string      `hcl:"description,optional"`
	RoundTrip   bool        `hcl:"round_trip,optional"`
	Params      []*hclParam `hcl:"param,block"`
	Printer     string      `hcl:"printer,optional"`
	Parser      string      `hcl:"parser,optional"`
}

// hclParam represents a `param` block. The kind is an HCL type expression
// (`string`, `number`, `list(string)`, ...) translated after decoding.
type hclParam struct {
	Name string         `hcl:"name,label"`
	Kind hcl.Expression `hcl:"kind"`
}

// hclOperation represents an `operation` block.
type hclOperation struct {
	Name        string          `hcl:"name,label"`
	Description string          `hcl:"description,optional"`
	Operands    *hclArity       `hcl:"operands,block"`
	Results     *hclArity       `hcl:"results,block"`
	Attributes  []*hclAttribute `hcl:"attribute,block"`
	Traits      []string        `hcl:"traits,optional"`
	Verifier    string          `hcl:"verifier,optional"`
}

// hclArity represents an `operands` or `results` block. Either `count` is
// set (fixed arity) or `variadic = true` with an optional `min`.
type hclArity struct {
	Count    *int `hcl:"count,optional"`
	Variadic bool `hcl:"variadic,optional"`
	Min      *int `hcl:"min,optional"`
}

// hclAttribute represents an `attribute` block in an operation's schema.
type hclAttribute struct {
	Name     string         `hcl:"name,label"`
	Type     hcl.Expression `hcl:"type"`
	Required bool           `hcl:"required,optional"`
}
