package dialect

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/ir"
)

// ParamSpec is one slot in a type kind's ordered parameter schema.
type ParamSpec struct {
	Name string
	Kind cty.Type
}

// TypeDescriptor is the registered metadata for one type kind: its local
// name, its parameter schema, and the hooks that print and parse its
// parameter list. Descriptors are built once, registered once, and never
// mutated afterwards.
type TypeDescriptor struct {
	Name        string
	Description string
	Params      []ParamSpec

	// RoundTrip declares that Parser(Printer(params)) yields params again
	// for every valid parameter list. The default hooks satisfy it; a
	// custom printer that discards information must leave it unset.
	RoundTrip bool

	// Printer renders a valid parameter list. Nil selects the schema-driven
	// default. A printer must be total over parameters that passed
	// construction-time validation; its failure there is a defect, not a
	// recoverable error.
	Printer func(params []cty.Value) string

	// Parser is the inverse hook. Nil selects the schema-driven default.
	Parser func(text string) ([]cty.Value, error)
}

// AritySpec describes how many operands or results an operation kind
// accepts: an exact count, or any number at or above a minimum.
type AritySpec struct {
	Variadic bool
	Count    int // exact count, or the minimum when Variadic
}

// Fixed returns a spec requiring exactly n.
func Fixed(n int) AritySpec { return AritySpec{Count: n} }

// Variadic returns a spec requiring at least min.
func Variadic(min int) AritySpec { return AritySpec{Variadic: true, Count: min} }

func (a AritySpec) String() string {
	if a.Variadic {
		return fmt.Sprintf("at least %d", a.Count)
	}
	return fmt.Sprintf("exactly %d", a.Count)
}

// check returns a violation when got falls outside the declared arity. kind
// names the checked slot ("operand" or "result") for the message.
func (a AritySpec) check(kind string, got int) *Violation {
	ok := got == a.Count
	if a.Variadic {
		ok = got >= a.Count
	}
	if ok {
		return nil
	}
	return &Violation{
		Code:    ViolationArity,
		Message: fmt.Sprintf("expected %s %s(s), got %d", a.String(), kind, got),
	}
}

// AttrSpec declares one attribute an operation kind understands. Attributes
// not declared in the schema are permitted and pass through unvalidated;
// the schema constrains only what it names.
type AttrSpec struct {
	Type     cty.Type
	Required bool
}

// OpDescriptor is the registered metadata for one operation kind.
type OpDescriptor struct {
	Name        string
	Description string
	Operands    AritySpec
	Results     AritySpec
	Attrs       map[string]AttrSpec
	Traits      []Trait

	// Verifier is the kind's custom hook. It runs only on instances whose
	// arity, attribute and trait checks all passed, so it may assume a
	// structurally valid operation. Nil means no custom invariants.
	Verifier func(op *ir.Operation) []Violation
}

// ViolationCode categorizes which verification stage found a violation.
type ViolationCode string

const (
	ViolationArity     ViolationCode = "ARITY"
	ViolationAttribute ViolationCode = "ATTRIBUTE"
	ViolationTrait     ViolationCode = "TRAIT"
	ViolationCustom    ViolationCode = "CUSTOM"
)

// Severity grades a violation. Errors are contract breaches; warnings and
// infos are advisory findings a caller reports without treating the
// instance as invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Violation is one finding from verification. Verification accumulates
// violations rather than stopping at the first, so one pass over an
// instance reports everything wrong with it. The zero Severity counts as
// an error, so hooks that never set the field keep failing verification.
type Violation struct {
	Code     ViolationCode
	Severity Severity
	Message  string
}

// Advisory reports whether the violation is a warning or info finding
// rather than an error.
func (v Violation) Advisory() bool {
	return v.Severity == SeverityWarning || v.Severity == SeverityInfo
}

func (v Violation) String() string {
	sev := v.Severity
	if sev == "" {
		sev = SeverityError
	}
	return fmt.Sprintf("%s [%s] %s", sev, v.Code, v.Message)
}

// FormatViolations renders a violation list one per line, for diagnostics.
func FormatViolations(vs []Violation) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "\n")
}
