package dialect

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/ir"
)

// OpTable holds one dialect's operation descriptors, keyed by local name.
// It shares nothing with the dialect's TypeTable; the two namespaces are
// disjoint by construction.
type OpTable struct {
	dialect string
	byName  map[string]*OpDescriptor
	order   []string
}

// NewOpTable creates an empty table owned by the named dialect.
func NewOpTable(dialect string) *OpTable {
	return &OpTable{
		dialect: dialect,
		byName:  map[string]*OpDescriptor{},
	}
}

// Register inserts a descriptor. A name collision yields
// DuplicateOperationError and leaves the table unchanged.
func (t *OpTable) Register(od *OpDescriptor) error {
	if _, exists := t.byName[od.Name]; exists {
		return &DuplicateOperationError{Dialect: t.dialect, Name: od.Name}
	}
	t.byName[od.Name] = od
	t.order = append(t.order, od.Name)
	return nil
}

// Lookup returns the descriptor registered under name, or NotFoundError.
func (t *OpTable) Lookup(name string) (*OpDescriptor, error) {
	od, ok := t.byName[name]
	if !ok {
		return nil, &NotFoundError{Kind: "operation", Name: t.dialect + "." + name}
	}
	return od, nil
}

// Names returns the registered local names in registration order.
func (t *OpTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Len returns the number of registered descriptors.
func (t *OpTable) Len() int { return len(t.byName) }

// Verify checks op against the named descriptor's full contract. The
// structural stages run in order (operand/result arity, declared
// attributes, traits) and accumulate every violation rather than stopping
// at the first, so one verification pass reports everything it found. The
// custom verifier hook runs last and only when the structural stages found
// nothing, since it is entitled to assume a structurally valid instance.
//
// Verify is pure: it never mutates op, and repeated calls on an unmodified
// instance yield the same violations.
func (t *OpTable) Verify(op *ir.Operation) ([]Violation, error) {
	local, err := localName(t.dialect, op.Name)
	if err != nil {
		return nil, err
	}
	od, err := t.Lookup(local)
	if err != nil {
		return nil, err
	}

	var violations []Violation
	if v := od.Operands.check("operand", len(op.Operands)); v != nil {
		violations = append(violations, *v)
	}
	if v := od.Results.check("result", len(op.Results)); v != nil {
		violations = append(violations, *v)
	}
	violations = append(violations, checkAttrs(od, op)...)
	for _, trait := range od.Traits {
		check, ok := traitChecks[trait]
		if !ok {
			// Manifest construction rejects unknown traits, so reaching one
			// here means the descriptor was built outside that path.
			violations = append(violations, Violation{
				Code:    ViolationTrait,
				Message: fmt.Sprintf("descriptor declares unknown trait %q", trait),
			})
			continue
		}
		if v := check(op); v != nil {
			violations = append(violations, *v)
		}
	}

	if len(violations) == 0 && od.Verifier != nil {
		violations = append(violations, od.Verifier(op)...)
	}
	return violations, nil
}

// checkAttrs validates the declared attribute schema. Declared-but-absent is
// a violation only for required attributes; attributes the schema does not
// mention pass through untouched, which keeps the schema open for
// annotations added by other tools.
func checkAttrs(od *OpDescriptor, op *ir.Operation) []Violation {
	var violations []Violation
	for _, name := range sortedAttrNames(od.Attrs) {
		spec := od.Attrs[name]
		val, present := op.Attrs[name]
		if !present {
			if spec.Required {
				violations = append(violations, Violation{
					Code:    ViolationAttribute,
					Message: fmt.Sprintf("required attribute %q is missing", name),
				})
			}
			continue
		}
		if spec.Type.Equals(cty.DynamicPseudoType) {
			continue
		}
		if !val.Type().Equals(spec.Type) {
			violations = append(violations, Violation{
				Code: ViolationAttribute,
				Message: fmt.Sprintf("attribute %q must be %s, got %s",
					name, spec.Type.FriendlyName(), val.Type().FriendlyName()),
			})
		}
	}
	return violations
}

func sortedAttrNames(attrs map[string]AttrSpec) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	// Deterministic violation order keeps verification idempotent in the
	// observable sense, not just set-equal.
	sort.Strings(names)
	return names
}

// localName strips the dialect qualifier from a qualified operation name,
// requiring it to target this table's dialect. Unqualified names are
// accepted as already local.
func localName(dialect, name string) (string, error) {
	d, local, err := ir.SplitQualified(name)
	if err != nil {
		return name, nil
	}
	if d != dialect {
		return "", &NotFoundError{Kind: "operation", Name: name}
	}
	return local, nil
}
