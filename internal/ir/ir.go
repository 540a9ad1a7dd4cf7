package ir

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
)

// Type is an instance of a dialect-defined type kind: a descriptor name plus
// the parameter values the kind was instantiated with, e.g.
// science.protein with params ["P04637"].
type Type struct {
	Dialect string
	Name    string
	Params  []cty.Value
}

// QualifiedName returns the registry lookup key, "dialect.name".
func (t Type) QualifiedName() string {
	return t.Dialect + "." + t.Name
}

// Equal reports whether two type instances name the same kind with the same
// parameter values.
func (t Type) Equal(o Type) bool {
	if t.Dialect != o.Dialect || t.Name != o.Name || len(t.Params) != len(o.Params) {
		return false
	}
	for i := range t.Params {
		if t.Params[i].Equals(o.Params[i]) != cty.True {
			return false
		}
	}
	return true
}

// Value is an SSA-style value flowing between operations. Only its type
// matters to verification.
type Value struct {
	Type Type
}

// Operation is an instance of a dialect-defined operation kind.
//
// Name is always dialect-qualified ("science.phosphorylate"); an operation
// whose name does not resolve in the registry is an error to every framework
// pass that touches it, never a silent no-op.
type Operation struct {
	ID       uuid.UUID
	Name     string
	Operands []Value
	Results  []Value
	Attrs    map[string]cty.Value
	Regions  int
}

// NewOperation allocates an operation instance with a fresh identity.
func NewOperation(name string) *Operation {
	return &Operation{
		ID:    uuid.New(),
		Name:  name,
		Attrs: map[string]cty.Value{},
	}
}

// SplitQualified splits a dialect-qualified name on its first separator.
// It returns an error for names with no separator or an empty half, since a
// bare local name can never resolve anywhere.
func SplitQualified(qualified string) (dialect, local string, err error) {
	i := strings.Index(qualified, ".")
	if i <= 0 || i == len(qualified)-1 {
		return "", "", fmt.Errorf("name %q is not dialect-qualified", qualified)
	}
	return qualified[:i], qualified[i+1:], nil
}
