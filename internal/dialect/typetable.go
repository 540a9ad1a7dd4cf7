package dialect

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// TypeTable holds one dialect's type descriptors, keyed by local name.
// Registration order is preserved for deterministic listings.
type TypeTable struct {
	dialect string
	byName  map[string]*TypeDescriptor
	order   []string
}

// NewTypeTable creates an empty table owned by the named dialect.
func NewTypeTable(dialect string) *TypeTable {
	return &TypeTable{
		dialect: dialect,
		byName:  map[string]*TypeDescriptor{},
	}
}

// Register inserts a descriptor. A name collision yields DuplicateTypeError
// and leaves the table unchanged.
func (t *TypeTable) Register(td *TypeDescriptor) error {
	if _, exists := t.byName[td.Name]; exists {
		return &DuplicateTypeError{Dialect: t.dialect, Name: td.Name}
	}
	t.byName[td.Name] = td
	t.order = append(t.order, td.Name)
	return nil
}

// Lookup returns the descriptor registered under name, or NotFoundError.
func (t *TypeTable) Lookup(name string) (*TypeDescriptor, error) {
	td, ok := t.byName[name]
	if !ok {
		return nil, &NotFoundError{Kind: "type", Name: t.dialect + "." + name}
	}
	return td, nil
}

// Parse delegates text to the named descriptor's parser. Rejected input
// yields MalformedTypeError carrying the offending text and byte offset.
func (t *TypeTable) Parse(name, text string) ([]cty.Value, error) {
	td, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	if td.Parser != nil {
		params, err := td.Parser(text)
		if err == nil {
			return params, nil
		}
		if mte, ok := err.(*MalformedTypeError); ok {
			if mte.Type == "" {
				mte.Type = t.dialect + "." + name
			}
			return nil, mte
		}
		return nil, &MalformedTypeError{
			Type:   t.dialect + "." + name,
			Text:   text,
			Reason: err.Error(),
		}
	}
	params, mte := parseDefault(td, text)
	if mte != nil {
		mte.Type = t.dialect + "." + name
		return nil, mte
	}
	return params, nil
}

// Print renders params through the named descriptor's printer. The only
// recoverable failure is an unknown name; the printer itself must be total
// over construction-valid parameters, so it is allowed to panic on input no
// valid program state can have produced.
func (t *TypeTable) Print(name string, params []cty.Value) (string, error) {
	td, err := t.Lookup(name)
	if err != nil {
		return "", err
	}
	if td.Printer != nil {
		return td.Printer(params), nil
	}
	return printDefault(td, params), nil
}

// Names returns the registered local names in registration order.
func (t *TypeTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

// Len returns the number of registered descriptors.
func (t *TypeTable) Len() int { return len(t.byName) }

// printDefault renders parameters in the schema-driven textual form:
// comma-separated values in schema order, strings raw, numbers and bools in
// their usual spellings. It round-trips with parseDefault as long as string
// parameters contain no commas; kinds that need richer text supply custom
// hooks instead.
func printDefault(td *TypeDescriptor, params []cty.Value) string {
	if len(params) != len(td.Params) {
		panic(fmt.Sprintf("dialect: printing type %q with %d parameters, schema has %d",
			td.Name, len(params), len(td.Params)))
	}
	parts := make([]string, len(params))
	for i, p := range params {
		switch {
		case td.Params[i].Kind.Equals(cty.String):
			parts[i] = p.AsString()
		case td.Params[i].Kind.Equals(cty.Number):
			parts[i] = p.AsBigFloat().Text('g', -1)
		case td.Params[i].Kind.Equals(cty.Bool):
			if p.True() {
				parts[i] = "true"
			} else {
				parts[i] = "false"
			}
		default:
			panic(fmt.Sprintf("dialect: type %q parameter %q has kind %s, which the default printer cannot render",
				td.Name, td.Params[i].Name, td.Params[i].Kind.FriendlyName()))
		}
	}
	return strings.Join(parts, ", ")
}

// parseDefault is the inverse of printDefault.
func parseDefault(td *TypeDescriptor, text string) ([]cty.Value, *MalformedTypeError) {
	if len(td.Params) == 0 {
		if strings.TrimSpace(text) != "" {
			return nil, &MalformedTypeError{Text: text, Offset: 0, Reason: "type takes no parameters"}
		}
		return nil, nil
	}

	params := make([]cty.Value, 0, len(td.Params))
	offset := 0
	rest := text
	for i := range td.Params {
		var segment string
		segStart := offset
		if i == len(td.Params)-1 {
			segment = rest
			if j := strings.Index(rest, ","); j >= 0 {
				return nil, &MalformedTypeError{
					Text:   text,
					Offset: offset + j,
					Reason: fmt.Sprintf("expected %d parameter(s), found more", len(td.Params)),
				}
			}
			rest = ""
		} else {
			j := strings.Index(rest, ",")
			if j < 0 {
				return nil, &MalformedTypeError{
					Text:   text,
					Offset: len(text),
					Reason: fmt.Sprintf("expected %d parameter(s), found %d", len(td.Params), i+1),
				}
			}
			segment = rest[:j]
			rest = rest[j+1:]
			offset += j + 1
		}

		trimmed := strings.TrimSpace(segment)
		valStart := segStart + strings.Index(segment, trimmed)
		if trimmed == "" {
			valStart = segStart
		}

		val, mte := parseParam(td.Params[i].Kind, trimmed)
		if mte != nil {
			mte.Text = text
			mte.Offset = valStart
			return nil, mte
		}
		params = append(params, val)
	}
	return params, nil
}

func parseParam(kind cty.Type, text string) (cty.Value, *MalformedTypeError) {
	switch {
	case kind.Equals(cty.String):
		return cty.StringVal(text), nil
	case kind.Equals(cty.Number):
		val, err := cty.ParseNumberVal(text)
		if err != nil {
			return cty.NilVal, &MalformedTypeError{Reason: fmt.Sprintf("%q is not a number", text)}
		}
		return val, nil
	case kind.Equals(cty.Bool):
		switch text {
		case "true":
			return cty.True, nil
		case "false":
			return cty.False, nil
		}
		return cty.NilVal, &MalformedTypeError{Reason: fmt.Sprintf("%q is not a bool", text)}
	default:
		return cty.NilVal, &MalformedTypeError{
			Reason: fmt.Sprintf("parameter kind %s needs a custom parser", kind.FriendlyName()),
		}
	}
}
