package irfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/scienceos/irkit/internal/ctxlog"
	"github.com/scienceos/irkit/internal/dialect"
	"github.com/scienceos/irkit/internal/ir"
)

// yamlDoc is the YAML shape of a construction-request document.
type yamlDoc struct {
	Operations []*yamlOp `yaml:"operations"`
}

type yamlOp struct {
	Name       string         `yaml:"name"`
	Operands   []string       `yaml:"operands"`
	Results    []string       `yaml:"results"`
	Attributes map[string]any `yaml:"attributes"`
	Regions    int            `yaml:"regions"`
}

// LoadFile reads a YAML document of construction requests and materializes
// the operation instances, resolving every qualified name through reg.
func LoadFile(ctx context.Context, reg *dialect.Registry, path string) ([]*ir.Operation, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read IR document %s: %w", path, err)
	}
	return Load(ctx, reg, src, path)
}

// Load materializes operation instances from YAML source.
func Load(ctx context.Context, reg *dialect.Registry, src []byte, filename string) ([]*ir.Operation, error) {
	logger := ctxlog.FromContext(ctx)

	var doc yamlDoc
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse IR document %s: %w", filename, err)
	}

	ops := make([]*ir.Operation, 0, len(doc.Operations))
	for i, y := range doc.Operations {
		op, err := buildOp(reg, y)
		if err != nil {
			return nil, fmt.Errorf("IR document %s, operation %d (%s): %w", filename, i, y.Name, err)
		}
		ops = append(ops, op)
	}
	logger.Debug("Loaded IR document.", "file", filename, "operations", len(ops))
	return ops, nil
}

func buildOp(reg *dialect.Registry, y *yamlOp) (*ir.Operation, error) {
	// Resolution failure is an error even though the instance is never
	// executed here; an unresolved reference is never a silent no-op.
	if _, err := reg.ResolveOp(y.Name); err != nil {
		return nil, err
	}

	op := ir.NewOperation(y.Name)
	op.Regions = y.Regions
	for _, ref := range y.Operands {
		t, err := ParseTypeRef(reg, ref)
		if err != nil {
			return nil, err
		}
		op.Operands = append(op.Operands, ir.Value{Type: t})
	}
	for _, ref := range y.Results {
		t, err := ParseTypeRef(reg, ref)
		if err != nil {
			return nil, err
		}
		op.Results = append(op.Results, ir.Value{Type: t})
	}
	for name, raw := range y.Attributes {
		val, err := attrValue(raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", name, err)
		}
		op.Attrs[name] = val
	}
	return op, nil
}

// attrValue converts a decoded YAML scalar to its cty equivalent. The
// document format keeps attribute values scalar; richer attribute payloads
// belong in dialect-specific type parameters, not here.
func attrValue(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case string:
		return cty.StringVal(v), nil
	case bool:
		return cty.BoolVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported attribute value %v (%T); only scalars are allowed", raw, raw)
	}
}

// ParseTypeRef parses a textual type reference of the form
// "dialect.name<params>" (the "<params>" part optional) into a type
// instance, delegating parameter text to the owning descriptor's parser.
func ParseTypeRef(reg *dialect.Registry, ref string) (ir.Type, error) {
	name := ref
	paramText := ""
	if i := strings.Index(ref, "<"); i >= 0 {
		if !strings.HasSuffix(ref, ">") {
			return ir.Type{}, &dialect.MalformedTypeError{
				Type:   ref,
				Text:   ref,
				Offset: len(ref),
				Reason: "missing closing '>'",
			}
		}
		name = ref[:i]
		paramText = ref[i+1 : len(ref)-1]
	}

	dialectID, local, err := ir.SplitQualified(name)
	if err != nil {
		return ir.Type{}, &dialect.NotFoundError{Kind: "type", Name: name}
	}
	entry, err := reg.Dialect(dialectID)
	if err != nil {
		return ir.Type{}, err
	}
	params, err := entry.Types.Parse(local, paramText)
	if err != nil {
		return ir.Type{}, err
	}
	return ir.Type{Dialect: dialectID, Name: local, Params: params}, nil
}

// PrintTypeRef renders a type instance back to its textual reference form.
func PrintTypeRef(reg *dialect.Registry, t ir.Type) (string, error) {
	entry, err := reg.Dialect(t.Dialect)
	if err != nil {
		return "", err
	}
	text, err := entry.Types.Print(t.Name, t.Params)
	if err != nil {
		return "", err
	}
	if text == "" {
		return t.QualifiedName(), nil
	}
	return t.QualifiedName() + "<" + text + ">", nil
}
