package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/scienceos/irkit/internal/ctxlog"
	"github.com/scienceos/irkit/internal/dialect"
)

// LoadFile reads a manifest file, choosing the loader by extension
// (.hcl, .yaml, .yml).
func LoadFile(ctx context.Context, path string) ([]*Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	switch ext := filepath.Ext(path); ext {
	case ".hcl":
		return LoadHCL(ctx, src, path)
	case ".yaml", ".yml":
		return LoadYAML(ctx, src, path)
	default:
		return nil, fmt.Errorf("manifest %s has unsupported extension %q", path, ext)
	}
}

// LoadHCL parses HCL manifest source and translates it into the
// format-agnostic definition model.
func LoadHCL(ctx context.Context, src []byte, filename string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}

	defs := make([]*Definition, 0, len(root.Dialects))
	for _, d := range root.Dialects {
		def, err := translateDialect(d)
		if err != nil {
			return nil, fmt.Errorf("manifest %s, dialect %q: %w", filename, d.ID, err)
		}
		defs = append(defs, def)
		logger.Debug("Loaded dialect definition.",
			"file", filename, "dialect", def.ID,
			"types", len(def.Types), "operations", len(def.Operations))
	}
	return defs, nil
}

func translateDialect(d *hclDialect) (*Definition, error) {
	def := &Definition{ID: d.ID, Description: d.Description, DocVerifier: d.DocVerifier}
	if def.ID == "" {
		return nil, fmt.Errorf("dialect id must not be empty")
	}

	for _, t := range d.Types {
		td := &TypeDefinition{
			Name:        t.Name,
			Description: t.Description,
			RoundTrip:   t.RoundTrip,
			Printer:     t.Printer,
			Parser:      t.Parser,
		}
		for _, p := range t.Params {
			kind, err := ctyTypeFromExpr(p.Kind)
			if err != nil {
				return nil, fmt.Errorf("type %q, param %q: %w", t.Name, p.Name, err)
			}
			td.Params = append(td.Params, ParamDefinition{Name: p.Name, Kind: kind})
		}
		def.Types = append(def.Types, td)
	}

	for _, o := range d.Operations {
		operands, err := translateArity(o.Operands)
		if err != nil {
			return nil, fmt.Errorf("operation %q, operands: %w", o.Name, err)
		}
		results, err := translateArity(o.Results)
		if err != nil {
			return nil, fmt.Errorf("operation %q, results: %w", o.Name, err)
		}
		od := &OpDefinition{
			Name:        o.Name,
			Description: o.Description,
			Operands:    operands,
			Results:     results,
			Traits:      o.Traits,
			Verifier:    o.Verifier,
		}
		for _, a := range o.Attributes {
			attrType, err := ctyTypeFromExpr(a.Type)
			if err != nil {
				return nil, fmt.Errorf("operation %q, attribute %q: %w", o.Name, a.Name, err)
			}
			od.Attributes = append(od.Attributes, AttrDefinition{
				Name:     a.Name,
				Type:     attrType,
				Required: a.Required,
			})
		}
		def.Operations = append(def.Operations, od)
	}
	return def, nil
}

// translateArity maps an operands/results block to an arity spec. A missing
// block means fixed zero, matching kinds that take or produce nothing.
func translateArity(a *hclArity) (dialect.AritySpec, error) {
	if a == nil {
		return dialect.Fixed(0), nil
	}
	if a.Variadic {
		if a.Count != nil {
			return dialect.AritySpec{}, fmt.Errorf("'count' and 'variadic' are mutually exclusive")
		}
		min := 0
		if a.Min != nil {
			min = *a.Min
		}
		if min < 0 {
			return dialect.AritySpec{}, fmt.Errorf("'min' must not be negative")
		}
		return dialect.Variadic(min), nil
	}
	if a.Min != nil {
		return dialect.AritySpec{}, fmt.Errorf("'min' requires 'variadic = true'")
	}
	count := 0
	if a.Count != nil {
		count = *a.Count
	}
	if count < 0 {
		return dialect.AritySpec{}, fmt.Errorf("'count' must not be negative")
	}
	return dialect.Fixed(count), nil
}

// validNameCheck rejects descriptor names the qualified-name grammar cannot
// express: empty names and names containing the "." separator.
func validNameCheck(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", kind)
	}
	if strings.Contains(name, ".") {
		return fmt.Errorf("%s name %q must not contain '.'", kind, name)
	}
	return nil
}
