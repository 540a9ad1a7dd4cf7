package manifest

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/scienceos/irkit/internal/ctxlog"
	"github.com/scienceos/irkit/internal/dialect"
)

// yamlFile mirrors hclFile for YAML manifests. Type expressions appear as
// plain strings and run through the same translator as the HCL form.
type yamlFile struct {
	Dialects []*yamlDialect `yaml:"dialects"`
}

type yamlDialect struct {
	ID          string           `yaml:"id"`
	Description string           `yaml:"description"`
	DocVerifier string           `yaml:"doc_verifier"`
	Types       []*yamlType      `yaml:"types"`
	Operations  []*yamlOperation `yaml:"operations"`
}

type yamlType struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	RoundTrip   bool         `yaml:"round_trip"`
	Params      []*yamlParam `yaml:"params"`
	Printer     string       `yaml:"printer"`
	Parser      string       `yaml:"parser"`
}

type yamlParam struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

type yamlOperation struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Operands    *yamlArity       `yaml:"operands"`
	Results     *yamlArity       `yaml:"results"`
	Attributes  []*yamlAttribute `yaml:"attributes"`
	Traits      []string         `yaml:"traits"`
	Verifier    string           `yaml:"verifier"`
}

type yamlArity struct {
	Count    *int `yaml:"count"`
	Variadic bool `yaml:"variadic"`
	Min      *int `yaml:"min"`
}

type yamlAttribute struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required"`
}

// LoadYAML parses a YAML manifest and translates it into the same definition
// model the HCL loader produces.
func LoadYAML(ctx context.Context, src []byte, filename string) ([]*Definition, error) {
	logger := ctxlog.FromContext(ctx)

	var root yamlFile
	if err := yaml.Unmarshal(src, &root); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, err)
	}

	defs := make([]*Definition, 0, len(root.Dialects))
	for _, d := range root.Dialects {
		def, err := translateYAMLDialect(d, filename)
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

func translateYAMLDialect(d *yamlDialect, filename string) (*Definition, error) {
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
			kind, err := ctyTypeFromString(p.Kind, filename)
			if err != nil {
				return nil, fmt.Errorf("type %q, param %q: %w", t.Name, p.Name, err)
			}
			td.Params = append(td.Params, ParamDefinition{Name: p.Name, Kind: kind})
		}
		def.Types = append(def.Types, td)
	}

	for _, o := range d.Operations {
		operands, err := translateYAMLArity(o.Operands)
		if err != nil {
			return nil, fmt.Errorf("operation %q, operands: %w", o.Name, err)
		}
		results, err := translateYAMLArity(o.Results)
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
			attrType, err := ctyTypeFromString(a.Type, filename)
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

func translateYAMLArity(a *yamlArity) (dialect.AritySpec, error) {
	if a == nil {
		return dialect.Fixed(0), nil
	}
	return translateArity(&hclArity{Count: a.Count, Variadic: a.Variadic, Min: a.Min})
}
