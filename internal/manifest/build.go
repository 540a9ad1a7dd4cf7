package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/ctxlog"
	"github.com/scienceos/irkit/internal/dialect"
)

// Build turns a dialect definition plus its Go hooks into a registrable
// dialect entry. It performs the strict parity check between the manifest
// and the Go side: every hook the manifest names must be registered, and a
// registered hook nothing references is logged as probable drift. Unknown
// traits, unexpressible names, and parameter schemas the default
// printer/parser cannot serve all fail here, at startup, instead of
// surfacing later as broken dispatch.
func Build(ctx context.Context, def *Definition, hooks *Hooks) (*dialect.Entry, error) {
	logger := ctxlog.FromContext(ctx)
	if hooks == nil {
		hooks = NewHooks()
	}

	if err := validNameCheck("dialect", def.ID); err != nil {
		return nil, err
	}
	entry := dialect.NewEntry(def.ID, def.Description)

	usedPrinters := map[string]struct{}{}
	usedParsers := map[string]struct{}{}
	usedVerifiers := map[string]struct{}{}
	usedDocVerifiers := map[string]struct{}{}

	if def.DocVerifier != "" {
		fn, ok := hooks.docVerifiers[def.DocVerifier]
		if !ok {
			return nil, fmt.Errorf("dialect %q: manifest names document verifier hook %q, but Go code registered no such hook", def.ID, def.DocVerifier)
		}
		entry.DocVerifier = fn
		usedDocVerifiers[def.DocVerifier] = struct{}{}
	}

	for _, t := range def.Types {
		if err := validNameCheck("type", t.Name); err != nil {
			return nil, err
		}
		td := &dialect.TypeDescriptor{
			Name:        t.Name,
			Description: t.Description,
			RoundTrip:   t.RoundTrip,
		}
		for _, p := range t.Params {
			td.Params = append(td.Params, dialect.ParamSpec{Name: p.Name, Kind: p.Kind})
		}

		if t.Printer != "" {
			fn, ok := hooks.printers[t.Printer]
			if !ok {
				return nil, fmt.Errorf("type %q: manifest names printer hook %q, but Go code registered no such hook", t.Name, t.Printer)
			}
			td.Printer = fn
			usedPrinters[t.Printer] = struct{}{}
		}
		if t.Parser != "" {
			fn, ok := hooks.parsers[t.Parser]
			if !ok {
				return nil, fmt.Errorf("type %q: manifest names parser hook %q, but Go code registered no such hook", t.Name, t.Parser)
			}
			td.Parser = fn
			usedParsers[t.Parser] = struct{}{}
		}
		if td.Printer == nil || td.Parser == nil {
			if err := defaultHooksServe(t); err != nil {
				return nil, fmt.Errorf("type %q: %w", t.Name, err)
			}
		}

		if err := entry.Types.Register(td); err != nil {
			return nil, err
		}
	}

	for _, o := range def.Operations {
		if err := validNameCheck("operation", o.Name); err != nil {
			return nil, err
		}
		od := &dialect.OpDescriptor{
			Name:        o.Name,
			Description: o.Description,
			Operands:    o.Operands,
			Results:     o.Results,
		}
		if len(o.Attributes) > 0 {
			od.Attrs = map[string]dialect.AttrSpec{}
			for _, a := range o.Attributes {
				if _, exists := od.Attrs[a.Name]; exists {
					return nil, fmt.Errorf("operation %q: attribute %q declared twice", o.Name, a.Name)
				}
				od.Attrs[a.Name] = dialect.AttrSpec{Type: a.Type, Required: a.Required}
			}
		}
		for _, name := range o.Traits {
			trait, err := dialect.ParseTrait(name)
			if err != nil {
				return nil, fmt.Errorf("operation %q: %w", o.Name, err)
			}
			od.Traits = append(od.Traits, trait)
		}
		if o.Verifier != "" {
			fn, ok := hooks.verifiers[o.Verifier]
			if !ok {
				return nil, fmt.Errorf("operation %q: manifest names verifier hook %q, but Go code registered no such hook", o.Name, o.Verifier)
			}
			od.Verifier = fn
			usedVerifiers[o.Verifier] = struct{}{}
		}

		if err := entry.Ops.Register(od); err != nil {
			return nil, err
		}
	}

	for name := range hooks.verifiers {
		if _, ok := usedVerifiers[name]; !ok {
			logger.Warn("Go code registered a verifier hook no manifest references.", "dialect", def.ID, "hook", name)
		}
	}
	for name := range hooks.docVerifiers {
		if _, ok := usedDocVerifiers[name]; !ok {
			logger.Warn("Go code registered a document verifier hook no manifest references.", "dialect", def.ID, "hook", name)
		}
	}
	for name := range hooks.printers {
		if _, ok := usedPrinters[name]; !ok {
			logger.Warn("Go code registered a printer hook no manifest references.", "dialect", def.ID, "hook", name)
		}
	}
	for name := range hooks.parsers {
		if _, ok := usedParsers[name]; !ok {
			logger.Warn("Go code registered a parser hook no manifest references.", "dialect", def.ID, "hook", name)
		}
	}

	return entry, nil
}

// defaultHooksServe checks that a type relying on the schema-driven
// printer/parser keeps within what those defaults can render: primitive
// parameter kinds only. Collection-kinded parameters need custom hooks.
func defaultHooksServe(t *TypeDefinition) error {
	var bad []string
	for _, p := range t.Params {
		if !p.Kind.Equals(cty.String) && !p.Kind.Equals(cty.Number) && !p.Kind.Equals(cty.Bool) {
			bad = append(bad, fmt.Sprintf("%s (%s)", p.Name, p.Kind.FriendlyName()))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("default printer/parser support primitive parameter kinds only; provide custom hooks for: %s", strings.Join(bad, ", "))
	}
	return nil
}
