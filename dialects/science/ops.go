package science

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/dialect"
	"github.com/scienceos/irkit/internal/ir"
)

// Custom verifiers run only on structurally valid instances: arity,
// declared attributes and traits have already passed, so operand indexing
// within the declared arity is safe here.

// verifyPhosphorylate checks the kinase slot: only a protein can
// phosphorylate a substrate.
func verifyPhosphorylate(op *ir.Operation) []dialect.Violation {
	var vs []dialect.Violation
	if !isScienceType(op.Operands[0].Type, "protein") {
		vs = append(vs, dialect.Violation{
			Code:    dialect.ViolationCustom,
			Message: fmt.Sprintf("kinase (operand 0) must be science.protein, got %s", op.Operands[0].Type.QualifiedName()),
		})
	}
	return append(vs, provenanceViolations(op)...)
}

// verifyInteraction covers activate and bind: every participant must be a
// science entity type.
func verifyInteraction(op *ir.Operation) []dialect.Violation {
	var vs []dialect.Violation
	for i, operand := range op.Operands {
		if operand.Type.Dialect != ID {
			vs = append(vs, dialect.Violation{
				Code:    dialect.ViolationCustom,
				Message: fmt.Sprintf("operand %d must be a science entity, got %s", i, operand.Type.QualifiedName()),
			})
		}
	}
	return append(vs, provenanceViolations(op)...)
}

// verifyInhibit additionally pins the result: inhibition observes a cell
// state, it does not produce a new entity.
func verifyInhibit(op *ir.Operation) []dialect.Violation {
	vs := verifyInteraction(op)
	if !isScienceType(op.Results[0].Type, "cellstate") {
		vs = append(vs, dialect.Violation{
			Code:    dialect.ViolationCustom,
			Message: fmt.Sprintf("inhibit must produce science.cellstate, got %s", op.Results[0].Type.QualifiedName()),
		})
	}
	return vs
}

// verifyExpress requires a gene on the input side.
func verifyExpress(op *ir.Operation) []dialect.Violation {
	var vs []dialect.Violation
	if !isScienceType(op.Operands[0].Type, "gene") {
		vs = append(vs, dialect.Violation{
			Code:    dialect.ViolationCustom,
			Message: fmt.Sprintf("express takes a science.gene, got %s", op.Operands[0].Type.QualifiedName()),
		})
	}
	return append(vs, provenanceViolations(op)...)
}

// provenanceViolations checks the shared attestation attributes. The
// confidence attribute is an epistemic weight and must lie in [0, 1]; a
// claim without evidence or with confidence below 0.5 is suspect but not
// invalid, so those findings are advisory.
func provenanceViolations(op *ir.Operation) []dialect.Violation {
	var vs []dialect.Violation
	if _, ok := op.Attrs["evidence"]; !ok {
		vs = append(vs, dialect.Violation{
			Code:     dialect.ViolationCustom,
			Severity: dialect.SeverityWarning,
			Message:  "missing evidence",
		})
	}
	if val, ok := op.Attrs["confidence"]; ok {
		// The attribute schema already guarantees a number.
		f := val.AsBigFloat()
		switch {
		case f.Cmp(big.NewFloat(0)) < 0 || f.Cmp(big.NewFloat(1)) > 0:
			vs = append(vs, dialect.Violation{
				Code:    dialect.ViolationCustom,
				Message: fmt.Sprintf("confidence must be within [0, 1], got %s", f.Text('g', -1)),
			})
		case f.Cmp(big.NewFloat(0.5)) < 0:
			vs = append(vs, dialect.Violation{
				Code:     dialect.ViolationCustom,
				Severity: dialect.SeverityInfo,
				Message:  fmt.Sprintf("low confidence: %s", f.Text('g', -1)),
			})
		}
	}
	return vs
}

// verifyDocument is the dialect's document-level hook. A subject/object
// pair that is both activated and inhibited within one document records
// contradictory claims; that deserves a human look, so it is flagged as a
// warning rather than an error.
func verifyDocument(ops []*ir.Operation) []dialect.Violation {
	type record struct {
		subject, object string
		kinds           map[string]bool
	}
	pairs := map[string]*record{}
	var order []string
	for _, op := range ops {
		_, local, err := ir.SplitQualified(op.Name)
		if err != nil || (local != "activate" && local != "inhibit") || len(op.Operands) < 2 {
			continue
		}
		subject := typeLabel(op.Operands[0].Type)
		object := typeLabel(op.Operands[1].Type)
		key := subject + "\x00" + object
		rec, ok := pairs[key]
		if !ok {
			rec = &record{subject: subject, object: object, kinds: map[string]bool{}}
			pairs[key] = rec
			order = append(order, key)
		}
		rec.kinds[local] = true
	}

	var vs []dialect.Violation
	for _, key := range order {
		rec := pairs[key]
		if rec.kinds["activate"] && rec.kinds["inhibit"] {
			vs = append(vs, dialect.Violation{
				Code:     dialect.ViolationCustom,
				Severity: dialect.SeverityWarning,
				Message:  fmt.Sprintf("%s both activates and inhibits %s", rec.subject, rec.object),
			})
		}
	}
	return vs
}

func isScienceType(t ir.Type, name string) bool {
	return t.Dialect == ID && t.Name == name
}

// typeLabel renders a type instance for pair matching and messages.
// Two instances get the same label exactly when their textual forms agree.
func typeLabel(t ir.Type) string {
	if len(t.Params) == 0 {
		return t.QualifiedName()
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		switch p.Type() {
		case cty.String:
			parts[i] = p.AsString()
		case cty.Number:
			parts[i] = p.AsBigFloat().Text('g', -1)
		case cty.Bool:
			if p.True() {
				parts[i] = "true"
			} else {
				parts[i] = "false"
			}
		default:
			parts[i] = p.GoString()
		}
	}
	return t.QualifiedName() + "<" + strings.Join(parts, ", ") + ">"
}
