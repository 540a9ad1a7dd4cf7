package dialect

import (
	"fmt"
	"sort"

	"github.com/scienceos/irkit/internal/ir"
)

// Trait is a named structural contract an operation kind declares. The
// generic verifier checks every declared trait uniformly, without knowing
// anything about the declaring dialect.
type Trait string

const (
	// TraitNoSideEffects marks a kind as a pure computation. Region-carrying
	// operations are assumed to effect their enclosed body, so the check
	// requires zero regions.
	TraitNoSideEffects Trait = "no_side_effects"

	// TraitNoRegions requires an instance to carry no regions.
	TraitNoRegions Trait = "no_regions"

	// TraitOneRegion requires exactly one region.
	TraitOneRegion Trait = "one_region"

	// TraitTerminator marks a block-ending kind; terminators produce no
	// results, since nothing after them can use one.
	TraitTerminator Trait = "terminator"

	// TraitSameOperandTypes requires all operand types to be identical.
	TraitSameOperandTypes Trait = "same_operand_types"
)

// traitChecks maps each known trait to its structural check. A nil return
// means the instance satisfies the trait.
var traitChecks = map[Trait]func(op *ir.Operation) *Violation{
	TraitNoSideEffects:    checkNoRegions,
	TraitNoRegions:        checkNoRegions,
	TraitOneRegion:        checkOneRegion,
	TraitTerminator:       checkTerminator,
	TraitSameOperandTypes: checkSameOperandTypes,
}

// KnownTraits returns the trait vocabulary in sorted order.
func KnownTraits() []Trait {
	traits := make([]Trait, 0, len(traitChecks))
	for t := range traitChecks {
		traits = append(traits, t)
	}
	sort.Slice(traits, func(i, j int) bool { return traits[i] < traits[j] })
	return traits
}

// ParseTrait resolves a manifest trait name against the known vocabulary.
// Unknown names fail descriptor construction rather than being carried as
// unverifiable contracts.
func ParseTrait(name string) (Trait, error) {
	t := Trait(name)
	if _, ok := traitChecks[t]; !ok {
		return "", fmt.Errorf("unknown trait %q", name)
	}
	return t, nil
}

func checkNoRegions(op *ir.Operation) *Violation {
	if op.Regions == 0 {
		return nil
	}
	return &Violation{
		Code:    ViolationTrait,
		Message: fmt.Sprintf("trait requires no regions, instance has %d", op.Regions),
	}
}

func checkOneRegion(op *ir.Operation) *Violation {
	if op.Regions == 1 {
		return nil
	}
	return &Violation{
		Code:    ViolationTrait,
		Message: fmt.Sprintf("trait 'one_region' requires exactly one region, instance has %d", op.Regions),
	}
}

func checkTerminator(op *ir.Operation) *Violation {
	if len(op.Results) == 0 {
		return nil
	}
	return &Violation{
		Code:    ViolationTrait,
		Message: fmt.Sprintf("trait 'terminator' forbids results, instance has %d", len(op.Results)),
	}
}

func checkSameOperandTypes(op *ir.Operation) *Violation {
	for i := 1; i < len(op.Operands); i++ {
		if !op.Operands[i].Type.Equal(op.Operands[0].Type) {
			return &Violation{
				Code: ViolationTrait,
				Message: fmt.Sprintf("trait 'same_operand_types' violated: operand %d is %s, operand 0 is %s",
					i, op.Operands[i].Type.QualifiedName(), op.Operands[0].Type.QualifiedName()),
			}
		}
	}
	return nil
}
