package dialect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/ir"
)

// newScienceEntry builds the canonical fixture dialect: a tensor type with
// an integer rank parameter and the matmul operation.
func newScienceEntry(t *testing.T) *Entry {
	t.Helper()
	entry := NewEntry("science", "fixture dialect")
	require.NoError(t, entry.Types.Register(newTensorDescriptor()))
	require.NoError(t, entry.Ops.Register(newMatmulDescriptor()))
	return entry
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	entry := newScienceEntry(t)
	require.NoError(t, reg.RegisterDialect(context.Background(), entry))

	t.Run("registered type resolves to the identical descriptor", func(t *testing.T) {
		td, err := reg.ResolveType("science.tensor")
		require.NoError(t, err)
		expected, err := entry.Types.Lookup("tensor")
		require.NoError(t, err)
		assert.Same(t, expected, td)

		// Resolution is deterministic and referentially stable.
		again, err := reg.ResolveType("science.tensor")
		require.NoError(t, err)
		assert.Same(t, td, again)
	})

	t.Run("unregistered type fails with NotFoundError", func(t *testing.T) {
		_, err := reg.ResolveType("science.matrix")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "type", nf.Kind)
	})

	t.Run("operation resolves through its own namespace", func(t *testing.T) {
		od, err := reg.ResolveOp("science.matmul")
		require.NoError(t, err)
		assert.Equal(t, "matmul", od.Name)

		// Types and operations draw from separate namespaces.
		_, err = reg.ResolveType("science.matmul")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("unknown dialect fails with NotFoundError naming the dialect", func(t *testing.T) {
		_, err := reg.ResolveOp("physics.collide")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "dialect", nf.Kind)
		assert.Equal(t, "physics", nf.Name)
	})

	t.Run("unqualified name cannot resolve", func(t *testing.T) {
		_, err := reg.ResolveType("tensor")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestRegistryDuplicateDialect(t *testing.T) {
	reg := NewRegistry()
	ctx := context.Background()
	original := newScienceEntry(t)
	require.NoError(t, reg.RegisterDialect(ctx, original))

	err := reg.RegisterDialect(ctx, NewEntry("science", "impostor"))
	var dup *DuplicateDialectError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "science", dup.ID)

	// The failed attempt left the registry unchanged.
	got, lookupErr := reg.Dialect("science")
	require.NoError(t, lookupErr)
	assert.Same(t, original, got)
	assert.Equal(t, []string{"science"}, reg.IDs())
}

func TestRegistryVerify(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterDialect(context.Background(), newScienceEntry(t)))

	t.Run("valid matmul instance verifies with zero violations", func(t *testing.T) {
		violations, err := reg.Verify(validMatmul())
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("missing precision is exactly one violation", func(t *testing.T) {
		op := validMatmul()
		delete(op.Attrs, "precision")
		violations, err := reg.Verify(op)
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Contains(t, violations[0].Message, `"precision"`)
	})

	t.Run("unresolvable operation name is an error", func(t *testing.T) {
		op := ir.NewOperation("science.conv")
		_, err := reg.Verify(op)
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestRegistryVerifyDocument(t *testing.T) {
	reg := NewRegistry()
	entry := newScienceEntry(t)
	var seen []*ir.Operation
	entry.DocVerifier = func(ops []*ir.Operation) []Violation {
		seen = ops
		return []Violation{{
			Code:     ViolationCustom,
			Severity: SeverityWarning,
			Message:  "contradictory claims",
		}}
	}
	require.NoError(t, reg.RegisterDialect(context.Background(), entry))

	t.Run("hook sees every operation of its dialect", func(t *testing.T) {
		seen = nil
		ops := []*ir.Operation{validMatmul(), validMatmul()}
		violations, err := reg.VerifyDocument(ops)
		require.NoError(t, err)
		require.Len(t, seen, 2)
		assert.Same(t, ops[0], seen[0])
		assert.Same(t, ops[1], seen[1])
		require.Len(t, violations, 1)
		assert.True(t, violations[0].Advisory())
		assert.Contains(t, violations[0].Message, "contradictory claims")
	})

	t.Run("unresolvable operation name is an error", func(t *testing.T) {
		_, err := reg.VerifyDocument([]*ir.Operation{ir.NewOperation("physics.collide")})
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("dialect without a hook contributes nothing", func(t *testing.T) {
		bare := NewRegistry()
		require.NoError(t, bare.RegisterDialect(context.Background(), newScienceEntry(t)))
		violations, err := bare.VerifyDocument([]*ir.Operation{validMatmul()})
		require.NoError(t, err)
		assert.Empty(t, violations)
	})
}

func TestRegistryTensorScenario(t *testing.T) {
	// The end-to-end shape of the dialect protocol: register a type with a
	// numeric rank parameter, resolve it, and round-trip an instance's
	// parameters through the table hooks.
	reg := NewRegistry()
	entry := NewEntry("science", "")
	require.NoError(t, entry.Types.Register(&TypeDescriptor{
		Name:      "tensor",
		RoundTrip: true,
		Params:    []ParamSpec{{Name: "rank", Kind: cty.Number}},
	}))
	require.NoError(t, reg.RegisterDialect(context.Background(), entry))

	td, err := reg.ResolveType("science.tensor")
	require.NoError(t, err)
	require.True(t, td.RoundTrip)

	params := []cty.Value{cty.NumberIntVal(3)}
	text, err := entry.Types.Print("tensor", params)
	require.NoError(t, err)
	got, err := entry.Types.Parse("tensor", text)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cty.True, got[0].Equals(params[0]))
}
