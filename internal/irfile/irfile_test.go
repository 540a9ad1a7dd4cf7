package irfile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/dialects/science"
	"github.com/scienceos/irkit/internal/ctxlog"
	"github.com/scienceos/irkit/internal/dialect"
)

func newRegistry(t *testing.T) *dialect.Registry {
	t.Helper()
	reg := dialect.NewRegistry()
	require.NoError(t, (&science.Dialect{}).Register(testCtx(), reg))
	return reg
}

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

const sampleDoc = `
operations:
  - name: science.phosphorylate
    operands:
      - science.protein<Q13315>
      - science.protein<P04637>
    results:
      - science.protein<P04637>
    attributes:
      site: S15
      confidence: 0.8
      evidence: PMID:10570149
`

func TestLoad(t *testing.T) {
	reg := newRegistry(t)
	ops, err := Load(testCtx(), reg, []byte(sampleDoc), "sample.yaml")
	require.NoError(t, err)
	require.Len(t, ops, 1)

	op := ops[0]
	assert.Equal(t, "science.phosphorylate", op.Name)
	require.Len(t, op.Operands, 2)
	assert.Equal(t, "science.protein", op.Operands[0].Type.QualifiedName())
	assert.Equal(t, "Q13315", op.Operands[0].Type.Params[0].AsString())
	assert.Equal(t, cty.True, op.Attrs["site"].Equals(cty.StringVal("S15")))
	assert.Equal(t, cty.True, op.Attrs["confidence"].Equals(cty.NumberFloatVal(0.8)))

	violations, err := reg.Verify(op)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestLoadErrors(t *testing.T) {
	reg := newRegistry(t)

	t.Run("unregistered operation name", func(t *testing.T) {
		doc := "operations:\n  - name: science.transcribe\n"
		_, err := Load(testCtx(), reg, []byte(doc), "bad.yaml")
		var nf *dialect.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "operation", nf.Kind)
	})

	t.Run("unregistered dialect in a type reference", func(t *testing.T) {
		doc := `
operations:
  - name: science.activate
    operands:
      - physics.particle<e>
`
		_, err := Load(testCtx(), reg, []byte(doc), "bad.yaml")
		var nf *dialect.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "dialect", nf.Kind)
	})

	t.Run("malformed type parameters carry position", func(t *testing.T) {
		doc := `
operations:
  - name: science.activate
    operands:
      - science.seq<alphabet='DNA', length=many>
`
		_, err := Load(testCtx(), reg, []byte(doc), "bad.yaml")
		var mte *dialect.MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Contains(t, mte.Reason, "many")
	})

	t.Run("non-scalar attribute values are rejected", func(t *testing.T) {
		doc := `
operations:
  - name: science.activate
    attributes:
      evidence: [a, b]
`
		_, err := Load(testCtx(), reg, []byte(doc), "bad.yaml")
		assert.ErrorContains(t, err, "only scalars")
	})
}

func TestParseTypeRef(t *testing.T) {
	reg := newRegistry(t)

	t.Run("single parameter reference", func(t *testing.T) {
		typ, err := ParseTypeRef(reg, "science.unknown<STK11 variant>")
		require.NoError(t, err)
		assert.Equal(t, "STK11 variant", typ.Params[0].AsString())
	})

	t.Run("missing closing bracket", func(t *testing.T) {
		_, err := ParseTypeRef(reg, "science.protein<P04637")
		var mte *dialect.MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Equal(t, len("science.protein<P04637"), mte.Offset)
	})

	t.Run("unqualified name", func(t *testing.T) {
		_, err := ParseTypeRef(reg, "protein<P04637>")
		var nf *dialect.NotFoundError
		require.ErrorAs(t, err, &nf)
	})
}

func TestPrintTypeRef(t *testing.T) {
	reg := newRegistry(t)

	typ, err := ParseTypeRef(reg, "science.gene<TP53, 11998>")
	require.NoError(t, err)

	text, err := PrintTypeRef(reg, typ)
	require.NoError(t, err)
	assert.Equal(t, "science.gene<TP53, 11998>", text)

	roundTripped, err := ParseTypeRef(reg, text)
	require.NoError(t, err)
	assert.True(t, typ.Equal(roundTripped))
}
