package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSplitQualified(t *testing.T) {
	t.Run("splits on the first separator", func(t *testing.T) {
		dialect, local, err := SplitQualified("science.protein")
		require.NoError(t, err)
		assert.Equal(t, "science", dialect)
		assert.Equal(t, "protein", local)
	})

	t.Run("keeps later separators in the local name", func(t *testing.T) {
		dialect, local, err := SplitQualified("science.foo.bar")
		require.NoError(t, err)
		assert.Equal(t, "science", dialect)
		assert.Equal(t, "foo.bar", local)
	})

	t.Run("rejects unqualified and degenerate names", func(t *testing.T) {
		for _, name := range []string{"protein", "", ".protein", "science.", "."} {
			_, _, err := SplitQualified(name)
			assert.Error(t, err, "name %q", name)
		}
	})
}

func TestTypeEqual(t *testing.T) {
	protein := func(id string) Type {
		return Type{Dialect: "science", Name: "protein", Params: []cty.Value{cty.StringVal(id)}}
	}

	assert.True(t, protein("P04637").Equal(protein("P04637")))
	assert.False(t, protein("P04637").Equal(protein("Q13315")))
	assert.False(t, protein("P04637").Equal(Type{Dialect: "science", Name: "gene"}))
	assert.False(t, protein("P04637").Equal(Type{Dialect: "other", Name: "protein", Params: []cty.Value{cty.StringVal("P04637")}}))
	assert.False(t, protein("P04637").Equal(Type{Dialect: "science", Name: "protein"}))
}

func TestQualifiedName(t *testing.T) {
	typ := Type{Dialect: "science", Name: "gene"}
	assert.Equal(t, "science.gene", typ.QualifiedName())
}

func TestNewOperation(t *testing.T) {
	op := NewOperation("science.bind")
	require.NotNil(t, op)
	assert.Equal(t, "science.bind", op.Name)
	assert.NotEqual(t, op.ID, NewOperation("science.bind").ID)
	assert.NotNil(t, op.Attrs)
	assert.Empty(t, op.Operands)
}
