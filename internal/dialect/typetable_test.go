package dialect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func newTensorDescriptor() *TypeDescriptor {
	return &TypeDescriptor{
		Name:      "tensor",
		RoundTrip: true,
		Params:    []ParamSpec{{Name: "rank", Kind: cty.Number}},
	}
}

func TestTypeTableRegister(t *testing.T) {
	t.Run("registered descriptor is returned identically", func(t *testing.T) {
		table := NewTypeTable("science")
		td := newTensorDescriptor()
		require.NoError(t, table.Register(td))

		got, err := table.Lookup("tensor")
		require.NoError(t, err)
		assert.Same(t, td, got)

		// A second lookup observes the same descriptor, not a copy.
		again, err := table.Lookup("tensor")
		require.NoError(t, err)
		assert.Same(t, got, again)
	})

	t.Run("duplicate name fails and leaves the table unchanged", func(t *testing.T) {
		table := NewTypeTable("science")
		original := newTensorDescriptor()
		require.NoError(t, table.Register(original))

		err := table.Register(newTensorDescriptor())
		var dup *DuplicateTypeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "science", dup.Dialect)
		assert.Equal(t, "tensor", dup.Name)

		got, lookupErr := table.Lookup("tensor")
		require.NoError(t, lookupErr)
		assert.Same(t, original, got)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("unknown name is NotFoundError", func(t *testing.T) {
		table := NewTypeTable("science")
		_, err := table.Lookup("matrix")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "type", nf.Kind)
		assert.Equal(t, "science.matrix", nf.Name)
	})
}

func TestTypeTableDefaultHooks(t *testing.T) {
	table := NewTypeTable("science")
	require.NoError(t, table.Register(&TypeDescriptor{
		Name:      "gene",
		RoundTrip: true,
		Params: []ParamSpec{
			{Name: "symbol", Kind: cty.String},
			{Name: "hgnc", Kind: cty.String},
		},
	}))
	require.NoError(t, table.Register(&TypeDescriptor{
		Name:      "seq",
		RoundTrip: true,
		Params: []ParamSpec{
			{Name: "alphabet", Kind: cty.String},
			{Name: "length", Kind: cty.Number},
		},
	}))
	require.NoError(t, table.Register(&TypeDescriptor{Name: "void"}))

	t.Run("print renders schema order comma separated", func(t *testing.T) {
		text, err := table.Print("gene", []cty.Value{cty.StringVal("TP53"), cty.StringVal("11998")})
		require.NoError(t, err)
		assert.Equal(t, "TP53, 11998", text)
	})

	t.Run("parse round-trips printed parameters", func(t *testing.T) {
		params := []cty.Value{cty.StringVal("DNA"), cty.NumberIntVal(40)}
		text, err := table.Print("seq", params)
		require.NoError(t, err)

		got, err := table.Parse("seq", text)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for i := range params {
			assert.Equal(t, cty.True, got[i].Equals(params[i]), "param %d", i)
		}
	})

	t.Run("parse tolerates surrounding spaces", func(t *testing.T) {
		got, err := table.Parse("gene", "TP53,   11998")
		require.NoError(t, err)
		assert.Equal(t, "11998", got[1].AsString())
	})

	t.Run("zero-parameter type accepts only empty text", func(t *testing.T) {
		params, err := table.Parse("void", "")
		require.NoError(t, err)
		assert.Empty(t, params)

		_, err = table.Parse("void", "x")
		var mte *MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Equal(t, 0, mte.Offset)
	})

	t.Run("malformed number carries text and offset", func(t *testing.T) {
		_, err := table.Parse("seq", "DNA, forty")
		var mte *MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Equal(t, "science.seq", mte.Type)
		assert.Equal(t, "DNA, forty", mte.Text)
		assert.Equal(t, 5, mte.Offset)
		assert.Contains(t, mte.Reason, "forty")
	})

	t.Run("too few parameters is malformed", func(t *testing.T) {
		_, err := table.Parse("gene", "TP53")
		var mte *MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Equal(t, len("TP53"), mte.Offset)
	})

	t.Run("too many parameters points at the extra separator", func(t *testing.T) {
		_, err := table.Parse("gene", "TP53, 11998, extra")
		var mte *MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Equal(t, len("TP53, 11998"), mte.Offset)
	})

	t.Run("printer panics on schema-invalid parameters", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = table.Print("gene", []cty.Value{cty.StringVal("TP53")})
		})
	})
}

func TestTypeTableCustomHooks(t *testing.T) {
	table := NewTypeTable("science")
	require.NoError(t, table.Register(&TypeDescriptor{
		Name:   "molecule",
		Params: []ParamSpec{{Name: "smiles", Kind: cty.String}},
		Printer: func(params []cty.Value) string {
			return fmt.Sprintf("smiles='%s'", params[0].AsString())
		},
		Parser: func(text string) ([]cty.Value, error) {
			if len(text) < 9 || text[:8] != "smiles='" || text[len(text)-1] != '\'' {
				return nil, &MalformedTypeError{Text: text, Offset: 0, Reason: "expected smiles='...'"}
			}
			return []cty.Value{cty.StringVal(text[8 : len(text)-1])}, nil
		},
	}))

	t.Run("print and parse delegate to the hooks", func(t *testing.T) {
		text, err := table.Print("molecule", []cty.Value{cty.StringVal("CC(=O)O")})
		require.NoError(t, err)
		assert.Equal(t, "smiles='CC(=O)O'", text)

		params, err := table.Parse("molecule", text)
		require.NoError(t, err)
		assert.Equal(t, "CC(=O)O", params[0].AsString())
	})

	t.Run("hook rejection surfaces as MalformedTypeError with the type name filled in", func(t *testing.T) {
		_, err := table.Parse("molecule", "garbage")
		var mte *MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Equal(t, "science.molecule", mte.Type)
	})

	t.Run("plain hook errors are wrapped", func(t *testing.T) {
		require.NoError(t, table.Register(&TypeDescriptor{
			Name: "odd",
			Parser: func(string) ([]cty.Value, error) {
				return nil, errors.New("nope")
			},
		}))
		_, err := table.Parse("odd", "anything")
		var mte *MalformedTypeError
		require.ErrorAs(t, err, &mte)
		assert.Equal(t, "anything", mte.Text)
		assert.Contains(t, mte.Reason, "nope")
	})
}
