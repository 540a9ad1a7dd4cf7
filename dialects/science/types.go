package science

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/dialect"
)

// The molecule and seq kinds carry custom printer/parser hooks because
// their textual forms quote their payload: a SMILES string may contain
// commas, which the schema-driven default form cannot survive.

// printMolecule renders molecule parameters as smiles='...'.
func printMolecule(params []cty.Value) string {
	return fmt.Sprintf("smiles='%s'", params[0].AsString())
}

// parseMolecule is the inverse of printMolecule.
func parseMolecule(text string) ([]cty.Value, error) {
	smiles, next, err := quoted(text, "smiles", 0)
	if err != nil {
		return nil, err
	}
	if next != len(text) {
		return nil, &dialect.MalformedTypeError{
			Text:   text,
			Offset: next,
			Reason: "unexpected text after the closing quote",
		}
	}
	return []cty.Value{cty.StringVal(smiles)}, nil
}

// printSeq renders seq parameters as alphabet='DNA', length=40.
func printSeq(params []cty.Value) string {
	return fmt.Sprintf("alphabet='%s', length=%s",
		params[0].AsString(), params[1].AsBigFloat().Text('g', -1))
}

// parseSeq is the inverse of printSeq.
func parseSeq(text string) ([]cty.Value, error) {
	alphabet, next, err := quoted(text, "alphabet", 0)
	if err != nil {
		return nil, err
	}
	const sep = ", length="
	if !strings.HasPrefix(text[next:], sep) {
		return nil, &dialect.MalformedTypeError{
			Text:   text,
			Offset: next,
			Reason: fmt.Sprintf("expected %q", sep),
		}
	}
	numStart := next + len(sep)
	length, err2 := cty.ParseNumberVal(text[numStart:])
	if err2 != nil {
		return nil, &dialect.MalformedTypeError{
			Text:   text,
			Offset: numStart,
			Reason: fmt.Sprintf("%q is not a number", text[numStart:]),
		}
	}
	return []cty.Value{cty.StringVal(alphabet), length}, nil
}

// quoted reads a key='value' pair starting at offset. It returns the
// unquoted value and the offset just past the closing quote.
func quoted(text, key string, offset int) (string, int, error) {
	prefix := key + "='"
	if !strings.HasPrefix(text[offset:], prefix) {
		return "", 0, &dialect.MalformedTypeError{
			Text:   text,
			Offset: offset,
			Reason: fmt.Sprintf("expected %q", prefix),
		}
	}
	valStart := offset + len(prefix)
	end := strings.Index(text[valStart:], "'")
	if end < 0 {
		return "", 0, &dialect.MalformedTypeError{
			Text:   text,
			Offset: len(text),
			Reason: "missing closing quote",
		}
	}
	return text[valStart : valStart+end], valStart + end + 1, nil
}
