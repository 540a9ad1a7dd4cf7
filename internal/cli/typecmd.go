package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"

	"github.com/scienceos/irkit/internal/dialect"
	"github.com/scienceos/irkit/internal/irfile"
)

// NewTypeCommand creates the `irkit type` command group for exercising a
// type descriptor's parse and print hooks from the shell.
func NewTypeCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type",
		Short: "Parse and print dialect-qualified type references",
	}
	cmd.AddCommand(newTypeParseCommand(opts))
	cmd.AddCommand(newTypePrintCommand(opts))
	return cmd
}

// newTypeParseCommand parses a textual type reference, lists the parameter
// values, and echoes the canonical printed form, a round trip through the
// descriptor's parser and printer.
func newTypeParseCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse REF",
		Short: "Parse a type reference like 'science.protein<P04637>'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			reg := a.Registry()
			out := cmd.OutOrStdout()

			t, err := irfile.ParseTypeRef(reg, args[0])
			if err != nil {
				return err
			}
			td, err := reg.ResolveType(t.QualifiedName())
			if err != nil {
				return err
			}
			writeTypeParams(out, td, t.Params)
			canonical, err := irfile.PrintTypeRef(reg, t)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "canonical: %s\n", canonical)
			return nil
		},
	}
}

// newTypePrintCommand parses raw parameter text against a named descriptor
// and prints the full textual reference, exercising the print contract.
func newTypePrintCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "print NAME [TEXT]",
		Short: "Print a type reference from a qualified name and parameter text",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			reg := a.Registry()

			ref := args[0]
			if len(args) == 2 {
				ref += "<" + args[1] + ">"
			}
			t, err := irfile.ParseTypeRef(reg, ref)
			if err != nil {
				return err
			}
			text, err := irfile.PrintTypeRef(reg, t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

// writeTypeParams lists parsed parameter values against the descriptor's
// schema. Custom parsers are not forced to yield one value per schema
// slot, so positions beyond the schema fall back to an index label.
func writeTypeParams(w io.Writer, td *dialect.TypeDescriptor, params []cty.Value) {
	for i, p := range params {
		name := fmt.Sprintf("param %d", i)
		if i < len(td.Params) {
			name = td.Params[i].Name
		}
		fmt.Fprintf(w, "%s = %s\n", name, formatParam(p))
	}
}

func formatParam(v cty.Value) string {
	switch v.Type() {
	case cty.String:
		return fmt.Sprintf("%q", v.AsString())
	case cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	default:
		return v.GoString()
	}
}
