package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scienceos/irkit/internal/dialect"
)

// NewDialectsCommand creates the `irkit dialects` command, which lists every
// registered dialect with its descriptor tables.
func NewDialectsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects and their descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return renderDialects(cmd.OutOrStdout(), a.Registry())
		},
	}
}

// renderDialects writes a deterministic listing: dialects sorted by id,
// descriptors in registration order.
func renderDialects(w io.Writer, reg *dialect.Registry) error {
	for _, id := range reg.IDs() {
		entry, err := reg.Dialect(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "dialect %s: %s\n", entry.ID, entry.Description)

		fmt.Fprintf(w, "  types (%d):\n", entry.Types.Len())
		for _, name := range entry.Types.Names() {
			td, err := entry.Types.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "    %s%s\n", name, renderParams(td.Params))
		}

		fmt.Fprintf(w, "  operations (%d):\n", entry.Ops.Len())
		for _, name := range entry.Ops.Names() {
			od, err := entry.Ops.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "    %s (operands: %s, results: %s)%s\n",
				name, od.Operands, od.Results, renderTraits(od.Traits))
		}
	}
	return nil
}

func renderParams(params []dialect.ParamSpec) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name, p.Kind.FriendlyName())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func renderTraits(traits []dialect.Trait) string {
	if len(traits) == 0 {
		return ""
	}
	parts := make([]string, len(traits))
	for i, t := range traits {
		parts[i] = string(t)
	}
	return " {" + strings.Join(parts, ", ") + "}"
}
