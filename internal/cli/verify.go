package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scienceos/irkit/internal/dialect"
	"github.com/scienceos/irkit/internal/irfile"
)

// NewVerifyCommand creates the `irkit verify` command. It verifies every
// operation in the given documents, runs each dialect's document-level
// checks, and reports every finding across the whole input before deciding
// the outcome, never just the first. Advisory findings (warnings, infos)
// are reported but only errors fail the command.
func NewVerifyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: "Verify IR operation documents against their descriptors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := a.Context()
			reg := a.Registry()
			out := cmd.OutOrStdout()

			total := 0
			errorCount := 0
			advisoryCount := 0
			tally := func(violations []dialect.Violation) {
				for _, v := range violations {
					if v.Advisory() {
						advisoryCount++
					} else {
						errorCount++
					}
				}
			}

			for _, path := range args {
				ops, err := irfile.LoadFile(ctx, reg, path)
				if err != nil {
					return err
				}
				for i, op := range ops {
					total++
					violations, err := reg.Verify(op)
					if err != nil {
						return err
					}
					if len(violations) == 0 {
						continue
					}
					tally(violations)
					fmt.Fprintf(out, "%s: operation %d (%s): %d finding(s)\n", path, i, op.Name, len(violations))
					writeViolations(out, violations)
				}

				docViolations, err := reg.VerifyDocument(ops)
				if err != nil {
					return err
				}
				if len(docViolations) > 0 {
					tally(docViolations)
					fmt.Fprintf(out, "%s: document: %d finding(s)\n", path, len(docViolations))
					writeViolations(out, docViolations)
				}
			}

			if errorCount > 0 {
				return fmt.Errorf("verification failed: %d error(s), %d advisory finding(s) across %d operation(s)", errorCount, advisoryCount, total)
			}
			if advisoryCount > 0 {
				fmt.Fprintf(out, "ok: %d operation(s) verified, %d advisory finding(s)\n", total, advisoryCount)
				return nil
			}
			fmt.Fprintf(out, "ok: %d operation(s) verified\n", total)
			return nil
		},
	}
}

func writeViolations(w io.Writer, violations []dialect.Violation) {
	for _, line := range strings.Split(dialect.FormatViolations(violations), "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
