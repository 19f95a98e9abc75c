package cli

import (
	"github.com/spf13/cobra"
)

func newOrderCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "order [paths...]",
		Short: "Reorder declarations without reformatting",
		Long: `Reorder top-level and class-body declarations to the Godot style
guide order, leaving everything else untouched.

Unlike 'gogd fmt --reorder', this does not reformat the surrounding code:
spacing, wrapping, and existing layout are preserved. Only whole
declarations move, carrying their comments and blank-line prefixes with
them.

Examples:
  gogd order                # Reorder current directory in place
  gogd order player.gd      # Reorder a single file
  gogd order --check        # Exit 1 if any file would change
  gogd order --diff         # Print diffs instead of rewriting`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags, true)
		},
	}

	cmd.Flags().BoolVar(&flags.check, "check", false, "exit 1 if any file would be reordered, without writing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print unified diffs instead of rewriting files")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print reordered output instead of rewriting files")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read source from stdin and write the result to stdout")
	cmd.Flags().BoolVar(&flags.unsafeSkipChecks, "unsafe-skip-checks", false, "skip output verification (not recommended)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")

	return cmd
}
