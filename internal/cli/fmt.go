package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gogd/internal/logging"
	"github.com/yaklabco/gogd/internal/ui/pretty"
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/runner"
)

type fmtFlags struct {
	check            bool
	diff             bool
	stdout           bool
	stdin            bool
	reorder          bool
	lineLength       int
	useSpaces        bool
	indentSize       int
	unsafeSkipChecks bool
	exclude          []string
	jobs             int
}

func newFmtCommand() *cobra.Command {
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format GDScript files",
		Long: `Format GDScript files to the Godot style guide.

By default, formats all .gd files in the current directory and
subdirectories, rewriting them in place. Specify paths to format specific
files or directories.

Every rewrite is verified before touching disk: the output must parse, must
be structurally equivalent to the input, and formatting it again must be a
no-op. Files that fail verification are skipped with a warning.

Examples:
  gogd fmt                      # Format current directory in place
  gogd fmt scripts/             # Format a directory
  gogd fmt player.gd            # Format a single file
  gogd fmt --check              # Exit 1 if any file would change
  gogd fmt --diff               # Print diffs instead of rewriting
  gogd fmt --reorder            # Also reorder declarations
  cat in.gd | gogd fmt --stdin  # Format stdin to stdout`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags, false)
		},
	}

	addFmtFlags(cmd, flags)

	return cmd
}

func addFmtFlags(cmd *cobra.Command, flags *fmtFlags) {
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit 1 if any file would be reformatted, without writing")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print unified diffs instead of rewriting files")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print formatted output instead of rewriting files")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "read source from stdin and write the result to stdout")
	cmd.Flags().BoolVar(&flags.reorder, "reorder", false, "reorder declarations to the style guide order")
	cmd.Flags().IntVar(&flags.lineLength, "line-length", 0, "visual line-length limit (0 = from config)")
	cmd.Flags().BoolVar(&flags.useSpaces, "use-spaces", false, "indent with spaces instead of tabs")
	cmd.Flags().IntVar(&flags.indentSize, "indent-size", 0, "spaces per indent level with --use-spaces (0 = from config)")
	cmd.Flags().BoolVar(&flags.unsafeSkipChecks, "unsafe-skip-checks", false, "skip output verification (not recommended)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
}

// fmtCLIConfig translates fmt flags into a CLI-level config overlay.
func fmtCLIConfig(flags *fmtFlags) *config.Config {
	cfg := &config.Config{
		Check:            flags.check,
		Diff:             flags.diff,
		Stdout:           flags.stdout,
		UnsafeSkipChecks: flags.unsafeSkipChecks,
		Jobs:             flags.jobs,
		Exclude:          flags.exclude,
	}
	cfg.Format.LineLength = flags.lineLength
	cfg.Format.Reorder = flags.reorder
	if flags.useSpaces {
		cfg.Format.IndentType = config.IndentSpaces
	}
	cfg.Format.IndentSize = flags.indentSize
	return cfg
}

func runFmt(cmd *cobra.Command, args []string, flags *fmtFlags, reorderOnly bool) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	finalCfg, workDir, err := loadConfig(ctx, cmd, fmtCLIConfig(flags), logger)
	if err != nil {
		return err
	}

	if flags.stdin {
		return runFmtStdin(cmd, finalCfg, reorderOnly)
	}

	opts := runner.FormatOptions{
		Options: runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: finalCfg.Exclude,
			Jobs:         finalCfg.Jobs,
			Config:       finalCfg,
		},
		Check:       finalCfg.Check,
		Diff:        finalCfg.Diff,
		Stdout:      finalCfg.Stdout,
		Reorder:     finalCfg.Format.Reorder || reorderOnly,
		ReorderOnly: reorderOnly,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldReorder, opts.Reorder,
	)

	result, err := runner.New().Format(ctx, opts)
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	return reportFormatResult(cmd, result, opts, logger)
}

// runFmtStdin formats a single source read from stdin and writes the result
// to stdout. Verification failures are hard errors here since there is no
// file to leave untouched.
func runFmtStdin(cmd *cobra.Command, cfg *config.Config, reorderOnly bool) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	pr, err := runner.FormatPipeline(content, cfg, cfg.Format.Reorder || reorderOnly, reorderOnly)
	if err != nil {
		return err
	}
	if pr.Skipped {
		return errors.New(pr.SkipReason)
	}

	if _, err := io.WriteString(cmd.OutOrStdout(), pr.Output); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

func reportFormatResult(cmd *cobra.Command, result *runner.FormatResult, opts runner.FormatOptions, logger *log.Logger) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
	out := cmd.OutOrStdout()

	for _, outcome := range result.Outcomes {
		switch {
		case outcome.Error != nil:
			logger.Error("format failed",
				logging.FieldPath, outcome.Path,
				logging.FieldError, outcome.Error)
		case outcome.Skipped:
			logger.Warn("skipped",
				logging.FieldPath, outcome.Path,
				logging.FieldReason, outcome.SkipReason)
		case opts.Stdout:
			fmt.Fprint(out, outcome.Output)
		case opts.Diff && outcome.Diff != nil:
			fmt.Fprint(out, styles.FormatDiff(outcome.Diff))
		case opts.Check && outcome.Changed:
			fmt.Fprintln(out, outcome.Path)
		}
	}

	if !opts.Stdout {
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatFormatSummaryOneLine(result, opts.Check))
	}

	if result.HasErrors() {
		return errors.New("some files failed to format")
	}
	if (opts.Check || opts.Diff) && result.HasChanges() {
		return ErrIssuesFound
	}
	return nil
}
