package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gogd/internal/logging"
	"github.com/yaklabco/gogd/internal/ui/pretty"
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/runner"
)

type lintFlags struct {
	format    string
	strict    bool
	enable    []string
	disable   []string
	exclude   []string
	jobs      int
	noContext bool
	summary   bool
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint GDScript files",
		Long: `Check GDScript files against naming, formatting, and design rules.

By default, lints all .gd files in the current directory and
subdirectories. Diagnostics at error severity exit with code 1; warnings
exit 0 unless --strict is set.

Individual diagnostics can be suppressed in source with
'# gdlint:ignore=rule-id' comments, or whole regions with
'# gdlint:disable' and '# gdlint:enable'.

Examples:
  gogd lint                      # Lint current directory
  gogd lint scripts/ player.gd   # Lint specific paths
  gogd lint --strict             # Treat warnings as failures
  gogd lint --format json        # Machine-readable output
  gogd lint --disable max-line-length`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit 1 on warnings as well as errors")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs to enable in addition to the configuration")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs to disable for this run")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source context under each diagnostic")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a block summary instead of a single line")

	return cmd
}

func lintCLIConfig(flags *lintFlags) *config.Config {
	return &config.Config{
		Strict:       flags.strict,
		Output:       config.OutputFormat(flags.format),
		Jobs:         flags.jobs,
		Exclude:      flags.exclude,
		EnableRules:  flags.enable,
		DisableRules: flags.disable,
	}
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	cliCfg := lintCLIConfig(flags)
	if !cmd.Flags().Changed("format") {
		// Leave the output format to the config layers unless the flag
		// was given explicitly.
		cliCfg.Output = ""
	}

	finalCfg, workDir, err := loadConfig(ctx, cmd, cliCfg, logger)
	if err != nil {
		return err
	}

	opts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: finalCfg.Exclude,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting lint run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New().Lint(ctx, opts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	if finalCfg.Output == config.FormatJSON {
		if err := writeLintJSON(cmd, result); err != nil {
			return err
		}
	} else {
		writeLintText(cmd, result, flags, logger)
	}

	if result.Stats.FilesErrored > 0 {
		return errors.New("some files failed to lint")
	}
	if result.ErrorDiagnostics > 0 {
		return ErrIssuesFound
	}
	if finalCfg.Strict && result.WarningDiagnostics > 0 {
		return ErrIssuesFound
	}
	return nil
}

func writeLintText(cmd *cobra.Command, result *runner.LintResult, flags *lintFlags, logger *log.Logger) {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
	out := cmd.OutOrStdout()

	for _, outcome := range result.Outcomes {
		switch {
		case outcome.Error != nil:
			logger.Error("lint failed",
				logging.FieldPath, outcome.Path,
				logging.FieldError, outcome.Error)
			continue
		case outcome.Skipped:
			logger.Warn("skipped",
				logging.FieldPath, outcome.Path,
				logging.FieldReason, outcome.SkipReason)
			continue
		}
		if outcome.Result == nil || !outcome.Result.HasIssues() {
			continue
		}

		fmt.Fprintln(out, styles.FormatFileHeader(outcome.Path, len(outcome.Result.Diagnostics)))
		lines := sourceLines(outcome.Path)
		for _, diag := range outcome.Result.Diagnostics {
			sourceLine := ""
			if !flags.noContext && diag.Line >= 1 && diag.Line <= len(lines) {
				sourceLine = lines[diag.Line-1]
			}
			fmt.Fprint(out, styles.FormatDiagnostic(diag, !flags.noContext, sourceLine))
		}
		fmt.Fprintln(out)
	}

	if flags.summary {
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatLintSummary(result))
	} else {
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatLintSummaryOneLine(result))
	}
}

// sourceLines re-reads a linted file to show source context. A read failure
// just drops the context; the diagnostics were already produced.
func sourceLines(path string) []string {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return strings.Split(string(content), "\n")
}

// lintJSONDiagnostic is the stable machine-readable diagnostic shape.
type lintJSONDiagnostic struct {
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	RuleID   string `json:"rule_id"`
	Message  string `json:"message"`
}

type lintJSONReport struct {
	Files       int                  `json:"files"`
	Errors      int                  `json:"errors"`
	Warnings    int                  `json:"warnings"`
	Diagnostics []lintJSONDiagnostic `json:"diagnostics"`
}

func writeLintJSON(cmd *cobra.Command, result *runner.LintResult) error {
	report := lintJSONReport{
		Files:       result.Stats.FilesProcessed,
		Errors:      result.ErrorDiagnostics,
		Warnings:    result.WarningDiagnostics,
		Diagnostics: []lintJSONDiagnostic{},
	}

	for _, outcome := range result.Outcomes {
		if outcome.Result == nil {
			continue
		}
		for _, diag := range outcome.Result.Diagnostics {
			report.Diagnostics = append(report.Diagnostics, lintJSONDiagnostic{
				Path:     diag.FilePath,
				Line:     diag.Line,
				Column:   diag.Column,
				Severity: string(diag.Severity),
				RuleID:   diag.RuleID,
				Message:  diag.Message,
			})
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode JSON report: %w", err)
	}
	return nil
}
