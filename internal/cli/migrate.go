package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gogd/internal/configloader"
	"github.com/yaklabco/gogd/internal/logging"
)

func newMigrateCommand() *cobra.Command {
	var (
		force  bool
		output string
		source string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert a gdlint configuration to gogd format",
		Long: `Find a gdlint configuration file (.gdlintrc or gdlintrc) and convert it
to a .gogd.yaml. Rule names are mapped to their gogd equivalents,
thresholds become rule options, and excluded directories become glob
patterns. Settings with no gogd equivalent are reported as warnings.

The original file is left in place; delete it once you are happy with the
converted configuration.

Examples:
  gogd migrate                         # Find and convert .gdlintrc
  gogd migrate --source old/gdlintrc   # Convert a specific file
  gogd migrate --force                 # Overwrite an existing .gogd.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, force, output, source)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().StringVar(&output, "output", defaultConfigName, "path to write the converted configuration to")
	cmd.Flags().StringVar(&source, "source", "", "gdlint configuration file to convert (default: search upward)")

	return cmd
}

func runMigrate(cmd *cobra.Command, force bool, output, source string) error {
	logger := logging.Default()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}

	if source == "" {
		source = configloader.FindGDLintConfig(workDir)
		if source == "" {
			return errors.New("no gdlint configuration found (looked for .gdlintrc and gdlintrc)")
		}
	}
	if !configloader.CanMigrate(source) {
		return fmt.Errorf("%s does not look like a gdlint configuration", source)
	}

	outputPath := output
	if !filepath.IsAbs(outputPath) {
		outputPath = filepath.Join(workDir, outputPath)
	}
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("check %s: %w", output, err)
		}
	}

	result, err := configloader.ConvertGDLintConfig(source)
	if err != nil {
		return fmt.Errorf("convert %s: %w", source, err)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	if err := configloader.WriteConfig(result.Config, outputPath); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	logger.Info("configuration migrated",
		"from", source,
		"to", outputPath,
	)
	logger.Info("review the result, then delete the old gdlint file")
	return nil
}
