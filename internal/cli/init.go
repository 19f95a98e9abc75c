package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gogd/internal/logging"
	"github.com/yaklabco/gogd/pkg/config"
)

const defaultConfigName = ".gogd.yaml"

const configFilePermissions = 0o644

func newInitCommand() *cobra.Command {
	var (
		force  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Write a commented starter configuration to .gogd.yaml in the current
directory. The generated file documents every option with its default
value, so it can be trimmed down to just the overrides you need.

Examples:
  gogd init                      # Create .gogd.yaml here
  gogd init --output cfg.yaml    # Write to a different path
  gogd init --force              # Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, force, output)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().StringVar(&output, "output", defaultConfigName, "path to write the configuration to")

	return cmd
}

func runInit(cmd *cobra.Command, force bool, output string) error {
	logger := logging.Default()

	path := output
	if !filepath.IsAbs(path) {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("determine working directory: %w", err)
		}
		path = filepath.Join(workDir, path)
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", output)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("check %s: %w", output, err)
		}
	}

	if err := os.WriteFile(path, []byte(config.DefaultTemplate), configFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	logger.Info("configuration created", logging.FieldPath, path)
	return nil
}
