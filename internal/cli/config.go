package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gogd/internal/configloader"
	"github.com/yaklabco/gogd/internal/logging"
	"github.com/yaklabco/gogd/pkg/config"
)

// loadConfig resolves the effective configuration for a command: config
// files discovered from the working directory, environment variables, and
// the CLI flag overlay, in ascending precedence. It returns the merged
// config and the working directory the run is rooted at.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config, logger *log.Logger) (*config.Config, string, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("determine working directory: %w", err)
	}

	explicitPath, err := cmd.Flags().GetString("config")
	if err != nil {
		explicitPath = ""
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: explicitPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("load configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("configuration loaded", logging.FieldConfig, result.LoadedFrom)
	}

	return result.Config, workDir, nil
}
