package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gogd/internal/logging"
	"github.com/yaklabco/gogd/internal/ui/pretty"
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/lint"
	_ "github.com/yaklabco/gogd/pkg/lint/rules"
)

type rulesFlags struct {
	format   string
	category string
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all registered lint rules with their category, default severity,
and whether they are enabled under the current configuration.

Examples:
  gogd rules                     # Table of all rules
  gogd rules --category naming   # Only naming rules
  gogd rules --format json       # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text or json")
	cmd.Flags().StringVar(&flags.category, "category", "", "only show rules in this category")

	return cmd
}

// ruleInfo is the machine-readable shape of a single rule listing.
type ruleInfo struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

func runRules(cmd *cobra.Command, flags *rulesFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	finalCfg, _, err := loadConfig(ctx, cmd, &config.Config{}, logger)
	if err != nil {
		return err
	}

	registry := lint.DefaultRegistry

	enabled := make(map[string]bool)
	for _, rr := range lint.ResolveRules(registry, finalCfg) {
		enabled[rr.Rule.ID()] = true
	}

	var rules []lint.Rule
	for _, rule := range registry.Rules() {
		if flags.category != "" && rule.Category() != flags.category {
			continue
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		return fmt.Errorf("no rules match category %q", flags.category)
	}

	if flags.format == "json" {
		return writeRulesJSON(cmd, rules, enabled)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
	formatter := pretty.NewTableFormatter(styles, terminalWidth())
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRules(rules, enabled))

	return nil
}

func writeRulesJSON(cmd *cobra.Command, rules []lint.Rule, enabled map[string]bool) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Category:    rule.Category(),
			Severity:    string(rule.DefaultSeverity()),
			Enabled:     enabled[rule.ID()],
			Description: rule.Description(),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encode JSON rule list: %w", err)
	}
	return nil
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 0
}
