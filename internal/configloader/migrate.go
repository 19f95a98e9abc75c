package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gogd/pkg/config"
)

// MigrationResult contains the result of converting a gdlintrc config.
type MigrationResult struct {
	// Config is the converted gogd configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the original gdlintrc config.
	SourcePath string
}

// gdlintRuleNames maps gdtoolkit rule names to gogd rule IDs. Names that are
// identical in both tools map to themselves.
//
//nolint:gochecknoglobals // Read-only lookup table.
var gdlintRuleNames = map[string]string{
	"function-name":             "function-name",
	"class-name":                "class-name",
	"sub-class-name":            "class-name",
	"signal-name":               "signal-name",
	"constant-name":             "constant-name",
	"load-constant-name":        "constant-name",
	"class-variable-name":       "variable-name",
	"function-variable-name":    "variable-name",
	"enum-name":                 "enum-name",
	"enum-element-name":         "enum-element-name",
	"function-argument-name":    "function-argument-name",
	"loop-variable-name":        "loop-variable-name",
	"max-line-length":           "max-line-length",
	"max-file-lines":            "max-file-lines",
	"trailing-whitespace":       "trailing-whitespace",
	"mixed-tabs-and-spaces":     "mixed-tabs-spaces",
	"unnecessary-pass":          "unnecessary-pass",
	"unused-argument":           "unused-argument",
	"comparison-with-itself":    "comparison-with-itself",
	"duplicated-load":           "duplicated-load",
	"expression-not-assigned":   "expression-not-assigned",
	"function-arguments-number": "max-function-args",
	"max-public-methods":        "max-public-methods",
	"max-returns":               "max-returns",
	"class-definitions-order":   "class-definitions-order",
	"no-elif-return":            "no-elif-return",
	"no-else-return":            "no-else-return",
}

// gdlintThresholdOption maps gogd rule IDs to the option key their numeric
// gdlintrc value configures.
//
//nolint:gochecknoglobals // Read-only lookup table.
var gdlintThresholdOption = map[string]string{
	"max-line-length":    "length",
	"max-file-lines":     "lines",
	"max-function-args":  "max",
	"max-public-methods": "max",
	"max-returns":        "max",
}

// CanMigrate returns true if the gdlintrc file format is convertible.
// gdlintrc files are always YAML.
func CanMigrate(path string) bool {
	base := filepath.Base(path)
	return strings.Contains(base, "gdlintrc")
}

// GetMigrationWarning returns a warning message for unconvertible configs.
func GetMigrationWarning(path string) string {
	return fmt.Sprintf("found %s but it cannot be converted automatically; please create a gogd config manually", path)
}

// ConvertGDLintConfig converts a gdtoolkit gdlintrc file to gogd format.
// Returns the converted config, any warnings, and an error if conversion failed.
func ConvertGDLintConfig(path string) (*MigrationResult, error) {
	result := &MigrationResult{SourcePath: path}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	cfg := config.NewConfig()

	for key, value := range raw {
		switch key {
		case "disable":
			convertDisableList(cfg, value, result)
		case "excluded_directories":
			convertExcludedDirs(cfg, value, result)
		default:
			convertRuleSetting(cfg, key, value, result)
		}
	}

	result.Config = cfg
	return result, nil
}

// convertDisableList handles the gdlintrc "disable" list of rule names.
func convertDisableList(cfg *config.Config, value any, result *MigrationResult) {
	list, ok := value.([]any)
	if !ok {
		result.Warnings = append(result.Warnings, "disable: expected a list of rule names; skipped")
		return
	}
	for _, item := range list {
		name, ok := item.(string)
		if !ok {
			continue
		}
		disableRule(cfg, name, result)
	}
}

// convertExcludedDirs handles the gdlintrc "excluded_directories" set.
func convertExcludedDirs(cfg *config.Config, value any, result *MigrationResult) {
	// gdlintrc uses a YAML set, which decodes as a map with nil values.
	switch dirs := value.(type) {
	case map[string]any:
		for dir := range dirs {
			cfg.Exclude = append(cfg.Exclude, dir+"/**")
		}
	case []any:
		for _, item := range dirs {
			if dir, ok := item.(string); ok {
				cfg.Exclude = append(cfg.Exclude, dir+"/**")
			}
		}
	default:
		result.Warnings = append(result.Warnings, "excluded_directories: unrecognized format; skipped")
	}
}

// convertRuleSetting handles a single gdlintrc rule entry. A null value
// disables the rule; a number sets its threshold; a string sets its pattern.
func convertRuleSetting(cfg *config.Config, key string, value any, result *MigrationResult) {
	ruleID, known := gdlintRuleNames[key]
	if !known {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown gdlint rule %q; skipped", key))
		return
	}

	if value == nil {
		disableRule(cfg, key, result)
		return
	}

	rc := cfg.Rules[ruleID]
	switch v := value.(type) {
	case int:
		if opt, ok := gdlintThresholdOption[ruleID]; ok {
			if rc.Options == nil {
				rc.Options = make(map[string]any)
			}
			rc.Options[opt] = v
			if ruleID == "max-line-length" {
				cfg.Format.LineLength = v
			}
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: numeric value has no gogd equivalent; skipped", key))
			return
		}
	case string:
		if rc.Options == nil {
			rc.Options = make(map[string]any)
		}
		rc.Options["pattern"] = v
	case bool:
		enabled := v
		rc.Enabled = &enabled
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s: unrecognized value %v; skipped", key, value))
		return
	}
	cfg.Rules[ruleID] = rc
}

// disableRule marks a gdlint rule as disabled in the gogd config.
func disableRule(cfg *config.Config, gdlintName string, result *MigrationResult) {
	ruleID, known := gdlintRuleNames[gdlintName]
	if !known {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("unknown gdlint rule %q in disable list; skipped", gdlintName))
		return
	}
	rc := cfg.Rules[ruleID]
	disabled := false
	rc.Enabled = &disabled
	cfg.Rules[ruleID] = rc
}
