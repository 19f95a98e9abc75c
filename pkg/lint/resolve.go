package lint

import (
	"slices"

	"github.com/yaklabco/gogd/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule instance.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Options is the rule-specific option map (may be nil).
	Options map[string]any
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
// Precedence: per-rule config, then CLI enable/disable, then defaults.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		Options:  nil,
	}

	if cfg == nil {
		return rr
	}

	if slices.Contains(cfg.EnableRules, rule.ID()) {
		rr.Enabled = true
	}
	if slices.Contains(cfg.DisableRules, rule.ID()) {
		rr.Enabled = false
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil && config.Severity(*ruleCfg.Severity).IsValid() {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		rr.Options = ruleCfg.Options
	}

	return rr
}
