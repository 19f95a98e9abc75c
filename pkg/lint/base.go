package lint

import (
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/gdast"
)

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface
// methods. Use NewBaseRule.
type BaseRule struct {
	id       string
	category string
	desc     string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, category, desc string) BaseRule {
	return BaseRule{
		id:       id,
		category: category,
		desc:     desc,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Category returns the rule's category.
func (r *BaseRule) Category() string {
	return r.category
}

// Description returns a short description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
// Override this method to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns the default severity for this rule.
// Override this method to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Configure applies rule-specific options. The default accepts anything.
func (r *BaseRule) Configure(_ map[string]any) error {
	return nil
}

// InterestedKinds returns no kinds by default.
func (r *BaseRule) InterestedKinds() []gdast.Kind {
	return nil
}

// CheckFileStart is a no-op by default.
func (r *BaseRule) CheckFileStart(_ *RuleContext) {}

// CheckNode is a no-op by default.
func (r *BaseRule) CheckNode(_ *RuleContext, _ *gdast.Node) {}

// CheckFileEnd is a no-op by default.
func (r *BaseRule) CheckFileEnd(_ *RuleContext) {}
