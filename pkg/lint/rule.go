package lint

import (
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/gdast"
)

// Rule categories, used by `gogd rules` and for grouping in output.
const (
	CategoryNaming = "naming"
	CategoryFormat = "format"
	CategoryBasic  = "basic"
	CategoryDesign = "design"
	CategoryStyle  = "style"
)

// Rule defines the interface that all lint rules must implement.
//
// The engine runs a single traversal per file: CheckFileStart, then CheckNode
// for every node whose kind appears in InterestedKinds (in document order),
// then CheckFileEnd. Rules that only inspect raw lines return no interested
// kinds and do their work in CheckFileStart or CheckFileEnd.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "function-name").
	ID() string

	// Category returns the rule's category (naming, format, basic, design, style).
	Category() string

	// Description returns a short description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Configure applies rule-specific options. It is called once per file
	// before any Check method, with a nil or empty map when no options are set.
	Configure(options map[string]any) error

	// InterestedKinds returns the node kinds this rule wants CheckNode calls
	// for. An empty slice means no node callbacks.
	InterestedKinds() []gdast.Kind

	// CheckFileStart runs before traversal.
	CheckFileStart(ctx *RuleContext)

	// CheckNode runs for each node of an interested kind, in document order.
	CheckNode(ctx *RuleContext, n *gdast.Node)

	// CheckFileEnd runs after traversal.
	CheckFileEnd(ctx *RuleContext)
}
