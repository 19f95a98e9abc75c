package rules

import (
	"fmt"

	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/lint"
)

// maxFunctionArgsRule reports functions taking too many parameters.
type maxFunctionArgsRule struct {
	lint.BaseRule
	maxArgs int
}

// NewMaxFunctionArgsRule creates the max-function-args rule.
func NewMaxFunctionArgsRule() lint.Rule {
	return &maxFunctionArgsRule{
		BaseRule: lint.NewBaseRule(
			"max-function-args",
			lint.CategoryDesign,
			"Functions should not have too many arguments",
		),
		maxArgs: 10,
	}
}

func (r *maxFunctionArgsRule) Configure(options map[string]any) error {
	r.maxArgs = lint.OptionInt(options, "max", 10)
	return nil
}

func (r *maxFunctionArgsRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindFunctionDefinition}
}

func (r *maxFunctionArgsRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	params := n.ChildByField(gdast.FieldParameters)
	if params == nil {
		return
	}
	count := len(parameterNames(params))
	if count > r.maxArgs {
		ctx.Report(n, fmt.Sprintf("Function %q has %d arguments (max %d)",
			functionName(ctx, n), count, r.maxArgs))
	}
}

// maxReturnsRule reports functions with too many return statements.
type maxReturnsRule struct {
	lint.BaseRule
	maxReturns int
}

// NewMaxReturnsRule creates the max-returns rule.
func NewMaxReturnsRule() lint.Rule {
	return &maxReturnsRule{
		BaseRule: lint.NewBaseRule(
			"max-returns",
			lint.CategoryDesign,
			"Functions should not have too many return statements",
		),
		maxReturns: 6,
	}
}

func (r *maxReturnsRule) Configure(options map[string]any) error {
	r.maxReturns = lint.OptionInt(options, "max", 6)
	return nil
}

func (r *maxReturnsRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindFunctionDefinition}
}

func (r *maxReturnsRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	body := n.ChildByField(gdast.FieldBody)
	if body == nil {
		return
	}

	count := 0
	gdast.Walk(body, func(c *gdast.Node) bool {
		// Nested functions and inner classes count their own returns.
		if c.Kind == gdast.KindFunctionDefinition || c.Kind == gdast.KindClassDefinition {
			return false
		}
		if c.Kind == gdast.KindReturnStatement {
			count++
		}
		return true
	})

	if count > r.maxReturns {
		ctx.Report(n, fmt.Sprintf("Function %q has %d return statements (max %d)",
			functionName(ctx, n), count, r.maxReturns))
	}
}

// maxPublicMethodsRule reports scopes with too many methods not prefixed
// with an underscore.
type maxPublicMethodsRule struct {
	lint.BaseRule
	maxMethods int
}

// NewMaxPublicMethodsRule creates the max-public-methods rule.
func NewMaxPublicMethodsRule() lint.Rule {
	return &maxPublicMethodsRule{
		BaseRule: lint.NewBaseRule(
			"max-public-methods",
			lint.CategoryDesign,
			"Classes should not have too many public methods",
		),
		maxMethods: 20,
	}
}

func (r *maxPublicMethodsRule) Configure(options map[string]any) error {
	r.maxMethods = lint.OptionInt(options, "max", 20)
	return nil
}

func (r *maxPublicMethodsRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindSource, gdast.KindClassDefinition}
}

func (r *maxPublicMethodsRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	scope := n
	scopeName := "<script>"
	if n.Kind == gdast.KindClassDefinition {
		scope = n.ChildByField(gdast.FieldBody)
		if scope == nil {
			return
		}
		if nameNode := n.ChildByField(gdast.FieldName); nameNode != nil {
			scopeName = ctx.Text(nameNode)
		}
	}

	public := 0
	for _, child := range scope.NamedChildren() {
		if child.Kind != gdast.KindFunctionDefinition {
			continue
		}
		if nameNode := child.ChildByField(gdast.FieldName); nameNode != nil {
			if name := ctx.Text(nameNode); name != "" && name[0] != '_' {
				public++
			}
		}
	}

	if public > r.maxMethods {
		ctx.Report(n, fmt.Sprintf("Class %q has %d public methods (max %d)",
			scopeName, public, r.maxMethods))
	}
}

func functionName(ctx *lint.RuleContext, fn *gdast.Node) string {
	if nameNode := fn.ChildByField(gdast.FieldName); nameNode != nil {
		return ctx.Text(nameNode)
	}
	return "<anonymous>"
}
