package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/lint"
)

var loadPattern = regexp.MustCompile(`(load|preload)\s*\(\s*["']([^"']+)["']\s*\)`)

// unnecessaryPassRule reports pass statements in blocks that contain other
// statements.
type unnecessaryPassRule struct {
	lint.BaseRule
}

// NewUnnecessaryPassRule creates the unnecessary-pass rule.
func NewUnnecessaryPassRule() lint.Rule {
	return &unnecessaryPassRule{
		BaseRule: lint.NewBaseRule(
			"unnecessary-pass",
			lint.CategoryBasic,
			"pass is unnecessary when the block has other statements",
		),
	}
}

func (r *unnecessaryPassRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindBody, gdast.KindSource}
}

func (r *unnecessaryPassRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	if n.NamedChildCount() < 2 {
		return
	}
	for _, child := range n.NamedChildren() {
		if child.Kind == gdast.KindPassStatement {
			ctx.Report(child, "Unnecessary pass statement")
		}
	}
}

// unusedArgumentRule reports function parameters never referenced in the body.
// Parameters prefixed with an underscore are deliberately unused and exempt.
type unusedArgumentRule struct {
	lint.BaseRule
}

// NewUnusedArgumentRule creates the unused-argument rule.
func NewUnusedArgumentRule() lint.Rule {
	return &unusedArgumentRule{
		BaseRule: lint.NewBaseRule(
			"unused-argument",
			lint.CategoryBasic,
			"Function arguments should be used",
		),
	}
}

func (r *unusedArgumentRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindFunctionDefinition}
}

func (r *unusedArgumentRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	params := n.ChildByField(gdast.FieldParameters)
	body := n.ChildByField(gdast.FieldBody)
	if params == nil || body == nil {
		return
	}
	names := parameterNames(params)
	if len(names) == 0 {
		return
	}

	used := collectUsedNames(ctx, body)
	for _, nameNode := range names {
		name := ctx.Text(nameNode)
		if strings.HasPrefix(name, "_") {
			continue
		}
		if !used[name] {
			ctx.Report(nameNode, fmt.Sprintf("Unused argument %q", name))
		}
	}
}

var wordPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// collectUsedNames gathers every identifier appearing in a function body.
// Raw leaves (lambdas, property bodies, patterns) keep their text opaque in
// the tree, so their words are scanned textually to avoid false positives.
func collectUsedNames(ctx *lint.RuleContext, body *gdast.Node) map[string]bool {
	used := make(map[string]bool)
	gdast.Walk(body, func(n *gdast.Node) bool {
		switch n.Kind {
		case gdast.KindIdentifier:
			used[ctx.Text(n)] = true
		case gdast.KindLambda, gdast.KindPropertyBody, gdast.KindPattern, gdast.KindGetNode:
			for _, w := range wordPattern.FindAllString(ctx.Text(n), -1) {
				used[w] = true
			}
		}
		return true
	})
	return used
}

// comparisonWithItselfRule reports comparisons whose operands are textually
// identical.
type comparisonWithItselfRule struct {
	lint.BaseRule
}

// NewComparisonWithItselfRule creates the comparison-with-itself rule.
func NewComparisonWithItselfRule() lint.Rule {
	return &comparisonWithItselfRule{
		BaseRule: lint.NewBaseRule(
			"comparison-with-itself",
			lint.CategoryBasic,
			"Comparing a value with itself is likely a bug",
		),
	}
}

func (r *comparisonWithItselfRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindComparisonOperator}
}

func (r *comparisonWithItselfRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	left := n.ChildByField(gdast.FieldLeft)
	right := n.ChildByField(gdast.FieldRight)
	if left == nil || right == nil {
		return
	}
	leftText := strings.Join(strings.Fields(ctx.Text(left)), " ")
	rightText := strings.Join(strings.Fields(ctx.Text(right)), " ")
	if leftText != "" && leftText == rightText {
		ctx.Report(n, fmt.Sprintf("Comparison of %q with itself", leftText))
	}
}

// duplicatedLoadRule reports load()/preload() calls repeating a resource path
// already loaded earlier in the file.
type duplicatedLoadRule struct {
	lint.BaseRule
}

// NewDuplicatedLoadRule creates the duplicated-load rule.
func NewDuplicatedLoadRule() lint.Rule {
	return &duplicatedLoadRule{
		BaseRule: lint.NewBaseRule(
			"duplicated-load",
			lint.CategoryBasic,
			"Resource is loaded multiple times",
		),
	}
}

func (r *duplicatedLoadRule) CheckFileStart(ctx *lint.RuleContext) {
	type site struct {
		line, col int
	}
	first := make(map[string]site)

	for line := 1; line <= ctx.Source.LineCount(); line++ {
		text := ctx.Source.Line(line)
		for _, m := range loadPattern.FindAllStringSubmatchIndex(text, -1) {
			path := text[m[4]:m[5]]
			col := m[0] + 1
			if prev, ok := first[path]; ok {
				ctx.ReportAt(line, col, line, m[1]+1,
					fmt.Sprintf("Resource %q already loaded at line %d:%d", path, prev.line, prev.col))
			} else {
				first[path] = site{line, col}
			}
		}
	}
}

// expressionNotAssignedRule reports statements whose expression has no side
// effect, so its result is silently discarded.
type expressionNotAssignedRule struct {
	lint.BaseRule
}

// NewExpressionNotAssignedRule creates the expression-not-assigned rule.
func NewExpressionNotAssignedRule() lint.Rule {
	return &expressionNotAssignedRule{
		BaseRule: lint.NewBaseRule(
			"expression-not-assigned",
			lint.CategoryBasic,
			"Expression result is not used",
		),
	}
}

func (r *expressionNotAssignedRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindExpressionStatement}
}

func (r *expressionNotAssignedRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	expr := n.NamedChild(0)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case gdast.KindCall, gdast.KindAssignment, gdast.KindAugmentedAssignment,
		gdast.KindAwaitExpression:
		return
	}
	ctx.Report(n, fmt.Sprintf("Expression result (%s) is not used", expr.Kind))
}
