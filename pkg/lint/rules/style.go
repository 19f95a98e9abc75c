package rules

import (
	"fmt"

	"github.com/yaklabco/gogd/pkg/format"
	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/lint"
)

// classDefinitionsOrderRule reports members appearing before a member that
// the style guide orders earlier. It shares its classification with the
// reorder pass, so `gogd fmt --reorder` fixes exactly what this rule flags.
type classDefinitionsOrderRule struct {
	lint.BaseRule
}

// NewClassDefinitionsOrderRule creates the class-definitions-order rule.
func NewClassDefinitionsOrderRule() lint.Rule {
	return &classDefinitionsOrderRule{
		BaseRule: lint.NewBaseRule(
			"class-definitions-order",
			lint.CategoryStyle,
			"Class members should follow the style guide order",
		),
	}
}

func (r *classDefinitionsOrderRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindSource, gdast.KindClassDefinition}
}

func (r *classDefinitionsOrderRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	scope := n
	if n.Kind == gdast.KindClassDefinition {
		scope = n.ChildByField(gdast.FieldBody)
		if scope == nil {
			return
		}
	}

	src := ctx.Tree.Source
	last := format.MemberKind(-1)
	for _, child := range scope.NamedChildren() {
		kind, ok := format.ClassifyMember(src, child)
		if !ok {
			continue
		}
		if last >= 0 && kind < last {
			ctx.Report(child, fmt.Sprintf("%s should come before %s", kind, last))
		}
		last = kind
	}
}

// noElifReturnRule suggests if instead of elif when the branch above returns.
type noElifReturnRule struct {
	lint.BaseRule
}

// NewNoElifReturnRule creates the no-elif-return rule.
func NewNoElifReturnRule() lint.Rule {
	return &noElifReturnRule{
		BaseRule: lint.NewBaseRule(
			"no-elif-return",
			lint.CategoryStyle,
			"Use if instead of elif when the previous branch returns",
		),
	}
}

func (r *noElifReturnRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindIfStatement}
}

func (r *noElifReturnRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	body := n.ChildByField(gdast.FieldBody)
	if body == nil || !blockEndsWithReturn(body) {
		return
	}
	for _, child := range n.Children {
		if child.Kind == gdast.KindElifClause {
			ctx.Report(child, "Use 'if' instead of 'elif' when the previous branch returns")
		}
	}
}

// noElseReturnRule reports else clauses made redundant because every branch
// above them returns.
type noElseReturnRule struct {
	lint.BaseRule
}

// NewNoElseReturnRule creates the no-else-return rule.
func NewNoElseReturnRule() lint.Rule {
	return &noElseReturnRule{
		BaseRule: lint.NewBaseRule(
			"no-else-return",
			lint.CategoryStyle,
			"Unnecessary else after return",
		),
	}
}

func (r *noElseReturnRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindIfStatement}
}

func (r *noElseReturnRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	body := n.ChildByField(gdast.FieldBody)
	if body == nil || !blockEndsWithReturn(body) {
		return
	}
	for _, child := range n.Children {
		if child.Kind == gdast.KindElifClause {
			clauseBody := child.ChildByField(gdast.FieldBody)
			if clauseBody == nil || !blockEndsWithReturn(clauseBody) {
				return
			}
		}
	}
	for _, child := range n.Children {
		if child.Kind == gdast.KindElseClause {
			ctx.Report(child, "Unnecessary 'else' after 'return'")
		}
	}
}

// blockEndsWithReturn reports whether the last statement of a block is a
// return, or an if statement all of whose branches return.
func blockEndsWithReturn(body *gdast.Node) bool {
	last := body.LastChild()
	if last == nil {
		return false
	}
	switch last.Kind {
	case gdast.KindReturnStatement:
		return true
	case gdast.KindIfStatement:
		return allBranchesReturn(last)
	default:
		return false
	}
}

// allBranchesReturn requires an else clause: without one there is a path
// that falls through.
func allBranchesReturn(ifNode *gdast.Node) bool {
	body := ifNode.ChildByField(gdast.FieldBody)
	if body == nil || !blockEndsWithReturn(body) {
		return false
	}
	hasElse := false
	for _, child := range ifNode.Children {
		switch child.Kind {
		case gdast.KindElifClause, gdast.KindElseClause:
			clauseBody := child.ChildByField(gdast.FieldBody)
			if clauseBody == nil || !blockEndsWithReturn(clauseBody) {
				return false
			}
			if child.Kind == gdast.KindElseClause {
				hasElse = true
			}
		}
	}
	return hasElse
}
