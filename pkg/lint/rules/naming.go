package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/lint"
)

var (
	snakeCase    = regexp.MustCompile(`^_?[a-z][a-z0-9_]*$`)
	pascalCase   = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
	constantCase = regexp.MustCompile(`^_?[A-Z][A-Z0-9_]*$`)

	// Signal handler names like _on_Button_pressed mix cases legitimately.
	signalHandler = regexp.MustCompile(`^_on_[A-Za-z0-9]+_[a-z][a-z0-9_]*$`)
)

// nameRule is the shared shape of the naming rules: one node kind, a case
// pattern for the node's name field, and a message noun. The pattern is
// overridable through the "pattern" option.
type nameRule struct {
	lint.BaseRule
	kinds      []gdast.Kind
	pattern    *regexp.Regexp
	defPattern *regexp.Regexp
	noun       string
	caseName   string

	// allowHandlers exempts names matching the signal-handler shape.
	allowHandlers bool
}

func (r *nameRule) Configure(options map[string]any) error {
	r.pattern = r.defPattern
	if p := lint.OptionString(options, "pattern", ""); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		r.pattern = re
	}
	return nil
}

func (r *nameRule) InterestedKinds() []gdast.Kind {
	return r.kinds
}

func (r *nameRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	nameNode := n.ChildByField(gdast.FieldName)
	if nameNode == nil {
		return
	}
	name := ctx.Text(nameNode)
	if r.pattern.MatchString(name) {
		return
	}
	if r.allowHandlers && signalHandler.MatchString(name) {
		return
	}
	ctx.Report(nameNode, fmt.Sprintf("%s %q should be %s", r.noun, name, r.caseName))
}

func newNameRule(id, desc, noun, caseName string, pattern *regexp.Regexp, kinds ...gdast.Kind) *nameRule {
	return &nameRule{
		BaseRule:   lint.NewBaseRule(id, lint.CategoryNaming, desc),
		kinds:      kinds,
		pattern:    pattern,
		defPattern: pattern,
		noun:       noun,
		caseName:   caseName,
	}
}

// NewFunctionNameRule checks that function names are snake_case.
func NewFunctionNameRule() lint.Rule {
	r := newNameRule(
		"function-name",
		"Function names should be snake_case",
		"Function name", "snake_case", snakeCase,
		gdast.KindFunctionDefinition,
	)
	r.allowHandlers = true
	return r
}

// NewClassNameRule checks that class_name declarations and inner classes are
// PascalCase.
func NewClassNameRule() lint.Rule {
	return newNameRule(
		"class-name",
		"Class names should be PascalCase",
		"Class name", "PascalCase", pascalCase,
		gdast.KindClassNameStatement, gdast.KindClassDefinition,
	)
}

// NewSignalNameRule checks that signal names are snake_case.
func NewSignalNameRule() lint.Rule {
	return newNameRule(
		"signal-name",
		"Signal names should be snake_case",
		"Signal name", "snake_case", snakeCase,
		gdast.KindSignalStatement,
	)
}

// NewConstantNameRule checks that constants are CONSTANT_CASE.
func NewConstantNameRule() lint.Rule {
	return newNameRule(
		"constant-name",
		"Constants should be CONSTANT_CASE",
		"Constant name", "CONSTANT_CASE", constantCase,
		gdast.KindConstStatement,
	)
}

// NewVariableNameRule checks that variables are snake_case.
func NewVariableNameRule() lint.Rule {
	return newNameRule(
		"variable-name",
		"Variables should be snake_case",
		"Variable name", "snake_case", snakeCase,
		gdast.KindVariableStatement,
	)
}

// NewEnumNameRule checks that enum names are PascalCase.
func NewEnumNameRule() lint.Rule {
	return newNameRule(
		"enum-name",
		"Enum names should be PascalCase",
		"Enum name", "PascalCase", pascalCase,
		gdast.KindEnumDefinition,
	)
}

// NewEnumElementNameRule checks that enum elements are CONSTANT_CASE.
func NewEnumElementNameRule() lint.Rule {
	return newNameRule(
		"enum-element-name",
		"Enum elements should be CONSTANT_CASE",
		"Enum element", "CONSTANT_CASE", constantCase,
		gdast.KindEnumerator,
	)
}

// functionArgumentNameRule checks parameter names inside function signatures.
type functionArgumentNameRule struct {
	lint.BaseRule
	pattern *regexp.Regexp
}

// NewFunctionArgumentNameRule checks that parameters are snake_case.
func NewFunctionArgumentNameRule() lint.Rule {
	return &functionArgumentNameRule{
		BaseRule: lint.NewBaseRule(
			"function-argument-name",
			lint.CategoryNaming,
			"Function arguments should be snake_case",
		),
		pattern: snakeCase,
	}
}

func (r *functionArgumentNameRule) Configure(options map[string]any) error {
	r.pattern = snakeCase
	if p := lint.OptionString(options, "pattern", ""); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		r.pattern = re
	}
	return nil
}

func (r *functionArgumentNameRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindParameters}
}

func (r *functionArgumentNameRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	for _, nameNode := range parameterNames(n) {
		name := ctx.Text(nameNode)
		if !r.pattern.MatchString(name) {
			ctx.Report(nameNode, fmt.Sprintf("Argument name %q should be snake_case", name))
		}
	}
}

// loopVariableNameRule checks the iteration variable of for statements,
// which sits in the left field rather than a name field.
type loopVariableNameRule struct {
	lint.BaseRule
	pattern *regexp.Regexp
}

// NewLoopVariableNameRule checks that for-loop variables are snake_case.
func NewLoopVariableNameRule() lint.Rule {
	return &loopVariableNameRule{
		BaseRule: lint.NewBaseRule(
			"loop-variable-name",
			lint.CategoryNaming,
			"Loop variables should be snake_case",
		),
		pattern: snakeCase,
	}
}

func (r *loopVariableNameRule) Configure(options map[string]any) error {
	r.pattern = snakeCase
	if p := lint.OptionString(options, "pattern", ""); p != "" {
		re, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		r.pattern = re
	}
	return nil
}

func (r *loopVariableNameRule) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindForStatement}
}

func (r *loopVariableNameRule) CheckNode(ctx *lint.RuleContext, n *gdast.Node) {
	loopVar := n.ChildByField(gdast.FieldLeft)
	if loopVar == nil {
		return
	}
	name := ctx.Text(loopVar)
	if !r.pattern.MatchString(name) {
		ctx.Report(loopVar, fmt.Sprintf("Loop variable %q should be snake_case", name))
	}
}

// parameterNames returns the identifier node naming each parameter.
func parameterNames(params *gdast.Node) []*gdast.Node {
	var names []*gdast.Node
	for _, p := range params.NamedChildren() {
		switch p.Kind {
		case gdast.KindIdentifier:
			names = append(names, p)
		case gdast.KindTypedParameter, gdast.KindDefaultParameter, gdast.KindTypedDefaultParameter:
			if name := p.ChildByField(gdast.FieldName); name != nil {
				names = append(names, name)
			} else if first := p.NamedChild(0); first != nil && first.Kind == gdast.KindIdentifier {
				names = append(names, first)
			}
		}
	}
	return names
}
