package rules

import "github.com/yaklabco/gogd/pkg/lint"

// All returns factories for every built-in rule.
func All() []lint.Factory {
	return []lint.Factory{
		// Naming.
		NewFunctionNameRule,
		NewClassNameRule,
		NewSignalNameRule,
		NewConstantNameRule,
		NewVariableNameRule,
		NewEnumNameRule,
		NewEnumElementNameRule,
		NewFunctionArgumentNameRule,
		NewLoopVariableNameRule,

		// Format.
		NewMaxLineLengthRule,
		NewTrailingWhitespaceRule,
		NewMixedTabsSpacesRule,
		NewMaxFileLinesRule,

		// Basic.
		NewUnnecessaryPassRule,
		NewUnusedArgumentRule,
		NewComparisonWithItselfRule,
		NewDuplicatedLoadRule,
		NewExpressionNotAssignedRule,

		// Design.
		NewMaxFunctionArgsRule,
		NewMaxReturnsRule,
		NewMaxPublicMethodsRule,

		// Style.
		NewClassDefinitionsOrderRule,
		NewNoElifReturnRule,
		NewNoElseReturnRule,
	}
}

//nolint:gochecknoinits // Rules register themselves with the default registry.
func init() {
	for _, factory := range All() {
		lint.DefaultRegistry.Register(factory)
	}
}
