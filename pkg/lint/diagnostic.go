// Package lint provides the rule engine, diagnostics, and registry for gogd.
package lint

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gogd/pkg/config"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic
	// (e.g., "max-line-length").
	RuleID string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Line is the 1-based line number where the issue starts.
	Line int

	// Column is the 1-based column number where the issue starts.
	Column int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int
}

// SortDiagnostics orders diagnostics by position, then rule ID, for
// deterministic output.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.Line, b.Line); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Column, b.Column); c != 0 {
			return c
		}
		return cmp.Compare(a.RuleID, b.RuleID)
	})
}
