package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gogd/internal/ui/pretty"
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/lint"
	"github.com/yaklabco/gogd/pkg/runner"
)

func lintResultWithIssues(t *testing.T) *runner.LintResult {
	t.Helper()

	res := &runner.LintResult{}
	res.Stats.FilesProcessed = 3
	res.ErrorDiagnostics = 2
	res.WarningDiagnostics = 1
	res.Outcomes = []runner.LintOutcome{
		{Path: "a.gd", Result: &lint.FileResult{Diagnostics: []lint.Diagnostic{
			{RuleID: "max-returns", Severity: config.SeverityError},
			{RuleID: "max-returns", Severity: config.SeverityError},
			{RuleID: "unused-argument", Severity: config.SeverityWarning},
		}}},
		{Path: "b.gd", Result: &lint.FileResult{}},
	}
	return res
}

func TestFormatLintSummaryOneLine(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)

	t.Run("no issues", func(t *testing.T) {
		t.Parallel()
		res := &runner.LintResult{}
		res.Stats.FilesProcessed = 5
		out := s.FormatLintSummaryOneLine(res)
		assert.Contains(t, out, "No issues found")
		assert.Contains(t, out, "5 files checked")
	})

	t.Run("with issues", func(t *testing.T) {
		t.Parallel()
		out := s.FormatLintSummaryOneLine(lintResultWithIssues(t))
		assert.Contains(t, out, "3 issues")
		assert.Contains(t, out, "2 errors")
		assert.Contains(t, out, "1 warnings")
		assert.Contains(t, out, "in 1 file")
	})
}

func TestFormatFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)

	t.Run("all clean", func(t *testing.T) {
		t.Parallel()
		res := &runner.FormatResult{}
		res.Stats.FilesProcessed = 4
		out := s.FormatFormatSummaryOneLine(res, false)
		assert.Contains(t, out, "All files formatted")
	})

	t.Run("check mode", func(t *testing.T) {
		t.Parallel()
		res := &runner.FormatResult{}
		res.Stats.FilesChanged = 2
		out := s.FormatFormatSummaryOneLine(res, true)
		assert.Contains(t, out, "2 files would be reformatted")
	})

	t.Run("write mode with skips and errors", func(t *testing.T) {
		t.Parallel()
		res := &runner.FormatResult{}
		res.Stats.FilesChanged = 2
		res.Stats.FilesWritten = 2
		res.Stats.FilesSkipped = 1
		res.Stats.FilesErrored = 1
		out := s.FormatFormatSummaryOneLine(res, false)
		assert.Contains(t, out, "2 files reformatted")
		assert.Contains(t, out, "1 skipped")
		assert.Contains(t, out, "1 failed")
	})
}

func TestFormatLintSummary(t *testing.T) {
	t.Parallel()

	s := pretty.NewStyles(false)

	t.Run("failed with errors", func(t *testing.T) {
		t.Parallel()
		out := s.FormatLintSummary(lintResultWithIssues(t))
		assert.Contains(t, out, "Summary")
		assert.Contains(t, out, "Files checked:     3")
		assert.Contains(t, out, "Total issues:      3")
		assert.Contains(t, out, "Errors:          2")
		assert.Contains(t, out, "Lint failed with errors")
	})

	t.Run("passed", func(t *testing.T) {
		t.Parallel()
		res := &runner.LintResult{}
		res.Stats.FilesProcessed = 1
		out := s.FormatLintSummary(res)
		assert.Contains(t, out, "Lint passed")
	})
}

func TestFormatRulesTable(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(func() lint.Rule {
		r := lint.NewBaseRule("test-rule", lint.CategoryStyle, "Checks something in scripts")
		return &r
	})

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 100)
	out := formatter.FormatRules(registry.Rules(), map[string]bool{"test-rule": true})

	assert.Contains(t, out, "RULE")
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "test-rule")
	assert.Contains(t, out, "style")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "Checks something in scripts")
}
