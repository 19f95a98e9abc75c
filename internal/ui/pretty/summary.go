package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gogd/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func fileWord(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatLintSummaryOneLine formats lint run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files".
func (s *Styles) FormatLintSummaryOneLine(result *runner.LintResult) string {
	total := result.ErrorDiagnostics + result.WarningDiagnostics + result.InfoDiagnostics
	if total == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", result.Stats.FilesProcessed)) + "\n"
	}

	issueWord := "issues"
	if total == 1 {
		issueWord = "issue"
	}

	var severityParts []string
	if result.ErrorDiagnostics > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", result.ErrorDiagnostics)))
	}
	if result.WarningDiagnostics > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", result.WarningDiagnostics)))
	}
	if result.InfoDiagnostics > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", result.InfoDiagnostics)))
	}

	filesWithIssues := 0
	for _, o := range result.Outcomes {
		if o.Result != nil && len(o.Result.Diagnostics) > 0 {
			filesWithIssues++
		}
	}

	parts := []string{
		fmt.Sprintf("%d %s (%s)", total, issueWord, strings.Join(severityParts, ", ")),
		fmt.Sprintf("in %d %s", filesWithIssues, fileWord(filesWithIssues)),
	}
	return strings.Join(parts, " ") + "\n"
}

// FormatFormatSummaryOneLine formats format run statistics as a single line.
func (s *Styles) FormatFormatSummaryOneLine(result *runner.FormatResult, check bool) string {
	stats := result.Stats

	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		msg := s.Success.Render("All files formatted")
		return msg + s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed)) + "\n"
	}

	var parts []string
	if check {
		parts = append(parts, s.Warning.Render(
			fmt.Sprintf("%d %s would be reformatted", stats.FilesChanged, fileWord(stats.FilesChanged))))
	} else {
		parts = append(parts, s.Success.Render(
			fmt.Sprintf("%d %s reformatted", stats.FilesWritten, fileWord(stats.FilesWritten))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatLintSummary formats lint run statistics as a summary block.
func (s *Styles) FormatLintSummary(result *runner.LintResult) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(result.Stats.FilesProcessed)) + "\n")

	if result.Stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.SummaryValue.Render(strconv.Itoa(result.Stats.FilesSkipped)) + "\n")
	}

	total := result.ErrorDiagnostics + result.WarningDiagnostics + result.InfoDiagnostics
	builder.WriteString("\n")
	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(total)) + "\n")

	if result.ErrorDiagnostics > 0 {
		builder.WriteString("    Errors:          " +
			s.Error.Render(strconv.Itoa(result.ErrorDiagnostics)) + "\n")
	}
	if result.WarningDiagnostics > 0 {
		builder.WriteString("    Warnings:        " +
			s.Warning.Render(strconv.Itoa(result.WarningDiagnostics)) + "\n")
	}
	if result.InfoDiagnostics > 0 {
		builder.WriteString("    Info:            " +
			s.Info.Render(strconv.Itoa(result.InfoDiagnostics)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case result.ErrorDiagnostics > 0 || result.Stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case result.WarningDiagnostics > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
