package lint

import (
	"context"

	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/gdast"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// Design note: RuleContext stores context.Context as a field (Ctx) rather than
// passing it as a method parameter. This is acceptable because RuleContext is
// a short-lived parameter object created per-rule-invocation, not a long-lived
// struct. It keeps the Rule interface small while still giving rules
// cancellation via Cancelled().
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// Tree is the parsed syntax tree.
	Tree *gdast.Tree

	// Source is the line-indexed source text.
	Source *gdast.SourceText

	// FilePath is the path of the file being linted.
	FilePath string

	// Config is the resolved configuration.
	Config *config.Config

	// rule is the resolved rule this context reports for.
	rule ResolvedRule

	// sink collects diagnostics across all rules for the file.
	sink *[]Diagnostic
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Text returns the source text of a node.
func (rc *RuleContext) Text(n *gdast.Node) string {
	return n.Text(rc.Tree.Source)
}

// Report records a diagnostic spanning the given node.
func (rc *RuleContext) Report(n *gdast.Node, message string) {
	rc.append(Diagnostic{
		Message:   message,
		Line:      n.StartPoint.Row + 1,
		Column:    n.StartPoint.Column + 1,
		EndLine:   n.EndPoint.Row + 1,
		EndColumn: n.EndPoint.Column + 1,
	})
}

// ReportLine records a diagnostic for a whole line.
func (rc *RuleContext) ReportLine(line int, message string) {
	rc.ReportAt(line, 1, line, len(rc.Source.Line(line))+1, message)
}

// ReportAt records a diagnostic with an explicit position.
func (rc *RuleContext) ReportAt(line, column, endLine, endColumn int, message string) {
	rc.append(Diagnostic{
		Message:   message,
		Line:      line,
		Column:    column,
		EndLine:   endLine,
		EndColumn: endColumn,
	})
}

func (rc *RuleContext) append(d Diagnostic) {
	d.RuleID = rc.rule.Rule.ID()
	d.Severity = rc.rule.Severity
	d.FilePath = rc.FilePath
	*rc.sink = append(*rc.sink, d)
}
