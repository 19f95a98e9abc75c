package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/parser"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Path is the linted file.
	Path string

	// Diagnostics contains all issues found, sorted by position.
	Diagnostics []Diagnostic

	// RuleErrors contains any errors from rule configuration or execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// ErrorCount returns the number of error-severity diagnostics.
func (fr *FileResult) ErrorCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Severity == config.SeverityError {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// LintFile parses and lints a single file.
//
// The traversal is single-pass: every rule sees CheckFileStart, then CheckNode
// for each node of a kind it declared interest in, then CheckFileEnd.
// Suppression directives are applied before results are returned.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	tree, err := parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	source := gdast.NewSourceText(content)
	suppressions := ParseSuppressions(source)

	result := &FileResult{
		Path:       path,
		RuleErrors: make(map[string]error),
	}

	var sink []Diagnostic

	// Configure rules and build per-rule contexts. A rule whose Configure
	// fails is skipped, not fatal to the file.
	resolved := ResolveRules(e.Registry, cfg)
	contexts := make([]*RuleContext, 0, len(resolved))
	byKind := make(map[gdast.Kind][]*RuleContext)
	for _, rr := range resolved {
		if err := rr.Rule.Configure(rr.Options); err != nil {
			result.RuleErrors[rr.Rule.ID()] = fmt.Errorf("configure: %w", err)
			continue
		}
		rc := &RuleContext{
			Ctx:      ctx,
			Tree:     tree,
			Source:   source,
			FilePath: path,
			Config:   cfg,
			rule:     rr,
			sink:     &sink,
		}
		contexts = append(contexts, rc)
		for _, k := range rr.Rule.InterestedKinds() {
			byKind[k] = append(byKind[k], rc)
		}
	}

	for _, rc := range contexts {
		rc.rule.Rule.CheckFileStart(rc)
	}

	if len(byKind) > 0 {
		gdast.Walk(tree.Root, func(n *gdast.Node) bool {
			select {
			case <-ctx.Done():
				return false
			default:
			}
			for _, rc := range byKind[n.Kind] {
				rc.rule.Rule.CheckNode(rc, n)
			}
			return true
		})
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("linting cancelled: %w", err)
	}

	for _, rc := range contexts {
		rc.rule.Rule.CheckFileEnd(rc)
	}

	for _, d := range sink {
		if suppressions.Suppressed(d.RuleID, d.Line) {
			continue
		}
		result.Diagnostics = append(result.Diagnostics, d)
	}
	SortDiagnostics(result.Diagnostics)

	return result, nil
}
