package format

import (
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// formatNode renders one statement into the output assembler. Unrecognized
// or deliberately untouched constructs come out verbatim.
//
// A statement starting inside a skip region is copied through unchanged.
// Scope nodes are exempt from the check: their span covers every child, so
// the skip decision belongs to the statements inside them.
func formatNode(ctx *context, n *gdast.Node) {
	if n.Kind != gdast.KindSource && n.Kind != gdast.KindBody && ctx.skip.IsSkipped(startLine(n)) {
		verbatim(ctx, n)
		return
	}

	switch n.Kind {
	case gdast.KindSource:
		formatStatements(ctx, n, true)
	case gdast.KindBody:
		formatStatements(ctx, n, false)
	case gdast.KindClassDefinition:
		formatClass(ctx, n)
	case gdast.KindFunctionDefinition:
		formatFunction(ctx, n)
	case gdast.KindVariableStatement:
		formatVariable(ctx, n)
	case gdast.KindConstStatement:
		formatConst(ctx, n)
	case gdast.KindSignalStatement:
		formatSignal(ctx, n)
	case gdast.KindEnumDefinition:
		formatEnum(ctx, n)
	case gdast.KindExtendsStatement:
		formatExtends(ctx, n)
	case gdast.KindClassNameStatement:
		formatClassName(ctx, n)
	case gdast.KindAnnotation:
		ctx.out.PushMapped(ctx.indent()+ctx.text(n), startLine(n))
	case gdast.KindPassStatement:
		ctx.out.PushMapped(ctx.indent()+"pass", startLine(n))
	case gdast.KindBreakStatement:
		ctx.out.PushMapped(ctx.indent()+"break", startLine(n))
	case gdast.KindContinueStatement:
		ctx.out.PushMapped(ctx.indent()+"continue", startLine(n))
	case gdast.KindBreakpointStatement:
		ctx.out.PushMapped(ctx.indent()+"breakpoint", startLine(n))
	case gdast.KindReturnStatement:
		formatReturn(ctx, n)
	case gdast.KindExpressionStatement:
		formatExpressionStatement(ctx, n)
	case gdast.KindIfStatement:
		formatIf(ctx, n)
	case gdast.KindForStatement:
		formatFor(ctx, n)
	case gdast.KindWhileStatement:
		formatWhile(ctx, n)
	case gdast.KindMatchStatement:
		// Match arms embed binding patterns the renderer does not reshape.
		verbatim(ctx, n)
	default:
		verbatim(ctx, n)
	}
}

// formatStatements renders the statements of a scope, separated by the
// blank-line policy: the larger of the blanks found in the source and the
// blanks the style guide requires, capped at two between top-level
// statements and one inside bodies.
func formatStatements(ctx *context, parent *gdast.Node, topLevel bool) {
	prevEnd := 0
	prevKind := gdast.KindUnknown
	first := true

	for _, child := range parent.Children {
		if !child.Named {
			continue
		}
		if !first {
			blanks := countSourceBlankLines(ctx.source, prevEnd, startLine(child))
			if req := requiredBlankLines(prevKind, child.Kind, topLevel); req > blanks {
				blanks = req
			}
			limit := 1
			if topLevel {
				limit = 2
			}
			if blanks > limit {
				blanks = limit
			}
			ctx.out.PushBlankLines(blanks)
		}
		formatNode(ctx, child)
		prevKind = child.Kind
		prevEnd = endLine(child)
		first = false
	}
}

// countSourceBlankLines counts the run of blank lines directly above the
// next statement. Comments in the gap reset the run, so blanks above an
// attached comment block do not count toward the separator.
func countSourceBlankLines(source *gdast.SourceText, prevEnd, nextStart int) int {
	count := 0
	for n := prevEnd + 1; n < nextStart; n++ {
		if source.IsBlank(n) {
			count++
		} else {
			count = 0
		}
	}
	return count
}

// requiredBlankLines returns the minimum separation the style guide asks
// for between two consecutive statements.
func requiredBlankLines(prev, next gdast.Kind, topLevel bool) int {
	functionLike := func(k gdast.Kind) bool {
		return k == gdast.KindFunctionDefinition || k == gdast.KindClassDefinition
	}
	if functionLike(prev) || functionLike(next) {
		if topLevel {
			return 2
		}
		return 1
	}
	if !topLevel {
		if prev == gdast.KindEnumDefinition || next == gdast.KindEnumDefinition {
			return 1
		}
		return 0
	}
	if prev == gdast.KindAnnotation {
		return 0
	}
	if next == gdast.KindAnnotation {
		return 1
	}
	if statementCategory(prev) != statementCategory(next) {
		return 1
	}
	return 0
}

// statementCategory buckets top-level statements for separator purposes.
// Statements in the same bucket sit together without a forced blank.
func statementCategory(k gdast.Kind) int {
	switch k {
	case gdast.KindClassNameStatement, gdast.KindExtendsStatement:
		return 0
	case gdast.KindSignalStatement:
		return 1
	case gdast.KindEnumDefinition:
		return 2
	case gdast.KindConstStatement:
		return 3
	case gdast.KindVariableStatement:
		return 4
	default:
		return 99
	}
}

// verbatim copies a node's source lines through unchanged, minus trailing
// whitespace.
func verbatim(ctx *context, n *gdast.Node) {
	for ln := startLine(n); ln <= endLine(n); ln++ {
		ctx.out.PushVerbatim(strings.TrimRight(ctx.source.Line(ln), " \t"), ln)
	}
}

// pushStatement maps a rendered statement to its source line. Statements
// that spread over lines map to their last line, so a comment trailing the
// closing bracket ends up after the rendered text.
func pushStatement(ctx *context, text string, n *gdast.Node) {
	line := startLine(n)
	if strings.Contains(text, "\n") {
		line = endLine(n)
	}
	ctx.out.PushMapped(text, line)
}

// spanHasComment reports whether any line of a node's source text carries a
// comment outside a string literal.
func spanHasComment(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if findCommentStart(line) >= 0 {
			return true
		}
	}
	return false
}
