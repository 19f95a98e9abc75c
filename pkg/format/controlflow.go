package format

import (
	"github.com/yaklabco/gogd/pkg/gdast"
)

func formatIf(ctx *context, n *gdast.Node) {
	if !isMultiline(n) {
		// "if cond: stmt" on one line stays on one line.
		verbatim(ctx, n)
		return
	}

	cond := n.ChildByField(gdast.FieldCondition)
	ctx.out.PushMapped(ctx.indent()+"if "+renderCondition(ctx, cond)+":", startLine(n))
	ctx.level++
	formatNode(ctx, n.ChildByField(gdast.FieldBody))
	ctx.level--

	for _, clause := range n.Children {
		switch clause.Kind {
		case gdast.KindElifClause:
			econd := clause.ChildByField(gdast.FieldCondition)
			ctx.out.PushMapped(ctx.indent()+"elif "+renderCondition(ctx, econd)+":", startLine(clause))
			ctx.level++
			formatNode(ctx, clause.ChildByField(gdast.FieldBody))
			ctx.level--
		case gdast.KindElseClause:
			ctx.out.PushMapped(ctx.indent()+"else:", startLine(clause))
			ctx.level++
			formatNode(ctx, clause.ChildByField(gdast.FieldBody))
			ctx.level--
		}
	}
}

func formatFor(ctx *context, n *gdast.Node) {
	if !isMultiline(n) {
		verbatim(ctx, n)
		return
	}
	text := ctx.indent() + "for " + ctx.text(n.ChildByField(gdast.FieldLeft))
	if typ := n.ChildByField(gdast.FieldType); typ != nil {
		text += ": " + ctx.text(typ)
	}
	text += " in " + renderCondition(ctx, n.ChildByField(gdast.FieldRight)) + ":"
	ctx.out.PushMapped(text, startLine(n))
	ctx.level++
	formatNode(ctx, n.ChildByField(gdast.FieldBody))
	ctx.level--
}

func formatWhile(ctx *context, n *gdast.Node) {
	if !isMultiline(n) {
		verbatim(ctx, n)
		return
	}
	cond := n.ChildByField(gdast.FieldCondition)
	ctx.out.PushMapped(ctx.indent()+"while "+renderCondition(ctx, cond)+":", startLine(n))
	ctx.level++
	formatNode(ctx, n.ChildByField(gdast.FieldBody))
	ctx.level--
}

// renderCondition renders a header expression on one line. A condition that
// spans lines with comments inside comes through from source instead, with
// its lines shielded from reinjection.
func renderCondition(ctx *context, n *gdast.Node) string {
	if isMultiline(n) && spanHasComment(ctx.text(n)) {
		markSpanVerbatim(ctx, n)
		return ctx.text(n)
	}
	return renderExpr(ctx, n, true)
}

// markSpanVerbatim records a node's source lines as already emitted so the
// comment pass does not duplicate anything embedded in them.
func markSpanVerbatim(ctx *context, n *gdast.Node) {
	for ln := startLine(n); ln <= endLine(n); ln++ {
		ctx.out.verbatim[ln] = true
	}
}
