package format

import (
	"github.com/yaklabco/gogd/pkg/gdast"
)

func formatReturn(ctx *context, n *gdast.Node) {
	if isMultiline(n) && spanHasComment(ctx.text(n)) {
		verbatim(ctx, n)
		return
	}
	text := ctx.indent() + "return"
	if value := n.ChildByField(gdast.FieldValue); value != nil {
		text += " " + renderExpr(ctx, value, false)
	}
	pushStatement(ctx, text, n)
}

func formatExpressionStatement(ctx *context, n *gdast.Node) {
	if isMultiline(n) && spanHasComment(ctx.text(n)) {
		verbatim(ctx, n)
		return
	}
	inner := n.NamedChild(0)
	pushStatement(ctx, ctx.indent()+renderExpr(ctx, inner, false), n)
}
