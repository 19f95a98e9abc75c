package format

import (
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// renderExpr renders an expression. inline forces single-line output for
// containers, used inside headers, parameter defaults, and the elements of
// an already multi-line container. Statement positions pass false, letting
// trailing-comma containers spread over lines.
func renderExpr(ctx *context, n *gdast.Node, inline bool) string {
	switch n.Kind {
	case gdast.KindAssignment, gdast.KindAugmentedAssignment:
		return renderExpr(ctx, n.ChildByField(gdast.FieldLeft), true) +
			" " + operatorText(ctx, n) + " " +
			renderExpr(ctx, n.ChildByField(gdast.FieldRight), inline)
	case gdast.KindConditionalExpression:
		return renderExpr(ctx, n.NamedChild(0), true) +
			" if " + renderExpr(ctx, n.NamedChild(1), true) +
			" else " + renderExpr(ctx, n.NamedChild(2), true)
	case gdast.KindBooleanOperator, gdast.KindComparisonOperator, gdast.KindBinaryOperator:
		return renderExpr(ctx, n.ChildByField(gdast.FieldLeft), true) +
			" " + operatorText(ctx, n) + " " +
			renderExpr(ctx, n.ChildByField(gdast.FieldRight), true)
	case gdast.KindNotOperator:
		op := operatorText(ctx, n)
		operand := renderExpr(ctx, n.NamedChild(0), true)
		if op == "not" {
			return "not " + operand
		}
		return op + operand
	case gdast.KindUnaryOperator:
		return operatorText(ctx, n) + renderExpr(ctx, n.NamedChild(0), true)
	case gdast.KindAwaitExpression:
		return "await " + renderExpr(ctx, n.NamedChild(0), true)
	case gdast.KindCastExpression:
		return renderExpr(ctx, n.ChildByField(gdast.FieldValue), true) +
			" as " + ctx.text(n.ChildByField(gdast.FieldType))
	case gdast.KindCall:
		return renderCall(ctx, n, inline)
	case gdast.KindAttribute:
		return renderExpr(ctx, n.ChildByField(gdast.FieldObject), true) +
			"." + ctx.text(n.ChildByField(gdast.FieldAttribute))
	case gdast.KindSubscript:
		return renderExpr(ctx, n.ChildByField(gdast.FieldObject), true) +
			"[" + renderExpr(ctx, n.ChildByField(gdast.FieldIndex), true) + "]"
	case gdast.KindParenthesizedExpression:
		return "(" + renderExpr(ctx, n.NamedChild(0), true) + ")"
	case gdast.KindArray:
		return renderBracketed(ctx, n, inline, "[", "]", false)
	case gdast.KindDictionary:
		return renderBracketed(ctx, n, inline, "{", "}", true)
	case gdast.KindPair:
		return renderExpr(ctx, n.ChildByField(gdast.FieldKey), true) +
			": " + renderExpr(ctx, n.ChildByField(gdast.FieldValue), true)
	default:
		// Leaves reproduce their source text: literals, identifiers, node
		// paths, lambdas, raw types. Multi-line leaves shield their lines
		// from the comment pass.
		if isMultiline(n) {
			markSpanVerbatim(ctx, n)
		}
		return ctx.text(n)
	}
}

// operatorText returns a node's operator token, collapsing interior runs of
// whitespace so "is    not" comes out as "is not".
func operatorText(ctx *context, n *gdast.Node) string {
	op := n.ChildByField(gdast.FieldOperator)
	return strings.Join(strings.Fields(ctx.text(op)), " ")
}

func renderCall(ctx *context, n *gdast.Node, inline bool) string {
	fn := renderExpr(ctx, n.ChildByField(gdast.FieldFunction), true)
	args := n.ChildByField(gdast.FieldArguments)
	elems := make([]string, 0, args.NamedChildCount())
	for _, a := range args.NamedChildren() {
		elems = append(elems, renderExpr(ctx, a, true))
	}
	if len(elems) == 0 {
		return fn + "()"
	}
	if !inline && hasTrailingComma(args) {
		inner := ctx.innerIndent()
		return fn + "(\n" + inner + strings.Join(elems, ",\n"+inner) + ",\n" + ctx.indent() + ")"
	}
	return fn + "(" + strings.Join(elems, ", ") + ")"
}

// renderBracketed renders arrays and dictionaries. A trailing comma in the
// source keeps the container spread over lines, one element per line, with
// the trailing comma preserved; anything else collapses to one line.
func renderBracketed(ctx *context, n *gdast.Node, inline bool, open, close string, spaced bool) string {
	elems := make([]string, 0, n.NamedChildCount())
	for _, c := range n.NamedChildren() {
		elems = append(elems, renderExpr(ctx, c, true))
	}
	if len(elems) == 0 {
		return open + close
	}
	if !inline && hasTrailingComma(n) {
		inner := ctx.innerIndent()
		return open + "\n" + inner + strings.Join(elems, ",\n"+inner) + ",\n" + ctx.indent() + close
	}
	if spaced {
		return open + " " + strings.Join(elems, ", ") + " " + close
	}
	return open + strings.Join(elems, ", ") + close
}
