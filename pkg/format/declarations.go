package format

import (
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
)

func formatExtends(ctx *context, n *gdast.Node) {
	typ := n.FirstOfKind(gdast.KindType)
	ctx.out.PushMapped(ctx.indent()+"extends "+ctx.text(typ), startLine(n))
}

func formatClassName(ctx *context, n *gdast.Node) {
	name := n.ChildByField(gdast.FieldName)
	ctx.out.PushMapped(ctx.indent()+"class_name "+ctx.text(name), startLine(n))
}

func formatClass(ctx *context, n *gdast.Node) {
	var b strings.Builder
	b.WriteString(ctx.indent())
	b.WriteString(annotationsPrefix(ctx, n))
	b.WriteString("class ")
	b.WriteString(ctx.text(n.ChildByField(gdast.FieldName)))
	if ext := n.ChildByField(gdast.FieldExtends); ext != nil {
		b.WriteString(" extends ")
		b.WriteString(ctx.text(ext))
	}
	b.WriteString(":")
	pushStatement(ctx, b.String(), n)

	ctx.level++
	formatNode(ctx, n.ChildByField(gdast.FieldBody))
	ctx.level--
}

func formatFunction(ctx *context, n *gdast.Node) {
	var b strings.Builder
	b.WriteString(ctx.indent())
	b.WriteString(annotationsPrefix(ctx, n))
	if isStaticDecl(ctx, n) {
		b.WriteString("static ")
	}
	b.WriteString("func ")
	b.WriteString(ctx.text(n.ChildByField(gdast.FieldName)))
	b.WriteString("(")
	b.WriteString(formatParameters(ctx, n.ChildByField(gdast.FieldParameters)))
	b.WriteString(")")
	if ret := n.ChildByField(gdast.FieldReturnType); ret != nil {
		b.WriteString(" -> ")
		b.WriteString(ctx.text(ret))
	}
	b.WriteString(":")
	pushStatement(ctx, b.String(), n)

	ctx.level++
	formatNode(ctx, n.ChildByField(gdast.FieldBody))
	ctx.level--
}

func formatVariable(ctx *context, n *gdast.Node) {
	text := ctx.text(n)
	if n.FirstOfKind(gdast.KindPropertyBody) != nil {
		verbatim(ctx, n)
		return
	}
	if isMultiline(n) && spanHasComment(text) {
		verbatim(ctx, n)
		return
	}

	var b strings.Builder
	b.WriteString(ctx.indent())
	b.WriteString(annotationsPrefix(ctx, n))
	if isStaticDecl(ctx, n) {
		b.WriteString("static ")
	}
	b.WriteString("var ")
	b.WriteString(ctx.text(n.ChildByField(gdast.FieldName)))
	writeTypedValue(ctx, &b, n)
	pushStatement(ctx, b.String(), n)
}

func formatConst(ctx *context, n *gdast.Node) {
	if isMultiline(n) && spanHasComment(ctx.text(n)) {
		verbatim(ctx, n)
		return
	}

	var b strings.Builder
	b.WriteString(ctx.indent())
	b.WriteString(annotationsPrefix(ctx, n))
	b.WriteString("const ")
	b.WriteString(ctx.text(n.ChildByField(gdast.FieldName)))
	writeTypedValue(ctx, &b, n)
	pushStatement(ctx, b.String(), n)
}

// writeTypedValue appends the ": type" and "= value" suffixes shared by var
// and const. An inferred declaration keeps its walrus: the source between
// the name and the value tells the two apart, since the tree stores both
// spellings the same way.
func writeTypedValue(ctx *context, b *strings.Builder, n *gdast.Node) {
	typ := n.ChildByField(gdast.FieldType)
	if typ != nil {
		b.WriteString(": ")
		b.WriteString(ctx.text(typ))
	}
	value := n.ChildByField(gdast.FieldValue)
	if value == nil {
		return
	}
	op := " = "
	if typ == nil && strings.Contains(string(ctx.src[n.StartByte:value.StartByte]), ":=") {
		op = " := "
	}
	b.WriteString(op)
	b.WriteString(renderExpr(ctx, value, false))
}

func formatSignal(ctx *context, n *gdast.Node) {
	if isMultiline(n) && spanHasComment(ctx.text(n)) {
		verbatim(ctx, n)
		return
	}
	var b strings.Builder
	b.WriteString(ctx.indent())
	b.WriteString("signal ")
	b.WriteString(ctx.text(n.ChildByField(gdast.FieldName)))
	if params := n.ChildByField(gdast.FieldParameters); params != nil {
		b.WriteString("(")
		b.WriteString(formatParameters(ctx, params))
		b.WriteString(")")
	}
	pushStatement(ctx, b.String(), n)
}

func formatEnum(ctx *context, n *gdast.Node) {
	if isMultiline(n) && spanHasComment(ctx.text(n)) {
		verbatim(ctx, n)
		return
	}

	head := ctx.indent() + annotationsPrefix(ctx, n) + "enum"
	if name := n.ChildByField(gdast.FieldName); name != nil {
		head += " " + ctx.text(name)
	}

	body := n.ChildByField(gdast.FieldBody)
	members := make([]string, 0, body.NamedChildCount())
	for _, m := range body.NamedChildren() {
		s := ctx.text(m.ChildByField(gdast.FieldName))
		if v := m.ChildByField(gdast.FieldValue); v != nil {
			s += " = " + renderExpr(ctx, v, true)
		}
		members = append(members, s)
	}

	var text string
	switch {
	case len(members) == 0:
		text = head + " {}"
	case hasTrailingComma(body):
		inner := ctx.innerIndent()
		text = head + " {\n" + inner + strings.Join(members, ",\n"+inner) + ",\n" + ctx.indent() + "}"
	default:
		text = head + " { " + strings.Join(members, ", ") + " }"
	}
	pushStatement(ctx, text, n)
}

// formatParameters renders a parameter list on one line. Defaults keep
// their walrus or explicit forms from source.
func formatParameters(ctx *context, params *gdast.Node) string {
	if params == nil {
		return ""
	}
	parts := make([]string, 0, params.NamedChildCount())
	for _, p := range params.NamedChildren() {
		parts = append(parts, formatParameter(ctx, p))
	}
	return strings.Join(parts, ", ")
}

func formatParameter(ctx *context, p *gdast.Node) string {
	switch p.Kind {
	case gdast.KindTypedParameter:
		return ctx.text(p.ChildByField(gdast.FieldName)) + ": " + ctx.text(p.ChildByField(gdast.FieldType))
	case gdast.KindDefaultParameter:
		value := p.ChildByField(gdast.FieldValue)
		op := " = "
		if strings.Contains(string(ctx.src[p.StartByte:value.StartByte]), ":=") {
			op = " := "
		}
		return ctx.text(p.ChildByField(gdast.FieldName)) + op + renderExpr(ctx, value, true)
	case gdast.KindTypedDefaultParameter:
		return ctx.text(p.ChildByField(gdast.FieldName)) + ": " + ctx.text(p.ChildByField(gdast.FieldType)) +
			" = " + renderExpr(ctx, p.ChildByField(gdast.FieldValue), true)
	default:
		return ctx.text(p)
	}
}

// annotationsPrefix renders the same-line annotations of a declaration,
// space separated, with a trailing space when present.
func annotationsPrefix(ctx *context, n *gdast.Node) string {
	anns := n.FirstOfKind(gdast.KindAnnotations)
	if anns == nil {
		return ""
	}
	var b strings.Builder
	for _, a := range anns.NamedChildren() {
		b.WriteString(ctx.text(a))
		b.WriteString(" ")
	}
	return b.String()
}

// isStaticDecl reports whether a var or func carries the static keyword,
// stored as an anonymous token child.
func isStaticDecl(ctx *context, n *gdast.Node) bool {
	for _, c := range n.Children {
		if !c.Named && c.Kind == gdast.KindPunct && ctx.text(c) == "static" {
			return true
		}
	}
	return false
}

// hasTrailingComma reports whether a bracketed container's last element is
// followed by a comma. The parser keeps commas and brackets as anonymous
// children, so the entry before the closing bracket tells.
func hasTrailingComma(n *gdast.Node) bool {
	if len(n.Children) < 2 {
		return false
	}
	return n.Children[len(n.Children)-2].Kind == gdast.KindComma
}
