// Package parser turns GDScript source into the generic syntax tree defined
// by pkg/gdast. The grammar follows tree-sitter-gdscript's shape: statements
// and expressions become named nodes, punctuation stays in the tree as
// unnamed tokens, and constructs the formatter always copies verbatim
// (match patterns, property bodies, lambdas) are captured as raw leaf spans.
//
// Comments never enter the tree; callers that need them scan the source
// directly. This keeps tree comparison independent of comment placement.
package parser

import (
	"fmt"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// Parse parses src and returns the syntax tree. The returned error carries
// 1-based line:column context.
func Parse(src []byte) (*gdast.Tree, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	p := &Parser{src: src, toks: toks}
	root, err := p.parseSource()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &gdast.Tree{Root: root, Source: src}, nil
}

// Parser consumes a token stream produced by the lexer. Use Parse; the type
// is exported only so tests can poke at partially parsed input.
type Parser struct {
	src  []byte
	toks []Token
	pos  int
}

func (p *Parser) cur() Token { return p.toks[p.pos] }

func (p *Parser) peekAt(n int) Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) peek() Token { return p.peekAt(1) }

func (p *Parser) at(t TokenType) bool { return p.cur().Type == t }

func (p *Parser) atOp(lit string) bool {
	c := p.cur()
	return c.Type == OP && c.Literal == lit
}

func (p *Parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if !p.at(t) {
		c := p.cur()
		return c, fmt.Errorf("%d:%d: expected %s, got %s", c.Row+1, c.Column+1, t, c.Type)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...any) error {
	c := p.cur()
	return fmt.Errorf("%d:%d: %s", c.Row+1, c.Column+1, fmt.Sprintf(format, args...))
}

// leaf builds a named leaf node spanning first through last.
func leaf(kind gdast.Kind, field gdast.Field, first, last Token) *gdast.Node {
	return &gdast.Node{
		Kind:       kind,
		Field:      field,
		Named:      true,
		StartByte:  first.StartByte,
		EndByte:    last.EndByte,
		StartPoint: gdast.Point{Row: first.Row, Column: first.Column},
		EndPoint:   gdast.Point{Row: last.EndRow, Column: last.EndColumn},
	}
}

// anon builds an unnamed token node.
func anon(kind gdast.Kind, field gdast.Field, t Token) *gdast.Node {
	n := leaf(kind, field, t, t)
	n.Named = false
	return n
}

// anonSpan builds an unnamed node covering first through last.
func anonSpan(kind gdast.Kind, field gdast.Field, first, last Token) *gdast.Node {
	n := leaf(kind, field, first, last)
	n.Named = false
	return n
}

// respan widens n to cover all of its children.
func respan(n *gdast.Node) *gdast.Node {
	for _, c := range n.Children {
		if n.EndByte == 0 && n.StartByte == 0 && n.StartPoint == (gdast.Point{}) && n.EndPoint == (gdast.Point{}) {
			n.StartByte, n.EndByte = c.StartByte, c.EndByte
			n.StartPoint, n.EndPoint = c.StartPoint, c.EndPoint
			continue
		}
		if c.StartByte < n.StartByte {
			n.StartByte = c.StartByte
			n.StartPoint = c.StartPoint
		}
		if c.EndByte > n.EndByte {
			n.EndByte = c.EndByte
			n.EndPoint = c.EndPoint
		}
	}
	return n
}

func (p *Parser) parseSource() (*gdast.Node, error) {
	root := &gdast.Node{Kind: gdast.KindSource, Named: true}
	for !p.at(EOF) {
		switch p.cur().Type {
		case NEWLINE, SEMICOLON, INDENT, DEDENT:
			p.advance()
			continue
		}
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, stmts...)
		p.endStatement()
	}
	root.EndByte = len(p.src)
	eof := p.toks[len(p.toks)-1]
	root.EndPoint = gdast.Point{Row: eof.EndRow, Column: eof.EndColumn}
	return root, nil
}

// endStatement consumes a statement terminator when one is present. Compound
// statements end on a DEDENT their block already consumed, so absence of a
// terminator is not an error.
func (p *Parser) endStatement() {
	if p.at(SEMICOLON) || p.at(NEWLINE) {
		p.advance()
	}
}

// parseStatement parses one logical statement. It returns a slice because a
// few single-line forms (class_name X extends Y, stacked standalone
// annotations) expand to multiple sibling nodes.
func (p *Parser) parseStatement() ([]*gdast.Node, error) {
	var anns []*gdast.Node
	for p.at(AT) {
		ann, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		anns = append(anns, ann)
		if p.at(NEWLINE) || p.at(EOF) || p.at(DEDENT) {
			// Annotation lines with nothing after them stand alone.
			return anns, nil
		}
	}

	var annsNode *gdast.Node
	if len(anns) > 0 {
		annsNode = respan(&gdast.Node{Kind: gdast.KindAnnotations, Named: true, Children: anns})
	}

	stmt, extra, err := p.parseStatementInner(annsNode)
	if err != nil {
		return nil, err
	}
	out := []*gdast.Node{stmt}
	if extra != nil {
		out = append(out, extra)
	}
	return out, nil
}

func (p *Parser) parseStatementInner(anns *gdast.Node) (stmt, extra *gdast.Node, err error) {
	switch p.cur().Type {
	case EXTENDS:
		stmt, err = p.parseExtends()
	case CLASS_NAME:
		stmt, extra, err = p.parseClassName()
	case CLASS:
		stmt, err = p.parseClass(anns)
		anns = nil
	case STATIC:
		if p.peek().Type == VAR {
			stmt, err = p.parseVar(anns)
		} else {
			stmt, err = p.parseFunction(anns)
		}
		anns = nil
	case FUNC:
		stmt, err = p.parseFunction(anns)
		anns = nil
	case VAR:
		stmt, err = p.parseVar(anns)
		anns = nil
	case CONST:
		stmt, err = p.parseConst(anns)
		anns = nil
	case SIGNAL:
		stmt, err = p.parseSignal(anns)
		anns = nil
	case ENUM:
		stmt, err = p.parseEnum(anns)
		anns = nil
	case IF:
		stmt, err = p.parseIf()
	case FOR:
		stmt, err = p.parseFor()
	case WHILE:
		stmt, err = p.parseWhile()
	case MATCH:
		stmt, err = p.parseMatch()
	case RETURN:
		stmt, err = p.parseReturn()
	case PASS:
		stmt = leaf(gdast.KindPassStatement, gdast.FieldNone, p.advance(), p.toks[p.pos-1])
	case BREAK:
		stmt = leaf(gdast.KindBreakStatement, gdast.FieldNone, p.advance(), p.toks[p.pos-1])
	case CONTINUE:
		stmt = leaf(gdast.KindContinueStatement, gdast.FieldNone, p.advance(), p.toks[p.pos-1])
	case BREAKPOINT:
		stmt = leaf(gdast.KindBreakpointStatement, gdast.FieldNone, p.advance(), p.toks[p.pos-1])
	default:
		stmt, err = p.parseExpressionStatement()
	}
	if err != nil {
		return nil, nil, err
	}
	if anns != nil {
		// Same-line annotations on forms that do not absorb them stay
		// separate; otherwise prepend the wrapper and widen the span.
		stmt.Children = append([]*gdast.Node{anns}, stmt.Children...)
		respan(stmt)
	}
	return stmt, extra, nil
}

func (p *Parser) parseAnnotation() (*gdast.Node, error) {
	atTok := p.advance()
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	n := &gdast.Node{Kind: gdast.KindAnnotation, Named: true}
	n.Children = append(n.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
	last := nameTok
	if p.at(LPAREN) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, args)
	}
	n.StartByte = atTok.StartByte
	n.StartPoint = gdast.Point{Row: atTok.Row, Column: atTok.Column}
	n.EndByte = last.EndByte
	n.EndPoint = gdast.Point{Row: last.EndRow, Column: last.EndColumn}
	respan(n)
	n.StartByte = atTok.StartByte
	n.StartPoint = gdast.Point{Row: atTok.Row, Column: atTok.Column}
	return n, nil
}

func (p *Parser) parseExtends() (*gdast.Node, error) {
	kw := p.advance()
	typ, err := p.parseType(gdast.FieldNone)
	if err != nil {
		return nil, err
	}
	n := &gdast.Node{Kind: gdast.KindExtendsStatement, Named: true, Children: []*gdast.Node{typ}}
	respan(n)
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	return n, nil
}

func (p *Parser) parseClassName() (stmt, extra *gdast.Node, err error) {
	kw := p.advance()
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, nil, err
	}
	stmt = &gdast.Node{Kind: gdast.KindClassNameStatement, Named: true}
	stmt.Children = append(stmt.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
	respan(stmt)
	stmt.StartByte = kw.StartByte
	stmt.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	if p.at(EXTENDS) {
		extra, err = p.parseExtends()
		if err != nil {
			return nil, nil, err
		}
	}
	return stmt, extra, nil
}

func (p *Parser) parseClass(anns *gdast.Node) (*gdast.Node, error) {
	kw := p.advance()
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	n := &gdast.Node{Kind: gdast.KindClassDefinition, Named: true}
	if anns != nil {
		n.Children = append(n.Children, anns)
	}
	n.Children = append(n.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
	if p.at(EXTENDS) {
		p.advance()
		typ, err := p.parseType(gdast.FieldExtends)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, typ)
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, body)
	respan(n)
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	if anns != nil {
		n.StartByte = anns.StartByte
		n.StartPoint = anns.StartPoint
	}
	return n, nil
}

func (p *Parser) parseFunction(anns *gdast.Node) (*gdast.Node, error) {
	n := &gdast.Node{Kind: gdast.KindFunctionDefinition, Named: true}
	if anns != nil {
		n.Children = append(n.Children, anns)
	}
	first := p.cur()
	if p.at(STATIC) {
		n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, p.advance()))
	}
	if _, err := p.expect(FUNC); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, params)
	if p.at(ARROW) {
		p.advance()
		typ, err := p.parseType(gdast.FieldReturnType)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, typ)
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, body)
	respan(n)
	n.StartByte = first.StartByte
	n.StartPoint = gdast.Point{Row: first.Row, Column: first.Column}
	if anns != nil {
		n.StartByte = anns.StartByte
		n.StartPoint = anns.StartPoint
	}
	return n, nil
}

func (p *Parser) parseParameters() (*gdast.Node, error) {
	n := &gdast.Node{Kind: gdast.KindParameters, Named: true, Field: gdast.FieldParameters}
	open, err := p.expect(LPAREN)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, open))
	for !p.at(RPAREN) && !p.at(EOF) {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, param)
		if p.at(COMMA) {
			n.Children = append(n.Children, anon(gdast.KindComma, gdast.FieldNone, p.advance()))
			continue
		}
		break
	}
	closeTok, err := p.expect(RPAREN)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, closeTok))
	return respan(n), nil
}

// parseParameter handles the four parameter shapes: bare name, typed,
// defaulted, and typed-with-default. Inferred defaults (p := v) come out as
// default parameters; the renderer restores the walrus from source text.
func (p *Parser) parseParameter() (*gdast.Node, error) {
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	ident := leaf(gdast.KindIdentifier, gdast.FieldName, nameTok, nameTok)
	switch {
	case p.at(COLON):
		p.advance()
		typ, err := p.parseType(gdast.FieldType)
		if err != nil {
			return nil, err
		}
		if p.at(ASSIGN) {
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			value.Field = gdast.FieldValue
			return respan(&gdast.Node{Kind: gdast.KindTypedDefaultParameter, Named: true,
				Children: []*gdast.Node{ident, typ, value}}), nil
		}
		return respan(&gdast.Node{Kind: gdast.KindTypedParameter, Named: true,
			Children: []*gdast.Node{ident, typ}}), nil
	case p.at(ASSIGN), p.at(WALRUS):
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value.Field = gdast.FieldValue
		return respan(&gdast.Node{Kind: gdast.KindDefaultParameter, Named: true,
			Children: []*gdast.Node{ident, value}}), nil
	default:
		ident.Field = gdast.FieldNone
		return ident, nil
	}
}

func (p *Parser) parseVar(anns *gdast.Node) (*gdast.Node, error) {
	n := &gdast.Node{Kind: gdast.KindVariableStatement, Named: true}
	if anns != nil {
		n.Children = append(n.Children, anns)
	}
	first := p.cur()
	if p.at(STATIC) {
		n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, p.advance()))
	}
	if _, err := p.expect(VAR); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))

	if p.at(COLON) && p.peek().Type != NEWLINE && p.peek().Type != INDENT {
		p.advance()
		typ, err := p.parseType(gdast.FieldType)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, typ)
	}
	if p.at(ASSIGN) || p.at(WALRUS) {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value.Field = gdast.FieldValue
		n.Children = append(n.Children, value)
	}
	if p.at(COLON) {
		// Property body: inline "var x = 0: set = _set" or an indented
		// get/set block. Captured as a raw span.
		p.advance()
		body, err := p.parseRawSuffix()
		if err != nil {
			return nil, err
		}
		if body != nil {
			body.Kind = gdast.KindPropertyBody
			n.Children = append(n.Children, body)
		}
	}
	respan(n)
	n.StartByte = first.StartByte
	n.StartPoint = gdast.Point{Row: first.Row, Column: first.Column}
	if anns != nil {
		n.StartByte = anns.StartByte
		n.StartPoint = anns.StartPoint
	}
	return n, nil
}

func (p *Parser) parseConst(anns *gdast.Node) (*gdast.Node, error) {
	kw := p.advance()
	n := &gdast.Node{Kind: gdast.KindConstStatement, Named: true}
	if anns != nil {
		n.Children = append(n.Children, anns)
	}
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
	if p.at(COLON) {
		p.advance()
		typ, err := p.parseType(gdast.FieldType)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, typ)
	}
	if p.at(ASSIGN) || p.at(WALRUS) {
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value.Field = gdast.FieldValue
		n.Children = append(n.Children, value)
	}
	respan(n)
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	if anns != nil {
		n.StartByte = anns.StartByte
		n.StartPoint = anns.StartPoint
	}
	return n, nil
}

func (p *Parser) parseSignal(anns *gdast.Node) (*gdast.Node, error) {
	kw := p.advance()
	n := &gdast.Node{Kind: gdast.KindSignalStatement, Named: true}
	if anns != nil {
		n.Children = append(n.Children, anns)
	}
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
	if p.at(LPAREN) {
		params, err := p.parseParameters()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, params)
	}
	respan(n)
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	if anns != nil {
		n.StartByte = anns.StartByte
		n.StartPoint = anns.StartPoint
	}
	return n, nil
}

func (p *Parser) parseEnum(anns *gdast.Node) (*gdast.Node, error) {
	kw := p.advance()
	n := &gdast.Node{Kind: gdast.KindEnumDefinition, Named: true}
	if anns != nil {
		n.Children = append(n.Children, anns)
	}
	if p.at(IDENT) {
		nameTok := p.advance()
		n.Children = append(n.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
	}
	body := &gdast.Node{Kind: gdast.KindEnumBody, Named: true, Field: gdast.FieldBody}
	open, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}
	body.Children = append(body.Children, anon(gdast.KindPunct, gdast.FieldNone, open))
	for !p.at(RBRACE) && !p.at(EOF) {
		nameTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		enumr := &gdast.Node{Kind: gdast.KindEnumerator, Named: true}
		enumr.Children = append(enumr.Children, leaf(gdast.KindName, gdast.FieldName, nameTok, nameTok))
		if p.at(ASSIGN) {
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			value.Field = gdast.FieldValue
			enumr.Children = append(enumr.Children, value)
		}
		body.Children = append(body.Children, respan(enumr))
		if p.at(COMMA) {
			body.Children = append(body.Children, anon(gdast.KindComma, gdast.FieldNone, p.advance()))
			continue
		}
		break
	}
	closeTok, err := p.expect(RBRACE)
	if err != nil {
		return nil, err
	}
	body.Children = append(body.Children, anon(gdast.KindPunct, gdast.FieldNone, closeTok))
	n.Children = append(n.Children, respan(body))
	respan(n)
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	if anns != nil {
		n.StartByte = anns.StartByte
		n.StartPoint = anns.StartPoint
	}
	return n, nil
}

func (p *Parser) parseIf() (*gdast.Node, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cond.Field = gdast.FieldCondition
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := &gdast.Node{Kind: gdast.KindIfStatement, Named: true, Children: []*gdast.Node{cond, body}}
	for p.at(ELIF) {
		ekw := p.advance()
		econd, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		econd.Field = gdast.FieldCondition
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		ebody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		clause := respan(&gdast.Node{Kind: gdast.KindElifClause, Named: true,
			Children: []*gdast.Node{econd, ebody}})
		clause.StartByte = ekw.StartByte
		clause.StartPoint = gdast.Point{Row: ekw.Row, Column: ekw.Column}
		n.Children = append(n.Children, clause)
	}
	if p.at(ELSE) {
		ekw := p.advance()
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		ebody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		clause := respan(&gdast.Node{Kind: gdast.KindElseClause, Named: true,
			Children: []*gdast.Node{ebody}})
		clause.StartByte = ekw.StartByte
		clause.StartPoint = gdast.Point{Row: ekw.Row, Column: ekw.Column}
		n.Children = append(n.Children, clause)
	}
	respan(n)
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	return n, nil
}

func (p *Parser) parseFor() (*gdast.Node, error) {
	kw := p.advance()
	varTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	n := &gdast.Node{Kind: gdast.KindForStatement, Named: true}
	n.Children = append(n.Children, leaf(gdast.KindIdentifier, gdast.FieldLeft, varTok, varTok))
	if p.at(COLON) && p.peek().Type != NEWLINE {
		p.advance()
		typ, err := p.parseType(gdast.FieldType)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, typ)
	}
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	right.Field = gdast.FieldRight
	n.Children = append(n.Children, right)
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, body)
	respan(n)
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	return n, nil
}

func (p *Parser) parseWhile() (*gdast.Node, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	cond.Field = gdast.FieldCondition
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	n := respan(&gdast.Node{Kind: gdast.KindWhileStatement, Named: true,
		Children: []*gdast.Node{cond, body}})
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	return n, nil
}

func (p *Parser) parseMatch() (*gdast.Node, error) {
	kw := p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	value.Field = gdast.FieldValue
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}
	body := &gdast.Node{Kind: gdast.KindMatchBody, Named: true, Field: gdast.FieldBody}
	for !p.at(DEDENT) && !p.at(EOF) {
		if p.at(NEWLINE) || p.at(SEMICOLON) {
			p.advance()
			continue
		}
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		body.Children = append(body.Children, arm)
	}
	if p.at(DEDENT) {
		p.advance()
	}
	n := respan(&gdast.Node{Kind: gdast.KindMatchStatement, Named: true,
		Children: []*gdast.Node{value, respan(body)}})
	n.StartByte = kw.StartByte
	n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	return n, nil
}

// parseMatchArm captures the pattern as a raw span up to the arm's colon.
// Patterns embed binding forms and wildcards that are not expressions, and
// the formatter keeps match bodies verbatim anyway.
func (p *Parser) parseMatchArm() (*gdast.Node, error) {
	first := p.cur()
	last := first
	depth := 0
	for {
		switch p.cur().Type {
		case LPAREN, LBRACKET, LBRACE:
			depth++
		case RPAREN, RBRACKET, RBRACE:
			depth--
		case COLON:
			if depth == 0 {
				goto done
			}
		case NEWLINE, EOF, DEDENT:
			return nil, p.errorf("expected : after match pattern")
		}
		last = p.advance()
	}
done:
	pattern := leaf(gdast.KindPattern, gdast.FieldNone, first, last)
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return respan(&gdast.Node{Kind: gdast.KindMatchArm, Named: true,
		Children: []*gdast.Node{pattern, body}}), nil
}

func (p *Parser) parseReturn() (*gdast.Node, error) {
	kw := p.advance()
	n := leaf(gdast.KindReturnStatement, gdast.FieldNone, kw, kw)
	if !p.at(NEWLINE) && !p.at(EOF) && !p.at(SEMICOLON) && !p.at(DEDENT) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value.Field = gdast.FieldValue
		n.Children = append(n.Children, value)
		respan(n)
		n.StartByte = kw.StartByte
		n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
	}
	return n, nil
}

func (p *Parser) parseExpressionStatement() (*gdast.Node, error) {
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	var inner *gdast.Node
	switch {
	case p.at(ASSIGN):
		opTok := p.advance()
		right, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		left.Field = gdast.FieldLeft
		right.Field = gdast.FieldRight
		inner = respan(&gdast.Node{Kind: gdast.KindAssignment, Named: true,
			Children: []*gdast.Node{left, anon(gdast.KindOperator, gdast.FieldOperator, opTok), right}})
	case p.at(AUGOP):
		opTok := p.advance()
		right, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		left.Field = gdast.FieldLeft
		right.Field = gdast.FieldRight
		inner = respan(&gdast.Node{Kind: gdast.KindAugmentedAssignment, Named: true,
			Children: []*gdast.Node{left, anon(gdast.KindOperator, gdast.FieldOperator, opTok), right}})
	default:
		inner = left
	}
	stmt := &gdast.Node{Kind: gdast.KindExpressionStatement, Named: true,
		Children: []*gdast.Node{inner}}
	return respan(stmt), nil
}

// parseBlock parses a statement body after its colon: either an indented
// block or one-or-more inline statements on the same line.
func (p *Parser) parseBlock() (*gdast.Node, error) {
	body := &gdast.Node{Kind: gdast.KindBody, Named: true, Field: gdast.FieldBody}
	if p.at(NEWLINE) {
		p.advance()
		if _, err := p.expect(INDENT); err != nil {
			return nil, err
		}
		for !p.at(DEDENT) && !p.at(EOF) {
			if p.at(NEWLINE) || p.at(SEMICOLON) {
				p.advance()
				continue
			}
			stmts, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			body.Children = append(body.Children, stmts...)
			p.endStatement()
		}
		if p.at(DEDENT) {
			p.advance()
		}
		return respan(body), nil
	}

	for {
		stmts, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body.Children = append(body.Children, stmts...)
		if p.at(SEMICOLON) {
			p.advance()
			if p.at(NEWLINE) || p.at(EOF) || p.at(DEDENT) {
				break
			}
			continue
		}
		break
	}
	return respan(body), nil
}

// parseRawSuffix captures either an indented block or the rest of the
// current line as a raw span. Used for property (get/set) bodies.
func (p *Parser) parseRawSuffix() (*gdast.Node, error) {
	if p.at(NEWLINE) {
		p.advance()
		if _, err := p.expect(INDENT); err != nil {
			return nil, err
		}
		return p.consumeRawBlock()
	}
	first := p.cur()
	last := first
	for !p.at(NEWLINE) && !p.at(EOF) && !p.at(DEDENT) {
		last = p.advance()
	}
	return leaf(gdast.KindPattern, gdast.FieldNone, first, last), nil
}

// consumeRawBlock swallows tokens until the DEDENT matching an already
// consumed INDENT, returning a raw leaf covering the content.
func (p *Parser) consumeRawBlock() (*gdast.Node, error) {
	depth := 1
	var first, last *Token
	for depth > 0 {
		switch p.cur().Type {
		case INDENT:
			depth++
		case DEDENT:
			depth--
			if depth == 0 {
				p.advance()
				goto done
			}
		case EOF:
			goto done
		case NEWLINE:
		default:
			t := p.cur()
			if first == nil {
				first = &t
			}
			last = &t
		}
		p.advance()
	}
done:
	if first == nil {
		return nil, p.errorf("empty block")
	}
	return leaf(gdast.KindPattern, gdast.FieldNone, *first, *last), nil
}
