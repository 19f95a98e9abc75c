package parser

import (
	"github.com/yaklabco/gogd/pkg/gdast"
)

func binary(kind gdast.Kind, left *gdast.Node, opFirst, opLast Token, right *gdast.Node) *gdast.Node {
	left.Field = gdast.FieldLeft
	right.Field = gdast.FieldRight
	op := anonSpan(gdast.KindOperator, gdast.FieldOperator, opFirst, opLast)
	return respan(&gdast.Node{Kind: kind, Named: true, Children: []*gdast.Node{left, op, right}})
}

func (p *Parser) parseExpression() (*gdast.Node, error) {
	return p.parseTernary()
}

func (p *Parser) parseTernary() (*gdast.Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.at(IF) {
		return left, nil
	}
	p.advance()
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ELSE); err != nil {
		return nil, err
	}
	alt, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return respan(&gdast.Node{Kind: gdast.KindConditionalExpression, Named: true,
		Children: []*gdast.Node{left, cond, alt}}), nil
}

func (p *Parser) parseOr() (*gdast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(OR) || p.atOp("||") {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binary(gdast.KindBooleanOperator, left, op, op, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*gdast.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.at(AND) || p.atOp("&&") {
		op := p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = binary(gdast.KindBooleanOperator, left, op, op, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (*gdast.Node, error) {
	if p.at(NOT) || p.atOp("!") {
		// "not in" never reaches here: NOT is consumed as a comparison
		// operator only after a left operand exists.
		op := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return respan(&gdast.Node{Kind: gdast.KindNotOperator, Named: true,
			Children: []*gdast.Node{anon(gdast.KindOperator, gdast.FieldOperator, op), operand}}), nil
	}
	return p.parseComparison()
}

func isComparisonOp(lit string) bool {
	switch lit {
	case "<", ">", "<=", ">=", "==", "!=":
		return true
	}
	return false
}

func (p *Parser) parseComparison() (*gdast.Node, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.cur().Type == OP && isComparisonOp(p.cur().Literal):
			op := p.advance()
			right, err := p.parseBitOr()
			if err != nil {
				return nil, err
			}
			left = binary(gdast.KindComparisonOperator, left, op, op, right)
		case p.at(IN):
			op := p.advance()
			right, err := p.parseBitOr()
			if err != nil {
				return nil, err
			}
			left = binary(gdast.KindBinaryOperator, left, op, op, right)
		case p.at(NOT) && p.peek().Type == IN:
			opFirst := p.advance()
			opLast := p.advance()
			right, err := p.parseBitOr()
			if err != nil {
				return nil, err
			}
			left = binary(gdast.KindBinaryOperator, left, opFirst, opLast, right)
		case p.at(IS):
			opFirst := p.advance()
			opLast := opFirst
			if p.at(NOT) {
				opLast = p.advance()
			}
			right, err := p.parseBitOr()
			if err != nil {
				return nil, err
			}
			left = binary(gdast.KindBinaryOperator, left, opFirst, opLast, right)
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseBinaryLevel(ops []string, next func() (*gdast.Node, error)) (*gdast.Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, lit := range ops {
			if p.atOp(lit) {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = binary(gdast.KindBinaryOperator, left, op, op, right)
	}
}

func (p *Parser) parseBitOr() (*gdast.Node, error) {
	return p.parseBinaryLevel([]string{"|"}, p.parseBitXor)
}

func (p *Parser) parseBitXor() (*gdast.Node, error) {
	return p.parseBinaryLevel([]string{"^"}, p.parseBitAnd)
}

func (p *Parser) parseBitAnd() (*gdast.Node, error) {
	return p.parseBinaryLevel([]string{"&"}, p.parseShift)
}

func (p *Parser) parseShift() (*gdast.Node, error) {
	return p.parseBinaryLevel([]string{"<<", ">>"}, p.parseAdditive)
}

func (p *Parser) parseAdditive() (*gdast.Node, error) {
	return p.parseBinaryLevel([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (*gdast.Node, error) {
	return p.parseBinaryLevel([]string{"*", "/", "%"}, p.parseUnary)
}

func (p *Parser) parseUnary() (*gdast.Node, error) {
	if p.atOp("-") || p.atOp("+") || p.atOp("~") {
		op := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := respan(&gdast.Node{Kind: gdast.KindUnaryOperator, Named: true,
			Children: []*gdast.Node{anon(gdast.KindOperator, gdast.FieldOperator, op), operand}})
		return n, nil
	}
	if p.at(AWAIT) {
		kw := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := respan(&gdast.Node{Kind: gdast.KindAwaitExpression, Named: true,
			Children: []*gdast.Node{operand}})
		n.StartByte = kw.StartByte
		n.StartPoint = gdast.Point{Row: kw.Row, Column: kw.Column}
		return n, nil
	}
	return p.parsePower()
}

func (p *Parser) parsePower() (*gdast.Node, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.atOp("**") {
		op := p.advance()
		// Right associative.
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binary(gdast.KindBinaryOperator, left, op, op, right)
	}
	return left, nil
}

func (p *Parser) parsePostfix() (*gdast.Node, error) {
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(DOT):
			p.advance()
			nameTok, err := p.expect(IDENT)
			if err != nil {
				return nil, err
			}
			n.Field = gdast.FieldObject
			attr := leaf(gdast.KindIdentifier, gdast.FieldAttribute, nameTok, nameTok)
			n = respan(&gdast.Node{Kind: gdast.KindAttribute, Named: true,
				Children: []*gdast.Node{n, attr}})
		case p.at(LPAREN):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			n.Field = gdast.FieldFunction
			n = respan(&gdast.Node{Kind: gdast.KindCall, Named: true,
				Children: []*gdast.Node{n, args}})
		case p.at(LBRACKET):
			open := p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			index.Field = gdast.FieldIndex
			closeTok, err := p.expect(RBRACKET)
			if err != nil {
				return nil, err
			}
			n.Field = gdast.FieldObject
			n = respan(&gdast.Node{Kind: gdast.KindSubscript, Named: true,
				Children: []*gdast.Node{n,
					anon(gdast.KindPunct, gdast.FieldNone, open),
					index,
					anon(gdast.KindPunct, gdast.FieldNone, closeTok)}})
		case p.at(AS):
			p.advance()
			typ, err := p.parseType(gdast.FieldType)
			if err != nil {
				return nil, err
			}
			n.Field = gdast.FieldValue
			n = respan(&gdast.Node{Kind: gdast.KindCastExpression, Named: true,
				Children: []*gdast.Node{n, typ}})
		default:
			return n, nil
		}
	}
}

func (p *Parser) parseArguments() (*gdast.Node, error) {
	n := &gdast.Node{Kind: gdast.KindArguments, Named: true, Field: gdast.FieldArguments}
	open, err := p.expect(LPAREN)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, open))
	for !p.at(RPAREN) && !p.at(EOF) {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, arg)
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

func (p *Parser) parsePrimary() (*gdast.Node, error) {
	tok := p.cur()
	switch tok.Type {
	case IDENT:
		p.advance()
		return leaf(gdast.KindIdentifier, gdast.FieldNone, tok, tok), nil
	case INTEGER:
		p.advance()
		return leaf(gdast.KindInteger, gdast.FieldNone, tok, tok), nil
	case FLOAT:
		p.advance()
		return leaf(gdast.KindFloat, gdast.FieldNone, tok, tok), nil
	case STRING:
		p.advance()
		return leaf(gdast.KindString, gdast.FieldNone, tok, tok), nil
	case STRING_NAME:
		p.advance()
		return leaf(gdast.KindStringName, gdast.FieldNone, tok, tok), nil
	case NODE_PATH:
		p.advance()
		return leaf(gdast.KindNodePath, gdast.FieldNone, tok, tok), nil
	case TRUE:
		p.advance()
		return leaf(gdast.KindTrue, gdast.FieldNone, tok, tok), nil
	case FALSE:
		p.advance()
		return leaf(gdast.KindFalse, gdast.FieldNone, tok, tok), nil
	case NULL:
		p.advance()
		return leaf(gdast.KindNull, gdast.FieldNone, tok, tok), nil
	case SELF:
		p.advance()
		return leaf(gdast.KindSelf, gdast.FieldNone, tok, tok), nil
	case LPAREN:
		open := p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		closeTok, err := p.expect(RPAREN)
		if err != nil {
			return nil, err
		}
		return respan(&gdast.Node{Kind: gdast.KindParenthesizedExpression, Named: true,
			Children: []*gdast.Node{
				anon(gdast.KindPunct, gdast.FieldNone, open),
				inner,
				anon(gdast.KindPunct, gdast.FieldNone, closeTok)}}), nil
	case LBRACKET:
		return p.parseArray()
	case LBRACE:
		return p.parseDictionary()
	case DOLLAR:
		return p.parseGetNode()
	case FUNC:
		return p.parseLambda()
	case OP:
		if tok.Literal == "%" {
			next := p.peek()
			if (next.Type == IDENT || next.Type == STRING) && next.StartByte == tok.EndByte {
				p.advance()
				last := p.advance()
				return leaf(gdast.KindGetNode, gdast.FieldNone, tok, last), nil
			}
		}
	}
	return nil, p.errorf("unexpected token %s in expression", tok.Type)
}

func (p *Parser) parseArray() (*gdast.Node, error) {
	n := &gdast.Node{Kind: gdast.KindArray, Named: true}
	open, err := p.expect(LBRACKET)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, open))
	for !p.at(RBRACKET) && !p.at(EOF) {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, elem)
		if p.at(COMMA) {
			n.Children = append(n.Children, anon(gdast.KindComma, gdast.FieldNone, p.advance()))
			continue
		}
		break
	}
	closeTok, err := p.expect(RBRACKET)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, closeTok))
	return respan(n), nil
}

func (p *Parser) parseDictionary() (*gdast.Node, error) {
	n := &gdast.Node{Kind: gdast.KindDictionary, Named: true}
	open, err := p.expect(LBRACE)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, open))
	for !p.at(RBRACE) && !p.at(EOF) {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		key.Field = gdast.FieldKey
		// Both "key: value" and the legacy "key = value" spellings.
		if !p.at(COLON) && !p.at(ASSIGN) {
			return nil, p.errorf("expected : in dictionary entry")
		}
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		value.Field = gdast.FieldValue
		pair := respan(&gdast.Node{Kind: gdast.KindPair, Named: true,
			Children: []*gdast.Node{key, value}})
		n.Children = append(n.Children, pair)
		if p.at(COMMA) {
			n.Children = append(n.Children, anon(gdast.KindComma, gdast.FieldNone, p.advance()))
			continue
		}
		break
	}
	closeTok, err := p.expect(RBRACE)
	if err != nil {
		return nil, err
	}
	n.Children = append(n.Children, anon(gdast.KindPunct, gdast.FieldNone, closeTok))
	return respan(n), nil
}

// parseGetNode consumes $path forms: $Child, $Path/To/Node, $"weird name",
// including %Unique segments.
func (p *Parser) parseGetNode() (*gdast.Node, error) {
	dollar := p.advance()
	if p.at(STRING) {
		s := p.advance()
		return leaf(gdast.KindGetNode, gdast.FieldNone, dollar, s), nil
	}
	if p.atOp("%") {
		p.advance()
	}
	last, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	for p.atOp("/") && p.cur().StartByte == last.EndByte {
		p.advance()
		if p.atOp("%") {
			p.advance()
		}
		last, err = p.expect(IDENT)
		if err != nil {
			return nil, err
		}
	}
	return leaf(gdast.KindGetNode, gdast.FieldNone, dollar, last), nil
}

// parseLambda captures an inline function expression as a raw span: the
// formatter always reproduces lambdas from source.
func (p *Parser) parseLambda() (*gdast.Node, error) {
	first := p.advance() // func
	last := first
	if p.at(IDENT) {
		last = p.advance()
	}
	if !p.at(LPAREN) {
		return nil, p.errorf("expected ( in lambda")
	}
	depth := 0
	for {
		switch p.cur().Type {
		case LPAREN:
			depth++
		case RPAREN:
			depth--
		case EOF:
			return nil, p.errorf("unterminated lambda")
		}
		last = p.advance()
		if depth == 0 {
			break
		}
	}
	if p.at(ARROW) {
		p.advance()
		if _, err := p.parseType(gdast.FieldNone); err != nil {
			return nil, err
		}
		last = p.toks[p.pos-1]
	}
	if !p.at(COLON) {
		return nil, p.errorf("expected : in lambda")
	}
	last = p.advance()

	if p.at(NEWLINE) {
		p.advance()
		if _, err := p.expect(INDENT); err != nil {
			return nil, err
		}
		raw, err := p.consumeRawBlock()
		if err != nil {
			return nil, err
		}
		n := leaf(gdast.KindLambda, gdast.FieldNone, first, last)
		n.EndByte = raw.EndByte
		n.EndPoint = raw.EndPoint
		return n, nil
	}

	// Inline body: runs to the end of the logical line or to the comma or
	// closing bracket of an enclosing container.
	bodyDepth := 0
	for {
		switch p.cur().Type {
		case LPAREN, LBRACKET, LBRACE:
			bodyDepth++
		case RPAREN, RBRACKET, RBRACE:
			if bodyDepth == 0 {
				return leaf(gdast.KindLambda, gdast.FieldNone, first, last), nil
			}
			bodyDepth--
		case COMMA:
			if bodyDepth == 0 {
				return leaf(gdast.KindLambda, gdast.FieldNone, first, last), nil
			}
		case NEWLINE, EOF, DEDENT:
			return leaf(gdast.KindLambda, gdast.FieldNone, first, last), nil
		}
		last = p.advance()
	}
}

// parseType captures a type expression as a raw span: an identifier,
// dotted path, generic brackets, or a string path after extends.
func (p *Parser) parseType(field gdast.Field) (*gdast.Node, error) {
	if p.at(STRING) {
		tok := p.advance()
		return leaf(gdast.KindType, field, tok, tok), nil
	}
	first, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	last := first
	for {
		switch {
		case p.at(DOT):
			p.advance()
			last, err = p.expect(IDENT)
			if err != nil {
				return nil, err
			}
		case p.at(LBRACKET):
			depth := 0
			for {
				switch p.cur().Type {
				case LBRACKET:
					depth++
				case RBRACKET:
					depth--
				case EOF:
					return nil, p.errorf("unterminated type")
				}
				last = p.advance()
				if depth == 0 {
					break
				}
			}
		default:
			return leaf(gdast.KindType, field, first, last), nil
		}
	}
}
