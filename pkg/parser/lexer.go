package parser

import (
	"fmt"
	"strings"
)

// lexer turns GDScript source into a flat token stream. Indentation becomes
// INDENT/DEDENT pairs the way the language defines blocks; blank and
// comment-only lines produce no tokens at all, and newlines inside brackets
// are suppressed. The indentation of the first content line becomes the
// baseline, so fragments such as an isolated class body lex cleanly.
type lexer struct {
	src         []byte
	pos         int
	row         int
	lineStart   int
	atLineStart bool
	parens      int
	indents     []int
	tokens      []Token
}

const indentTabWidth = 4

func tokenize(src []byte) ([]Token, error) {
	l := &lexer{src: src, atLineStart: true}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("%d:%d: %s", l.row+1, l.col()+1, fmt.Sprintf(format, args...))
}

func (l *lexer) col() int { return l.pos - l.lineStart }

func (l *lexer) emit(t TokenType, start int, startRow, startCol int) {
	l.tokens = append(l.tokens, Token{
		Type:      t,
		Literal:   string(l.src[start:l.pos]),
		StartByte: start,
		EndByte:   l.pos,
		Row:       startRow,
		Column:    startCol,
		EndRow:    l.row,
		EndColumn: l.col(),
	})
}

func (l *lexer) emitSynthetic(t TokenType) {
	l.tokens = append(l.tokens, Token{
		Type:      t,
		StartByte: l.pos,
		EndByte:   l.pos,
		Row:       l.row,
		Column:    l.col(),
		EndRow:    l.row,
		EndColumn: l.col(),
	})
}

func (l *lexer) newline() {
	l.row++
	l.lineStart = l.pos
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		if l.atLineStart && l.parens == 0 {
			if err := l.beginLine(); err != nil {
				return err
			}
			continue
		}
		if l.pos >= len(l.src) {
			break
		}
		if err := l.lexToken(); err != nil {
			return err
		}
	}
	if l.parens > 0 {
		return l.errorf("unexpected end of input inside brackets")
	}
	if !l.atLineStart && len(l.tokens) > 0 {
		l.emitSynthetic(NEWLINE)
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emitSynthetic(DEDENT)
	}
	l.emitSynthetic(EOF)
	return nil
}

// beginLine measures indentation and either skips the line (blank or
// comment-only) or emits the INDENT/DEDENT tokens the new depth requires.
func (l *lexer) beginLine() error {
	width := 0
	i := l.pos
	for i < len(l.src) {
		switch l.src[i] {
		case ' ':
			width++
		case '\t':
			width += indentTabWidth
		default:
			goto measured
		}
		i++
	}
measured:
	if i >= len(l.src) {
		l.pos = i
		return nil
	}
	if l.src[i] == '\r' && i+1 < len(l.src) && l.src[i+1] == '\n' {
		l.pos = i + 2
		l.newline()
		return nil
	}
	if l.src[i] == '\n' {
		l.pos = i + 1
		l.newline()
		return nil
	}
	if l.src[i] == '#' {
		for i < len(l.src) && l.src[i] != '\n' {
			i++
		}
		if i < len(l.src) {
			i++
			l.pos = i
			l.newline()
		} else {
			l.pos = i
		}
		return nil
	}

	if len(l.indents) == 0 {
		l.indents = append(l.indents, width)
	}
	l.pos = i
	top := l.indents[len(l.indents)-1]
	switch {
	case width > top:
		l.indents = append(l.indents, width)
		l.emitSynthetic(INDENT)
	case width < top:
		for len(l.indents) > 1 && width < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.emitSynthetic(DEDENT)
		}
		if l.indents[len(l.indents)-1] != width {
			// Tolerate inconsistent dedents by opening a fresh level.
			l.indents = append(l.indents, width)
			l.emitSynthetic(INDENT)
		}
	}
	l.atLineStart = false
	return nil
}

func (l *lexer) lexToken() error {
	c := l.src[l.pos]
	switch {
	case c == '\n':
		if l.parens > 0 {
			l.pos++
			l.newline()
			return nil
		}
		start, col := l.pos, l.col()
		l.pos++
		l.tokens = append(l.tokens, Token{
			Type: NEWLINE, Literal: "\n",
			StartByte: start, EndByte: l.pos,
			Row: l.row, Column: col, EndRow: l.row, EndColumn: col + 1,
		})
		l.newline()
		l.atLineStart = true
		return nil
	case c == '\r', c == ' ', c == '\t':
		l.pos++
		return nil
	case c == '\\':
		// Explicit line continuation.
		j := l.pos + 1
		if j < len(l.src) && l.src[j] == '\r' {
			j++
		}
		if j < len(l.src) && l.src[j] == '\n' {
			l.pos = j + 1
			l.newline()
			return nil
		}
		return l.errorf("unexpected character %q", c)
	case c == '#':
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return nil
	case c == '"' || c == '\'':
		return l.lexString(l.pos, STRING)
	case c == 'r' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == '"' || l.src[l.pos+1] == '\''):
		start := l.pos
		l.pos++
		return l.lexStringFrom(start, STRING, true)
	case c == '&' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == '"' || l.src[l.pos+1] == '\''):
		start := l.pos
		l.pos++
		return l.lexStringFrom(start, STRING_NAME, false)
	case c == '^' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == '"' || l.src[l.pos+1] == '\''):
		start := l.pos
		l.pos++
		return l.lexStringFrom(start, NODE_PATH, false)
	case isDigit(c) || (c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1])):
		l.lexNumber()
		return nil
	case isIdentStart(c):
		l.lexIdent()
		return nil
	default:
		return l.lexOperator()
	}
}

func (l *lexer) lexString(start int, t TokenType) error {
	return l.lexStringFrom(start, t, false)
}

// lexStringFrom consumes a string literal whose opening quote is at l.pos.
// start may point earlier to include a prefix (r, &, ^) in the span.
func (l *lexer) lexStringFrom(start int, t TokenType, raw bool) error {
	startRow := l.row
	startCol := start - l.lineStart
	quote := l.src[l.pos]
	triple := l.pos+2 < len(l.src) && l.src[l.pos+1] == quote && l.src[l.pos+2] == quote
	if triple {
		l.pos += 3
		for l.pos < len(l.src) {
			if l.src[l.pos] == quote && l.pos+2 < len(l.src) &&
				l.src[l.pos+1] == quote && l.src[l.pos+2] == quote {
				l.pos += 3
				l.emit(t, start, startRow, startCol)
				return nil
			}
			if !raw && l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
				l.pos += 2
				continue
			}
			if l.src[l.pos] == '\n' {
				l.pos++
				l.newline()
				continue
			}
			l.pos++
		}
		return l.errorf("unterminated string")
	}
	l.pos++
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			l.emit(t, start, startRow, startCol)
			return nil
		}
		if !raw && c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == '\n' {
			return l.errorf("unterminated string")
		}
		l.pos++
	}
	return l.errorf("unterminated string")
}

func (l *lexer) lexNumber() {
	start, startRow, startCol := l.pos, l.row, l.col()
	t := INTEGER
	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == 'x' || l.src[l.pos+1] == 'X') {
		l.pos += 2
		for l.pos < len(l.src) && (isHexDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
		l.emit(INTEGER, start, startRow, startCol)
		return
	}
	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) && (l.src[l.pos+1] == 'b' || l.src[l.pos+1] == 'B') {
		l.pos += 2
		for l.pos < len(l.src) && (l.src[l.pos] == '0' || l.src[l.pos] == '1' || l.src[l.pos] == '_') {
			l.pos++
		}
		l.emit(INTEGER, start, startRow, startCol)
		return
	}
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		t = FLOAT
		l.pos++
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		j := l.pos + 1
		if j < len(l.src) && (l.src[j] == '+' || l.src[j] == '-') {
			j++
		}
		if j < len(l.src) && isDigit(l.src[j]) {
			t = FLOAT
			l.pos = j
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}
	l.emit(t, start, startRow, startCol)
}

func (l *lexer) lexIdent() {
	start, startRow, startCol := l.pos, l.row, l.col()
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.pos++
	}
	word := string(l.src[start:l.pos])
	if t, ok := keywords[word]; ok {
		l.emit(t, start, startRow, startCol)
		return
	}
	l.emit(IDENT, start, startRow, startCol)
}

var threeCharOps = []string{"**=", "<<=", ">>="}

var twoCharOps = []string{
	"**", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "->", ":=",
}

var augOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "**=": true, "<<=": true, ">>=": true,
}

func (l *lexer) lexOperator() error {
	start, startRow, startCol := l.pos, l.row, l.col()
	rest := l.src[l.pos:]
	for _, op := range threeCharOps {
		if hasPrefix(rest, op) {
			l.pos += 3
			l.emit(AUGOP, start, startRow, startCol)
			return nil
		}
	}
	for _, op := range twoCharOps {
		if hasPrefix(rest, op) {
			l.pos += 2
			switch op {
			case "->":
				l.emit(ARROW, start, startRow, startCol)
			case ":=":
				l.emit(WALRUS, start, startRow, startCol)
			default:
				if augOps[op] {
					l.emit(AUGOP, start, startRow, startCol)
				} else {
					l.emit(OP, start, startRow, startCol)
				}
			}
			return nil
		}
	}

	c := rest[0]
	l.pos++
	switch c {
	case '(':
		l.parens++
		l.emit(LPAREN, start, startRow, startCol)
	case '[':
		l.parens++
		l.emit(LBRACKET, start, startRow, startCol)
	case '{':
		l.parens++
		l.emit(LBRACE, start, startRow, startCol)
	case ')':
		l.parens--
		l.emit(RPAREN, start, startRow, startCol)
	case ']':
		l.parens--
		l.emit(RBRACKET, start, startRow, startCol)
	case '}':
		l.parens--
		l.emit(RBRACE, start, startRow, startCol)
	case ',':
		l.emit(COMMA, start, startRow, startCol)
	case ':':
		l.emit(COLON, start, startRow, startCol)
	case ';':
		l.emit(SEMICOLON, start, startRow, startCol)
	case '.':
		l.emit(DOT, start, startRow, startCol)
	case '@':
		l.emit(AT, start, startRow, startCol)
	case '$':
		l.emit(DOLLAR, start, startRow, startCol)
	case '=':
		l.emit(ASSIGN, start, startRow, startCol)
	case '+', '-', '*', '/', '%', '&', '|', '^', '~', '<', '>', '!':
		l.emit(OP, start, startRow, startCol)
	default:
		l.pos--
		return l.errorf("unexpected character %q", c)
	}
	return nil
}

func hasPrefix(b []byte, s string) bool {
	return len(b) >= len(s) && strings.HasPrefix(string(b[:len(s)]), s)
}

func isDigit(c byte) bool    { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }
