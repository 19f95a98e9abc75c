package parser

import "fmt"

// TokenType classifies a lexical token.
type TokenType uint8

const (
	ILLEGAL TokenType = iota
	EOF
	NEWLINE
	INDENT
	DEDENT

	IDENT
	INTEGER
	FLOAT
	STRING
	STRING_NAME
	NODE_PATH

	// Keywords.
	VAR
	CONST
	FUNC
	CLASS
	CLASS_NAME
	EXTENDS
	SIGNAL
	ENUM
	STATIC
	IF
	ELIF
	ELSE
	FOR
	WHILE
	MATCH
	RETURN
	PASS
	BREAK
	CONTINUE
	BREAKPOINT
	AND
	OR
	NOT
	IN
	IS
	AS
	AWAIT
	SELF
	TRUE
	FALSE
	NULL

	// Punctuation.
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	LBRACE
	RBRACE
	COMMA
	COLON
	SEMICOLON
	DOT
	ARROW
	AT
	DOLLAR

	// Operators. OP carries arithmetic, bitwise, and comparison operators in
	// its literal; ASSIGN, WALRUS, and AUGOP are kept distinct because the
	// parser branches on them.
	OP
	ASSIGN
	WALRUS
	AUGOP
)

var tokenNames = map[TokenType]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	NEWLINE:     "NEWLINE",
	INDENT:      "INDENT",
	DEDENT:      "DEDENT",
	IDENT:       "IDENT",
	INTEGER:     "INTEGER",
	FLOAT:       "FLOAT",
	STRING:      "STRING",
	STRING_NAME: "STRING_NAME",
	NODE_PATH:   "NODE_PATH",
	VAR:         "var",
	CONST:       "const",
	FUNC:        "func",
	CLASS:       "class",
	CLASS_NAME:  "class_name",
	EXTENDS:     "extends",
	SIGNAL:      "signal",
	ENUM:        "enum",
	STATIC:      "static",
	IF:          "if",
	ELIF:        "elif",
	ELSE:        "else",
	FOR:         "for",
	WHILE:       "while",
	MATCH:       "match",
	RETURN:      "return",
	PASS:        "pass",
	BREAK:       "break",
	CONTINUE:    "continue",
	BREAKPOINT:  "breakpoint",
	AND:         "and",
	OR:          "or",
	NOT:         "not",
	IN:          "in",
	IS:          "is",
	AS:          "as",
	AWAIT:       "await",
	SELF:        "self",
	TRUE:        "true",
	FALSE:       "false",
	NULL:        "null",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACKET:    "[",
	RBRACKET:    "]",
	LBRACE:      "{",
	RBRACE:      "}",
	COMMA:       ",",
	COLON:       ":",
	SEMICOLON:   ";",
	DOT:         ".",
	ARROW:       "->",
	AT:          "@",
	DOLLAR:      "$",
	OP:          "OP",
	ASSIGN:      "=",
	WALRUS:      ":=",
	AUGOP:       "AUGOP",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

var keywords = map[string]TokenType{
	"var":        VAR,
	"const":      CONST,
	"func":       FUNC,
	"class":      CLASS,
	"class_name": CLASS_NAME,
	"extends":    EXTENDS,
	"signal":     SIGNAL,
	"enum":       ENUM,
	"static":     STATIC,
	"if":         IF,
	"elif":       ELIF,
	"else":       ELSE,
	"for":        FOR,
	"while":      WHILE,
	"match":      MATCH,
	"return":     RETURN,
	"pass":       PASS,
	"break":      BREAK,
	"continue":   CONTINUE,
	"breakpoint": BREAKPOINT,
	"and":        AND,
	"or":         OR,
	"not":        NOT,
	"in":         IN,
	"is":         IS,
	"as":         AS,
	"await":      AWAIT,
	"self":       SELF,
	"true":       TRUE,
	"false":      FALSE,
	"null":       NULL,
}

// Token is a single lexical token with its source span. Rows and columns are
// zero-based; EndRow differs from Row only for triple-quoted strings.
type Token struct {
	Type      TokenType
	Literal   string
	StartByte int
	EndByte   int
	Row       int
	Column    int
	EndRow    int
	EndColumn int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Type, t.Literal, t.Row+1, t.Column+1)
}
