package format

import (
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// Comments is the comment table for one source file. Comments never appear
// in the syntax tree; they are collected up front by scanning lines and are
// reinjected after rendering.
//
// A standalone comment occupies a whole line and is stored with its original
// indentation. An inline comment trails code on the same line and is stored
// from its # to the end of the line.
type Comments struct {
	standalone map[int]string
	inline     map[int]string
}

// ExtractComments scans every line of source and classifies its comment,
// if any. Line numbers are 1-based.
func ExtractComments(source *gdast.SourceText) *Comments {
	c := &Comments{
		standalone: make(map[int]string),
		inline:     make(map[int]string),
	}
	for n := 1; n <= source.LineCount(); n++ {
		line := source.Line(n)
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			c.standalone[n] = strings.TrimRight(line, " \t")
			continue
		}
		if pos := findCommentStart(line); pos >= 0 {
			c.inline[n] = strings.TrimRight(line[pos:], " \t")
		}
	}
	return c
}

// Standalone returns the full-line comment on line n, if any.
func (c *Comments) Standalone(n int) (string, bool) {
	s, ok := c.standalone[n]
	return s, ok
}

// Inline returns the trailing comment on line n, if any.
func (c *Comments) Inline(n int) (string, bool) {
	s, ok := c.inline[n]
	return s, ok
}

// findCommentStart returns the byte index of the first # outside a string
// literal, or -1. Quote tracking handles both quote characters and backslash
// escapes; triple-quoted strings open and close on the same matching quote,
// which is enough for single-line scanning.
func findCommentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '#':
			return i
		}
	}
	return -1
}
