package gdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gogd/pkg/gdast"
)

func TestNewSourceText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		lineCount int
	}{
		{name: "empty", content: "", lineCount: 1},
		{name: "single line no newline", content: "var x = 1", lineCount: 1},
		{name: "single line with newline", content: "var x = 1\n", lineCount: 1},
		{name: "two lines", content: "extends Node\nvar x = 1\n", lineCount: 2},
		{name: "trailing content without newline", content: "a\nb", lineCount: 2},
		{name: "crlf endings", content: "a\r\nb\r\n", lineCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := gdast.NewSourceText([]byte(tt.content))
			assert.Equal(t, tt.lineCount, src.LineCount())
		})
	}
}

func TestSourceTextLine(t *testing.T) {
	t.Parallel()

	src := gdast.NewSourceText([]byte("extends Node\r\nvar x = 1\n\nfunc f():\n"))

	assert.Equal(t, "extends Node", src.Line(1))
	assert.Equal(t, "var x = 1", src.Line(2))
	assert.Equal(t, "", src.Line(3))
	assert.Equal(t, "func f():", src.Line(4))
	assert.Equal(t, "", src.Line(0))
	assert.Equal(t, "", src.Line(5))
}

func TestSourceTextIsBlank(t *testing.T) {
	t.Parallel()

	src := gdast.NewSourceText([]byte("var x = 1\n\n   \t\nvar y = 2\n"))

	assert.False(t, src.IsBlank(1))
	assert.True(t, src.IsBlank(2))
	assert.True(t, src.IsBlank(3))
	assert.False(t, src.IsBlank(4))
	assert.True(t, src.IsBlank(99))
}

func TestSourceTextLineAt(t *testing.T) {
	t.Parallel()

	content := "extends Node\nvar x = 1\n"
	src := gdast.NewSourceText([]byte(content))

	line, col := src.LineAt(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	// Offset of "var".
	line, col = src.LineAt(13)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	// Offset of "x".
	line, col = src.LineAt(17)
	assert.Equal(t, 2, line)
	assert.Equal(t, 5, col)

	line, _ = src.LineAt(-1)
	assert.Equal(t, 0, line)
}

func TestSourceTextSlice(t *testing.T) {
	t.Parallel()

	src := gdast.NewSourceText([]byte("a\nb\nc\nd\n"))

	assert.Equal(t, "b\nc", src.Slice(2, 3))
	assert.Equal(t, "a\nb\nc\nd", src.Slice(1, 4))
	assert.Equal(t, "a", src.Slice(1, 1))
	assert.Equal(t, "c\nd", src.Slice(3, 99))
	assert.Equal(t, "", src.Slice(3, 2))
}
