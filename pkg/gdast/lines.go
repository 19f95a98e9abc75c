package gdast

import (
	"sort"
	"strings"
)

// LineInfo records the byte span of a single source line.
type LineInfo struct {
	StartOffset  int // first byte of the line
	NewlineStart int // start of the line terminator (== EndOffset when absent)
	EndOffset    int // one past the line terminator
}

// SourceText is an immutable snapshot of a file plus its line table.
// Line numbers are 1-based throughout.
type SourceText struct {
	Content []byte
	Lines   []LineInfo
}

// NewSourceText builds the line table for content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func NewSourceText(content []byte) *SourceText {
	s := &SourceText{Content: content}
	lineStart := 0

	for idx, char := range content {
		if char == '\n' {
			newlineStart := idx
			if idx > 0 && content[idx-1] == '\r' {
				newlineStart = idx - 1
			}
			s.Lines = append(s.Lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    idx + 1,
			})
			lineStart = idx + 1
		}
	}

	if lineStart < len(content) || len(content) == 0 {
		s.Lines = append(s.Lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return s
}

// LineCount returns the number of lines.
func (s *SourceText) LineCount() int { return len(s.Lines) }

// Line returns the content of a 1-based line number, excluding the newline.
// Out-of-range lines return "".
func (s *SourceText) Line(n int) string {
	if n < 1 || n > len(s.Lines) {
		return ""
	}
	li := s.Lines[n-1]
	return string(s.Content[li.StartOffset:li.NewlineStart])
}

// IsBlank reports whether the 1-based line is empty or whitespace-only.
// Out-of-range lines count as blank.
func (s *SourceText) IsBlank(n int) bool {
	return strings.TrimSpace(s.Line(n)) == ""
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes. Returns (0, 0) if the offset is out of range.
func (s *SourceText) LineAt(offset int) (int, int) {
	if offset < 0 || len(s.Lines) == 0 {
		return 0, 0
	}
	if offset >= len(s.Content) {
		last := s.Lines[len(s.Lines)-1]
		return len(s.Lines), offset - last.StartOffset + 1
	}
	idx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].EndOffset > offset
	})
	if idx >= len(s.Lines) {
		idx = len(s.Lines) - 1
	}
	li := s.Lines[idx]
	if offset < li.StartOffset {
		return 0, 0
	}
	return idx + 1, offset - li.StartOffset + 1
}

// Slice returns lines from (inclusive) through to (inclusive) joined with \n,
// without a trailing newline.
func (s *SourceText) Slice(from, to int) string {
	if from < 1 {
		from = 1
	}
	if to > len(s.Lines) {
		to = len(s.Lines)
	}
	if from > to {
		return ""
	}
	parts := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		parts = append(parts, s.Line(n))
	}
	return strings.Join(parts, "\n")
}
