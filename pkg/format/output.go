package format

import (
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// outLine is one assembled output line. src is the 1-based source line the
// content came from, or 0 for synthesized lines (blank separators). Content
// of re-rendered multi-line statements may embed newlines; such entries map
// to the statement's first source line.
type outLine struct {
	src  int
	text string
}

// Output assembles formatted lines and reinjects comments once rendering is
// done. Statements map back to source lines so the comment table can be
// replayed against them.
type Output struct {
	lines    []outLine
	verbatim map[int]bool
}

// NewOutput returns an empty assembler.
func NewOutput() *Output {
	return &Output{verbatim: make(map[int]bool)}
}

// Push appends a synthesized line with no source mapping.
func (o *Output) Push(text string) {
	o.lines = append(o.lines, outLine{text: text})
}

// PushMapped appends a line tied to its 1-based source line.
func (o *Output) PushMapped(text string, src int) {
	o.lines = append(o.lines, outLine{src: src, text: text})
}

// PushVerbatim appends a source line unchanged and records it so comment
// injection leaves it alone.
func (o *Output) PushVerbatim(text string, src int) {
	o.lines = append(o.lines, outLine{src: src, text: text})
	o.verbatim[src] = true
}

// PushBlankLines tops up trailing blanks to count, capped at two. Leading
// blanks are never synthesized.
func (o *Output) PushBlankLines(count int) {
	if count > 2 {
		count = 2
	}
	if len(o.lines) == 0 {
		return
	}
	for trailing := o.trailingBlankCount(); trailing < count; trailing++ {
		o.lines = append(o.lines, outLine{})
	}
}

func (o *Output) trailingBlankCount() int {
	n := 0
	for i := len(o.lines) - 1; i >= 0; i-- {
		if o.lines[i].text != "" {
			break
		}
		n++
	}
	return n
}

// InjectComments replays the comment table against the assembled lines.
//
// Standalone comments are inserted in source order ahead of the first
// emitted line that maps past them. A comment block sitting directly under
// a statement and followed by a blank line stays with that statement,
// ahead of the separator blank; a block running straight into the next
// statement moves with it. Inline comments are appended after two spaces
// unless the line already carries them, which happens for verbatim regions.
func (o *Output) InjectComments(comments *Comments, source *gdast.SourceText) {
	out := make([]outLine, 0, len(o.lines))
	consumed := make(map[int]bool)
	inlineUsed := make(map[int]bool)
	last := 0

	for i, line := range o.lines {
		if line.src == 0 {
			if line.text == "" {
				last = o.attachTrailing(&out, comments, source, i, last, consumed)
			}
			out = append(out, line)
			continue
		}

		for n := last + 1; n < line.src; n++ {
			if c, ok := comments.Standalone(n); ok && !consumed[n] && !o.verbatim[n] {
				out = append(out, outLine{src: n, text: c})
				consumed[n] = true
			}
		}
		if line.src > last {
			last = line.src
		}

		text := line.text
		if c, ok := comments.Inline(line.src); ok && !inlineUsed[line.src] && !strings.HasSuffix(text, c) {
			if text == "" {
				text = c
			} else {
				text += "  " + c
			}
			inlineUsed[line.src] = true
		}
		out = append(out, outLine{src: line.src, text: text})
	}

	for n := last + 1; n <= source.LineCount(); n++ {
		if c, ok := comments.Standalone(n); ok && !consumed[n] && !o.verbatim[n] {
			out = append(out, outLine{src: n, text: c})
			consumed[n] = true
		}
	}

	o.lines = out
}

// attachTrailing handles a synthesized blank at index i. If the source lines
// directly after the last emitted line form a comment block that a blank line
// separates from the next statement, the block belongs to the preceding
// statement and is emitted now, before the blank. Returns the updated last
// emitted source line.
func (o *Output) attachTrailing(out *[]outLine, comments *Comments, source *gdast.SourceText, i, last int, consumed map[int]bool) int {
	next := 0
	for j := i + 1; j < len(o.lines); j++ {
		if o.lines[j].src != 0 {
			next = o.lines[j].src
			break
		}
	}
	gapEnd := source.LineCount()
	if next != 0 {
		gapEnd = next - 1
	}

	start := last + 1
	if start > gapEnd {
		return last
	}
	if _, ok := comments.Standalone(start); !ok || consumed[start] || o.verbatim[start] {
		return last
	}
	end := start
	for end+1 <= gapEnd {
		if _, ok := comments.Standalone(end + 1); ok && !consumed[end+1] && !o.verbatim[end+1] {
			end++
			continue
		}
		break
	}
	if next != 0 && !(end+1 <= gapEnd && source.IsBlank(end+1)) {
		return last
	}

	for n := start; n <= end; n++ {
		c, _ := comments.Standalone(n)
		*out = append(*out, outLine{src: n, text: c})
		consumed[n] = true
	}
	return end
}

// Render joins the assembled lines. Trailing blanks are dropped; non-empty
// output gets a final newline when requested.
func (o *Output) Render(trailingNewline bool) string {
	lines := o.lines
	for len(lines) > 0 && lines[len(lines)-1].text == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.text)
	}
	if trailingNewline {
		b.WriteByte('\n')
	}
	return b.String()
}
