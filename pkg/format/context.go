package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// context carries everything a render pass needs: the source snapshot, the
// options, the current indentation level, the skip regions, and the output
// assembler.
type context struct {
	source *gdast.SourceText
	src    []byte
	opts   Options
	skip   *SkipRegions
	out    *Output
	level  int
}

func newContext(source *gdast.SourceText, opts Options, skip *SkipRegions) *context {
	return &context{
		source: source,
		src:    source.Content,
		opts:   opts,
		skip:   skip,
		out:    NewOutput(),
	}
}

// indent returns the indentation prefix for the current level.
func (ctx *context) indent() string {
	return strings.Repeat(ctx.opts.Indent.Unit(), ctx.level)
}

// innerIndent returns the prefix one level deeper, for container elements.
func (ctx *context) innerIndent() string {
	return ctx.indent() + ctx.opts.Indent.Unit()
}

// text returns the source text of a node.
func (ctx *context) text(n *gdast.Node) string {
	return n.Text(ctx.src)
}

// startLine returns the 1-based first source line of a node.
func startLine(n *gdast.Node) int { return n.StartPoint.Row + 1 }

// endLine returns the 1-based last source line of a node.
func endLine(n *gdast.Node) int { return n.EndPoint.Row + 1 }

// isMultiline reports whether a node spans more than one source line.
func isMultiline(n *gdast.Node) bool { return n.EndPoint.Row > n.StartPoint.Row }

// visualWidth measures a rendered line the way an editor shows it: tabs
// advance by the indent width, everything else by its terminal cell width.
func visualWidth(s string, indent IndentStyle) int {
	w := 0
	for _, r := range s {
		if r == '\t' {
			w += indent.Width()
			continue
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}
