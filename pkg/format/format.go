// Package format rewrites GDScript source into the style-guide shape while
// preserving meaning: statements are re-rendered from the syntax tree,
// comments are carried over, blank lines are normalized, and "# fmt: off"
// regions pass through untouched.
package format

import (
	"fmt"

	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/parser"
)

// Format rewrites source according to opts. The result parses to a tree
// structurally equivalent to the input's; Compare verifies that property.
func Format(source string, opts Options) (string, error) {
	if source == "" {
		return "", nil
	}
	tree, err := parser.Parse([]byte(source))
	if err != nil {
		return "", fmt.Errorf("parsing source: %w", err)
	}

	st := gdast.NewSourceText([]byte(source))
	ctx := newContext(st, opts, ParseSkipRegions(st))
	formatNode(ctx, tree.Root)
	ctx.out.InjectComments(ExtractComments(st), st)
	return ctx.out.Render(opts.TrailingNewline), nil
}
