package rules

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yaklabco/gogd/pkg/lint"
)

// maxLineLengthRule reports lines whose visual width exceeds the limit.
// Tabs advance to the next tab stop; wide runes count by display width.
type maxLineLengthRule struct {
	lint.BaseRule
	maxLength int
	tabWidth  int
}

// NewMaxLineLengthRule creates the max-line-length rule.
func NewMaxLineLengthRule() lint.Rule {
	return &maxLineLengthRule{
		BaseRule: lint.NewBaseRule(
			"max-line-length",
			lint.CategoryFormat,
			"Lines should not exceed the maximum length",
		),
		maxLength: 100,
		tabWidth:  4,
	}
}

func (r *maxLineLengthRule) Configure(options map[string]any) error {
	r.maxLength = lint.OptionInt(options, "length", 100)
	r.tabWidth = lint.OptionInt(options, "tab_width", 4)
	return nil
}

func (r *maxLineLengthRule) CheckFileStart(ctx *lint.RuleContext) {
	limit := r.maxLength
	if ctx.Config != nil && ctx.Config.Format.LineLength > 0 {
		limit = ctx.Config.Format.LineLength
	}
	for line := 1; line <= ctx.Source.LineCount(); line++ {
		width := visualLength(ctx.Source.Line(line), r.tabWidth)
		if width > limit {
			ctx.ReportAt(line, limit+1, line, width+1,
				fmt.Sprintf("Line is %d columns long (max %d)", width, limit))
		}
	}
}

func visualLength(line string, tabWidth int) int {
	width := 0
	for _, c := range line {
		if c == '\t' {
			width += tabWidth - width%tabWidth
		} else {
			width += runewidth.RuneWidth(c)
		}
	}
	return width
}

// trailingWhitespaceRule reports lines ending in spaces or tabs.
type trailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates the trailing-whitespace rule.
func NewTrailingWhitespaceRule() lint.Rule {
	return &trailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"trailing-whitespace",
			lint.CategoryFormat,
			"Lines should not have trailing whitespace",
		),
	}
}

func (r *trailingWhitespaceRule) CheckFileStart(ctx *lint.RuleContext) {
	for line := 1; line <= ctx.Source.LineCount(); line++ {
		text := ctx.Source.Line(line)
		if strings.HasSuffix(text, " ") || strings.HasSuffix(text, "\t") {
			trimmed := len(strings.TrimRight(text, " \t"))
			ctx.ReportAt(line, trimmed+1, line, len(text)+1, "Trailing whitespace")
		}
	}
}

// mixedTabsSpacesRule reports indentation mixing tabs and spaces.
type mixedTabsSpacesRule struct {
	lint.BaseRule
}

// NewMixedTabsSpacesRule creates the mixed-tabs-spaces rule.
func NewMixedTabsSpacesRule() lint.Rule {
	return &mixedTabsSpacesRule{
		BaseRule: lint.NewBaseRule(
			"mixed-tabs-spaces",
			lint.CategoryFormat,
			"Indentation should not mix tabs and spaces",
		),
	}
}

func (r *mixedTabsSpacesRule) CheckFileStart(ctx *lint.RuleContext) {
	for line := 1; line <= ctx.Source.LineCount(); line++ {
		text := ctx.Source.Line(line)
		indent := text[:len(text)-len(strings.TrimLeft(text, " \t"))]
		if strings.Contains(indent, "\t") && strings.Contains(indent, " ") {
			ctx.ReportAt(line, 1, line, len(indent)+1, "Mixed tabs and spaces in indentation")
		}
	}
}

// maxFileLinesRule reports files exceeding the line limit.
type maxFileLinesRule struct {
	lint.BaseRule
	maxLines int
}

// NewMaxFileLinesRule creates the max-file-lines rule.
func NewMaxFileLinesRule() lint.Rule {
	return &maxFileLinesRule{
		BaseRule: lint.NewBaseRule(
			"max-file-lines",
			lint.CategoryFormat,
			"Files should not exceed the maximum number of lines",
		),
		maxLines: 1000,
	}
}

func (r *maxFileLinesRule) Configure(options map[string]any) error {
	r.maxLines = lint.OptionInt(options, "lines", 1000)
	return nil
}

func (r *maxFileLinesRule) CheckFileStart(ctx *lint.RuleContext) {
	count := ctx.Source.LineCount()
	if count > r.maxLines {
		ctx.ReportAt(r.maxLines+1, 1, r.maxLines+1, 1,
			fmt.Sprintf("File has %d lines (max %d)", count, r.maxLines))
	}
}
