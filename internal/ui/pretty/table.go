package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gogd/pkg/lint"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minIDWidth       = 12
	minCategoryWidth = 8
	minSeverityWidth = 8
	enabledWidth     = 7
	defaultTermWidth = 100
)

// RuleRow is a single row in the rules table.
type RuleRow struct {
	ID       string
	Category string
	Severity string
	Enabled  bool
	Desc     string
}

// TableFormatter renders the rules listing as an aligned table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatRules renders registry rules with their resolved enabled state.
func (t *TableFormatter) FormatRules(rules []lint.Rule, enabled map[string]bool) string {
	rows := make([]RuleRow, 0, len(rules))
	for _, rule := range rules {
		rows = append(rows, RuleRow{
			ID:       rule.ID(),
			Category: rule.Category(),
			Severity: string(rule.DefaultSeverity()),
			Enabled:  enabled[rule.ID()],
			Desc:     rule.Description(),
		})
	}
	return t.formatRows(rows)
}

func (t *TableFormatter) formatRows(rows []RuleRow) string {
	if len(rows) == 0 {
		return ""
	}

	idWidth := minIDWidth
	categoryWidth := minCategoryWidth
	severityWidth := minSeverityWidth
	for _, row := range rows {
		idWidth = max(idWidth, runewidth.StringWidth(row.ID))
		categoryWidth = max(categoryWidth, runewidth.StringWidth(row.Category))
		severityWidth = max(severityWidth, runewidth.StringWidth(row.Severity))
	}

	fixed := idWidth + categoryWidth + severityWidth + enabledWidth + 4*tablePadding
	descWidth := t.termWidth - fixed
	if descWidth < 20 {
		descWidth = 20
	}

	var builder strings.Builder

	header := fmt.Sprintf("%s%s%s%s%s",
		pad("RULE", idWidth+tablePadding),
		pad("CATEGORY", categoryWidth+tablePadding),
		pad("SEVERITY", severityWidth+tablePadding),
		pad("ENABLED", enabledWidth+tablePadding),
		"DESCRIPTION")
	builder.WriteString(t.styles.TableHeader.Render(header) + "\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat("-", min(t.termWidth, fixed+descWidth))) + "\n")

	for _, row := range rows {
		enabledText := "yes"
		enabledStyle := t.styles.TableEnabled
		if !row.Enabled {
			enabledText = "no"
			enabledStyle = t.styles.TableDisabled
		}

		descLines := wrapText(row.Desc, descWidth)
		builder.WriteString(fmt.Sprintf("%s%s%s%s%s\n",
			t.styles.Bold.Render(pad(row.ID, idWidth))+strings.Repeat(" ", tablePadding),
			pad(row.Category, categoryWidth+tablePadding),
			pad(row.Severity, severityWidth+tablePadding),
			enabledStyle.Render(pad(enabledText, enabledWidth))+strings.Repeat(" ", tablePadding),
			descLines[0]))

		indent := strings.Repeat(" ", fixed)
		for _, line := range descLines[1:] {
			builder.WriteString(indent + line + "\n")
		}
	}

	return builder.String()
}

// pad right-pads s with spaces to the given display width.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// wrapText wraps text at word boundaries to the given width.
// Always returns at least one line.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if runewidth.StringWidth(current)+1+runewidth.StringWidth(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return lines
}
