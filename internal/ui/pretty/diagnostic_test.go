package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/internal/ui/pretty"
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/format"
	"github.com/yaklabco/gogd/pkg/lint"
)

func plainStyles() *pretty.Styles {
	return pretty.NewStyles(false)
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	diag := lint.Diagnostic{
		RuleID:   "variable-name",
		Message:  `Variable "BadName" is not snake_case`,
		Severity: config.SeverityWarning,
		FilePath: "scripts/player.gd",
		Line:     3,
		Column:   5,
	}

	t.Run("basic line", func(t *testing.T) {
		t.Parallel()
		out := plainStyles().FormatDiagnostic(diag, false, "")
		assert.Contains(t, out, "scripts/player.gd:3:5")
		assert.Contains(t, out, "warning")
		assert.Contains(t, out, `Variable "BadName" is not snake_case`)
		assert.Contains(t, out, "(variable-name)")
	})

	t.Run("with source context", func(t *testing.T) {
		t.Parallel()
		out := plainStyles().FormatDiagnostic(diag, true, "var BadName = 1")
		assert.Contains(t, out, "var BadName = 1")
		assert.Contains(t, out, "^")

		// Caret sits under column 5.
		lines := strings.Split(out, "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, "^", strings.TrimLeft(lines[2], " "))
	})
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	s := plainStyles()
	assert.Equal(t, "error", s.FormatSeverity(config.SeverityError))
	assert.Equal(t, "warning", s.FormatSeverity(config.SeverityWarning))
	assert.Equal(t, "info", s.FormatSeverity(config.SeverityInfo))
	assert.Equal(t, "custom", s.FormatSeverity(config.Severity("custom")))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	s := plainStyles()
	assert.Equal(t, "a.gd (2 issues)", s.FormatFileHeader("a.gd", 2))
	assert.Equal(t, "a.gd (1 issue)", s.FormatFileHeader("a.gd", 1))
	assert.Equal(t, "a.gd", s.FormatFileHeader("a.gd", 0))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	diff := format.GenerateDiff("scripts/player.gd",
		[]byte("var x:int=1\n"),
		[]byte("var x: int = 1\n"))
	require.NotNil(t, diff)

	out := plainStyles().FormatDiff(diff)
	assert.Contains(t, out, "--- a/scripts/player.gd")
	assert.Contains(t, out, "+++ b/scripts/player.gd")
	assert.Contains(t, out, "-var x:int=1")
	assert.Contains(t, out, "+var x: int = 1")
}
