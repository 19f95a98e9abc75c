package lint

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/gdast"
)

// varCounter flags every variable statement; it exists to drive the engine
// in tests.
type varCounter struct {
	BaseRule
	failConfigure bool
}

func newVarCounter() Rule {
	return &varCounter{BaseRule: NewBaseRule("var-counter", CategoryBasic, "flags every var")}
}

func (r *varCounter) Configure(options map[string]any) error {
	if OptionBool(options, "fail", false) {
		return errors.New("boom")
	}
	return nil
}

func (r *varCounter) InterestedKinds() []gdast.Kind {
	return []gdast.Kind{gdast.KindVariableStatement}
}

func (r *varCounter) CheckNode(ctx *RuleContext, n *gdast.Node) {
	ctx.Report(n, "found a var")
}

func newEngine() *Engine {
	reg := NewRegistry()
	reg.Register(newVarCounter)
	return NewEngine(reg)
}

func TestEngineLintFile(t *testing.T) {
	t.Parallel()

	src := []byte("extends Node\nvar a = 1\nvar b = 2\n")
	result, err := newEngine().LintFile(context.Background(), "a.gd", src, config.NewConfig())
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "var-counter", result.Diagnostics[0].RuleID)
	assert.Equal(t, "a.gd", result.Diagnostics[0].FilePath)
	assert.Equal(t, 2, result.Diagnostics[0].Line)
	assert.Equal(t, 3, result.Diagnostics[1].Line)
	assert.Equal(t, config.SeverityWarning, result.Diagnostics[0].Severity)
	assert.True(t, result.HasIssues())
}

func TestEngineParseError(t *testing.T) {
	t.Parallel()

	_, err := newEngine().LintFile(context.Background(), "bad.gd", []byte("func (:\n"), config.NewConfig())
	assert.Error(t, err)
}

func TestEngineRuleDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	enabled := false
	cfg.Rules["var-counter"] = config.RuleConfig{Enabled: &enabled}

	result, err := newEngine().LintFile(context.Background(), "a.gd", []byte("var a = 1\n"), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}

func TestEngineCLIDisable(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.DisableRules = []string{"var-counter"}

	result, err := newEngine().LintFile(context.Background(), "a.gd", []byte("var a = 1\n"), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}

func TestEngineSeverityOverride(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	sev := "error"
	cfg.Rules["var-counter"] = config.RuleConfig{Severity: &sev}

	result, err := newEngine().LintFile(context.Background(), "a.gd", []byte("var a = 1\n"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, config.SeverityError, result.Diagnostics[0].Severity)
	assert.Equal(t, 1, result.ErrorCount())
}

func TestEngineConfigureError(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["var-counter"] = config.RuleConfig{Options: map[string]any{"fail": true}}

	result, err := newEngine().LintFile(context.Background(), "a.gd", []byte("var a = 1\n"), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.Contains(t, result.RuleErrors, "var-counter")
}

func TestEngineSuppressions(t *testing.T) {
	t.Parallel()

	t.Run("ignore on same line", func(t *testing.T) {
		t.Parallel()
		src := []byte("var a = 1  # gdlint:ignore=var-counter\n\nvar b = 2\n")
		result, err := newEngine().LintFile(context.Background(), "a.gd", src, config.NewConfig())
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, 3, result.Diagnostics[0].Line)
	})

	t.Run("ignore covers next line", func(t *testing.T) {
		t.Parallel()
		src := []byte("# gdlint:ignore=var-counter\nvar a = 1\nvar b = 2\n")
		result, err := newEngine().LintFile(context.Background(), "a.gd", src, config.NewConfig())
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, 3, result.Diagnostics[0].Line)
	})

	t.Run("disable enable range", func(t *testing.T) {
		t.Parallel()
		src := []byte("var a = 1\n# gdlint:disable=var-counter\nvar b = 2\n# gdlint:enable=var-counter\nvar c = 3\n")
		result, err := newEngine().LintFile(context.Background(), "a.gd", src, config.NewConfig())
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 2)
		assert.Equal(t, 1, result.Diagnostics[0].Line)
		assert.Equal(t, 5, result.Diagnostics[1].Line)
	})

	t.Run("dangling disable runs to EOF", func(t *testing.T) {
		t.Parallel()
		src := []byte("var a = 1\n# gdlint:disable=var-counter\nvar b = 2\nvar c = 3\n")
		result, err := newEngine().LintFile(context.Background(), "a.gd", src, config.NewConfig())
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 1)
		assert.Equal(t, 1, result.Diagnostics[0].Line)
	})

	t.Run("bare ignore silences all rules", func(t *testing.T) {
		t.Parallel()
		src := []byte("# gdlint:ignore\nvar a = 1\n")
		result, err := newEngine().LintFile(context.Background(), "a.gd", src, config.NewConfig())
		require.NoError(t, err)
		assert.Empty(t, result.Diagnostics)
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(newVarCounter)

	rule, ok := reg.Get("var-counter")
	require.True(t, ok)
	assert.Equal(t, "var-counter", rule.ID())

	// Instances are fresh per call.
	other, _ := reg.Get("var-counter")
	assert.NotSame(t, rule, other)

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"var-counter"}, reg.IDs())
	require.Len(t, reg.Rules(), 1)
}

func TestOptionHelpers(t *testing.T) {
	t.Parallel()

	opts := map[string]any{
		"int":     42,
		"int64":   int64(43),
		"float":   44.0,
		"str":     "hello",
		"bool":    true,
		"list":    []any{"a", "b"},
		"strlist": []string{"c"},
	}

	assert.Equal(t, 42, OptionInt(opts, "int", 0))
	assert.Equal(t, 43, OptionInt(opts, "int64", 0))
	assert.Equal(t, 44, OptionInt(opts, "float", 0))
	assert.Equal(t, 7, OptionInt(opts, "missing", 7))
	assert.Equal(t, 7, OptionInt(opts, "str", 7))

	assert.Equal(t, "hello", OptionString(opts, "str", ""))
	assert.Equal(t, "d", OptionString(opts, "missing", "d"))

	assert.True(t, OptionBool(opts, "bool", false))
	assert.False(t, OptionBool(opts, "missing", false))

	assert.Equal(t, []string{"a", "b"}, OptionStringSlice(opts, "list", nil))
	assert.Equal(t, []string{"c"}, OptionStringSlice(opts, "strlist", nil))
	assert.Equal(t, []string{"z"}, OptionStringSlice(opts, "missing", []string{"z"}))
}

func TestSuppressionDirectiveInString(t *testing.T) {
	t.Parallel()

	// The directive text inside a string literal is not a directive.
	src := []byte("var a = \"# gdlint:ignore=var-counter\"\n")
	result, err := newEngine().LintFile(context.Background(), "a.gd", src, config.NewConfig())
	require.NoError(t, err)
	assert.Len(t, result.Diagnostics, 1)
}
