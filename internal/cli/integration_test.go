package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/internal/cli"
)

const unformattedScript = "var x:int=1\n"

const formattedScript = "var x: int = 1\n"

var testInfo = cli.BuildInfo{
	Version: "test",
	Commit:  "test",
	Date:    "test",
}

// isolate roots the command in a fresh directory with no ambient
// configuration so runs cannot pick up a real user or project config.
func isolate(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	return tmpDir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--color", "never"))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_FmtRewritesFile(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte(unformattedScript), 0o644))

	_, _, err := execute(t, "fmt")
	require.NoError(t, err)

	content, err := os.ReadFile(scriptPath)
	require.NoError(t, err)
	assert.Equal(t, formattedScript, string(content))
}

func TestIntegration_FmtCheckMode(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte(unformattedScript), 0o644))

	stdout, _, err := execute(t, "fmt", "--check")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrIssuesFound))
	assert.Contains(t, stdout, "player.gd")

	// Check mode leaves the file untouched.
	content, readErr := os.ReadFile(scriptPath)
	require.NoError(t, readErr)
	assert.Equal(t, unformattedScript, string(content))
}

func TestIntegration_FmtCheckCleanFile(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte(formattedScript), 0o644))

	_, _, err := execute(t, "fmt", "--check")
	assert.NoError(t, err)
}

func TestIntegration_FmtStdin(t *testing.T) {
	isolate(t)

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(unformattedScript))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"fmt", "--stdin", "--color", "never"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, formattedScript, stdout.String())
}

func TestIntegration_FmtDiffMode(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte(unformattedScript), 0o644))

	stdout, _, err := execute(t, "fmt", "--diff")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrIssuesFound))
	assert.Contains(t, stdout, "-var x:int=1")
	assert.Contains(t, stdout, "+var x: int = 1")
}

func TestIntegration_OrderStdinKeepsOrderedInput(t *testing.T) {
	isolate(t)

	ordered := "extends Node\n\nvar a = 1\n\n\nfunc f():\n\tpass\n"

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(ordered))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"order", "--stdin", "--color", "never"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, ordered, stdout.String())
}

func TestIntegration_LintReportsIssues(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte("var BadName = 1\n"), 0o644))

	stdout, _, err := execute(t, "lint", "--no-context")
	// Default severity is warning, so a clean exit without --strict.
	require.NoError(t, err)
	assert.Contains(t, stdout, "variable-name")
}

func TestIntegration_LintStrictFailsOnWarnings(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte("var BadName = 1\n"), 0o644))

	_, _, err := execute(t, "lint", "--strict", "--no-context")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrIssuesFound))
}

func TestIntegration_LintJSONOutput(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte("var BadName = 1\n"), 0o644))

	stdout, _, _ := execute(t, "lint", "--format", "json")
	assert.Contains(t, stdout, `"rule_id": "variable-name"`)
	assert.Contains(t, stdout, `"diagnostics"`)
}

func TestIntegration_LintDisableRule(t *testing.T) {
	tmpDir := isolate(t)
	scriptPath := filepath.Join(tmpDir, "player.gd")
	require.NoError(t, os.WriteFile(scriptPath, []byte("var BadName = 1\n"), 0o644))

	stdout, _, err := execute(t, "lint", "--disable", "variable-name", "--no-context")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "variable-name")
}

func TestIntegration_RulesTable(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Contains(t, stdout, "RULE")
	assert.Contains(t, stdout, "max-line-length")
	assert.Contains(t, stdout, "variable-name")
}

func TestIntegration_RulesJSON(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "rules", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"id": "max-line-length"`)
	assert.Contains(t, stdout, `"category": "format"`)
}

func TestIntegration_RulesCategoryFilter(t *testing.T) {
	isolate(t)

	stdout, _, err := execute(t, "rules", "--category", "naming")
	require.NoError(t, err)
	assert.Contains(t, stdout, "variable-name")
	assert.NotContains(t, stdout, "max-file-lines")
}

func TestIntegration_InitCreatesConfig(t *testing.T) {
	tmpDir := isolate(t)

	_, _, err := execute(t, "init")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(tmpDir, ".gogd.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "line_length")
	assert.Contains(t, string(content), "severity_default")
}

func TestIntegration_InitRefusesOverwrite(t *testing.T) {
	tmpDir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gogd.yaml"), []byte("format: {}\n"), 0o644))

	_, _, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--force")
	assert.NoError(t, err)
}

func TestIntegration_MigrateConvertsGDLintConfig(t *testing.T) {
	tmpDir := isolate(t)
	gdlintrc := "max-line-length: 110\nfunction-name: null\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gdlintrc"), []byte(gdlintrc), 0o644))

	_, _, err := execute(t, "migrate")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(tmpDir, ".gogd.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "max-line-length")
	assert.Contains(t, string(content), "function-name")
}

func TestIntegration_MigrateWithoutSource(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no gdlint configuration found")
}

func TestIntegration_ProjectConfigApplies(t *testing.T) {
	tmpDir := isolate(t)
	cfg := "rules:\n  variable-name:\n    enabled: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gogd.yaml"), []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "player.gd"), []byte("var BadName = 1\n"), 0o644))

	stdout, _, err := execute(t, "lint", "--no-context")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "variable-name")
}
