package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGDLintConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".gdlintrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCanMigrate(t *testing.T) {
	t.Parallel()
	assert.True(t, CanMigrate("/project/.gdlintrc"))
	assert.True(t, CanMigrate("gdlintrc.yaml"))
	assert.False(t, CanMigrate("/project/setup.cfg"))
}

func TestConvertGDLintConfig(t *testing.T) {
	t.Parallel()

	t.Run("thresholds", func(t *testing.T) {
		t.Parallel()
		path := writeGDLintConfig(t, "max-line-length: 110\nmax-returns: 4\n")

		result, err := ConvertGDLintConfig(path)
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, 110, result.Config.Format.LineLength)
		assert.Equal(t, 110, result.Config.Rules["max-line-length"].Options["length"])
		assert.Equal(t, 4, result.Config.Rules["max-returns"].Options["max"])
	})

	t.Run("null disables a rule", func(t *testing.T) {
		t.Parallel()
		path := writeGDLintConfig(t, "class-definitions-order: null\n")

		result, err := ConvertGDLintConfig(path)
		require.NoError(t, err)
		rc := result.Config.Rules["class-definitions-order"]
		require.NotNil(t, rc.Enabled)
		assert.False(t, *rc.Enabled)
	})

	t.Run("pattern strings", func(t *testing.T) {
		t.Parallel()
		path := writeGDLintConfig(t, `function-name: "(_on_.*|[a-z_]+)"`+"\n")

		result, err := ConvertGDLintConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "(_on_.*|[a-z_]+)", result.Config.Rules["function-name"].Options["pattern"])
	})

	t.Run("renamed rules", func(t *testing.T) {
		t.Parallel()
		path := writeGDLintConfig(t, "function-arguments-number: 5\ndisable:\n  - mixed-tabs-and-spaces\n")

		result, err := ConvertGDLintConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 5, result.Config.Rules["max-function-args"].Options["max"])
		rc := result.Config.Rules["mixed-tabs-spaces"]
		require.NotNil(t, rc.Enabled)
		assert.False(t, *rc.Enabled)
	})

	t.Run("excluded directories become globs", func(t *testing.T) {
		t.Parallel()
		path := writeGDLintConfig(t, "excluded_directories:\n  - addons\n")

		result, err := ConvertGDLintConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"addons/**"}, result.Config.Exclude)
	})

	t.Run("unknown rules warn", func(t *testing.T) {
		t.Parallel()
		path := writeGDLintConfig(t, "private-method-call: null\n")

		result, err := ConvertGDLintConfig(path)
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
		assert.Contains(t, result.Warnings[0], "private-method-call")
	})

	t.Run("invalid yaml errors", func(t *testing.T) {
		t.Parallel()
		path := writeGDLintConfig(t, "max-line-length: [unclosed\n")

		_, err := ConvertGDLintConfig(path)
		require.Error(t, err)
	})
}
