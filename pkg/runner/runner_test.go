package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/pkg/config"
	_ "github.com/yaklabco/gogd/pkg/lint/rules"
	"github.com/yaklabco/gogd/pkg/runner"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.gd", "var a = 1\n")
	b := writeFile(t, dir, filepath.Join("sub", "b.gd"), "var b = 1\n")
	writeFile(t, dir, "notes.txt", "not a script\n")
	writeFile(t, dir, filepath.Join(".hidden", "c.gd"), "var c = 1\n")
	writeFile(t, dir, filepath.Join("addons", "x.gd"), "var x = 1\n")

	t.Run("walks directories", func(t *testing.T) {
		t.Parallel()
		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{a, filepath.Join(dir, "addons", "x.gd"), b}, files)
	})

	t.Run("exclude globs", func(t *testing.T) {
		t.Parallel()
		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:   dir,
			ExcludeGlobs: []string{"addons/**"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{a, b}, files)
	})

	t.Run("explicit file", func(t *testing.T) {
		t.Parallel()
		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{"a.gd"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{a}, files)
	})

	t.Run("missing path errors", func(t *testing.T) {
		t.Parallel()
		_, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{"nope.gd"},
		})
		require.Error(t, err)
	})

	t.Run("deduplicates overlapping inputs", func(t *testing.T) {
		t.Parallel()
		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{"a.gd", "."},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{a, filepath.Join(dir, "addons", "x.gd"), b}, files)
	})
}

func TestFormatPipeline(t *testing.T) {
	t.Parallel()

	t.Run("formats and verifies", func(t *testing.T) {
		t.Parallel()
		res, err := runner.FormatPipeline([]byte("var x:int=1\n"), config.NewConfig(), false, false)
		require.NoError(t, err)
		assert.False(t, res.Skipped)
		assert.True(t, res.Changed)
		assert.Equal(t, "var x: int = 1\n", res.Output)
	})

	t.Run("clean input is unchanged", func(t *testing.T) {
		t.Parallel()
		res, err := runner.FormatPipeline([]byte("var x: int = 1\n"), config.NewConfig(), false, false)
		require.NoError(t, err)
		assert.False(t, res.Changed)
	})

	t.Run("parse failure is a hard error", func(t *testing.T) {
		t.Parallel()
		_, err := runner.FormatPipeline([]byte("func (:\n"), config.NewConfig(), false, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, runner.ErrParseFailure))
	})

	t.Run("reorder moves declarations", func(t *testing.T) {
		t.Parallel()
		src := "extends Node\n\n\nfunc f():\n\tpass\n\n\nvar a = 1\n"
		res, err := runner.FormatPipeline([]byte(src), config.NewConfig(), true, false)
		require.NoError(t, err)
		assert.False(t, res.Skipped)
		assert.Equal(t, "extends Node\n\nvar a = 1\n\n\nfunc f():\n\tpass\n", res.Output)
	})

	t.Run("reorder only leaves spacing alone", func(t *testing.T) {
		t.Parallel()
		src := "extends Node\nvar a=1\n"
		res, err := runner.FormatPipeline([]byte(src), config.NewConfig(), true, true)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, src, res.Output)
	})
}

func TestRunnerFormat(t *testing.T) {
	t.Parallel()

	newOpts := func(dir string) runner.FormatOptions {
		return runner.FormatOptions{
			Options: runner.Options{WorkingDir: dir, Config: config.NewConfig()},
		}
	}

	t.Run("writes changed files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "a.gd", "var x:int=1\n")

		res, err := runner.New().Format(context.Background(), newOpts(dir))
		require.NoError(t, err)

		require.Len(t, res.Outcomes, 1)
		assert.True(t, res.Outcomes[0].Written)
		assert.Equal(t, 1, res.Stats.FilesWritten)
		assert.Equal(t, 1, res.Stats.FilesChanged)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "var x: int = 1\n", string(got))
	})

	t.Run("clean file is left alone", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.gd", "var x: int = 1\n")

		res, err := runner.New().Format(context.Background(), newOpts(dir))
		require.NoError(t, err)
		assert.Equal(t, 0, res.Stats.FilesWritten)
		assert.Equal(t, 1, res.Stats.FilesProcessed)
		assert.False(t, res.HasChanges())
	})

	t.Run("check mode does not write", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := writeFile(t, dir, "a.gd", "var x:int=1\n")

		opts := newOpts(dir)
		opts.Check = true
		res, err := runner.New().Format(context.Background(), opts)
		require.NoError(t, err)
		assert.True(t, res.HasChanges())
		assert.Equal(t, 0, res.Stats.FilesWritten)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "var x:int=1\n", string(got))
	})

	t.Run("stdout mode captures output", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.gd", "var x:int=1\n")

		opts := newOpts(dir)
		opts.Stdout = true
		res, err := runner.New().Format(context.Background(), opts)
		require.NoError(t, err)
		require.Len(t, res.Outcomes, 1)
		assert.Equal(t, "var x: int = 1\n", res.Outcomes[0].Output)
		assert.Equal(t, 0, res.Stats.FilesWritten)
	})

	t.Run("diff mode produces a diff", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.gd", "var x:int=1\n")

		opts := newOpts(dir)
		opts.Diff = true
		res, err := runner.New().Format(context.Background(), opts)
		require.NoError(t, err)
		require.Len(t, res.Outcomes, 1)
		require.NotNil(t, res.Outcomes[0].Diff)
		assert.True(t, res.Outcomes[0].Diff.HasChanges())
	})

	t.Run("unparsable file is a per-file error", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.gd", "func (:\n")
		writeFile(t, dir, "b.gd", "var ok = 1\n")

		res, err := runner.New().Format(context.Background(), newOpts(dir))
		require.NoError(t, err)
		assert.Equal(t, 1, res.Stats.FilesErrored)
		assert.Equal(t, 1, res.Stats.FilesProcessed)
		assert.True(t, res.HasErrors())
	})
}

func TestRunnerLint(t *testing.T) {
	t.Parallel()

	t.Run("reports diagnostics", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.gd", "var BadName = 1\n")

		res, err := runner.New().Lint(context.Background(), runner.Options{
			WorkingDir: dir,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)

		require.Len(t, res.Outcomes, 1)
		require.NotNil(t, res.Outcomes[0].Result)
		assert.True(t, res.HasIssues())

		found := false
		for _, d := range res.Outcomes[0].Result.Diagnostics {
			if d.RuleID == "variable-name" {
				found = true
			}
		}
		assert.True(t, found, "expected a variable-name diagnostic")
	})

	t.Run("clean file has no issues", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "a.gd", "var good_name = 1\n")

		res, err := runner.New().Lint(context.Background(), runner.Options{
			WorkingDir: dir,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)
		assert.False(t, res.HasIssues())
		assert.Equal(t, 1, res.Stats.FilesProcessed)
	})
}
