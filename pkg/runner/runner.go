package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gogd/internal/logging"
	"github.com/yaklabco/gogd/pkg/format"
	"github.com/yaklabco/gogd/pkg/fsutil"
	"github.com/yaklabco/gogd/pkg/langdetect"
	"github.com/yaklabco/gogd/pkg/lint"
)

// Runner orchestrates batch formatting and linting over discovered files.
type Runner struct {
	// Engine lints files for Lint runs.
	Engine *lint.Engine
}

// New creates a Runner backed by the default rule registry.
func New() *Runner {
	return &Runner{Engine: lint.NewEngine(lint.DefaultRegistry)}
}

// Format discovers files and runs the format safety pipeline on each,
// concurrently. Per-file verification failures and IO errors are recorded in
// the outcomes rather than aborting the batch.
func (r *Runner) Format(ctx context.Context, opts FormatOptions) (*FormatResult, error) {
	files, err := Discover(ctx, opts.Options)
	if err != nil {
		return nil, err
	}

	outcomes := make([]FormatOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobCount(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			outcomes[i] = r.formatFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	result := &FormatResult{}
	result.Stats.FilesDiscovered = len(files)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result, nil
}

// formatFile runs the pipeline for one file and applies the requested action.
func (r *Runner) formatFile(ctx context.Context, path string, opts FormatOptions) FormatOutcome {
	outcome := FormatOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if lang := langdetect.Detect(path, content); lang != "" && lang != langdetect.GDScript {
		outcome.Skipped = true
		outcome.SkipReason = fmt.Sprintf("detected as %s, not GDScript", lang)
		logging.FromContext(ctx).Debug("skipping file",
			logging.FieldPath, path, logging.FieldReason, outcome.SkipReason)
		return outcome
	}

	pr, err := FormatPipeline(content, opts.Config, opts.Reorder, opts.ReorderOnly)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	if pr.Skipped {
		outcome.Skipped = true
		outcome.SkipReason = pr.SkipReason
		return outcome
	}

	outcome.Changed = pr.Changed
	switch {
	case opts.Stdout:
		outcome.Output = pr.Output
	case opts.Diff:
		outcome.Diff = format.GenerateDiff(path, content, []byte(pr.Output))
	case opts.Check:
		// Changed flag is the whole answer.
	case pr.Changed:
		// The read happened before formatting; refuse to clobber edits
		// that landed in between.
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			outcome.Error = err
			return outcome
		}
		if modified {
			outcome.Skipped = true
			outcome.SkipReason = "file changed on disk during formatting"
			return outcome
		}
		if err := fsutil.WriteAtomic(ctx, path, []byte(pr.Output), info.Mode); err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Written = true
	}
	return outcome
}

// Lint discovers files and lints each concurrently.
func (r *Runner) Lint(ctx context.Context, opts Options) (*LintResult, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	outcomes := make([]LintOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobCount(opts.Jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			outcomes[i] = r.lintFile(gctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	result := &LintResult{}
	result.Stats.FilesDiscovered = len(files)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result, nil
}

func (r *Runner) lintFile(ctx context.Context, path string, opts Options) LintOutcome {
	outcome := LintOutcome{Path: path}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if lang := langdetect.Detect(path, content); lang != "" && lang != langdetect.GDScript {
		outcome.Skipped = true
		outcome.SkipReason = fmt.Sprintf("detected as %s, not GDScript", lang)
		logging.FromContext(ctx).Debug("skipping file",
			logging.FieldPath, path, logging.FieldReason, outcome.SkipReason)
		return outcome
	}

	fileResult, err := r.Engine.LintFile(ctx, path, content, opts.Config)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = fileResult
	return outcome
}

func jobCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if files > 0 && jobs > files {
		jobs = files
	}
	if jobs < 1 {
		jobs = 1
	}
	return jobs
}
