package runner

import (
	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/format"
	"github.com/yaklabco/gogd/pkg/lint"
)

// FormatOutcome records what happened to a single file during a format run.
type FormatOutcome struct {
	Path       string
	Changed    bool
	Skipped    bool
	SkipReason string
	Written    bool

	// Output holds the formatted source in stdout mode.
	Output string
	// Diff holds a unified diff in diff mode; nil when nothing changed.
	Diff *format.Diff

	Error error
}

// LintOutcome records what happened to a single file during a lint run.
type LintOutcome struct {
	Path       string
	Skipped    bool
	SkipReason string
	Result     *lint.FileResult
	Error      error
}

// Stats aggregates counters across a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesSkipped    int
	FilesErrored    int
}

// FormatResult is the aggregate outcome of a format run, in discovery order.
type FormatResult struct {
	Outcomes []FormatOutcome
	Stats    Stats
}

func (r *FormatResult) accumulate(o FormatOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch {
	case o.Error != nil:
		r.Stats.FilesErrored++
	case o.Skipped:
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesProcessed++
		if o.Changed {
			r.Stats.FilesChanged++
		}
		if o.Written {
			r.Stats.FilesWritten++
		}
	}
}

// HasChanges reports whether any file needed reformatting. Check mode uses
// this to pick the exit code.
func (r *FormatResult) HasChanges() bool {
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed with a hard error.
func (r *FormatResult) HasErrors() bool {
	return r.Stats.FilesErrored > 0
}

// LintResult is the aggregate outcome of a lint run, in discovery order.
type LintResult struct {
	Outcomes []LintOutcome
	Stats    Stats

	// Diagnostics counts issues across all files by severity.
	ErrorDiagnostics   int
	WarningDiagnostics int
	InfoDiagnostics    int
}

func (r *LintResult) accumulate(o LintOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch {
	case o.Error != nil:
		r.Stats.FilesErrored++
	case o.Skipped:
		r.Stats.FilesSkipped++
	default:
		r.Stats.FilesProcessed++
		if o.Result != nil {
			for _, d := range o.Result.Diagnostics {
				switch d.Severity {
				case config.SeverityError:
					r.ErrorDiagnostics++
				case config.SeverityInfo:
					r.InfoDiagnostics++
				default:
					r.WarningDiagnostics++
				}
			}
		}
	}
}

// HasIssues reports whether any diagnostics were produced.
func (r *LintResult) HasIssues() bool {
	return r.ErrorDiagnostics+r.WarningDiagnostics+r.InfoDiagnostics > 0
}

// HasErrors reports whether any error-severity diagnostics or hard file
// errors occurred.
func (r *LintResult) HasErrors() bool {
	return r.ErrorDiagnostics > 0 || r.Stats.FilesErrored > 0
}
