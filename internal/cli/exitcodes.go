package cli

import "errors"

// Exit codes for gogd.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitIssuesFound indicates the run completed but found issues:
	// lint diagnostics, or files that need reformatting in check mode.
	ExitIssuesFound = 1

	// ExitError indicates usage, configuration, or processing errors.
	ExitError = 2
)

// ErrIssuesFound signals a clean run that found issues. main translates it
// to ExitIssuesFound without logging.
var ErrIssuesFound = errors.New("issues found")
