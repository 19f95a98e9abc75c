// Package runner provides multi-file orchestration: discovery, the per-file
// format safety pipeline, and concurrent batch formatting and linting.
package runner

import "github.com/yaklabco/gogd/pkg/config"

// GDScriptExtension is the file extension considered for discovery.
const GDScriptExtension = ".gd"

// Options controls file discovery and worker scheduling.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are glob patterns used to skip files or directories,
	// merged from config and CLI.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// Zero or negative means one worker per CPU.
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// FormatOptions controls a batch format run.
type FormatOptions struct {
	Options

	// Check reports whether files would change without writing them.
	Check bool

	// Diff produces unified diffs instead of writing files.
	Diff bool

	// Stdout carries formatted output back to the caller instead of
	// writing files. Only sensible with a single input file.
	Stdout bool

	// Reorder runs declaration reordering after formatting.
	Reorder bool

	// ReorderOnly skips formatting and only reorders, for input that is
	// already canonically formatted.
	ReorderOnly bool
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
