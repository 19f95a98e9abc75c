package runner

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gogd/pkg/config"
	"github.com/yaklabco/gogd/pkg/format"
)

// Typed pipeline failures. Parse errors abort a file before any output; the
// verification errors mean output was produced but must not be used.
var (
	ErrParseFailure  = errors.New("parse failure")
	ErrNotEquivalent = errors.New("output is not structurally equivalent to input")
	ErrNotIdempotent = errors.New("output is not idempotent")
)

// PipelineResult is the outcome of the per-file format safety pipeline.
type PipelineResult struct {
	// Output is the rewritten source. Valid only when Skipped is false.
	Output string

	// Changed reports whether Output differs from the input.
	Changed bool

	// Skipped is set when a verification step failed; the input must be
	// left untouched and SkipReason explains why.
	Skipped bool

	// SkipReason is a human-readable description of the failed check.
	SkipReason string
}

// FormatPipeline formats content and certifies the result: the output must
// parse, must be structurally equivalent to the input, and formatting it
// again must be a no-op. When reorder is set the output is additionally
// reordered and re-certified via reorder idempotence (the equivalence
// checker is order-sensitive, so a second reorder standing still is the
// reorder-safety oracle). Verification can be disabled through
// cfg.UnsafeSkipChecks.
//
// A nil error with Skipped set means the file failed certification and the
// caller should warn and move on. A non-nil error means the input itself
// could not be processed.
func FormatPipeline(content []byte, cfg *config.Config, reorder, reorderOnly bool) (PipelineResult, error) {
	source := string(content)
	fopts := formatOptions(cfg)

	output := source
	if !reorderOnly {
		formatted, err := format.Format(source, fopts)
		if err != nil {
			return PipelineResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
		}

		if !cfg.UnsafeSkipChecks {
			check, err := format.Compare(source, formatted)
			if err != nil {
				return skip(fmt.Sprintf("%v: %v", ErrNotEquivalent, err)), nil
			}
			if !check.Equivalent {
				return skip(fmt.Sprintf("%v: %s at %s", ErrNotEquivalent, check.Detail, check.Path)), nil
			}

			again, err := format.Format(formatted, fopts)
			if err != nil || again != formatted {
				return skip(ErrNotIdempotent.Error()), nil
			}
		}
		output = formatted
	}

	if reorder || reorderOnly {
		reordered, err := format.Reorder(output)
		if err != nil {
			if reorderOnly {
				return PipelineResult{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
			}
			return skip(fmt.Sprintf("reorder failed: %v", err)), nil
		}
		if !cfg.UnsafeSkipChecks {
			again, err := format.Reorder(reordered)
			if err != nil || again != reordered {
				return skip("reorder is not idempotent"), nil
			}
		}
		output = reordered
	}

	return PipelineResult{
		Output:  output,
		Changed: output != source,
	}, nil
}

func skip(reason string) PipelineResult {
	return PipelineResult{Skipped: true, SkipReason: reason}
}

// formatOptions maps config to the formatter's options.
func formatOptions(cfg *config.Config) format.Options {
	opts := format.DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Format.IndentType == config.IndentSpaces {
		opts.Indent = format.Spaces(cfg.Format.IndentSize)
	}
	if cfg.Format.LineLength > 0 {
		opts.MaxLineLength = cfg.Format.LineLength
	}
	return opts
}
