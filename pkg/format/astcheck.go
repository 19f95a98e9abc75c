package format

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/parser"
)

// CheckResult is the outcome of a structural equivalence check between two
// parses. Path points at the first divergence as a breadcrumb of dot-joined
// kind[index] segments, e.g. "function_definition[0].body[2]".
type CheckResult struct {
	Equivalent bool
	Path       string
	Detail     string
}

// Compare parses both sources and checks them for structural equivalence:
// same named-node shape, same leaf values. Comments, whitespace, blank
// lines, and anonymous punctuation play no part.
func Compare(original, formatted string) (CheckResult, error) {
	a, err := parser.Parse([]byte(original))
	if err != nil {
		return CheckResult{}, fmt.Errorf("parsing original: %w", err)
	}
	b, err := parser.Parse([]byte(formatted))
	if err != nil {
		return CheckResult{}, fmt.Errorf("parsing formatted: %w", err)
	}
	return CompareTrees(a, b), nil
}

// CompareTrees checks two already-parsed trees.
func CompareTrees(a, b *gdast.Tree) CheckResult {
	return compareNodes(a.Root, b.Root, a.Source, b.Source, "")
}

func compareNodes(a, b *gdast.Node, asrc, bsrc []byte, path string) CheckResult {
	if a.Kind != b.Kind {
		return CheckResult{
			Path:   path,
			Detail: fmt.Sprintf("node kind changed from %s to %s", a.Kind, b.Kind),
		}
	}

	if a.Kind.IsLeafValue() {
		av := leafValue(a.Kind, a.Text(asrc))
		bv := leafValue(b.Kind, b.Text(bsrc))
		if av != bv {
			return CheckResult{
				Path:   path,
				Detail: fmt.Sprintf("%s value changed from %q to %q", a.Kind, av, bv),
			}
		}
		return CheckResult{Equivalent: true}
	}

	ac := a.NamedChildren()
	bc := b.NamedChildren()
	if len(ac) != len(bc) {
		return CheckResult{
			Path:   path,
			Detail: fmt.Sprintf("%s child count changed from %d to %d", a.Kind, len(ac), len(bc)),
		}
	}
	for i := range ac {
		childPath := fmt.Sprintf("%s[%d]", ac[i].Kind, i)
		if path != "" {
			childPath = path + "." + childPath
		}
		if r := compareNodes(ac[i], bc[i], asrc, bsrc, childPath); !r.Equivalent {
			return r
		}
	}
	return CheckResult{Equivalent: true}
}

// leafValue returns the comparable value of a leaf. Only the raw spans the
// renderer re-indents compare with whitespace runs collapsed; identifiers,
// numbers, and string literals compare byte for byte, so a whitespace change
// inside a string is reported as a value change.
func leafValue(k gdast.Kind, s string) string {
	switch k {
	case gdast.KindType, gdast.KindPattern, gdast.KindPropertyBody, gdast.KindLambda:
		return strings.Join(strings.Fields(s), " ")
	default:
		return s
	}
}
