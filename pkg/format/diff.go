package format

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between a file's original and formatted content.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// DiffHunk is one @@ block of a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a single diff line without its prefix character.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind distinguishes context, added, and removed lines.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

const diffContextLines = 3

// GenerateDiff diffs original against modified line by line. Identical
// content yields nil.
func GenerateDiff(path string, original, modified []byte) *Diff {
	orig := splitDiffLines(original)
	mod := splitDiffLines(modified)
	ops := diffOps(orig, mod)

	changed := false
	for _, op := range ops {
		if op.kind != DiffLineContext {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, h := range d.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges reports whether the diff contains hunks.
func (d *Diff) HasChanges() bool { return d != nil && len(d.Hunks) > 0 }

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, l := range h.Lines {
			switch l.Kind {
			case DiffLineContext:
				fmt.Fprintf(&b, " %s\n", l.Content)
			case DiffLineAdd:
				fmt.Fprintf(&b, "+%s\n", l.Content)
			case DiffLineRemove:
				fmt.Fprintf(&b, "-%s\n", l.Content)
			}
		}
	}
	return b.String()
}

func splitDiffLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps walks original and modified against their longest common
// subsequence, emitting context, remove, and add operations.
func diffOps(orig, mod []string) []diffOp {
	lcs := longestCommonSubsequence(orig, mod)
	var ops []diffOp
	oi, mi, li := 0, 0, 0
	for oi < len(orig) || mi < len(mod) {
		if li < len(lcs) && oi < len(orig) && mi < len(mod) &&
			orig[oi] == lcs[li] && mod[mi] == lcs[li] {
			ops = append(ops, diffOp{DiffLineContext, orig[oi]})
			oi, mi, li = oi+1, mi+1, li+1
			continue
		}
		for oi < len(orig) && (li >= len(lcs) || orig[oi] != lcs[li]) {
			ops = append(ops, diffOp{DiffLineRemove, orig[oi]})
			oi++
		}
		for mi < len(mod) && (li >= len(lcs) || mod[mi] != lcs[li]) {
			ops = append(ops, diffOp{DiffLineAdd, mod[mi]})
			mi++
		}
	}
	return ops
}

// groupHunks clusters change runs closer than twice the context width into
// shared hunks and expands each with context lines.
func groupHunks(ops []diffOp) []DiffHunk {
	type span struct{ start, end int }
	var runs []span
	open := -1
	for i, op := range ops {
		if op.kind != DiffLineContext {
			if open < 0 {
				open = i
			}
			continue
		}
		if open >= 0 {
			runs = append(runs, span{open, i})
			open = -1
		}
	}
	if open >= 0 {
		runs = append(runs, span{open, len(ops)})
	}
	if len(runs) == 0 {
		return nil
	}

	var hunks []DiffHunk
	for i := 0; i < len(runs); {
		j := i + 1
		for j < len(runs) && runs[j].start-runs[j-1].end <= diffContextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, runs[i].start, runs[j-1].end))
		i = j
	}
	return hunks
}

func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := changeStart - diffContextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + diffContextLines
	if end > len(ops) {
		end = len(ops)
	}

	h := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for i := 0; i < start; i++ {
		if ops[i].kind != DiffLineAdd {
			h.OriginalStart++
		}
		if ops[i].kind != DiffLineRemove {
			h.ModifiedStart++
		}
	}
	for i := start; i < end; i++ {
		h.Lines = append(h.Lines, DiffLine{Kind: ops[i].kind, Content: ops[i].content})
		switch ops[i].kind {
		case DiffLineContext:
			h.OriginalCount++
			h.ModifiedCount++
		case DiffLineRemove:
			h.OriginalCount++
		case DiffLineAdd:
			h.ModifiedCount++
		}
	}
	return h
}

func longestCommonSubsequence(orig, mod []string) []string {
	if len(orig) == 0 || len(mod) == 0 {
		return nil
	}
	dp := make([][]int, len(orig)+1)
	for i := range dp {
		dp[i] = make([]int, len(mod)+1)
	}
	for r := 1; r <= len(orig); r++ {
		for c := 1; c <= len(mod); c++ {
			if orig[r-1] == mod[c-1] {
				dp[r][c] = dp[r-1][c-1] + 1
			} else {
				dp[r][c] = max(dp[r-1][c], dp[r][c-1])
			}
		}
	}
	n := dp[len(orig)][len(mod)]
	if n == 0 {
		return nil
	}
	lcs := make([]string, n)
	r, c, i := len(orig), len(mod), n-1
	for r > 0 && c > 0 {
		switch {
		case orig[r-1] == mod[c-1]:
			lcs[i] = orig[r-1]
			r, c, i = r-1, c-1, i-1
		case dp[r-1][c] > dp[r][c-1]:
			r--
		default:
			c--
		}
	}
	return lcs
}
