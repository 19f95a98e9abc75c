package format

import (
	"regexp"

	"github.com/yaklabco/gogd/pkg/gdast"
)

var (
	fmtOffRe = regexp.MustCompile(`#\s*fmt:\s*off`)
	fmtOnRe  = regexp.MustCompile(`#\s*fmt:\s*on`)
)

// skipRegion is a 1-based inclusive line range excluded from formatting.
// The marker lines themselves belong to the region.
type skipRegion struct {
	start int
	end   int
}

// SkipRegions tracks the "# fmt: off" / "# fmt: on" ranges of a file.
type SkipRegions struct {
	regions []skipRegion
}

// ParseSkipRegions scans source for fmt markers. A dangling "# fmt: off"
// extends to the end of the file.
func ParseSkipRegions(source *gdast.SourceText) *SkipRegions {
	s := &SkipRegions{}
	start := 0
	for n := 1; n <= source.LineCount(); n++ {
		line := source.Line(n)
		if start == 0 {
			if fmtOffRe.MatchString(line) {
				start = n
			}
			continue
		}
		if fmtOnRe.MatchString(line) {
			s.regions = append(s.regions, skipRegion{start: start, end: n})
			start = 0
		}
	}
	if start != 0 {
		s.regions = append(s.regions, skipRegion{start: start, end: source.LineCount()})
	}
	return s
}

// IsSkipped reports whether the 1-based line falls inside a skip region.
func (s *SkipRegions) IsSkipped(line int) bool {
	for _, r := range s.regions {
		if line >= r.start && line <= r.end {
			return true
		}
	}
	return false
}

// Overlaps reports whether any line of the inclusive range is skipped.
func (s *SkipRegions) Overlaps(start, end int) bool {
	for _, r := range s.regions {
		if start <= r.end && end >= r.start {
			return true
		}
	}
	return false
}

// Empty reports whether the file has no skip regions.
func (s *SkipRegions) Empty() bool { return len(s.regions) == 0 }
