package lint

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// Suppression directives live in comments:
//
//	# gdlint:ignore=rule-a,rule-b   suppresses the rules on this line and the next
//	# gdlint:disable=rule-a        suppresses from this line on
//	# gdlint:enable=rule-a         ends a disable range
//
// An empty rule list applies to every rule. A disable with no matching enable
// runs to the end of the file.
var directiveRe = regexp.MustCompile(`gdlint:\s*(ignore|disable|enable)\s*(?:=\s*([A-Za-z0-9_, \t-]*))?`)

// allRules marks a directive that names no rules.
const allRules = "*"

type lineRange struct {
	start, end int
}

func (r lineRange) contains(line int) bool {
	return line >= r.start && line <= r.end
}

// Suppressions records which rules are silenced on which lines.
type Suppressions struct {
	ignored  map[int]map[string]bool
	disabled map[string][]lineRange
}

// ParseSuppressions scans the source for gdlint directives.
func ParseSuppressions(source *gdast.SourceText) *Suppressions {
	s := &Suppressions{
		ignored:  make(map[int]map[string]bool),
		disabled: make(map[string][]lineRange),
	}

	// Open disable ranges, keyed by rule ID.
	pending := make(map[string]int)

	for line := 1; line <= source.LineCount(); line++ {
		text := source.Line(line)
		start := commentIndex(text)
		if start < 0 {
			continue
		}
		m := directiveRe.FindStringSubmatch(text[start:])
		if m == nil {
			continue
		}

		rules := parseRuleList(m[2])
		switch m[1] {
		case "ignore":
			for _, id := range rules {
				s.ignoreLine(line, id)
				s.ignoreLine(line+1, id)
			}
		case "disable":
			for _, id := range rules {
				if _, open := pending[id]; !open {
					pending[id] = line
				}
			}
		case "enable":
			for _, id := range rules {
				if start, open := pending[id]; open {
					s.disabled[id] = append(s.disabled[id], lineRange{start, line})
					delete(pending, id)
				}
			}
		}
	}

	for id, start := range pending {
		s.disabled[id] = append(s.disabled[id], lineRange{start, source.LineCount()})
	}

	return s
}

// Suppressed returns true if the given rule is silenced on the given line.
func (s *Suppressions) Suppressed(ruleID string, line int) bool {
	if set, ok := s.ignored[line]; ok {
		if set[ruleID] || set[allRules] {
			return true
		}
	}
	for _, id := range []string{ruleID, allRules} {
		for _, r := range s.disabled[id] {
			if r.contains(line) {
				return true
			}
		}
	}
	return false
}

func (s *Suppressions) ignoreLine(line int, ruleID string) {
	set, ok := s.ignored[line]
	if !ok {
		set = make(map[string]bool)
		s.ignored[line] = set
	}
	set[ruleID] = true
}

func parseRuleList(list string) []string {
	var rules []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			rules = append(rules, part)
		}
	}
	if len(rules) == 0 {
		rules = []string{allRules}
	}
	return rules
}

// commentIndex returns the index of the first '#' outside a string literal,
// or -1 if the line has no comment.
func commentIndex(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '#':
			return i
		}
	}
	return -1
}
