package guard

import (
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// Locator recovers line and column positions for flagged patterns.
type Locator struct {
	Logger   *log.Logger
	ReadFile func(name string) ([]byte, error) // defaults to os.ReadFile
}

// importForms are tried in order; the first hit on a line wins.
// %s is the escaped pattern.
var importForms = []string{
	`(?:(?:import|export)\b[^'"]*?)?\bfrom\s*['"]%s(?:/[^'"]*)?['"]`,
	`\brequire\s*\(\s*['"]%s(?:/[^'"]*)?['"]`,
	`\bimport\s*\(\s*['"]%s(?:/[^'"]*)?['"]`,
}

type patternMatcher struct {
	pattern string
	forms   []*regexp.Regexp
}

func newPatternMatcher(pattern string) patternMatcher {
	quoted := regexp.QuoteMeta(pattern)
	m := patternMatcher{pattern: pattern, forms: make([]*regexp.Regexp, len(importForms))}
	for i, form := range importForms {
		m.forms[i] = regexp.MustCompile(strings.Replace(form, "%s", quoted, 1))
	}
	return m
}

// find returns the start of the first matching form on line, or -1.
func (m patternMatcher) find(line string) int {
	for _, re := range m.forms {
		if loc := re.FindStringIndex(line); loc != nil {
			return loc[0]
		}
	}
	return -1
}

// Locate reads path and returns every occurrence of patterns, in line order.
// At most one occurrence is produced per line and pattern. When the file cannot
// be read, each pattern gets one occurrence without a position and a warning is
// logged. A pattern the scanner flagged but no textual form matched (a bare
// side-effect import, a require split across lines) also yields one
// unpositioned occurrence, so the violation is never dropped.
func (l *Locator) Locate(path string, patterns []string) []Occurrence {
	read := l.ReadFile
	if read == nil {
		read = os.ReadFile
	}

	data, err := read(path)
	if err != nil {
		l.logger().Warn("cannot re-read flagged file, reporting without location", "file", path, "err", err)
		return unlocated(patterns)
	}

	matchers := make([]patternMatcher, len(patterns))
	for i, p := range patterns {
		matchers[i] = newPatternMatcher(p)
	}

	var out []Occurrence
	found := make(map[string]bool, len(patterns))
	for i, line := range strings.Split(string(data), "\n") {
		for _, m := range matchers {
			col := m.find(line)
			if col < 0 {
				continue
			}
			found[m.pattern] = true
			out = append(out, Occurrence{
				Pattern: m.pattern,
				Line:    i + 1,
				Column:  col,
				Text:    strings.TrimSpace(line),
			})
		}
	}

	for _, p := range patterns {
		if !found[p] {
			out = append(out, Occurrence{Pattern: p})
		}
	}
	return out
}

func unlocated(patterns []string) []Occurrence {
	out := make([]Occurrence, len(patterns))
	for i, p := range patterns {
		out[i] = Occurrence{Pattern: p}
	}
	return out
}

func (l *Locator) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}
