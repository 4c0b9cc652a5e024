package output

import (
	"fmt"
	"io"

	"github.com/sofmeright/fedguard/src/guard"
)

// DefaultHeader is the boxed title used when none is configured.
const DefaultHeader = "MODULE FEDERATION BUILD ERROR"

// Reporter renders forbidden-import findings.
type Reporter struct {
	Registry    *guard.Registry
	Locator     *guard.Locator
	Header      string
	BasePath    string // stripped from absolute paths for display
	Color       bool
	FailOnError bool
}

// FileReport holds the located occurrences of one flagged file.
type FileReport struct {
	Path        string
	Display     string
	Occurrences []guard.Occurrence
}

// Result summarizes a rendered report.
type Result struct {
	Errors   int
	Files    []FileReport
	Patterns []string // distinct patterns reported, in order of first appearance
}

// Report writes the diagnostic report for finding to w and returns the result.
// An empty finding writes nothing.
func (r *Reporter) Report(w io.Writer, finding guard.Finding) Result {
	var res Result
	if len(finding) == 0 {
		return res
	}

	header := r.Header
	if header == "" {
		header = DefaultHeader
	}
	BoxHeader(w, header, r.Color)

	locator := r.Locator
	if locator == nil {
		locator = &guard.Locator{}
	}

	sec := NewSection(w, "Forbidden imports detected in modules bundled for remote use:", r.Color)
	seen := make(map[string]bool)
	for _, file := range finding.Files() {
		fr := FileReport{
			Path:        file,
			Display:     ShortPath(r.BasePath, file),
			Occurrences: locator.Locate(file, r.orderedPatterns(finding, file)),
		}

		for _, occ := range fr.Occurrences {
			sec.Blank()
			loc := fr.Display
			if occ.Located() {
				loc = fmt.Sprintf("%s:%d:%d", fr.Display, occ.Line, occ.Column)
			}
			sec.Row("%s", paint(loc, colorCyan, r.Color))
			sec.Row("  %s %s", paint("✗", colorRed, r.Color), paint(occ.Pattern, colorRed, r.Color))
			if occ.Text != "" {
				sec.Row("    %s", paint(occ.Text, colorGray, r.Color))
			}

			res.Errors++
			if !seen[occ.Pattern] {
				seen[occ.Pattern] = true
				res.Patterns = append(res.Patterns, occ.Pattern)
			}
		}
		res.Files = append(res.Files, fr)
	}

	r.writeAlternatives(w, res.Patterns)

	summary := fmt.Sprintf("%d error(s) found.", res.Errors)
	if r.FailOnError {
		summary += " Build failed."
	}
	fmt.Fprintf(w, "\n%s\n", paint(summary, colorBoldRed, r.Color))
	return res
}

// orderedPatterns lists the patterns flagged for file in registration order.
func (r *Reporter) orderedPatterns(finding guard.Finding, file string) []string {
	if r.Registry == nil {
		return finding.Patterns(file)
	}
	var out []string
	for _, p := range r.Registry.Patterns() {
		if finding.Has(file, p) {
			out = append(out, p)
		}
	}
	for _, p := range finding.Patterns(file) {
		if _, ok := r.Registry.Lookup(p); !ok {
			out = append(out, p)
		}
	}
	return out
}

func (r *Reporter) writeAlternatives(w io.Writer, patterns []string) {
	var lines []string
	for _, p := range patterns {
		if r.Registry == nil {
			continue
		}
		rule, ok := r.Registry.Lookup(p)
		if !ok || rule.Alternative == "" {
			continue
		}
		line := fmt.Sprintf("• %s → %s", paint(p, colorYellow, r.Color), paint(rule.Alternative, colorGreen, r.Color))
		if rule.Reason != "" {
			line += " " + Dimmed("("+rule.Reason+")", r.Color)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return
	}

	sec := NewSection(w, "Suggested alternatives:", r.Color)
	for _, line := range lines {
		sec.Row("%s", line)
	}
}
