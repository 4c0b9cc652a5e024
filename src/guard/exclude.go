package guard

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// DependencyDirMarker marks installed third-party trees. Paths containing it are
// never scanned, whatever the configuration says.
const DependencyDirMarker = "node_modules"

// Exclusion decides whether a module's resource path is skipped.
type Exclusion interface {
	Excludes(path string) bool
}

// Substring excludes paths containing the literal text.
type Substring string

func (s Substring) Excludes(path string) bool {
	return s != "" && strings.Contains(path, string(s))
}

func (s Substring) String() string { return string(s) }

// ExclusionFunc adapts an arbitrary predicate.
type ExclusionFunc func(path string) bool

func (f ExclusionFunc) Excludes(path string) bool { return f(path) }

// Regexp excludes paths matched anywhere by re.
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp compiles expr into an exclusion.
func NewRegexp(expr string) (Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Regexp{}, &ConfigurationError{Field: "exclude", Reason: fmt.Sprintf("invalid regex %q: %v", expr, err)}
	}
	return Regexp{re: re}, nil
}

func (r Regexp) Excludes(path string) bool {
	return r.re != nil && r.re.MatchString(filepath.ToSlash(path))
}

func (r Regexp) String() string {
	if r.re == nil {
		return ""
	}
	return "regex:" + r.re.String()
}

// Glob excludes paths by glob. Patterns containing "/" or "**" match the whole
// forward-slash path; others match the base name only.
type Glob struct {
	pattern string
}

// NewGlob validates pattern and returns a glob exclusion.
func NewGlob(pattern string) (Glob, error) {
	pattern = filepath.ToSlash(pattern)
	if pattern == "" || !validGlob(pattern) {
		return Glob{}, &ConfigurationError{Field: "exclude", Reason: fmt.Sprintf("invalid glob %q", pattern)}
	}
	return Glob{pattern: pattern}, nil
}

func (g Glob) Excludes(path string) bool {
	norm := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if strings.Contains(g.pattern, "/") || strings.Contains(g.pattern, "**") {
		return matchGlob(g.pattern, norm) || matchGlob(g.pattern, strings.TrimLeft(norm, "/"))
	}
	return matchGlob(g.pattern, filepath.Base(norm))
}

func (g Glob) String() string { return "glob:" + g.pattern }

// Excluded applies the dependency-directory rule and then each configured exclusion.
func Excluded(path string, rules []Exclusion) bool {
	if strings.Contains(path, DependencyDirMarker) {
		return true
	}
	for _, rule := range rules {
		if rule != nil && rule.Excludes(path) {
			return true
		}
	}
	return false
}
