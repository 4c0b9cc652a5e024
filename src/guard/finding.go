package guard

import "sort"

// Dependency is one outgoing edge of a module as the bundler saw it.
type Dependency struct {
	Request string // literal specifier as written, before resolution
}

// Module describes a source module handed over by the build pipeline.
// An empty Resource marks a synthetic module with no file behind it.
type Module struct {
	Resource     string
	Dependencies []Dependency
}

// Finding maps an absolute file path to the set of forbidden patterns it requested.
// It lives for a single build.
type Finding map[string]map[string]struct{}

func (f Finding) add(file, pattern string) {
	set, ok := f[file]
	if !ok {
		set = make(map[string]struct{})
		f[file] = set
	}
	set[pattern] = struct{}{}
}

// Has reports whether file was flagged for pattern.
func (f Finding) Has(file, pattern string) bool {
	_, ok := f[file][pattern]
	return ok
}

// Files returns the flagged files in lexicographic order.
func (f Finding) Files() []string {
	files := make([]string, 0, len(f))
	for file := range f {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Patterns returns the patterns matched in file, sorted.
func (f Finding) Patterns(file string) []string {
	set := f[file]
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Equal compares two findings as sets.
func (f Finding) Equal(other Finding) bool {
	if len(f) != len(other) {
		return false
	}
	for file, set := range f {
		oset, ok := other[file]
		if !ok || len(oset) != len(set) {
			return false
		}
		for p := range set {
			if _, ok := oset[p]; !ok {
				return false
			}
		}
	}
	return true
}

// Occurrence is one located forbidden import.
// Line is 1-indexed and Column 0-indexed; both are 0 when the location is unknown.
type Occurrence struct {
	Pattern string
	Line    int
	Column  int
	Text    string // trimmed source line, empty when unknown
}

// Located reports whether the occurrence carries a source position.
func (o Occurrence) Located() bool { return o.Line > 0 }
