package graph

import (
	"regexp"
	"sort"
)

// requestForms capture the specifier of each import style.
// \s spans newlines, so multi-line statements are covered.
var requestForms = []*regexp.Regexp{
	regexp.MustCompile(`\bfrom\s*['"]([^'"\n]+)['"]`),
	regexp.MustCompile(`\bimport\s*['"]([^'"\n]+)['"]`),
	regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"\n]+)['"]\s*\)`),
	regexp.MustCompile(`\bimport\s*\(\s*['"]([^'"\n]+)['"]\s*\)`),
}

// ExtractRequests returns the distinct import specifiers in src, in order of appearance.
func ExtractRequests(src []byte) []string {
	type hit struct {
		pos     int
		request string
	}
	var hits []hit
	for _, re := range requestForms {
		for _, m := range re.FindAllSubmatchIndex(src, -1) {
			hits = append(hits, hit{pos: m[2], request: string(src[m[2]:m[3]])})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool, len(hits))
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		if seen[h.request] {
			continue
		}
		seen[h.request] = true
		out = append(out, h.request)
	}
	return out
}
