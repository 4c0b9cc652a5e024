package guard

import (
	"path/filepath"
	"strings"
)

// matchGlob extends filepath.Match with support for "**" (zero or more path
// segments). Patterns without "**" delegate directly to filepath.Match.
func matchGlob(pattern, path string) bool {
	if !strings.Contains(pattern, "**") {
		matched, _ := filepath.Match(pattern, path)
		return matched
	}

	idx := strings.Index(pattern, "**")
	prefix := pattern[:idx]
	suffix := strings.TrimLeft(pattern[idx+2:], "/")

	if prefix != "" {
		prefix = strings.TrimRight(prefix, "/")
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		path = strings.TrimPrefix(path, prefix)
		path = strings.TrimLeft(path, "/")
	}

	// ** at the end swallows the rest.
	if suffix == "" {
		return true
	}

	// Try the suffix against every tail: "a/b/c", "b/c", "c".
	parts := strings.Split(path, "/")
	for i := 0; i <= len(parts); i++ {
		tail := strings.Join(parts[i:], "/")
		if matchGlob(suffix, tail) {
			return true
		}
	}
	return false
}

// validGlob reports whether pattern is well formed for matchGlob.
func validGlob(pattern string) bool {
	_, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), "")
	return err == nil
}
