package output

import (
	"os"
	"path/filepath"
	"strings"
)

// Colors for terminal output.
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorCyan    = "\033[36m"
	colorGray    = "\033[90m"
	colorBold    = "\033[1m"
	colorBoldRed = "\033[1;31m"
)

// paint wraps text in a color code and a reset. With color off it is the identity.
func paint(text, code string, color bool) string {
	if !color || text == "" {
		return text
	}
	return code + text + colorReset
}

// Dimmed returns dimmed text if color is enabled.
func Dimmed(text string, color bool) string {
	return paint(text, colorGray, color)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// UseColor returns true if colored output should be used on stderr.
// Respects NO_COLOR env, TERM=dumb, and terminal detection.
func UseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTerminal(os.Stderr) || IsCI()
}

// ShortPath strips base from path for display. When base is not a literal
// prefix of path, path is returned unchanged.
func ShortPath(base, path string) string {
	if base == "" {
		return path
	}
	base = strings.TrimRight(base, `/\`)
	if !strings.HasPrefix(path, base) {
		return path
	}
	rest := path[len(base):]
	if rest == "" || (rest[0] != '/' && rest[0] != filepath.Separator) {
		return path
	}
	return strings.TrimLeft(rest, `/\`)
}
