package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const boxWidth = 60 // inner width between the vertical bars

// BoxHeader renders a framed one-line title:
//
//	┌────────────────────────────────────────────────────────────┐
//	│  MODULE FEDERATION BUILD ERROR                             │
//	└────────────────────────────────────────────────────────────┘
//
// Titles longer than the box widen it.
func BoxHeader(w io.Writer, title string, color bool) {
	inner := boxWidth
	if n := utf8.RuneCountInString(title) + 4; n > inner {
		inner = n
	}
	pad := inner - 2 - utf8.RuneCountInString(title)

	top := "┌" + strings.Repeat("─", inner) + "┐"
	mid := "│  " + title + strings.Repeat(" ", pad) + "│"
	bottom := "└" + strings.Repeat("─", inner) + "┘"

	fmt.Fprintln(w)
	for _, line := range []string{top, mid, bottom} {
		fmt.Fprintln(w, paint(line, colorBoldRed, color))
	}
}

// Section renders an indented titled block of rows.
type Section struct {
	w     io.Writer
	color bool
}

// NewSection writes the section title and returns the section.
func NewSection(w io.Writer, title string, color bool) *Section {
	s := &Section{w: w, color: color}
	fmt.Fprintln(w)
	fmt.Fprintln(w, paint(title, colorBold, color))
	return s
}

// Row writes a content line inside the section.
func (s *Section) Row(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(s.w, "  %s\n", line)
}

// Blank writes an empty line.
func (s *Section) Blank() {
	fmt.Fprintln(s.w)
}
