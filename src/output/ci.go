package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true"
}

func IsGitLabCI() bool {
	return os.Getenv("GITLAB_CI") == "true"
}

// GitLab collapsible section helpers.

func SectionStart(w io.Writer, id, name string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_start:%d:%s\r\033[0K%s\n", ts, id, name)
}

func SectionEnd(w io.Writer, id string) {
	if !IsGitLabCI() {
		return
	}
	ts := time.Now().Unix()
	fmt.Fprintf(w, "\033[0Ksection_end:%d:%s\r\033[0K\n", ts, id)
}

// JUnit XML types for CI test reporting.

type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Time     string           `xml:"time,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitFileName is the report written by WriteJUnit.
const JUnitFileName = "fedguard.xml"

// WriteJUnit writes a report result as JUnit XML into dir.
// Each flagged file becomes a failing test case of a single suite.
func WriteJUnit(dir string, res Result, elapsed time.Duration) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	suite := JUnitTestSuite{
		Name: "fedguard/forbidden-imports",
		Time: fmt.Sprintf("%.3f", elapsed.Seconds()),
	}
	for _, fr := range res.Files {
		lines := make([]string, 0, len(fr.Occurrences))
		for _, occ := range fr.Occurrences {
			loc := "-"
			if occ.Located() {
				loc = fmt.Sprintf("%d:%d", occ.Line, occ.Column)
			}
			line := fmt.Sprintf("  %s %s", loc, occ.Pattern)
			if occ.Text != "" {
				line += "  " + occ.Text
			}
			lines = append(lines, line)
		}
		suite.Cases = append(suite.Cases, JUnitTestCase{
			Name:      fr.Display,
			Classname: "fedguard.forbidden_imports",
			Time:      "0.000",
			Failure: &JUnitFailure{
				Message: fmt.Sprintf("%d forbidden import(s) in %s", len(fr.Occurrences), fr.Display),
				Type:    "forbidden-import",
				Body:    strings.Join(lines, "\n"),
			},
		})
		suite.Tests++
		suite.Failures++
	}

	root := JUnitTestSuites{
		Name:     "fedguard",
		Tests:    suite.Tests,
		Failures: suite.Failures,
		Time:     suite.Time,
		Suites:   []JUnitTestSuite{suite},
	}

	path := filepath.Join(dir, JUnitFileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encoding junit xml: %w", err)
	}
	_, err = f.WriteString("\n")
	return err
}
