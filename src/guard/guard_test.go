package guard

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func mustRegistry(t *testing.T, rules ...Rule) *Registry {
	t.Helper()
	reg, err := NewRegistry(rules)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestNewRegistry_RejectsEmpty(t *testing.T) {
	for _, rules := range [][]Rule{nil, {}, {{Pattern: "  ", Alternative: "x"}}} {
		_, err := NewRegistry(rules)
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			t.Fatalf("NewRegistry(%v): expected ConfigurationError, got %v", rules, err)
		}
	}
}

func TestRegistry_MatchFirstRegisteredWins(t *testing.T) {
	reg := mustRegistry(t,
		Rule{Pattern: "next/image", Alternative: "img"},
		Rule{Pattern: "next", Alternative: "nothing"},
	)

	tests := []struct {
		request string
		want    string
		ok      bool
	}{
		{"next/image", "next/image", true},
		{"next/image/foo", "next/image", true},
		{"next/imagery", "next/image", true},
		{"next/router", "next", true},
		{"react", "", false},
		{"./next", "", false},
	}
	for _, tt := range tests {
		got, ok := reg.Match(tt.request)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Match(%q) = %q, %v; want %q, %v", tt.request, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRegistry_DuplicateLastWins(t *testing.T) {
	reg := mustRegistry(t,
		Rule{Pattern: "pkg", Alternative: "first"},
		Rule{Pattern: "other", Alternative: "o"},
		Rule{Pattern: "pkg", Alternative: "second"},
	)
	rule, ok := reg.Lookup("pkg")
	if !ok || rule.Alternative != "second" {
		t.Fatalf("Lookup(pkg) = %+v, %v; want alternative second", rule, ok)
	}
	if got := reg.Patterns(); !reflect.DeepEqual(got, []string{"pkg", "other"}) {
		t.Fatalf("Patterns() = %v", got)
	}
}

func TestExcluded(t *testing.T) {
	re, err := NewRegexp(`\.stories\.tsx?$`)
	if err != nil {
		t.Fatal(err)
	}
	glob, err := NewGlob("**/__mocks__/**")
	if err != nil {
		t.Fatal(err)
	}
	base, err := NewGlob("*.test.ts")
	if err != nil {
		t.Fatal(err)
	}
	rules := []Exclusion{
		Substring("/legacy/"),
		re,
		glob,
		base,
		ExclusionFunc(func(p string) bool { return filepath.Ext(p) == ".json" }),
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/app/node_modules/next/image.js", true},
		{"/app/src/legacy/a.ts", true},
		{"/app/src/Button.stories.tsx", true},
		{"/app/src/__mocks__/next.ts", true},
		{"/app/src/util.test.ts", true},
		{"/app/src/data.json", true},
		{"/app/src/Button.tsx", false},
	}
	for _, tt := range tests {
		if got := Excluded(tt.path, rules); got != tt.want {
			t.Errorf("Excluded(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNewRegexp_Invalid(t *testing.T) {
	_, err := NewRegexp("(")
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestNewGlob_Invalid(t *testing.T) {
	if _, err := NewGlob("[a-"); err == nil {
		t.Fatal("expected error for malformed glob")
	}
}

func TestScan_PrefixMatchAndSetSemantics(t *testing.T) {
	reg := mustRegistry(t,
		Rule{Pattern: "next/image", Alternative: "img"},
		Rule{Pattern: "next-intl", Alternative: "i18n"},
	)
	s := NewScanner(reg, nil)

	finding := s.Scan([]Module{
		{Resource: "/app/src/a.tsx", Dependencies: []Dependency{
			{Request: "next/image"},
			{Request: "next/image/legacy"},
			{Request: "react"},
		}},
		{Resource: "/app/src/b.tsx", Dependencies: []Dependency{{Request: "react"}}},
		{Resource: "", Dependencies: []Dependency{{Request: "next-intl"}}},
		{Resource: "/app/src/c.tsx", Dependencies: []Dependency{{Request: ""}, {Request: "next-intl/server"}}},
	})

	if len(finding) != 2 {
		t.Fatalf("expected 2 flagged files, got %d: %v", len(finding), finding)
	}
	if got := finding.Patterns("/app/src/a.tsx"); !reflect.DeepEqual(got, []string{"next/image"}) {
		t.Errorf("a.tsx patterns = %v", got)
	}
	if !finding.Has("/app/src/c.tsx", "next-intl") {
		t.Errorf("c.tsx should be flagged for next-intl")
	}
	if _, ok := finding["/app/src/b.tsx"]; ok {
		t.Errorf("b.tsx must not be flagged")
	}
}

func TestScan_DependencyDirAlwaysExcluded(t *testing.T) {
	reg := mustRegistry(t, Rule{Pattern: "fs", Alternative: "none"})
	s := NewScanner(reg, nil)

	finding := s.Scan([]Module{
		{Resource: "/app/node_modules/lib/index.js", Dependencies: []Dependency{{Request: "fs"}}},
	})
	if len(finding) != 0 {
		t.Fatalf("dependency directory must never be flagged: %v", finding)
	}
}

func TestScan_Idempotent(t *testing.T) {
	reg := mustRegistry(t, Rule{Pattern: "next/", Alternative: "x"})
	s := NewScanner(reg, []Exclusion{Substring("skip")})
	modules := []Module{
		{Resource: "/a.ts", Dependencies: []Dependency{{Request: "next/head"}, {Request: "next/router"}}},
		{Resource: "/skip/b.ts", Dependencies: []Dependency{{Request: "next/head"}}},
		{Resource: "/c.ts", Dependencies: []Dependency{{Request: "next/link"}}},
	}

	first := s.Scan(modules)
	second := s.Scan(modules)
	if !first.Equal(second) {
		t.Fatalf("scan not idempotent: %v vs %v", first, second)
	}
	if got := first.Files(); !reflect.DeepEqual(got, []string{"/a.ts", "/c.ts"}) {
		t.Fatalf("Files() = %v", got)
	}
}

func TestLocate_FromForm(t *testing.T) {
	src := "'use client';\n\nimport React from 'react';\n\nimport Image from 'next/image';\n"
	path := writeTempFile(t, "Hero.tsx", src)

	l := &Locator{Logger: quietLogger()}
	got := l.Locate(path, []string{"next/image"})

	want := []Occurrence{{Pattern: "next/image", Line: 5, Column: 0, Text: "import Image from 'next/image';"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Locate = %+v, want %+v", got, want)
	}
}

func TestLocate_AllForms(t *testing.T) {
	src := `import {
  useTranslations,
} from "next-intl";
const fs = require( 'fs/promises' );
  const mod = await import('next-intl/server');
export { default } from 'next-intl/client';
const other = require('fsevents');
`
	path := writeTempFile(t, "page.ts", src)

	l := &Locator{Logger: quietLogger()}
	got := l.Locate(path, []string{"next-intl", "fs"})

	want := []Occurrence{
		{Pattern: "next-intl", Line: 3, Column: 2, Text: `} from "next-intl";`},
		{Pattern: "fs", Line: 4, Column: 11, Text: "const fs = require( 'fs/promises' );"},
		{Pattern: "next-intl", Line: 5, Column: 20, Text: "const mod = await import('next-intl/server');"},
		{Pattern: "next-intl", Line: 6, Column: 0, Text: "export { default } from 'next-intl/client';"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Locate =\n%+v\nwant\n%+v", got, want)
	}
}

func TestLocate_OnePerLinePerPattern(t *testing.T) {
	src := "const a = require('pkg'), b = require('pkg/sub'); import x from 'other';\n"
	path := writeTempFile(t, "dup.js", src)

	l := &Locator{Logger: quietLogger()}
	got := l.Locate(path, []string{"pkg", "other"})
	if len(got) != 2 {
		t.Fatalf("expected one occurrence per pattern on the line, got %+v", got)
	}
	if got[0].Pattern != "pkg" || got[0].Column != 10 {
		t.Errorf("first occurrence = %+v", got[0])
	}
	if got[1].Pattern != "other" || got[1].Line != 1 {
		t.Errorf("second occurrence = %+v", got[1])
	}
}

func TestLocate_PatternIsLiteral(t *testing.T) {
	src := "import a from 'a.b';\nimport c from 'axb';\n"
	path := writeTempFile(t, "lit.js", src)

	l := &Locator{Logger: quietLogger()}
	got := l.Locate(path, []string{"a.b"})
	if len(got) != 1 || got[0].Line != 1 {
		t.Fatalf("regex metacharacters must be literal: %+v", got)
	}
}

func TestLocate_UnreadableFileDegrades(t *testing.T) {
	l := &Locator{
		Logger:   quietLogger(),
		ReadFile: func(string) ([]byte, error) { return nil, os.ErrNotExist },
	}
	got := l.Locate("/gone.ts", []string{"a", "b"})
	want := []Occurrence{{Pattern: "a"}, {Pattern: "b"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Locate = %+v, want %+v", got, want)
	}
	for _, o := range got {
		if o.Located() {
			t.Errorf("degraded occurrence must not be located: %+v", o)
		}
	}
}

func TestLocate_UnmatchedPatternStillReported(t *testing.T) {
	path := writeTempFile(t, "side.ts", "import 'next/font';\n")

	l := &Locator{Logger: quietLogger()}
	got := l.Locate(path, []string{"next/font"})
	if len(got) != 1 || got[0].Located() {
		t.Fatalf("expected one unlocated occurrence, got %+v", got)
	}
}

func TestErrors(t *testing.T) {
	v := &ViolationError{Count: 3}
	if v.Error() != "3 forbidden import(s) detected. See the error report above for details." {
		t.Errorf("ViolationError = %q", v.Error())
	}
	c := &ConfigurationError{Field: "guard.colors", Reason: "bad"}
	if c.Error() != "configuration: guard.colors: bad" {
		t.Errorf("ConfigurationError = %q", c.Error())
	}
}
