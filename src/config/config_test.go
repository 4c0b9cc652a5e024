package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sofmeright/fedguard/src/guard"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const yamlConfig = `
guard:
  forbidden_imports:
    - pattern: next/image
      alternative: use a plain <img> element
      reason: needs the Next.js image loader
    - pattern: next-intl
      alternative: host-provided i18n
  exclude:
    - legacy/
    - regex: '\.stories\.tsx?$'
    - glob: '**/__mocks__/**'
  fail_on_error: false
`

func TestLoad_YAMLAppliesDefaults(t *testing.T) {
	path := writeConfig(t, ".fedguard.yml", yamlConfig)

	cfg, err := Load(filepath.Dir(path), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g := cfg.Guard
	if len(g.ForbiddenImports) != 2 || g.ForbiddenImports[0].Reason != "needs the Next.js image loader" {
		t.Fatalf("forbidden_imports = %+v", g.ForbiddenImports)
	}
	wantExclude := []ExcludeRule{{Substring: "legacy/"}, {Regex: `\.stories\.tsx?$`}, {Glob: "**/__mocks__/**"}}
	if !reflect.DeepEqual(g.Exclude, wantExclude) {
		t.Fatalf("exclude = %+v", g.Exclude)
	}
	if g.FailOnErrorEnabled() {
		t.Errorf("fail_on_error should be false")
	}
	if !g.ColorsEnabled() {
		t.Errorf("colors should default to true")
	}
	if g.Header() != DefaultErrorHeader {
		t.Errorf("header = %q", g.Header())
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "guard.toml", `
required_version = ">= 0.0.1"

[guard]
error_header = "REMOTE BUILD BLOCKED"
colors = false
exclude = [{ substring = "legacy/" }, { glob = "*.test.ts" }]

[[guard.forbidden_imports]]
pattern = "next/router"
alternative = "use the host router bridge"
`)

	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g := cfg.Guard
	if g.Header() != "REMOTE BUILD BLOCKED" || g.ColorsEnabled() || !g.FailOnErrorEnabled() {
		t.Fatalf("unexpected guard config: %+v", g)
	}
	if len(g.ForbiddenImports) != 1 || g.ForbiddenImports[0].Pattern != "next/router" {
		t.Fatalf("forbidden_imports = %+v", g.ForbiddenImports)
	}
	if len(g.Exclude) != 2 || g.Exclude[1].Glob != "*.test.ts" {
		t.Fatalf("exclude = %+v", g.Exclude)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir(), "")
	var cerr *guard.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}

	_, err = Load("", filepath.Join(t.TempDir(), "nope.yml"))
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError for explicit path, got %v", err)
	}
}

func TestParse_UnknownKeyRejected(t *testing.T) {
	if _, err := Parse([]byte("guard:\n  fail_on_eror: true\n"), ".yml"); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       GuardConfig
		wantErr   bool
		wantWarns int
	}{
		{
			name:    "missing forbidden imports",
			cfg:     DefaultGuardConfig(),
			wantErr: true,
		},
		{
			name:    "empty pattern",
			cfg:     GuardConfig{ForbiddenImports: []RuleConfig{{Pattern: "", Alternative: "x"}}},
			wantErr: true,
		},
		{
			name: "bad regex",
			cfg: GuardConfig{
				ForbiddenImports: []RuleConfig{{Pattern: "a", Alternative: "b"}},
				Exclude:          []ExcludeRule{{Regex: "("}},
			},
			wantErr: true,
		},
		{
			name: "two kinds in one exclude rule",
			cfg: GuardConfig{
				ForbiddenImports: []RuleConfig{{Pattern: "a", Alternative: "b"}},
				Exclude:          []ExcludeRule{{Regex: "x", Glob: "y"}},
			},
			wantErr: true,
		},
		{
			name: "duplicate pattern warns",
			cfg: GuardConfig{ForbiddenImports: []RuleConfig{
				{Pattern: "a", Alternative: "b"},
				{Pattern: "a", Alternative: "c"},
			}},
			wantWarns: 1,
		},
		{
			name:      "missing alternative warns",
			cfg:       GuardConfig{ForbiddenImports: []RuleConfig{{Pattern: "a"}}},
			wantWarns: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warns, err := Validate(&Config{Guard: tt.cfg})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cerr *guard.ConfigurationError
				if !errors.As(err, &cerr) {
					t.Fatalf("expected ConfigurationError in %v", err)
				}
			}
			if len(warns) != tt.wantWarns {
				t.Fatalf("warnings = %v, want %d", warns, tt.wantWarns)
			}
		})
	}
}

func TestValidate_RequiredVersion(t *testing.T) {
	cfg := &Config{
		RequiredVersion: "not-a-constraint",
		Guard:           GuardConfig{ForbiddenImports: []RuleConfig{{Pattern: "a", Alternative: "b"}}},
	}
	_, err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "required_version") {
		t.Fatalf("expected required_version error, got %v", err)
	}
}
