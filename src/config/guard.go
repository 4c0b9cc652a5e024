package config

import (
	"fmt"

	"github.com/sofmeright/fedguard/src/guard"
	"gopkg.in/yaml.v3"
)

// DefaultErrorHeader is the boxed report title.
const DefaultErrorHeader = "MODULE FEDERATION BUILD ERROR"

// RuleConfig is one forbidden import entry.
type RuleConfig struct {
	Pattern     string `yaml:"pattern" toml:"pattern"`
	Alternative string `yaml:"alternative" toml:"alternative"`
	Reason      string `yaml:"reason,omitempty" toml:"reason,omitempty"`
}

// ExcludeRule selects files that are never scanned. Exactly one field is set.
// In YAML a bare string is shorthand for a substring rule.
type ExcludeRule struct {
	Substring string `yaml:"substring,omitempty" toml:"substring,omitempty"`
	Regex     string `yaml:"regex,omitempty" toml:"regex,omitempty"`
	Glob      string `yaml:"glob,omitempty" toml:"glob,omitempty"`
}

// UnmarshalYAML accepts either a scalar or a mapping.
func (e *ExcludeRule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*e = ExcludeRule{Substring: node.Value}
		return nil
	}
	type plain ExcludeRule
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = ExcludeRule(p)
	return nil
}

// Exclusion compiles the rule.
func (e ExcludeRule) Exclusion() (guard.Exclusion, error) {
	set := 0
	for _, v := range []string{e.Substring, e.Regex, e.Glob} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return nil, &guard.ConfigurationError{Field: "exclude", Reason: "each rule needs exactly one of substring, regex, glob"}
	}

	switch {
	case e.Regex != "":
		return guard.NewRegexp(e.Regex)
	case e.Glob != "":
		return guard.NewGlob(e.Glob)
	default:
		return guard.Substring(e.Substring), nil
	}
}

// String renders the rule the way it is written in config.
func (e ExcludeRule) String() string {
	switch {
	case e.Regex != "":
		return "regex:" + e.Regex
	case e.Glob != "":
		return "glob:" + e.Glob
	default:
		return e.Substring
	}
}

// GuardConfig holds the forbidden import guard settings.
type GuardConfig struct {
	ForbiddenImports []RuleConfig  `yaml:"forbidden_imports" toml:"forbidden_imports"`
	Exclude          []ExcludeRule `yaml:"exclude" toml:"exclude"`
	FailOnError      *bool         `yaml:"fail_on_error,omitempty" toml:"fail_on_error,omitempty"`
	ErrorHeader      string        `yaml:"error_header" toml:"error_header"`
	Colors           *bool         `yaml:"colors,omitempty" toml:"colors,omitempty"`
	BasePath         string        `yaml:"base_path" toml:"base_path"`
}

// DefaultGuardConfig returns production defaults. forbidden_imports has no default.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		Exclude:     []ExcludeRule{},
		FailOnError: boolPtr(true),
		ErrorHeader: DefaultErrorHeader,
		Colors:      boolPtr(true),
	}
}

// FailOnErrorEnabled reports fail_on_error, true when unset.
func (g GuardConfig) FailOnErrorEnabled() bool {
	return g.FailOnError == nil || *g.FailOnError
}

// ColorsEnabled reports colors, true when unset.
func (g GuardConfig) ColorsEnabled() bool {
	return g.Colors == nil || *g.Colors
}

// Header returns the configured error header or the default.
func (g GuardConfig) Header() string {
	if g.ErrorHeader == "" {
		return DefaultErrorHeader
	}
	return g.ErrorHeader
}

// Rules converts the forbidden imports to guard rules.
func (g GuardConfig) Rules() []guard.Rule {
	rules := make([]guard.Rule, len(g.ForbiddenImports))
	for i, r := range g.ForbiddenImports {
		rules[i] = guard.Rule{Pattern: r.Pattern, Alternative: r.Alternative, Reason: r.Reason}
	}
	return rules
}

// Exclusions compiles every exclude rule.
func (g GuardConfig) Exclusions() ([]guard.Exclusion, error) {
	out := make([]guard.Exclusion, 0, len(g.Exclude))
	for i, rule := range g.Exclude {
		ex, err := rule.Exclusion()
		if err != nil {
			return nil, fmt.Errorf("exclude[%d]: %w", i, err)
		}
		out = append(out, ex)
	}
	return out, nil
}

func boolPtr(b bool) *bool { return &b }
