package guard

import (
	"fmt"
	"strings"
)

// Rule forbids every request that starts with Pattern.
type Rule struct {
	Pattern     string
	Alternative string
	Reason      string
}

// Registry holds the forbidden patterns of one guard instance.
// It is read-only once built.
type Registry struct {
	order []string
	rules map[string]Rule
}

// NewRegistry validates rules and builds a registry.
// A pattern registered twice keeps its first position; the last definition wins.
func NewRegistry(rules []Rule) (*Registry, error) {
	if len(rules) == 0 {
		return nil, &ConfigurationError{Field: "forbidden_imports", Reason: "at least one forbidden import is required"}
	}

	r := &Registry{rules: make(map[string]Rule, len(rules))}
	for i, rule := range rules {
		if strings.TrimSpace(rule.Pattern) == "" {
			return nil, &ConfigurationError{
				Field:  fmt.Sprintf("forbidden_imports[%d].pattern", i),
				Reason: "must not be empty",
			}
		}
		if _, exists := r.rules[rule.Pattern]; !exists {
			r.order = append(r.order, rule.Pattern)
		}
		r.rules[rule.Pattern] = rule
	}
	return r, nil
}

// Match returns the first registered pattern that prefixes request.
// Matching is on raw text, not on path segments: "next/imagery" matches "next/image".
func (r *Registry) Match(request string) (string, bool) {
	for _, p := range r.order {
		if strings.HasPrefix(request, p) {
			return p, true
		}
	}
	return "", false
}

// Lookup returns the rule registered for pattern.
func (r *Registry) Lookup(pattern string) (Rule, bool) {
	rule, ok := r.rules[pattern]
	return rule, ok
}

// Patterns returns the distinct patterns in registration order.
func (r *Registry) Patterns() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Rules returns the effective rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, 0, len(r.order))
	for _, p := range r.order {
		out = append(out, r.rules[p])
	}
	return out
}
