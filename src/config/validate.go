package config

import (
	"errors"
	"fmt"

	"github.com/sofmeright/fedguard/src/guard"
	"github.com/sofmeright/fedguard/src/version"
)

// Validate checks a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
// Hard errors are *guard.ConfigurationError values, joined.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []error

	if cfg.RequiredVersion != "" {
		if verr := version.Check(cfg.RequiredVersion); verr != nil {
			errs = append(errs, &guard.ConfigurationError{Field: "required_version", Reason: verr.Error()})
		}
	}

	g := cfg.Guard
	if _, rerr := guard.NewRegistry(g.Rules()); rerr != nil {
		errs = append(errs, fmt.Errorf("guard: %w", rerr))
	}

	seen := make(map[string]int, len(g.ForbiddenImports))
	for i, r := range g.ForbiddenImports {
		if first, dup := seen[r.Pattern]; dup {
			warnings = append(warnings, fmt.Sprintf(
				"guard.forbidden_imports[%d]: pattern %q already defined at index %d; the later definition wins", i, r.Pattern, first))
			continue
		}
		seen[r.Pattern] = i
		if r.Alternative == "" && r.Pattern != "" {
			warnings = append(warnings, fmt.Sprintf("guard.forbidden_imports[%d]: pattern %q has no alternative", i, r.Pattern))
		}
	}

	if _, xerr := g.Exclusions(); xerr != nil {
		errs = append(errs, fmt.Errorf("guard.%w", xerr))
	}

	return warnings, errors.Join(errs...)
}
