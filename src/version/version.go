package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// These variables are injected at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns a human-readable version string.
func String() string {
	return fmt.Sprintf("fedguard %s (%s, %s)", Version, Commit, BuildDate)
}

// Check verifies that the running version satisfies constraint.
// Development builds (a Version that is not semver) satisfy any valid constraint.
func Check(constraint string) error {
	return CheckVersion(Version, constraint)
}

// CheckVersion verifies that v satisfies constraint.
func CheckVersion(v, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	sv, err := semver.NewVersion(v)
	if err != nil {
		return nil
	}
	if ok, errs := c.Validate(sv); !ok {
		if len(errs) > 0 {
			return fmt.Errorf("fedguard %s does not satisfy %q: %w", sv, constraint, errs[0])
		}
		return fmt.Errorf("fedguard %s does not satisfy %q", sv, constraint)
	}
	return nil
}
