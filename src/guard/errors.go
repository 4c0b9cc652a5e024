package guard

import "fmt"

// ConfigurationError is raised at setup when the guard cannot be built.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// ViolationError aborts a build after the report has been printed.
type ViolationError struct {
	Count int
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%d forbidden import(s) detected. See the error report above for details.", e.Count)
}
