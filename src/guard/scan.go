package guard

// Scanner matches module dependency requests against a registry.
type Scanner struct {
	Registry *Registry
	Exclude  []Exclusion
}

// NewScanner creates a scanner over reg with the given exclusions.
func NewScanner(reg *Registry, exclude []Exclusion) *Scanner {
	return &Scanner{Registry: reg, Exclude: exclude}
}

// Scan builds the finding for one module graph. It performs no I/O.
// Modules without a resource path and excluded modules are skipped.
func (s *Scanner) Scan(modules []Module) Finding {
	finding := make(Finding)
	for _, m := range modules {
		if m.Resource == "" {
			continue
		}
		if Excluded(m.Resource, s.Exclude) {
			continue
		}
		for _, dep := range m.Dependencies {
			if dep.Request == "" {
				continue
			}
			if pattern, ok := s.Registry.Match(dep.Request); ok {
				finding.add(m.Resource, pattern)
			}
		}
	}
	return finding
}
