// Package plugin wires the forbidden import guard into a build pipeline.
//
// Configuration is resolved once in New. The pipeline calls the registered
// hook exactly once per build, after module resolution and before emission,
// with the full module list. Nothing is carried over between builds.
package plugin

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sofmeright/fedguard/src/config"
	"github.com/sofmeright/fedguard/src/guard"
	"github.com/sofmeright/fedguard/src/output"
)

// Name identifies the plugin's hook registration.
const Name = "fedguard"

// Plugin is a configured guard instance. It is immutable after New.
type Plugin struct {
	registry  *guard.Registry
	exclude   []guard.Exclusion
	cfg       config.GuardConfig
	w         io.Writer
	logger    *log.Logger
	basePath  string
	reportDir string
	color     bool
}

// Option customizes a Plugin.
type Option func(*Plugin)

// WithWriter sets the report destination (default os.Stderr).
func WithWriter(w io.Writer) Option { return func(p *Plugin) { p.w = w } }

// WithLogger sets the logger used for warnings.
func WithLogger(l *log.Logger) Option { return func(p *Plugin) { p.logger = l } }

// WithBasePath sets the root stripped from file paths in the report.
func WithBasePath(base string) Option { return func(p *Plugin) { p.basePath = base } }

// WithReportDir enables JUnit output into dir when running in CI.
func WithReportDir(dir string) Option { return func(p *Plugin) { p.reportDir = dir } }

// WithColor overrides the configured colors setting.
func WithColor(on bool) Option { return func(p *Plugin) { p.color = on } }

// New resolves cfg into a plugin. It fails with a *guard.ConfigurationError
// when the forbidden imports or exclusions are unusable.
func New(cfg config.GuardConfig, opts ...Option) (*Plugin, error) {
	reg, err := guard.NewRegistry(cfg.Rules())
	if err != nil {
		return nil, err
	}
	exclude, err := cfg.Exclusions()
	if err != nil {
		return nil, err
	}

	p := &Plugin{
		registry: reg,
		exclude:  exclude,
		cfg:      cfg,
		w:        os.Stderr,
		basePath: cfg.BasePath,
		color:    cfg.ColorsEnabled(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	return p, nil
}

// Registry exposes the resolved forbidden patterns.
func (p *Plugin) Registry() *guard.Registry { return p.registry }

// Apply registers the plugin on the pipeline's module-graph-ready hook.
func (p *Plugin) Apply(h Hooks) {
	h.OnModuleGraphReady(Name, p.Run)
}

// Run scans one build's module graph and reports violations.
// It returns a *guard.ViolationError after the report is written when
// violations exist and fail_on_error is enabled.
func (p *Plugin) Run(modules []guard.Module) error {
	start := time.Now()

	finding := guard.NewScanner(p.registry, p.exclude).Scan(modules)
	p.logger.Debug("scan complete", "modules", len(modules), "flagged_files", len(finding))
	if len(finding) == 0 {
		return nil
	}

	reporter := &output.Reporter{
		Registry:    p.registry,
		Locator:     &guard.Locator{Logger: p.logger},
		Header:      p.cfg.Header(),
		BasePath:    p.basePath,
		Color:       p.color,
		FailOnError: p.cfg.FailOnErrorEnabled(),
	}

	output.SectionStart(p.w, "fedguard_report", "Forbidden imports")
	res := reporter.Report(p.w, finding)
	output.SectionEnd(p.w, "fedguard_report")

	if p.reportDir != "" && output.IsCI() {
		if err := output.WriteJUnit(p.reportDir, res, time.Since(start)); err != nil {
			p.logger.Warn("failed to write junit report", "err", err)
		}
	}

	if res.Errors > 0 && p.cfg.FailOnErrorEnabled() {
		return &guard.ViolationError{Count: res.Errors}
	}
	return nil
}
