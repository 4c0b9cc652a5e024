package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sofmeright/fedguard/src/graph"
	"github.com/sofmeright/fedguard/src/guard"
	"github.com/sofmeright/fedguard/src/output"
	"github.com/sofmeright/fedguard/src/plugin"
	"github.com/spf13/cobra"
)

var (
	scanGraph    string
	scanBasePath string
	scanNoColor  bool
	scanNoFail   bool
	scanHeader   string
	scanReports  string
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Check a module graph for forbidden imports",
	Long: `Check a remote's modules for imports that only work inside the host.

The module graph comes from --graph (native JSON or webpack stats JSON)
or, by default, from the import statements of the source files under dir.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanGraph, "graph", "", "module graph JSON file (native or webpack stats)")
	scanCmd.Flags().StringVar(&scanBasePath, "base-path", "", "root stripped from paths in the report (default: config, then git root, then cwd)")
	scanCmd.Flags().BoolVar(&scanNoColor, "no-color", false, "disable colored output")
	scanCmd.Flags().BoolVar(&scanNoFail, "no-fail", false, "report violations without failing")
	scanCmd.Flags().StringVar(&scanHeader, "header", "", "override the report header text")
	scanCmd.Flags().StringVar(&scanReports, "report-dir", ".fedguard/reports", "JUnit report directory (CI only)")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}

	gcfg := cfg.Guard
	if scanNoFail {
		off := false
		gcfg.FailOnError = &off
	}
	if scanHeader != "" {
		gcfg.ErrorHeader = scanHeader
	}

	color := gcfg.ColorsEnabled() && !scanNoColor && output.UseColor()
	p, err := plugin.New(gcfg,
		plugin.WithWriter(os.Stderr),
		plugin.WithLogger(logger),
		plugin.WithBasePath(resolveBasePath(gcfg.BasePath, absDir)),
		plugin.WithReportDir(scanReports),
		plugin.WithColor(color),
	)
	if err != nil {
		return err
	}

	modules, err := loadModules(cmd.Context(), absDir)
	if err != nil {
		return err
	}
	logger.Debug("module graph ready", "modules", len(modules))

	pipe := &plugin.Pipeline{}
	p.Apply(pipe)
	return pipe.Complete(modules)
}

func loadModules(ctx context.Context, dir string) ([]guard.Module, error) {
	if scanGraph != "" {
		return graph.LoadFile(scanGraph)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	c := &graph.Collector{Root: dir}
	mods, err := c.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting sources: %w", err)
	}
	return mods, nil
}

// resolveBasePath picks the report root: flag, config, repository root, then dir.
func resolveBasePath(configured, dir string) string {
	switch {
	case scanBasePath != "":
		return absOrSelf(scanBasePath)
	case configured != "":
		return absOrSelf(configured)
	}
	if root, ok := graph.RepoRoot(dir); ok {
		return root
	}
	return dir
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
