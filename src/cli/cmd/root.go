package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sofmeright/fedguard/src/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fedguard",
	Short: "Forbidden import guard for federated remotes",
	Long:  "fedguard fails a remote's build when it imports host-only modules.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)

		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(".", cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		warnings, err := config.Validate(cfg)
		for _, w := range warnings {
			logger.Warn(w)
		}
		if err != nil {
			return fmt.Errorf("invalid config %s: %w", cfg.Path, err)
		}
		logger.Debug("config loaded", "path", cfg.Path, "rules", len(cfg.Guard.ForbiddenImports))
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .fedguard.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger(verbose bool) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "fedguard",
		Level:  log.WarnLevel,
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
