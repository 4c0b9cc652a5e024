package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/sofmeright/fedguard/src/guard"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective forbidden imports and exclusions",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	reg, err := guard.NewRegistry(cfg.Guard.Rules())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tALTERNATIVE\tREASON")
	for _, r := range reg.Rules() {
		reason := r.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Pattern, r.Alternative, reason)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nexclude (always): %s\n", guard.DependencyDirMarker)
	for _, ex := range cfg.Guard.Exclude {
		fmt.Fprintf(out, "exclude: %s\n", ex)
	}
	fmt.Fprintf(out, "fail_on_error: %t\n", cfg.Guard.FailOnErrorEnabled())
	return nil
}
