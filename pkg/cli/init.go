package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/config"
)

func (a *app) initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := a.configPath
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(a.opts.Out, "Config already exists at %s (use --force to overwrite)\n", path)
				return nil
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(a.opts.Out, "Config initialized at: %s\n", path)
			fmt.Fprintln(a.opts.Out, "\nNext steps:")
			fmt.Fprintln(a.opts.Out, "  1. Set share.origin to the address reports are shared from")
			fmt.Fprintln(a.opts.Out, "  2. Run: carboniq generate -i")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			commit, date := a.opts.Commit, a.opts.Date
			if commit == "" {
				commit = "none"
			}
			if date == "" {
				date = "unknown"
			}
			fmt.Fprintf(a.opts.Out, "carboniq %s (commit %s, built %s)\n", a.opts.Version, commit, date)
			return nil
		},
	}
}
