package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

func (a *app) schedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "List automated reports and the distribution list",
		Long: `Lists the automated report schedules and the addresses they are sent to.
The distribution list comes from distribution.recipients in the config file
or CARBONIQ_RECIPIENTS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(a.opts.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "AUTOMATED REPORT\tTYPE\tSTATUS")
			for _, s := range metrics.AutomatedReports() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, s.Type, s.Status())
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(a.opts.Out, "\nDISTRIBUTION LIST")
			for _, r := range a.cfg.Distribution.Recipients {
				fmt.Fprintln(a.opts.Out, r)
			}
			return nil
		},
	}
}
