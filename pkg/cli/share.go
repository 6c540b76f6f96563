package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/render"
)

func (a *app) shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share [report name]",
		Short: "Copy the share link for a report",
		Long: `Copies the share link for the named report to the clipboard. On terminals
that support OSC 52 the link reaches the system clipboard; it is always printed.

Without a name, lists the recent reports.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.listRecent()
			}
			ctrl, err := a.controller(a.cfg.Output.Format, false, nil)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			res, err := ctrl.Share(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.opts.Err, "%s: %s\n", res.Notice.Title, res.Notice.Message)
			return nil
		},
	}
}

func (a *app) listRecent() error {
	tw := tabwriter.NewWriter(a.opts.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDATE\tTYPE\tSTATUS\tSIZE\tSHARE LINK")
	for _, r := range metrics.RecentReports() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Name, r.Date, r.Type, r.Status, r.Size, render.ShareURL(a.cfg.Share.Origin, r.Name))
	}
	return tw.Flush()
}
