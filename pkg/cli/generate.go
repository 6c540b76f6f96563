package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/pageflow"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/render"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/sink"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/spinner"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/workflow"
)

// requestFlags are the report form fields shared by generate, preview and workbook.
type requestFlags struct {
	name        string
	reportType  string
	start       string
	end         string
	notes       string
	recent      string
	interactive bool
	outDir      string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "Report name")
	fl.StringVar(&f.reportType, "type", "", "Report type: monthly, quarterly, annual or custom")
	fl.StringVar(&f.start, "start", metrics.DefaultStartDate, "Period start date (YYYY-MM-DD)")
	fl.StringVar(&f.end, "end", metrics.DefaultEndDate, "Period end date (YYYY-MM-DD)")
	fl.StringVar(&f.notes, "notes", "", "Additional notes appended to the executive summary")
	fl.StringVar(&f.recent, "recent", "", "Regenerate a recent report by name")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "Fill in the report form interactively")
	fl.StringVar(&f.outDir, "out", "", "Output directory (default: output.dir from config)")
}

// request builds the report request from the flags, a recent report or the
// interactive form. It does not validate.
func (a *app) request(cmd *cobra.Command, f *requestFlags) (metrics.ReportRequest, error) {
	switch {
	case f.interactive:
		form, err := a.opts.NewForm()
		if err != nil {
			return metrics.ReportRequest{}, err
		}
		defer form.Close()
		return form.Fill(cmd.Context())

	case f.recent != "":
		r, ok := metrics.FindRecent(f.recent)
		if !ok {
			return metrics.ReportRequest{}, rerrors.ValidationError(rerrors.ErrReportNotFound, "no recent report with that name").
				WithContext("name", f.recent).
				WithSuggestion("Run 'carboniq share' to list recent reports")
		}
		return metrics.ReportRequest{
			Name:      r.Name,
			Type:      r.Type,
			StartDate: f.start,
			EndDate:   f.end,
			Notes:     f.notes,
		}, nil

	default:
		return metrics.ReportRequest{
			Name:      f.name,
			Type:      metrics.ReportType(f.reportType),
			StartDate: f.start,
			EndDate:   f.end,
			Notes:     f.notes,
		}, nil
	}
}

func (a *app) outputDir(f *requestFlags) string {
	if f.outDir != "" {
		return f.outDir
	}
	return a.cfg.Output.Dir
}

func (a *app) generateCmd() *cobra.Command {
	var (
		flags  requestFlags
		format string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the ESG report",
		Long: `Validates the report request, waits for the configured generation delay
and saves the laid-out report to the output directory.

Press Ctrl-C during the delay to cancel; nothing is saved.`,
		Example: `  carboniq generate --name "Q3 2024 ESG Report" --type quarterly
  carboniq generate --recent "Q2 2024 ESG Report"
  carboniq generate -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = a.cfg.Output.Format
			}
			if !cmd.Flags().Changed("strict") {
				strict = a.cfg.Generation.Strict
			}
			return a.runGenerate(cmd, &flags, format, strict)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "", "Output format: pdf or html (default: output.format from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of saving when the layout overflows")
	return cmd
}

func (a *app) previewCmd() *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Save an HTML preview of the report",
		Long:  `Lays out the report exactly as generate does and saves it as HTML with one SVG per page.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, &flags, "html", a.cfg.Generation.Strict)
		},
	}
	flags.register(cmd)
	return cmd
}

// controller wires the layout engine, renderer and sinks from the config.
func (a *app) controller(format string, strict bool, dl sink.Downloader) (*workflow.Controller, error) {
	tmpl, err := a.cfg.Template()
	if err != nil {
		return nil, err
	}
	r, err := render.ForFormat(format, a.cfg.Generation.Compress)
	if err != nil {
		return nil, err
	}
	delay, err := a.cfg.DelayDuration()
	if err != nil {
		return nil, rerrors.WrapConfig(err, rerrors.ErrConfigInvalid, "invalid generation delay")
	}

	engine := layout.NewEngine(tmpl, pageflow.Fixed{})
	return workflow.NewController(engine, render.NewDocumentWriter(r, dl), a.clipboard(), workflow.Options{
		Delay:       delay,
		Strict:      strict,
		ShareOrigin: a.cfg.Share.Origin,
		Author:      "Carbon IQ Insights",
	}), nil
}

func (a *app) runGenerate(cmd *cobra.Command, flags *requestFlags, format string, strict bool) error {
	ctx := cmd.Context()
	req, err := a.request(cmd, flags)
	if err != nil {
		return err
	}

	dl := sink.DirDownloader{Dir: a.outputDir(flags)}
	ctrl, err := a.controller(format, strict, dl)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	run, err := ctrl.Submit(ctx, req)
	if err != nil {
		return err
	}

	sp := spinner.NewWithConfig(spinner.Config{Message: "Generating " + strings.TrimSpace(req.Name), Writer: a.opts.Err})
	sp.Start()
	res := run.Wait()
	switch {
	case res.State == workflow.StateCompleted && len(res.Defects) > 0:
		sp.Warn(res.Notice.Title)
	case res.State == workflow.StateCompleted:
		sp.Success(res.Notice.Title)
	default:
		sp.Fail(res.Notice.Title)
	}

	for _, d := range res.Defects {
		fmt.Fprintf(a.opts.Out, "  warning: %s\n", d)
	}
	if res.Err != nil {
		return res.Err
	}

	fmt.Fprintln(a.opts.Out, res.Notice.Message)
	fmt.Fprintf(a.opts.Out, "Saved %s (%d pages, %d bytes)\n", dl.Path(res.Document.Filename), res.Document.Pages, len(res.Document.Bytes))
	fmt.Fprintf(a.opts.Out, "sha256 %s\n", res.Document.Checksum())
	return nil
}
