package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/render"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/sink"
)

func (a *app) workbookCmd() *cobra.Command {
	var flags requestFlags
	cmd := &cobra.Command{
		Use:   "workbook",
		Short: "Export the report metrics as an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			req, err := a.request(cmd, &flags)
			if err != nil {
				return err
			}
			req = req.Normalized()
			if err := metrics.Validate(req); err != nil {
				return err
			}

			model := metrics.Build(req, time.Now())
			model.Recipients = a.cfg.Distribution.Recipients
			doc, err := render.Workbook(model)
			if err != nil {
				return err
			}
			dl := sink.DirDownloader{Dir: a.outputDir(&flags)}
			if err := dl.Download(ctx, doc.Filename, doc.Bytes, doc.ContentType); err != nil {
				return rerrors.WrapSink(err, rerrors.ErrSinkDownloadFailed, "failed to save workbook").
					WithContext("file", doc.Filename)
			}
			zerolog.Ctx(ctx).Info().Str("file", doc.Filename).Int("bytes", len(doc.Bytes)).Msg("workbook exported")
			fmt.Fprintf(a.opts.Out, "Saved %s\n", dl.Path(doc.Filename))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
