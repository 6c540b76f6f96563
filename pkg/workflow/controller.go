package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/render"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/sink"
)

// Options tune a Controller.
type Options struct {
	// Delay before the deferred generation starts.
	Delay time.Duration
	// Strict fails a run that has render defects instead of saving it.
	Strict bool
	// ShareOrigin prefixes share links.
	ShareOrigin string
	// Author is written to the document metadata.
	Author string
	// Clock supplies the generation timestamp. Defaults to time.Now.
	Clock func() time.Time
}

// Controller validates report requests and runs generation as a deferred,
// cancellable task.
type Controller struct {
	engine    *layout.Engine
	writer    *render.DocumentWriter
	clipboard sink.Clipboard
	opts      Options

	mu     sync.Mutex
	runs   map[string]*Run
	closed bool
}

// NewController creates a Controller.
func NewController(engine *layout.Engine, writer *render.DocumentWriter, clipboard sink.Clipboard, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Controller{
		engine:    engine,
		writer:    writer,
		clipboard: clipboard,
		opts:      opts,
		runs:      make(map[string]*Run),
	}
}

// Submit starts a run for req. Invalid requests end immediately in
// StateRejected and the validation error is also returned; generation never
// starts. Valid requests return a run in StateGenerating.
func (c *Controller) Submit(ctx context.Context, req metrics.ReportRequest) (*Run, error) {
	run := newRun(uuid.NewString(), req)
	logger := zerolog.Ctx(ctx).With().Str("run_id", run.ID).Str("report", req.Name).Logger()

	run.transition(StateValidating)
	normalized := req.Normalized()
	if err := metrics.Validate(normalized); err != nil {
		logger.Warn().Err(err).Msg("report request rejected")
		run.finish(Result{
			RunID:  run.ID,
			State:  StateRejected,
			Notice: rejectionNotice(err),
			Err:    err,
		})
		return run, err
	}

	run.transition(StateGenerating)
	logger.Info().Str("type", string(normalized.Type)).Dur("delay", c.opts.Delay).Msg("report generation scheduled")

	ctx = logger.WithContext(ctx)
	if err := c.schedule(ctx, run, normalized); err != nil {
		logger.Warn().Msg("controller closed, report not scheduled")
		run.finish(cancelled(run.ID, err))
		return run, run.Wait().Err
	}

	go func() {
		res, err := run.task.Wait()
		if err != nil {
			res = cancelled(run.ID, err)
		}
		switch res.State {
		case StateCompleted:
			logger.Info().Str("file", res.Document.Filename).Int("bytes", len(res.Document.Bytes)).Msg("report generated")
		case StateCancelled:
			logger.Info().Msg("report generation cancelled")
		case StateFailed:
			logger.Error().Err(res.Err).Msg("report generation failed")
		}
		c.untrack(run)
		run.finish(res)
	}()
	return run, nil
}

// generate runs layout, pagination, serialization and the save. The
// context is checked before and after the pure steps so a cancelled run
// never reaches the download sink.
func (c *Controller) generate(ctx context.Context, runID string, req metrics.ReportRequest) Result {
	logger := zerolog.Ctx(ctx)
	if err := ctx.Err(); err != nil {
		return cancelled(runID, err)
	}

	model := metrics.Build(req, c.opts.Clock())
	pages, defects, err := c.engine.Layout(model)
	if err != nil {
		return failed(runID, rerrors.Wrap(err, rerrors.ErrRenderFailed, rerrors.CategoryRender, "failed to lay out report"))
	}
	for _, d := range defects {
		logger.Warn().Str("kind", string(d.Kind)).Str("region", d.Region.String()).Msg(d.Detail)
	}
	if c.opts.Strict && len(defects) > 0 {
		err := rerrors.RenderErrorf(rerrors.ErrRenderDefect, "report layout has %d defect(s)", len(defects)).
			WithContext("first", defects[0].String()).
			WithSuggestion("Shorten the affected content or disable generation.strict")
		res := failed(runID, err)
		res.Defects = defects
		return res
	}

	doc, err := c.writer.Write(pages, render.DocumentInfo{
		Title:     model.Metadata.ReportName,
		Author:    c.opts.Author,
		Subject:   fmt.Sprintf("%s ESG report, %s", model.Metadata.Type, model.Metadata.PeriodLabel),
		Keywords:  append([]string{"ESG", "CO2e"}, model.Metadata.Scopes...),
		CreatedAt: model.Metadata.GeneratedAt,
	})
	if err != nil {
		return failed(runID, err)
	}

	if err := ctx.Err(); err != nil {
		return cancelled(runID, err)
	}
	if err := c.writer.Save(ctx, doc); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cancelled(runID, ctxErr)
		}
		res := failed(runID, err)
		res.Document = doc
		res.Defects = defects
		return res
	}

	notice := Notice{Level: LevelSuccess, Title: "Report Generated", Message: "Your ESG report has been generated and downloaded."}
	if len(defects) > 0 {
		notice.Level = LevelWarning
		notice.Message = fmt.Sprintf("Your ESG report was downloaded with %d layout warning(s).", len(defects))
	}
	return Result{RunID: runID, State: StateCompleted, Document: doc, Defects: defects, Notice: notice}
}

// Share copies the share link for name to the clipboard.
func (c *Controller) Share(ctx context.Context, name string) (ShareResult, error) {
	if strings.TrimSpace(name) == "" {
		err := rerrors.ValidationError(rerrors.ErrRequestMissingFields, metrics.MissingInformation).
			WithContext("fields", "name")
		return ShareResult{Notice: rejectionNotice(err)}, err
	}

	url := render.ShareURL(c.opts.ShareOrigin, name)
	logger := zerolog.Ctx(ctx).With().Str("report", name).Str("url", url).Logger()

	if c.clipboard == nil {
		err := rerrors.New(rerrors.ErrSinkClipboardFailed, rerrors.CategorySink, "no clipboard configured")
		return ShareResult{URL: url, Notice: failureNotice(err)}, err
	}
	if err := c.clipboard.Copy(ctx, url); err != nil {
		wrapped := rerrors.WrapSink(err, rerrors.ErrSinkClipboardFailed, "failed to copy share link").
			WithContext("url", url)
		logger.Error().Err(err).Msg("share link not copied")
		return ShareResult{URL: url, Notice: failureNotice(wrapped)}, wrapped
	}

	logger.Info().Msg("share link copied")
	return ShareResult{
		URL:    url,
		Notice: Notice{Level: LevelSuccess, Title: "Link Copied", Message: "Share link copied to clipboard."},
	}, nil
}

// schedule starts the deferred generation and tracks the run under one lock,
// so Close either sees the run or Submit sees the controller closed.
func (c *Controller) schedule(ctx context.Context, run *Run, req metrics.ReportRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errControllerClosed
	}
	run.task = Defer(ctx, c.opts.Delay, func(ctx context.Context) (Result, error) {
		return c.generate(ctx, run.ID, req), nil
	})
	c.runs[run.ID] = run
	return nil
}

var errControllerClosed = errors.New("controller is closed")

// Close cancels every run that has not finished and waits for them. Runs
// submitted afterwards end in StateCancelled without generating.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	runs := make([]*Run, 0, len(c.runs))
	for _, r := range c.runs {
		runs = append(runs, r)
	}
	c.mu.Unlock()

	for _, r := range runs {
		r.Cancel()
		<-r.Done()
	}
}

// Active returns the number of runs still generating.
func (c *Controller) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runs)
}

func (c *Controller) untrack(r *Run) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.runs, r.ID)
}

func cancelled(runID string, err error) Result {
	return Result{
		RunID:  runID,
		State:  StateCancelled,
		Notice: Notice{Level: LevelWarning, Title: "Generation Cancelled", Message: "The report was not saved."},
		Err:    rerrors.Wrap(err, rerrors.ErrRunCancelled, rerrors.CategoryInternal, "report generation cancelled"),
	}
}

func failed(runID string, err error) Result {
	return Result{RunID: runID, State: StateFailed, Notice: failureNotice(err), Err: err}
}

func rejectionNotice(err error) Notice {
	msg := "Please fill in all required fields."
	if re, ok := rerrors.AsReportError(err); ok && re.Code != rerrors.ErrRequestMissingFields {
		return Notice{Level: LevelError, Title: re.Message, Message: strings.Join(re.Suggestions, " ")}
	}
	return Notice{Level: LevelError, Title: metrics.MissingInformation, Message: msg}
}

func failureNotice(err error) Notice {
	title := "Report Failed"
	var re *rerrors.ReportError
	if errors.As(err, &re) {
		switch re.Category {
		case rerrors.CategorySink:
			title = "Delivery Failed"
		case rerrors.CategoryRender:
			title = "Layout Error"
		}
		return Notice{Level: LevelError, Title: title, Message: re.Message}
	}
	return Notice{Level: LevelError, Title: title, Message: err.Error()}
}
