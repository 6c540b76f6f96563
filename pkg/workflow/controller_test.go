package workflow

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/pageflow"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/render"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/sink"
)

// -----------------------------------------------------------------------------
// Test doubles
// -----------------------------------------------------------------------------

type mockDownloader struct {
	mock.Mock
}

func (m *mockDownloader) Download(ctx context.Context, filename string, content []byte, contentType string) error {
	return m.Called(ctx, filename, content, contentType).Error(0)
}

type mockClipboard struct {
	mock.Mock
}

func (m *mockClipboard) Copy(ctx context.Context, text string) error {
	return m.Called(ctx, text).Error(0)
}

// hookRenderer runs hook before delegating to the PDF renderer.
type hookRenderer struct {
	*render.PDF
	hook func()
}

func (h hookRenderer) Render(pages []layout.Page, info render.DocumentInfo) ([]byte, error) {
	h.hook()
	return h.PDF.Render(pages, info)
}

var fixedNow = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func newController(t *testing.T, tmpl layout.Template, r render.Renderer, d *mockDownloader, c *mockClipboard, opts Options) *Controller {
	t.Helper()
	opts.Clock = func() time.Time { return fixedNow }
	if opts.ShareOrigin == "" {
		opts.ShareOrigin = "https://app.example.com"
	}
	var clip sink.Clipboard
	if c != nil {
		clip = c
	}
	ctrl := NewController(layout.NewEngine(tmpl, pageflow.Fixed{}), render.NewDocumentWriter(r, d), clip, opts)
	t.Cleanup(ctrl.Close)
	return ctrl
}

func waitResult(t *testing.T, run *Run) Result {
	t.Helper()
	select {
	case <-run.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("run did not finish")
	}
	return run.Wait()
}

// -----------------------------------------------------------------------------
// Submit Tests
// -----------------------------------------------------------------------------

func TestSubmit_GeneratesAndSaves(t *testing.T) {
	d := new(mockDownloader)
	d.On("Download", mock.Anything, "q3-2024-esg-report.pdf", mock.Anything, "application/pdf").Return(nil).Once()
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), d, nil, Options{})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3 2024 ESG Report", Type: metrics.Quarterly})
	require.NoError(t, err)

	res := waitResult(t, run)
	require.NoError(t, res.Err)
	assert.Equal(t, StateCompleted, res.State)
	assert.Equal(t, StateCompleted, run.State())
	assert.Equal(t, run.ID, res.RunID)
	assert.Equal(t, LevelSuccess, res.Notice.Level)
	assert.Equal(t, "Report Generated", res.Notice.Title)
	assert.Empty(t, res.Defects)

	assert.Equal(t, "q3-2024-esg-report.pdf", res.Document.Filename)
	assert.Equal(t, 2, res.Document.Pages)
	assert.Contains(t, string(res.Document.Bytes), "(Report Name: Q3 2024 ESG Report) Tj")
	assert.Contains(t, string(res.Document.Bytes), "(Report Type: quarterly) Tj")

	assert.Equal(t, []State{StateIdle, StateValidating, StateGenerating, StateCompleted}, run.History())
	assert.Equal(t, metrics.ReportRequest{}, run.Request(), "request is cleared on completion")
	d.AssertExpectations(t)
}

func TestSubmit_SlashInNameIsSaved(t *testing.T) {
	dir := t.TempDir()
	dl := sink.DirDownloader{Dir: dir}
	ctrl := NewController(layout.NewEngine(layout.DefaultTemplate(), pageflow.Fixed{}),
		render.NewDocumentWriter(render.NewPDF(false), dl), nil, Options{Clock: func() time.Time { return fixedNow }})
	t.Cleanup(ctrl.Close)

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3/Q4 2024 ESG Report", Type: metrics.Quarterly})
	require.NoError(t, err)

	res := waitResult(t, run)
	require.NoError(t, res.Err)
	assert.Equal(t, StateCompleted, res.State)
	assert.Equal(t, "q3/q4-2024-esg-report.pdf", res.Document.Filename)

	saved, err := os.ReadFile(filepath.Join(dir, "q3-q4-2024-esg-report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, res.Document.Bytes, saved)
	assert.Equal(t, filepath.Join(dir, "q3-q4-2024-esg-report.pdf"), dl.Path(res.Document.Filename))
}

func TestSubmit_MissingType(t *testing.T) {
	d := new(mockDownloader)
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), d, nil, Options{})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3 2024 ESG Report"})
	require.Error(t, err)
	assert.True(t, rerrors.IsCode(err, rerrors.ErrRequestMissingFields))

	res := waitResult(t, run)
	assert.Equal(t, StateRejected, res.State)
	assert.Equal(t, "Missing Information", res.Notice.Title)
	assert.Equal(t, LevelError, res.Notice.Level)
	assert.Empty(t, res.Document.Bytes)
	assert.Equal(t, []State{StateIdle, StateValidating, StateRejected}, run.History())
	assert.Equal(t, "Q3 2024 ESG Report", run.Request().Name, "rejected request is kept for correction")
	d.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_InvalidType(t *testing.T) {
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), new(mockDownloader), nil, Options{})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "X", Type: "weekly"})
	assert.True(t, rerrors.IsCode(err, rerrors.ErrRequestInvalidType))
	assert.Equal(t, "Unknown report type", waitResult(t, run).Notice.Title)
}

func TestSubmit_CancelBeforeDelay(t *testing.T) {
	d := new(mockDownloader)
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), d, nil, Options{Delay: time.Hour})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.NoError(t, err)
	assert.Equal(t, StateGenerating, run.State())
	assert.Equal(t, 1, ctrl.Active())

	run.Cancel()
	res := waitResult(t, run)
	assert.Equal(t, StateCancelled, res.State)
	assert.True(t, rerrors.IsCode(res.Err, rerrors.ErrRunCancelled))
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Equal(t, "Q3", run.Request().Name)
	d.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_CancelledBeforeSave(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := new(mockDownloader)
	r := hookRenderer{PDF: render.NewPDF(false), hook: cancel}
	ctrl := newController(t, layout.DefaultTemplate(), r, d, nil, Options{})

	run, err := ctrl.Submit(ctx, metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.NoError(t, err)

	res := waitResult(t, run)
	assert.Equal(t, StateCancelled, res.State)
	assert.NotEqual(t, StateCompleted, run.State())
	d.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_SinkFailure(t *testing.T) {
	cause := errors.New("permission denied")
	d := new(mockDownloader)
	d.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(cause)
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), d, nil, Options{})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.NoError(t, err)

	res := waitResult(t, run)
	assert.Equal(t, StateFailed, res.State)
	assert.True(t, rerrors.IsCode(res.Err, rerrors.ErrSinkDownloadFailed))
	assert.ErrorIs(t, res.Err, cause)
	assert.Equal(t, "Delivery Failed", res.Notice.Title)
	assert.NotEmpty(t, res.Document.Bytes, "document is kept for a retry")
}

// overflowTemplate shrinks the bar scale so Scope 3 overflows its region.
func overflowTemplate() layout.Template {
	tmpl := layout.DefaultTemplate()
	tmpl.BarMaxScale = 4000
	return tmpl
}

func TestSubmit_DefectsAreReported(t *testing.T) {
	d := new(mockDownloader)
	d.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctrl := newController(t, overflowTemplate(), render.NewPDF(false), d, nil, Options{})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.NoError(t, err)

	res := waitResult(t, run)
	assert.Equal(t, StateCompleted, res.State)
	require.Len(t, res.Defects, 1)
	assert.Equal(t, layout.DefectBarOverflow, res.Defects[0].Kind)
	assert.Equal(t, LevelWarning, res.Notice.Level)
}

func TestSubmit_StrictDefects(t *testing.T) {
	d := new(mockDownloader)
	ctrl := newController(t, overflowTemplate(), render.NewPDF(false), d, nil, Options{Strict: true})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.NoError(t, err)

	res := waitResult(t, run)
	assert.Equal(t, StateFailed, res.State)
	assert.True(t, rerrors.IsCode(res.Err, rerrors.ErrRenderDefect))
	assert.Equal(t, "Layout Error", res.Notice.Title)
	assert.Len(t, res.Defects, 1)
	d.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_FreshRunPerSubmission(t *testing.T) {
	d := new(mockDownloader)
	d.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), d, nil, Options{})

	first, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "A", Type: metrics.Monthly})
	require.NoError(t, err)
	second, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "B", Type: metrics.Monthly})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "a.pdf", waitResult(t, first).Document.Filename)
	assert.Equal(t, "b.pdf", waitResult(t, second).Document.Filename)
}

func TestSubmit_Logs(t *testing.T) {
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	d := new(mockDownloader)
	d.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), d, nil, Options{})

	run, err := ctrl.Submit(ctx, metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.NoError(t, err)
	waitResult(t, run)

	assert.Contains(t, buf.String(), `"run_id":"`+run.ID+`"`)
	assert.Contains(t, buf.String(), "report generated")
}

func TestClose_CancelsActiveRuns(t *testing.T) {
	d := new(mockDownloader)
	ctrl := NewController(layout.NewEngine(layout.DefaultTemplate(), pageflow.Fixed{}),
		render.NewDocumentWriter(render.NewPDF(false), d), nil, Options{Delay: time.Hour})

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.NoError(t, err)

	ctrl.Close()
	assert.Equal(t, StateCancelled, run.State())
	assert.Equal(t, 0, ctrl.Active())
	d.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_AfterClose(t *testing.T) {
	d := new(mockDownloader)
	ctrl := NewController(layout.NewEngine(layout.DefaultTemplate(), pageflow.Fixed{}),
		render.NewDocumentWriter(render.NewPDF(false), d), nil, Options{})
	ctrl.Close()

	run, err := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
	require.Error(t, err)
	assert.True(t, rerrors.IsCode(err, rerrors.ErrRunCancelled))
	assert.Equal(t, StateCancelled, run.State())
	assert.Equal(t, 0, ctrl.Active())
	d.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// countingDownloader records how many documents were saved.
type countingDownloader struct {
	mu    sync.Mutex
	saved int
}

func (c *countingDownloader) Download(context.Context, string, []byte, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saved++
	return nil
}

func (c *countingDownloader) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved
}

func TestClose_RacingSubmits(t *testing.T) {
	d := &countingDownloader{}
	ctrl := NewController(layout.NewEngine(layout.DefaultTemplate(), pageflow.Fixed{}),
		render.NewDocumentWriter(render.NewPDF(false), d), nil, Options{Delay: 5 * time.Millisecond})

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		runs []*Run
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run, _ := ctrl.Submit(context.Background(), metrics.ReportRequest{Name: "Q3", Type: metrics.Quarterly})
			mu.Lock()
			runs = append(runs, run)
			mu.Unlock()
		}()
	}
	time.Sleep(2 * time.Millisecond)
	ctrl.Close()
	savedAtClose := d.count()

	wg.Wait()
	for _, run := range runs {
		waitResult(t, run)
	}
	assert.Equal(t, savedAtClose, d.count(), "nothing is saved after Close returns")
	assert.Equal(t, 0, ctrl.Active())
}

// -----------------------------------------------------------------------------
// Share Tests
// -----------------------------------------------------------------------------

func TestShare(t *testing.T) {
	c := new(mockClipboard)
	c.On("Copy", mock.Anything, "https://app.example.com/reports/share/may-2024-monthly-report").Return(nil).Once()
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), new(mockDownloader), c, Options{})

	res, err := ctrl.Share(context.Background(), "May 2024 Monthly Report")
	require.NoError(t, err)
	assert.True(t, len(res.URL) > 0)
	assert.Regexp(t, `/reports/share/may-2024-monthly-report$`, res.URL)
	assert.Equal(t, "Link Copied", res.Notice.Title)
	c.AssertExpectations(t)
}

func TestShare_ClipboardFailure(t *testing.T) {
	c := new(mockClipboard)
	c.On("Copy", mock.Anything, mock.Anything).Return(errors.New("clipboard denied"))
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), new(mockDownloader), c, Options{})

	res, err := ctrl.Share(context.Background(), "May 2024 Monthly Report")
	require.Error(t, err)
	assert.True(t, rerrors.IsCode(err, rerrors.ErrSinkClipboardFailed))
	assert.Equal(t, LevelError, res.Notice.Level)
	assert.NotEmpty(t, res.URL, "URL is still returned so it can be shown")
}

func TestShare_Validation(t *testing.T) {
	ctrl := newController(t, layout.DefaultTemplate(), render.NewPDF(false), new(mockDownloader), new(mockClipboard), Options{})

	_, err := ctrl.Share(context.Background(), "  ")
	assert.True(t, rerrors.IsCode(err, rerrors.ErrRequestMissingFields))

	noClip := NewController(layout.NewEngine(layout.DefaultTemplate(), pageflow.Fixed{}), nil, nil, Options{})
	_, err = noClip.Share(context.Background(), "x")
	assert.True(t, rerrors.IsCode(err, rerrors.ErrSinkClipboardFailed))
}

func TestState(t *testing.T) {
	assert.Equal(t, "generating", StateGenerating.String())
	assert.True(t, StateCancelled.Terminal())
	assert.False(t, StateGenerating.Terminal())
	assert.Equal(t, "unknown", State(99).String())
}
