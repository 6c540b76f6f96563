// Package render serializes laid-out pages into documents and names them.
//
// Every renderer consumes the same []layout.Page, so the PDF and the HTML
// preview cannot drift apart.
package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/sink"
)

// Renderer turns pages into the bytes of one document format.
type Renderer interface {
	Render(pages []layout.Page, info DocumentInfo) ([]byte, error)
	Extension() string
	ContentType() string
}

// DocumentInfo is document-level metadata. Title is the report name and
// determines the filename.
type DocumentInfo struct {
	Title     string
	Author    string
	Subject   string
	Keywords  []string
	CreatedAt time.Time
}

// Document is a serialized report ready to be saved.
type Document struct {
	Filename    string
	ContentType string
	Bytes       []byte
	Pages       int
}

// ForFormat returns the renderer for "pdf" or "html".
func ForFormat(format string, compress bool) (Renderer, error) {
	switch strings.ToLower(format) {
	case "pdf", "":
		return NewPDF(compress), nil
	case "html":
		return NewHTML(), nil
	default:
		return nil, rerrors.RenderErrorf(rerrors.ErrRenderUnsupportedFormat, "unsupported format %q", format).
			WithSuggestion("Use 'pdf' or 'html'")
	}
}

// DocumentWriter serializes pages with a renderer and hands the result to a
// download sink.
type DocumentWriter struct {
	renderer   Renderer
	downloader sink.Downloader
}

// NewDocumentWriter creates a DocumentWriter.
func NewDocumentWriter(r Renderer, d sink.Downloader) *DocumentWriter {
	return &DocumentWriter{renderer: r, downloader: d}
}

// Renderer returns the writer's renderer.
func (w *DocumentWriter) Renderer() Renderer {
	return w.renderer
}

// Write serializes pages. It has no side effects.
func (w *DocumentWriter) Write(pages []layout.Page, info DocumentInfo) (Document, error) {
	data, err := w.renderer.Render(pages, info)
	if err != nil {
		return Document{}, rerrors.RenderError(rerrors.ErrRenderFailed, "failed to render document").
			WithCause(err).
			WithContext("format", w.renderer.Extension())
	}
	return Document{
		Filename:    Filename(info.Title, w.renderer.Extension()),
		ContentType: w.renderer.ContentType(),
		Bytes:       data,
		Pages:       len(pages),
	}, nil
}

// Save delivers doc through the download sink. Failures are returned as
// SINK_DOWNLOAD_FAILED and leave doc untouched so the caller can retry.
func (w *DocumentWriter) Save(ctx context.Context, doc Document) error {
	if w.downloader == nil {
		return rerrors.New(rerrors.ErrSinkDownloadFailed, rerrors.CategorySink, "no download sink configured")
	}
	if err := w.downloader.Download(ctx, doc.Filename, doc.Bytes, doc.ContentType); err != nil {
		return rerrors.WrapSink(err, rerrors.ErrSinkDownloadFailed, "failed to save report").
			WithContext("filename", doc.Filename).
			WithSuggestion("Check that the output directory is writable")
	}
	return nil
}

// Slug lower-cases name and replaces every run of whitespace with a single
// hyphen. Nothing else is changed, so Slug(Slug(s)) == Slug(s).
func Slug(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	inSpace := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// Filename returns the slug of name with the given extension.
func Filename(name, ext string) string {
	return Slug(name) + "." + ext
}

// SharePath is the path prefix of share links.
const SharePath = "/reports/share/"

// ShareURL returns the share link for a report name.
func ShareURL(origin, name string) string {
	return strings.TrimRight(origin, "/") + SharePath + url.PathEscape(Slug(name))
}

// Checksum returns the hex SHA-256 digest of the document bytes.
func (d Document) Checksum() string {
	sum := sha256.Sum256(d.Bytes)
	return hex.EncodeToString(sum[:])
}

// String describes a document for logs.
func (d Document) String() string {
	return fmt.Sprintf("%s (%d pages, %d bytes)", d.Filename, d.Pages, len(d.Bytes))
}
