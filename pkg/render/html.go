package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
)

// HTML renders pages as an HTML preview with one inline SVG per page. The
// SVG viewBox is in millimetres so draw commands are used without conversion.
type HTML struct{}

// NewHTML returns an HTML renderer.
func NewHTML() *HTML { return &HTML{} }

// Extension implements Renderer.
func (h *HTML) Extension() string { return "html" }

// ContentType implements Renderer.
func (h *HTML) ContentType() string { return "text/html; charset=utf-8" }

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="generator" content="{{.Producer}}">
{{- if .Created}}
<meta name="created" content="{{.Created}}">
{{- end}}
<style>
body { background: #e5e7eb; margin: 0; padding: 24px; }
svg.page { display: block; margin: 0 auto 24px; background: #fff; box-shadow: 0 1px 4px rgba(0,0,0,.25); }
</style>
</head>
<body>
{{- range .Pages}}
<svg class="page" data-page="{{.Index}}" xmlns="http://www.w3.org/2000/svg" width="{{.Width}}mm" height="{{.Height}}mm" viewBox="0 0 {{.Width}} {{.Height}}" font-family="Helvetica, Arial, sans-serif">
{{.Body}}</svg>
{{- end}}
</body>
</html>
`))

type previewPage struct {
	Index         int
	Width, Height string
	Body          template.HTML
}

// Render implements Renderer.
func (h *HTML) Render(pages []layout.Page, info DocumentInfo) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("html: no pages")
	}

	data := struct {
		Title, Producer, Created string
		Pages                    []previewPage
	}{
		Title:    info.Title,
		Producer: PDFProducer,
	}
	if !info.CreatedAt.IsZero() {
		data.Created = info.CreatedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	for _, p := range pages {
		data.Pages = append(data.Pages, previewPage{
			Index:  p.Index,
			Width:  num(p.Width),
			Height: num(p.Height),
			Body:   template.HTML(svgBody(p)),
		})
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("html: %w", err)
	}
	return buf.Bytes(), nil
}

// svgBody converts draw commands to SVG elements. Text content is escaped here.
func svgBody(p layout.Page) string {
	var sb strings.Builder
	for _, cmd := range p.Commands {
		switch c := cmd.(type) {
		case layout.Rect:
			fmt.Fprintf(&sb, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
				num(c.X), num(c.Y), num(c.W), num(c.H), c.Color.Hex())
		case layout.Line:
			fmt.Fprintf(&sb, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`+"\n",
				num(c.X1), num(c.Y1), num(c.X2), num(c.Y2), c.Color.Hex(), num(c.Width))
		case layout.Text:
			weight := ""
			if c.Weight == layout.Bold {
				weight = ` font-weight="bold"`
			}
			fmt.Fprintf(&sb, `<text x="%s" y="%s" font-size="%s" fill="%s"%s>%s</text>`+"\n",
				num(c.X), num(c.Y), num(layout.PointsToMM(c.Size)), c.Color.Hex(), weight, html.EscapeString(c.Content))
		}
	}
	return sb.String()
}

// num formats f with at most two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
