package render

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
)

// PDF constants.
const (
	PDFVersion  = "1.4"
	PDFProducer = "Carbon IQ Insights Report Engine"
)

// Fixed object numbers. Pages and their content streams follow the fonts.
const (
	objCatalog = 1
	objPages   = 2
	objFont    = 3 // Helvetica
	objBold    = 4 // Helvetica-Bold
	firstPage  = 5
)

// PDF renders pages as a minimal PDF 1.4 file using the standard Helvetica
// faces. Text is encoded as Windows-1252; runes outside it print as '?'.
type PDF struct {
	// Compress enables FlateDecode on page content streams.
	Compress bool
}

// NewPDF returns a PDF renderer.
func NewPDF(compress bool) *PDF {
	return &PDF{Compress: compress}
}

// Extension implements Renderer.
func (p *PDF) Extension() string { return "pdf" }

// ContentType implements Renderer.
func (p *PDF) ContentType() string { return "application/pdf" }

// Render implements Renderer.
func (p *PDF) Render(pages []layout.Page, info DocumentInfo) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf: no pages")
	}

	doc := &pdfDocument{}
	doc.add(objCatalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", objPages))

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", firstPage+2*i)
	}
	doc.add(objPages, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	doc.add(objFont, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	doc.add(objBold, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica-Bold /Encoding /WinAnsiEncoding >>")

	for i, page := range pages {
		pageObj := firstPage + 2*i
		streamObj := pageObj + 1
		w, h := mmToPt(page.Width), mmToPt(page.Height)

		doc.add(pageObj, fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %.2f %.2f] /Contents %d 0 R "+
				"/Resources << /Font << /F1 %d 0 R /F2 %d 0 R >> >> >>",
			objPages, w, h, streamObj, objFont, objBold))

		stream, err := p.stream(contentStream(page))
		if err != nil {
			return nil, err
		}
		doc.add(streamObj, stream)
	}

	infoObj := firstPage + 2*len(pages)
	doc.add(infoObj, infoDict(info))

	return doc.bytes(infoObj), nil
}

func (p *PDF) stream(content string) (string, error) {
	if !p.Compress {
		return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content), nil
	}
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(content)); err != nil {
		return "", fmt.Errorf("pdf: compress stream: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("pdf: compress stream: %w", err)
	}
	return fmt.Sprintf("<< /Length %d /Filter /FlateDecode >>\nstream\n%s\nendstream", buf.Len(), buf.Bytes()), nil
}

// contentStream converts draw commands to PDF operators. The page origin
// moves from the top-left (millimetres) to the bottom-left (points).
func contentStream(page layout.Page) string {
	var sb strings.Builder
	h := mmToPt(page.Height)

	for _, cmd := range page.Commands {
		switch c := cmd.(type) {
		case layout.Rect:
			fmt.Fprintf(&sb, "%s rg\n%.2f %.2f %.2f %.2f re f\n",
				pdfColor(c.Color), mmToPt(c.X), h-mmToPt(c.Y+c.H), mmToPt(c.W), mmToPt(c.H))
		case layout.Line:
			fmt.Fprintf(&sb, "%s RG\n%.2f w\n%.2f %.2f m %.2f %.2f l S\n",
				pdfColor(c.Color), mmToPt(c.Width), mmToPt(c.X1), h-mmToPt(c.Y1), mmToPt(c.X2), h-mmToPt(c.Y2))
		case layout.Text:
			font := "F1"
			if c.Weight == layout.Bold {
				font = "F2"
			}
			fmt.Fprintf(&sb, "BT\n/%s %.2f Tf\n%s rg\n%.2f %.2f Td\n(%s) Tj\nET\n",
				font, c.Size, pdfColor(c.Color), mmToPt(c.X), h-mmToPt(c.Y), pdfString(c.Content))
		}
	}
	return sb.String()
}

func infoDict(info DocumentInfo) string {
	var sb strings.Builder
	sb.WriteString("<<")
	if info.Title != "" {
		fmt.Fprintf(&sb, " /Title (%s)", pdfString(info.Title))
	}
	if info.Author != "" {
		fmt.Fprintf(&sb, " /Author (%s)", pdfString(info.Author))
	}
	if info.Subject != "" {
		fmt.Fprintf(&sb, " /Subject (%s)", pdfString(info.Subject))
	}
	if len(info.Keywords) > 0 {
		fmt.Fprintf(&sb, " /Keywords (%s)", pdfString(strings.Join(info.Keywords, ", ")))
	}
	fmt.Fprintf(&sb, " /Producer (%s)", pdfString(PDFProducer))
	if !info.CreatedAt.IsZero() {
		d := pdfDate(info.CreatedAt)
		fmt.Fprintf(&sb, " /CreationDate (%s) /ModDate (%s)", d, d)
	}
	sb.WriteString(" >>")
	return sb.String()
}

// pdfDocument collects numbered objects and writes them with a cross-reference table.
type pdfDocument struct {
	objects map[int]string
	last    int
}

func (d *pdfDocument) add(num int, body string) {
	if d.objects == nil {
		d.objects = make(map[int]string)
	}
	d.objects[num] = body
	d.last = max(d.last, num)
}

func (d *pdfDocument) bytes(info int) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n%%\xE2\xE3\xCF\xD3\n", PDFVersion)

	offsets := make([]int, d.last+1)
	for n := 1; n <= d.last; n++ {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, d.objects[n])
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", d.last+1)
	for n := 1; n <= d.last; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		d.last+1, objCatalog, info, xref)
	return buf.Bytes()
}

// pdfString encodes s as Windows-1252 and escapes it for a literal string.
// Bytes outside printable ASCII are written as octal escapes.
func pdfString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		switch {
		case b == '\\' || b == '(' || b == ')':
			sb.WriteByte('\\')
			sb.WriteByte(b)
		case b < 0x20 || b > 0x7e:
			fmt.Fprintf(&sb, "\\%03o", b)
		default:
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

func pdfColor(c layout.RGB) string {
	return fmt.Sprintf("%.3f %.3f %.3f", float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

func mmToPt(mm float64) float64 {
	return mm * 72 / 25.4
}

// pdfDate formats t the way the Info dictionary does.
func pdfDate(t time.Time) string {
	return t.UTC().Format("D:20060102150405Z")
}
