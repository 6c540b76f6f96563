package render

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

func TestPDF_Structure(t *testing.T) {
	pages := testPages("Q3 2024 ESG Report", metrics.Quarterly)
	data, err := NewPDF(false).Render(pages, testInfo("Q3 2024 ESG Report"))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4\n")))
	assert.True(t, bytes.HasSuffix(data, []byte("%%EOF\n")))
	assert.Contains(t, string(data), "/Count 2")
	assert.Contains(t, string(data), "/BaseFont /Helvetica-Bold")
	assert.Contains(t, string(data), "/Title (Q3 2024 ESG Report)")
	assert.Contains(t, string(data), "/CreationDate (D:20241001120000Z)")

	// Text of the first page includes the name and the type.
	assert.Contains(t, string(data), "(Report Name: Q3 2024 ESG Report) Tj")
	assert.Contains(t, string(data), "(Report Type: quarterly) Tj")
}

func TestPDF_CrossReferenceOffsets(t *testing.T) {
	data, err := NewPDF(false).Render(testPages("Offsets", metrics.Monthly), testInfo("Offsets"))
	require.NoError(t, err)

	m := regexp.MustCompile(`startxref\n(\d+)\n`).FindSubmatch(data)
	require.NotNil(t, m)
	xref, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data[xref:], []byte("xref\n0 ")))

	entries := regexp.MustCompile(`(\d{10}) 00000 n `).FindAllSubmatch(data[xref:], -1)
	require.NotEmpty(t, entries)
	for i, e := range entries {
		off, err := strconv.Atoi(string(e[1]))
		require.NoError(t, err)
		want := strconv.Itoa(i+1) + " 0 obj\n"
		assert.True(t, bytes.HasPrefix(data[off:], []byte(want)), "object %d at %d", i+1, off)
	}
}

func TestPDF_Compressed(t *testing.T) {
	data, err := NewPDF(true).Render(testPages("Q3 2024 ESG Report", metrics.Quarterly), testInfo("Q3 2024 ESG Report"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "/Filter /FlateDecode")

	m := regexp.MustCompile(`<< /Length (\d+) /Filter /FlateDecode >>\nstream\n`).FindSubmatchIndex(data)
	require.NotNil(t, m)
	n, err := strconv.Atoi(string(data[m[2]:m[3]]))
	require.NoError(t, err)

	zr, err := zlib.NewReader(bytes.NewReader(data[m[1] : m[1]+n]))
	require.NoError(t, err)
	content, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(content), "(Report Name: Q3 2024 ESG Report) Tj")
}

func TestPDF_Coordinates(t *testing.T) {
	page := layout.Page{Index: 1, Width: 210, Height: 297, Commands: []layout.Command{
		layout.Rect{X: 0, Y: 0, W: 210, H: 40, Color: layout.RGB{R: 255, G: 0, B: 0}},
		layout.Text{X: 20, Y: 25, Content: "Hi", Size: 12, Weight: layout.Bold},
	}}
	stream := contentStream(page)

	// A rect at the top of the page has its lower-left corner 40mm below the top edge.
	assert.Contains(t, stream, "1.000 0.000 0.000 rg\n0.00 728.50 595.28 113.39 re f\n")
	assert.Contains(t, stream, "/F2 12.00 Tf")
	assert.Contains(t, stream, "56.69 771.02 Td\n(Hi) Tj")
}

func TestPDFString(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"plain", "plain"},
		{`a(b)\c`, `a\(b\)\\c`},
		{"• item", `\225 item`},
		{"€5", `\2005`},
		{"CO₂e", "CO?e"},
		{"tab\t", `tab\011`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, pdfString(tt.in), tt.in)
	}
}

func TestPDF_NoPages(t *testing.T) {
	_, err := NewPDF(false).Render(nil, DocumentInfo{})
	assert.Error(t, err)
}
