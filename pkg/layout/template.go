package layout

// Palette holds the fixed colors of each semantic region.
type Palette struct {
	Header    RGB
	Panel     RGB
	Footer    RGB
	BodyText  RGB
	MutedText RGB
}

// DefaultPalette is the dashboard's green theme.
func DefaultPalette() Palette {
	return Palette{
		Header:    RGB{22, 163, 74},
		Panel:     RGB{240, 253, 244},
		Footer:    RGB{20, 83, 45},
		BodyText:  RGB{31, 41, 55},
		MutedText: RGB{107, 114, 128},
	}
}

// Template holds the page geometry and the tunable constants of the layout.
// All lengths are millimetres.
type Template struct {
	PageWidth    float64
	PageHeight   float64
	BottomMargin float64
	Margin       float64

	// Page 2 content must stay above the footer band.
	FooterTop float64

	SummaryWidth    float64
	SummaryFontSize float64
	SummaryMaxLines int

	BarMaxScale float64 // tonnes mapped to a full bar
	BarMaxWidth float64

	CellSpacing float64
	RowHeight   float64
	LineHeight  float64

	Palette Palette
}

// DefaultTemplate returns the A4 report template.
func DefaultTemplate() Template {
	return Template{
		PageWidth:       210,
		PageHeight:      297,
		BottomMargin:    17,
		Margin:          20,
		FooterTop:       262,
		SummaryWidth:    170,
		SummaryFontSize: 10,
		SummaryMaxLines: 4,
		BarMaxScale:     5000,
		BarMaxWidth:     120,
		CellSpacing:     42,
		RowHeight:       12,
		LineHeight:      8,
		Palette:         DefaultPalette(),
	}
}

// ContentBottom returns the lowest y content may reach on a page.
func (t Template) ContentBottom(page int) float64 {
	bottom := t.PageHeight - t.BottomMargin
	if page == 2 && t.FooterTop > 0 {
		bottom = min(bottom, t.FooterTop-4)
	}
	return bottom
}

// ContentWidth is the usable width between the side margins.
func (t Template) ContentWidth() float64 {
	return t.PageWidth - 2*t.Margin
}
