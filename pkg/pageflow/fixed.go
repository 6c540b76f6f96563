// Package pageflow decides which page each region of the report lands on.
package pageflow

import (
	"fmt"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
)

// PageCount is the number of pages the fixed policy emits.
const PageCount = 2

// tolerance absorbs float error when comparing against the content bound.
const tolerance = 1e-9

// Fixed is the two-page policy. Regions are statically assigned to a page;
// nothing is measured and nothing reflows onto extra pages. Commands whose
// bottom edge passes the page's content bound are dropped and reported.
type Fixed struct{}

var _ layout.Paginator = Fixed{}

// Paginate implements layout.Paginator.
func (Fixed) Paginate(blocks []layout.Block, tmpl layout.Template) ([]layout.Page, []layout.Defect, error) {
	if tmpl.PageWidth <= 0 || tmpl.PageHeight <= 0 {
		return nil, nil, fmt.Errorf("pageflow: invalid page size %.1fx%.1f", tmpl.PageWidth, tmpl.PageHeight)
	}

	pages := make([]layout.Page, PageCount)
	for i := range pages {
		pages[i] = layout.Page{Index: i + 1, Width: tmpl.PageWidth, Height: tmpl.PageHeight}
	}

	var defects []layout.Defect
	for _, b := range blocks {
		n := b.Region.Page()
		if n < 1 || n > PageCount {
			return nil, nil, fmt.Errorf("pageflow: region %s assigned to page %d", b.Region, n)
		}
		bound := tmpl.ContentBottom(n)
		page := &pages[n-1]

		for _, cmd := range b.Commands {
			_, _, _, bottom := cmd.Bounds()
			if !b.Region.Chrome() && bottom > bound+tolerance {
				defects = append(defects, layout.Defect{
					Kind:   layout.DefectOutOfBounds,
					Region: b.Region,
					Detail: fmt.Sprintf("%s ends at %.1f mm, page %d bound is %.1f mm", describe(cmd), bottom, n, bound),
				})
				continue
			}
			page.Commands = append(page.Commands, cmd)
		}
	}
	return pages, defects, nil
}

func describe(cmd layout.Command) string {
	switch c := cmd.(type) {
	case layout.Text:
		return fmt.Sprintf("text %q", c.Content)
	case layout.Rect:
		return "rect"
	case layout.Line:
		return "line"
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
