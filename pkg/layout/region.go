package layout

import "fmt"

// Region names a semantic area of the report template.
type Region int

const (
	RegionCover Region = iota
	RegionMetadata
	RegionSummary
	RegionKPI
	RegionBreakdown
	RegionDetailHeader
	RegionEnvironmental
	RegionInitiatives
	RegionFooter
)

var regionNames = map[Region]string{
	RegionCover:         "cover",
	RegionMetadata:      "metadata",
	RegionSummary:       "summary",
	RegionKPI:           "kpi",
	RegionBreakdown:     "breakdown",
	RegionDetailHeader:  "detail-header",
	RegionEnvironmental: "environmental",
	RegionInitiatives:   "initiatives",
	RegionFooter:        "footer",
}

func (r Region) String() string {
	if n, ok := regionNames[r]; ok {
		return n
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// Page returns the page the fixed template assigns the region to.
func (r Region) Page() int {
	if r >= RegionDetailHeader {
		return 2
	}
	return 1
}

// Chrome reports whether the region is page decoration that may occupy the
// bottom margin.
func (r Region) Chrome() bool {
	return r == RegionFooter
}

// Block is the output of one region in paint order.
type Block struct {
	Region   Region
	Commands []Command
}

// DefectKind classifies a RenderDefect.
type DefectKind string

const (
	// DefectBarOverflow: a bar is longer than the drawing region.
	DefectBarOverflow DefectKind = "bar_overflow"
	// DefectWordOverflow: a single word is wider than the wrap width.
	DefectWordOverflow DefectKind = "word_overflow"
	// DefectTooManyLines: more lines than the template has slots; extras are not drawn.
	DefectTooManyLines DefectKind = "too_many_lines"
	// DefectTextOverflow: a fixed line is wider than the content width.
	DefectTextOverflow DefectKind = "text_overflow"
	// DefectOutOfBounds: a command passed the page's content bound and was dropped.
	DefectOutOfBounds DefectKind = "out_of_bounds"
)

// Defect is a value that exceeded the range the template was designed for.
type Defect struct {
	Kind   DefectKind
	Region Region
	Detail string
}

func (d Defect) String() string {
	return fmt.Sprintf("%s in %s: %s", d.Kind, d.Region, d.Detail)
}

// Paginator assigns region blocks to pages.
type Paginator interface {
	Paginate(blocks []Block, tmpl Template) ([]Page, []Defect, error)
}
