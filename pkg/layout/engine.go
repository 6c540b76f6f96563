package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

// Fixed template positions in millimetres. Every element is placed at a
// constant offset; nothing is measured against the element above it.
const (
	coverHeight   = 40.0
	titleY        = 25.0
	subtitleY     = 33.0
	metadataY     = 52.0
	metadataStep  = 7.0
	dividerY      = 80.0
	summaryHeadY  = 92.0
	summaryY      = 100.0
	summaryStep   = 6.0
	kpiPanelY     = 128.0
	kpiPanelH     = 32.0
	kpiIconY      = 138.0
	kpiValueY     = 147.0
	kpiLabelY     = 155.0
	breakdownHead = 175.0
	breakdownY    = 185.0
	barX          = 60.0
	barHeight     = 7.0

	detailHeight   = 25.0
	detailTitleY   = 16.0
	envHeadY       = 40.0
	envY           = 50.0
	initiativeHead = 115.0
	initiativeY    = 125.0
	certOffset1    = 13.0 // below FooterTop
	certOffset2    = 22.0

	headingSize = 14.0
	bodySize    = 10.0
)

var certificationLines = [2]string{
	"This report was prepared in accordance with the GHG Protocol Corporate Standard.",
	"Figures are reviewed by Carbon IQ Insights and subject to independent assurance.",
}

// ErrNoPaginator is returned by Layout when the engine has no paginator.
var ErrNoPaginator = errors.New("layout: no paginator configured")

// Engine lays out a metrics model on the fixed two-page template.
type Engine struct {
	tmpl      Template
	paginator Paginator
}

// NewEngine creates an engine for tmpl that hands its blocks to p.
func NewEngine(tmpl Template, p Paginator) *Engine {
	return &Engine{tmpl: tmpl, paginator: p}
}

// Template returns the engine's template.
func (e *Engine) Template() Template {
	return e.tmpl
}

// Layout composes the model and paginates the result.
// Defects from composition and pagination are returned together.
func (e *Engine) Layout(m metrics.Model) ([]Page, []Defect, error) {
	if e.paginator == nil {
		return nil, nil, ErrNoPaginator
	}
	blocks, defects := e.Compose(m)
	pages, flowDefects, err := e.paginator.Paginate(blocks, e.tmpl)
	if err != nil {
		return nil, nil, err
	}
	return pages, append(defects, flowDefects...), nil
}

// Compose returns one block per region in paint order.
func (e *Engine) Compose(m metrics.Model) ([]Block, []Defect) {
	c := &composer{tmpl: e.tmpl}
	return []Block{
		c.cover(),
		c.metadata(m.Metadata),
		c.summary(m.Summary),
		c.kpis(m.KPIs),
		c.breakdown(m.Breakdown),
		c.detailHeader(),
		c.lines(RegionEnvironmental, "Environmental Metrics", envHeadY, envY, m.Environmental, c.environmentalSlots()),
		c.lines(RegionInitiatives, "Sustainability Initiatives", initiativeHead, initiativeY, m.Initiatives, 0),
		c.footer(),
	}, c.defects
}

type composer struct {
	tmpl    Template
	defects []Defect
}

func (c *composer) defect(kind DefectKind, r Region, format string, args ...any) {
	c.defects = append(c.defects, Defect{Kind: kind, Region: r, Detail: fmt.Sprintf(format, args...)})
}

// text places a single line and reports it when it runs past maxWidth.
func (c *composer) text(r Region, t Text, maxWidth float64) Text {
	if w := EstimateWidth(t.Content, t.Size); w > maxWidth {
		c.defect(DefectTextOverflow, r, "%q is %.1f mm wide, limit %.1f mm", t.Content, w, maxWidth)
	}
	return t
}

func (c *composer) cover() Block {
	p := c.tmpl.Palette
	return Block{Region: RegionCover, Commands: []Command{
		Rect{X: 0, Y: 0, W: c.tmpl.PageWidth, H: coverHeight, Color: p.Header},
		Text{X: c.tmpl.Margin, Y: titleY, Content: "ESG Sustainability Report", Size: 22, Color: White, Weight: Bold},
		Text{X: c.tmpl.Margin, Y: subtitleY, Content: "Carbon IQ Insights", Size: bodySize, Color: White},
	}}
}

func (c *composer) metadata(md metrics.Metadata) Block {
	p := c.tmpl.Palette
	period := md.PeriodLabel
	if len(md.Scopes) > 0 {
		period += " | " + strings.Join(md.Scopes, ", ")
	}
	lines := [4]string{
		"Report Name: " + md.ReportName,
		"Report Type: " + string(md.Type),
		"Reporting Period: " + period,
		"Generated: " + md.GeneratedAt.Format("2006-01-02 15:04 MST"),
	}

	cmds := make([]Command, 0, len(lines)+1)
	for i, l := range lines {
		cmds = append(cmds, c.text(RegionMetadata, Text{
			X: c.tmpl.Margin, Y: metadataY + float64(i)*metadataStep,
			Content: l, Size: 11, Color: p.BodyText,
		}, c.tmpl.ContentWidth()))
	}
	cmds = append(cmds, Line{
		X1: c.tmpl.Margin, Y1: dividerY, X2: c.tmpl.PageWidth - c.tmpl.Margin, Y2: dividerY,
		Width: 0.5, Color: p.MutedText,
	})
	return Block{Region: RegionMetadata, Commands: cmds}
}

func (c *composer) summary(text string) Block {
	p := c.tmpl.Palette
	cmds := []Command{
		Text{X: c.tmpl.Margin, Y: summaryHeadY, Content: "Executive Summary", Size: headingSize, Color: p.BodyText, Weight: Bold},
	}

	lines, overflow := NewWrapper(c.tmpl.SummaryFontSize).WrapReport(text, c.tmpl.SummaryWidth)
	for _, i := range overflow {
		c.defect(DefectWordOverflow, RegionSummary, "line %d %q is wider than %.1f mm", i+1, lines[i], c.tmpl.SummaryWidth)
	}
	if limit := c.tmpl.SummaryMaxLines; limit > 0 && len(lines) > limit {
		c.defect(DefectTooManyLines, RegionSummary, "%d lines wrapped, %d fit", len(lines), limit)
		lines = lines[:limit]
	}
	for i, l := range lines {
		cmds = append(cmds, Text{
			X: c.tmpl.Margin, Y: summaryY + float64(i)*summaryStep,
			Content: l, Size: c.tmpl.SummaryFontSize, Color: p.BodyText,
		})
	}
	return Block{Region: RegionSummary, Commands: cmds}
}

func (c *composer) kpis(kpis [4]metrics.KPI) Block {
	p := c.tmpl.Palette
	cmds := []Command{
		Rect{X: c.tmpl.Margin, Y: kpiPanelY, W: c.tmpl.ContentWidth(), H: kpiPanelH, Color: p.Panel},
	}
	cell := c.tmpl.CellSpacing - 2
	for i, k := range kpis {
		x := c.tmpl.Margin + 5 + float64(i)*c.tmpl.CellSpacing
		cmds = append(cmds,
			c.text(RegionKPI, Text{X: x, Y: kpiIconY, Content: k.Icon, Size: 9, Color: p.MutedText, Weight: Bold}, cell),
			c.text(RegionKPI, Text{X: x, Y: kpiValueY, Content: k.Value, Size: 13, Color: p.BodyText, Weight: Bold}, cell),
			c.text(RegionKPI, Text{X: x, Y: kpiLabelY, Content: k.Label, Size: 8, Color: p.MutedText}, cell),
		)
	}
	return Block{Region: RegionKPI, Commands: cmds}
}

func (c *composer) breakdown(items []metrics.BreakdownItem) Block {
	p := c.tmpl.Palette
	cmds := []Command{
		Text{X: c.tmpl.Margin, Y: breakdownHead, Content: "Emissions Breakdown by Scope", Size: headingSize, Color: p.BodyText, Weight: Bold},
	}
	for i, item := range items {
		y := breakdownY + float64(i)*c.tmpl.RowHeight
		tonnes := item.Tonnes.InexactFloat64()
		w := Scale(tonnes, c.tmpl.BarMaxScale, c.tmpl.BarMaxWidth)
		if w > c.tmpl.BarMaxWidth {
			c.defect(DefectBarOverflow, RegionBreakdown, "%s: %s t maps to %.1f mm, limit %.1f mm",
				item.Scope, item.Tonnes.String(), w, c.tmpl.BarMaxWidth)
		}
		cmds = append(cmds,
			c.text(RegionBreakdown, Text{X: c.tmpl.Margin, Y: y, Content: item.Scope, Size: bodySize, Color: p.BodyText}, barX-c.tmpl.Margin-2),
			Rect{X: barX, Y: y - 5, W: c.tmpl.BarMaxWidth, H: barHeight, Color: p.Panel},
			Rect{X: barX, Y: y - 5, W: w, H: barHeight, Color: RGB(item.Color)},
			Text{X: barX + c.tmpl.BarMaxWidth + 3, Y: y, Content: item.Tonnes.StringFixed(1) + " t", Size: 9, Color: p.MutedText},
		)
	}
	return Block{Region: RegionBreakdown, Commands: cmds}
}

func (c *composer) detailHeader() Block {
	return Block{Region: RegionDetailHeader, Commands: []Command{
		Rect{X: 0, Y: 0, W: c.tmpl.PageWidth, H: detailHeight, Color: c.tmpl.Palette.Header},
		Text{X: c.tmpl.Margin, Y: detailTitleY, Content: "Environmental Impact & Initiatives", Size: 16, Color: White, Weight: Bold},
	}}
}

// environmentalSlots is the number of lines that fit above the initiatives heading.
func (c *composer) environmentalSlots() int {
	if c.tmpl.LineHeight <= 0 {
		return 1
	}
	return int((initiativeHead-10-envY)/c.tmpl.LineHeight) + 1
}

// lines draws a heading and one bulleted line per entry at
// baseY + index*LineHeight. A positive slots caps the number of lines drawn.
func (c *composer) lines(r Region, heading string, headY, baseY float64, entries []string, slots int) Block {
	p := c.tmpl.Palette
	cmds := []Command{
		Text{X: c.tmpl.Margin, Y: headY, Content: heading, Size: headingSize, Color: p.BodyText, Weight: Bold},
	}
	if slots > 0 && len(entries) > slots {
		c.defect(DefectTooManyLines, r, "%d lines, %d slots", len(entries), slots)
		entries = entries[:slots]
	}
	for i, e := range entries {
		cmds = append(cmds, c.text(r, Text{
			X: c.tmpl.Margin + 2, Y: baseY + float64(i)*c.tmpl.LineHeight,
			Content: "• " + e, Size: bodySize, Color: p.BodyText,
		}, c.tmpl.ContentWidth()-2))
	}
	return Block{Region: r, Commands: cmds}
}

func (c *composer) footer() Block {
	return Block{Region: RegionFooter, Commands: []Command{
		Rect{X: 0, Y: c.tmpl.FooterTop, W: c.tmpl.PageWidth, H: c.tmpl.PageHeight - c.tmpl.FooterTop, Color: c.tmpl.Palette.Footer},
		Text{X: c.tmpl.Margin, Y: c.tmpl.FooterTop + certOffset1, Content: certificationLines[0], Size: 9, Color: White},
		Text{X: c.tmpl.Margin, Y: c.tmpl.FooterTop + certOffset2, Content: certificationLines[1], Size: 9, Color: White},
	}}
}
