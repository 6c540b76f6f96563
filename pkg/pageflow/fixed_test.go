package pageflow

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

func model() metrics.Model {
	return metrics.Build(metrics.ReportRequest{Name: "Q3 2024 ESG Report", Type: metrics.Quarterly},
		time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC))
}

func assertWithinBounds(t *testing.T, pages []layout.Page, tmpl layout.Template) {
	t.Helper()
	for _, p := range pages {
		for _, cmd := range p.Commands {
			// footer chrome
			if _, y0, _, _ := cmd.Bounds(); p.Index == 2 && y0 >= tmpl.FooterTop-layout.PointsToMM(9) {
				continue
			}
			_, _, _, bottom := cmd.Bounds()
			assert.LessOrEqual(t, bottom, tmpl.ContentBottom(p.Index), "page %d: %#v", p.Index, cmd)
		}
	}
}

func TestFixed_TwoPages(t *testing.T) {
	tmpl := layout.DefaultTemplate()
	engine := layout.NewEngine(tmpl, Fixed{})

	pages, defects, err := engine.Layout(model())
	require.NoError(t, err)
	assert.Empty(t, defects)
	require.Len(t, pages, PageCount)
	assert.Equal(t, 1, pages[0].Index)
	assert.Equal(t, 2, pages[1].Index)
	assert.NotEmpty(t, pages[0].Commands)
	assert.NotEmpty(t, pages[1].Commands)
	assertWithinBounds(t, pages, tmpl)
}

func TestFixed_RegionAssignment(t *testing.T) {
	pages, _, err := layout.NewEngine(layout.DefaultTemplate(), Fixed{}).Layout(model())
	require.NoError(t, err)

	assert.Contains(t, pages[0].Texts(), "Executive Summary")
	assert.Contains(t, pages[0].Texts(), "Emissions Breakdown by Scope")
	assert.NotContains(t, pages[0].Texts(), "Sustainability Initiatives")
	assert.Contains(t, pages[1].Texts(), "Environmental Metrics")
	assert.Contains(t, pages[1].Texts(), "Sustainability Initiatives")
}

func TestFixed_TooManyBreakdownRows(t *testing.T) {
	tmpl := layout.DefaultTemplate()
	m := model()
	m.Breakdown = nil
	for i := 0; i < 12; i++ {
		m.Breakdown = append(m.Breakdown, metrics.BreakdownItem{
			Scope: fmt.Sprintf("Source %d", i+1), Tonnes: decimal.NewFromInt(1000),
		})
	}

	pages, defects, err := layout.NewEngine(tmpl, Fixed{}).Layout(m)
	require.NoError(t, err)
	require.Len(t, pages, PageCount)

	assert.NotEmpty(t, defects)
	for _, d := range defects {
		assert.Equal(t, layout.DefectOutOfBounds, d.Kind)
		assert.Equal(t, layout.RegionBreakdown, d.Region)
	}
	assert.Contains(t, pages[0].Texts(), "Source 8")
	assert.NotContains(t, pages[0].Texts(), "Source 9")
	assertWithinBounds(t, pages, tmpl)
}

func TestFixed_TooManyInitiatives(t *testing.T) {
	tmpl := layout.DefaultTemplate()
	m := model()
	m.Initiatives = nil
	for i := 0; i < 30; i++ {
		m.Initiatives = append(m.Initiatives, fmt.Sprintf("Initiative %d", i+1))
	}

	pages, defects, err := layout.NewEngine(tmpl, Fixed{}).Layout(m)
	require.NoError(t, err)
	require.Len(t, pages, PageCount)
	require.NotEmpty(t, defects)
	assert.Equal(t, layout.RegionInitiatives, defects[0].Region)
	assert.Contains(t, pages[1].Texts(), "• Initiative 17")
	assert.NotContains(t, pages[1].Texts(), "• Initiative 18")

	// The footer stays on the page even though it sits in the bottom margin.
	assert.Contains(t, pages[1].Texts(), "This report was prepared in accordance with the GHG Protocol Corporate Standard.")
	assertWithinBounds(t, pages, tmpl)
}

func TestFixed_InvalidTemplate(t *testing.T) {
	_, _, err := Fixed{}.Paginate(nil, layout.Template{})
	assert.Error(t, err)
}

func TestFixed_EmptyBlocksStillTwoPages(t *testing.T) {
	pages, defects, err := Fixed{}.Paginate(nil, layout.DefaultTemplate())
	require.NoError(t, err)
	assert.Len(t, pages, PageCount)
	assert.Empty(t, defects)
}
