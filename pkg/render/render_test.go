package render

import (
	"time"

	"github.com/Arthva-Tech/carbon-iq-insights/pkg/layout"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/pageflow"
)

var testTime = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func testModel(name string, typ metrics.ReportType) metrics.Model {
	return metrics.Build(metrics.ReportRequest{Name: name, Type: typ}, testTime)
}

func testPages(name string, typ metrics.ReportType) []layout.Page {
	pages, _, err := layout.NewEngine(layout.DefaultTemplate(), pageflow.Fixed{}).Layout(testModel(name, typ))
	if err != nil {
		panic(err)
	}
	return pages
}

func testInfo(name string) DocumentInfo {
	return DocumentInfo{Title: name, Subject: "ESG Report", Author: "Carbon IQ Insights", CreatedAt: testTime}
}
