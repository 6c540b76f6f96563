package metrics

import "github.com/shopspring/decimal"

// The dashboard has no telemetry pipeline; these are its fixed figures.

func dashboardTotals() Totals {
	return Totals{
		TotalKg:      decimal.RequireFromString("76.8"),
		TargetKg:     decimal.NewFromInt(75),
		EfficiencyPc: decimal.NewFromInt(94),
		OffsetKg:     decimal.RequireFromString("45.2"),
	}
}

func dashboardSources() []Source {
	return []Source{
		{Name: "Cloud Infrastructure", KgCO2: decimal.RequireFromString("45.2"), Color: Color{0x22, 0xc5, 0x5e}},
		{Name: "CI/CD Pipelines", KgCO2: decimal.RequireFromString("28.7"), Color: Color{0x16, 0xa3, 0x4a}},
		{Name: "Video Meetings", KgCO2: decimal.RequireFromString("15.1"), Color: Color{0x15, 0x80, 0x3d}},
		{Name: "Data Storage", KgCO2: decimal.RequireFromString("8.3"), Color: Color{0x16, 0x65, 0x34}},
		{Name: "API Calls", KgCO2: decimal.RequireFromString("2.7"), Color: Color{0x14, 0x53, 0x2d}},
	}
}

func scopeBreakdown() []BreakdownItem {
	return []BreakdownItem{
		{Scope: "Scope 1", Tonnes: decimal.RequireFromString("1234.5"), Color: Color{34, 197, 94}},
		{Scope: "Scope 2", Tonnes: decimal.RequireFromString("2345.6"), Color: Color{22, 163, 74}},
		{Scope: "Scope 3", Tonnes: decimal.RequireFromString("4567.8"), Color: Color{21, 128, 61}},
	}
}

func initiatives() []string {
	return []string{
		"Moved CI/CD runners to regions powered by renewable energy",
		"Enabled auto-scaling to remove idle cloud capacity overnight",
		"Defaulted large video meetings to audio-only with optional camera",
		"Archived cold data to low-energy storage tiers",
		"Batched API calls to cut request volume by a third",
		"Offset residual emissions through verified reforestation projects",
	}
}

// Frameworks lists the report templates offered alongside the generator.
func Frameworks() []string {
	return []string{
		"GHG Protocol Standard",
		"CDP Climate Report",
		"EU Taxonomy",
		"Custom Template",
	}
}

// RecentReport is a previously generated report.
type RecentReport struct {
	Name   string
	Date   string
	Status string
	Type   ReportType
	Size   string
}

// RecentReports returns the reports listed under "Recent Reports".
func RecentReports() []RecentReport {
	return []RecentReport{
		{Name: "Q2 2024 ESG Report", Date: "2024-06-30", Status: "completed", Type: Quarterly, Size: "2.4 MB"},
		{Name: "May 2024 Monthly Report", Date: "2024-05-31", Status: "completed", Type: Monthly, Size: "1.8 MB"},
		{Name: "April 2024 Monthly Report", Date: "2024-04-30", Status: "completed", Type: Monthly, Size: "2.1 MB"},
	}
}

// FindRecent looks up a recent report by name.
func FindRecent(name string) (RecentReport, bool) {
	for _, r := range RecentReports() {
		if r.Name == name {
			return r, true
		}
	}
	return RecentReport{}, false
}
