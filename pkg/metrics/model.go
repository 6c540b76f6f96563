package metrics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Default period prefilled on the report form.
const (
	DefaultStartDate = "2024-07-01"
	DefaultEndDate   = "2024-09-30"
)

// Color is an RGB triple with 8-bit channels.
type Color struct {
	R, G, B uint8
}

// Metadata holds the header facts printed on the first page.
type Metadata struct {
	ReportName  string
	Type        ReportType
	GeneratedAt time.Time
	PeriodLabel string
	Scopes      []string
	Notes       string
}

// KPI is one summary metric box.
type KPI struct {
	Icon  string
	Value string
	Label string
}

// BreakdownItem is one emissions scope bar.
type BreakdownItem struct {
	Scope  string
	Tonnes decimal.Decimal
	Color  Color
}

// Source is an emissions source from the dashboard.
type Source struct {
	Name  string
	KgCO2 decimal.Decimal
	Color Color
}

// Model is the immutable snapshot a report is rendered from.
type Model struct {
	Metadata      Metadata
	Summary       string
	KPIs          [4]KPI
	Breakdown     []BreakdownItem
	Environmental []string
	Initiatives   []string
	Frameworks    []string

	// Schedules and Recipients come from the Export & Automation card.
	Schedules  []AutomatedReport
	Recipients []string

	// Sources and Totals back the environmental lines and the workbook export.
	Sources []Source
	Totals  Totals
}

// Totals are the headline figures behind the KPI boxes.
type Totals struct {
	TotalKg      decimal.Decimal
	TargetKg     decimal.Decimal
	EfficiencyPc decimal.Decimal
	OffsetKg     decimal.Decimal
}

// NetKg is the total minus the offset.
func (t Totals) NetKg() decimal.Decimal {
	return t.TotalKg.Sub(t.OffsetKg)
}

// Build turns a validated request into a model. GeneratedAt is taken from
// now, never from the request. Metric values are the dashboard constants.
func Build(req ReportRequest, now time.Time) Model {
	start, end := req.StartDate, req.EndDate
	if start == "" {
		start = DefaultStartDate
	}
	if end == "" {
		end = DefaultEndDate
	}

	totals := dashboardTotals()
	sources := dashboardSources()

	text := summary(totals)
	if req.Notes != "" {
		text += " " + req.Notes
	}

	return Model{
		Metadata: Metadata{
			ReportName:  req.Name,
			Type:        req.Type,
			GeneratedAt: now,
			PeriodLabel: fmt.Sprintf("%s to %s", start, end),
			Scopes:      []string{"Scope 2", "Scope 3"},
			Notes:       req.Notes,
		},
		Summary:       text,
		KPIs:          kpis(totals),
		Breakdown:     scopeBreakdown(),
		Environmental: environmentalLines(sources, totals),
		Initiatives:   initiatives(),
		Frameworks:    Frameworks(),
		Schedules:     AutomatedReports(),
		Recipients:    DefaultRecipients(),
		Sources:       sources,
		Totals:        totals,
	}
}

func summary(t Totals) string {
	return fmt.Sprintf(
		"Digital operations emitted %s kg CO2e during the reporting period against a monthly target of %s kg. "+
			"Efficiency reached %s%% and %s kg CO2e was offset through verified projects, "+
			"leaving net emissions of %s kg CO2e. Cloud infrastructure remains the largest source.",
		t.TotalKg.StringFixed(1), t.TargetKg.String(), t.EfficiencyPc.String(),
		t.OffsetKg.StringFixed(1), t.NetKg().StringFixed(1))
}

func kpis(t Totals) [4]KPI {
	return [4]KPI{
		{Icon: "CO2", Value: t.TotalKg.StringFixed(1) + " kg", Label: "Total CO2e"},
		{Icon: "TGT", Value: t.TargetKg.String() + " kg", Label: "Monthly Target"},
		{Icon: "EFF", Value: t.EfficiencyPc.String() + "%", Label: "Efficiency Score"},
		{Icon: "OFS", Value: t.OffsetKg.StringFixed(1) + " kg", Label: "Carbon Offset"},
	}
}

// environmentalLines lists each source with its share of the source total,
// followed by the offset and net figures.
func environmentalLines(sources []Source, t Totals) []string {
	sum := decimal.Zero
	for _, s := range sources {
		sum = sum.Add(s.KgCO2)
	}

	lines := make([]string, 0, len(sources)+2)
	for _, s := range sources {
		share := decimal.Zero
		if sum.IsPositive() {
			share = s.KgCO2.Div(sum).Mul(decimal.NewFromInt(100))
		}
		lines = append(lines, fmt.Sprintf("%s: %s kg CO2e (%s%% of tracked sources)",
			s.Name, s.KgCO2.StringFixed(1), share.StringFixed(1)))
	}
	lines = append(lines,
		fmt.Sprintf("Carbon offset purchased: %s kg CO2e", t.OffsetKg.StringFixed(1)),
		fmt.Sprintf("Net emissions after offsets: %s kg CO2e", t.NetKg().StringFixed(1)),
	)
	return lines
}
