package render

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	rerrors "github.com/Arthva-Tech/carbon-iq-insights/pkg/errors"
	"github.com/Arthva-Tech/carbon-iq-insights/pkg/metrics"
)

// Workbook sheet names.
const (
	SheetSummary       = "Summary"
	SheetBreakdown     = "Breakdown"
	SheetEnvironmental = "Environmental"
)

// WorkbookContentType is the media type of .xlsx files.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Workbook exports the metrics behind a report as an XLSX document.
func Workbook(m metrics.Model) (Document, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return Document{}, workbookError(err)
	}
	for _, name := range []string{SheetBreakdown, SheetEnvironmental} {
		if _, err := f.NewSheet(name); err != nil {
			return Document{}, workbookError(err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return Document{}, workbookError(err)
	}

	md := m.Metadata
	summary := [][]any{
		{"Report Name", md.ReportName},
		{"Report Type", string(md.Type)},
		{"Reporting Period", md.PeriodLabel},
		{"Generated", md.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Total CO2e (kg)", m.Totals.TotalKg.InexactFloat64()},
		{"Monthly Target (kg)", m.Totals.TargetKg.InexactFloat64()},
		{"Efficiency Score (%)", m.Totals.EfficiencyPc.InexactFloat64()},
		{"Carbon Offset (kg)", m.Totals.OffsetKg.InexactFloat64()},
		{"Net Emissions (kg)", m.Totals.NetKg().InexactFloat64()},
	}
	for _, fw := range m.Frameworks {
		summary = append(summary, []any{"Framework", fw})
	}
	for _, a := range m.Schedules {
		summary = append(summary, []any{"Automated Report", a.Name, a.Status()})
	}
	for _, r := range m.Recipients {
		summary = append(summary, []any{"Recipient", r})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return Document{}, workbookError(err)
	}

	breakdown := [][]any{{"Scope", "Tonnes CO2e", "Color"}}
	for _, b := range m.Breakdown {
		breakdown = append(breakdown, []any{
			b.Scope, b.Tonnes.InexactFloat64(), fmt.Sprintf("#%02x%02x%02x", b.Color.R, b.Color.G, b.Color.B),
		})
	}
	if err := writeRows(f, SheetBreakdown, breakdown); err != nil {
		return Document{}, workbookError(err)
	}

	env := [][]any{{"Source", "kg CO2e"}}
	for _, s := range m.Sources {
		env = append(env, []any{s.Name, s.KgCO2.InexactFloat64()})
	}
	if err := writeRows(f, SheetEnvironmental, env); err != nil {
		return Document{}, workbookError(err)
	}

	for _, sheet := range []string{SheetBreakdown, SheetEnvironmental} {
		if err := f.SetRowStyle(sheet, 1, 1, header); err != nil {
			return Document{}, workbookError(err)
		}
	}
	if err := f.SetColStyle(SheetSummary, "A", header); err != nil {
		return Document{}, workbookError(err)
	}
	if err := f.SetColWidth(SheetSummary, "A", "B", 28); err != nil {
		return Document{}, workbookError(err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return Document{}, workbookError(err)
	}
	return Document{
		Filename:    Filename(md.ReportName, "xlsx"),
		ContentType: WorkbookContentType,
		Bytes:       buf.Bytes(),
	}, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func workbookError(err error) error {
	return rerrors.New(rerrors.ErrRenderFailed, rerrors.CategoryRender, "failed to build workbook").
		WithCause(err).
		WithContext("format", "xlsx")
}
