package analysis

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet      = "Data"
	dashboardSheet = "Dashboard"
)

// dashboardPanel describes one bar-chart panel of the performance dashboard
type dashboardPanel struct {
	title  string
	column string
	anchor string
}

// The four headline panels, laid out two by two
var dashboardPanels = []dashboardPanel{
	{title: "Total Return (%)", column: ColumnReturn, anchor: "A1"},
	{title: "Sharpe Ratio", column: ColumnSharpe, anchor: "K1"},
	{title: "Max Drawdown (%)", column: ColumnDrawdown, anchor: "A17"},
	{title: "Win Rate (%)", column: ColumnWinRate, anchor: "K17"},
}

// DashboardFilename returns the dashboard workbook filename for the given
// analysis time
func DashboardFilename(t time.Time) string {
	return fmt.Sprintf("performance_metrics_%s.xlsx", t.Format("20060102_150405"))
}

// RenderDashboard writes a workbook with one bar chart per headline metric,
// each plotted against the run timestamp, plus the backing data sheet.
func (a *Aggregator) RenderDashboard(resultSet *ResultSet, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", dashboardSheet)
	if _, err := f.NewSheet(dataSheet); err != nil {
		return fmt.Errorf("failed to create data sheet: %w", err)
	}

	timestamps := a.Timestamps(resultSet)
	if err := f.SetCellValue(dataSheet, "A1", "Run Timestamp"); err != nil {
		return fmt.Errorf("failed to write data sheet: %w", err)
	}
	for i, ts := range timestamps {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetCellValue(dataSheet, cell, ts.Format("2006-01-02 15:04:05")); err != nil {
			return fmt.Errorf("failed to write data sheet: %w", err)
		}
	}

	lastRow := len(timestamps) + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", dataSheet, lastRow)

	for p, panel := range dashboardPanels {
		values, err := a.MetricSeries(resultSet, panel.column)
		if err != nil {
			return err
		}

		column := string(rune('B' + p))
		if err := f.SetCellValue(dataSheet, column+"1", panel.column); err != nil {
			return fmt.Errorf("failed to write data sheet: %w", err)
		}
		for i, value := range values {
			cell := fmt.Sprintf("%s%d", column, i+2)
			if err := f.SetCellValue(dataSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write data sheet: %w", err)
			}
		}

		chart := &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("%s!$%s$1", dataSheet, column),
				Categories: categories,
				Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, column, column, lastRow),
			}},
			Title:  []excelize.RichTextRun{{Text: panel.title}},
			Legend: excelize.ChartLegend{Position: "none"},
		}
		if err := f.AddChart(dashboardSheet, panel.anchor, chart); err != nil {
			return fmt.Errorf("failed to add %s chart: %w", panel.title, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save dashboard workbook: %w", err)
	}

	return nil
}
