package analysis

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"overnight/pkg/contracts/domain"
)

func TestDashboardFilename(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	assert.Equal(t, "performance_metrics_20240315_093045.xlsx", DashboardFilename(ts))
	assert.Equal(t, "backtest_plot_20240315_093045.html", PlotFilename(ts))
}

func TestRenderDashboard(t *testing.T) {
	dir := t.TempDir()
	writeStatsFixture(t, dir, "stats_20240101_100000.csv", "run-1,TSLA,10,0.8,-10,45,900")
	writeStatsFixture(t, dir, "stats_20240201_100000.csv", "run-2,TSLA,20,1.2,-14,55,1100")

	agg := NewAggregator(dir, nil)
	resultSet, err := agg.LoadResults()
	require.NoError(t, err)

	path := filepath.Join(dir, "dashboard.xlsx")
	require.NoError(t, agg.RenderDashboard(resultSet, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{dashboardSheet, dataSheet}, f.GetSheetList())

	value, err := f.GetCellValue(dataSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 10:00:00", value)

	header, err := f.GetCellValue(dataSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, ColumnReturn, header)

	value, err = f.GetCellValue(dataSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "20", value)
}

func TestRenderBacktestPlot(t *testing.T) {
	record := domain.StatsRecord{
		Ticker:         "TSLA",
		ReturnPct:      12.5,
		SharpeRatio:    0.9,
		MaxDrawdownPct: -18.0,
		WinRatePct:     51.0,
		Trades:         1230,
		Start:          time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC),
	}
	equity := []float64{100000, 101000, 99500, 112500}

	path := filepath.Join(t.TempDir(), "plot.html")
	require.NoError(t, RenderBacktestPlot(record, "close-to-open-flip", equity, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "TSLA")
	assert.Contains(t, html, "close-to-open-flip")
	assert.Contains(t, html, "12.50")
	assert.Contains(t, html, "<polyline")
	assert.Contains(t, html, "2019-06-01")
	assert.Contains(t, html, "2024-05-30")
}

func TestRenderBacktestPlot_CurveTooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.html")

	err := RenderBacktestPlot(domain.StatsRecord{}, "close-to-open-flip", []float64{100000}, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
	assert.NoFileExists(t, path)
}
