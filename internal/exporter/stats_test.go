package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overnight/pkg/contracts/domain"
)

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Strip the Excel BOM before parsing
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestStatsFilename(t *testing.T) {
	runTime := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)
	assert.Equal(t, "stats_20240315_093045.csv", StatsFilename(runTime))
	assert.Equal(t, "strategy_summary_20240315_093045.csv", SummaryFilename(runTime))
}

func TestWriteStats(t *testing.T) {
	dir := t.TempDir()
	exp := NewStatsExporter(dir)

	record := domain.StatsRecord{
		RunID:            "abc-123",
		Ticker:           "TSLA",
		Start:            time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
		End:              time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC),
		Duration:         "1825 days",
		ExposureTimePct:  98.5,
		EquityFinal:      112345.67,
		EquityPeak:       120000,
		ReturnPct:        12.34567,
		BuyHoldReturnPct: 250.5,
		MaxDrawdownPct:   -18.2,
		SharpeRatio:      0.87,
		WinRatePct:       51.2,
		BestTradePct:     9.1,
		WorstTradePct:    -7.3,
		AvgTradePct:      0.01,
		ProfitFactor:     1.08,
		Trades:           1230,
	}

	runTime := time.Date(2024, 5, 30, 18, 0, 0, 0, time.UTC)
	filename, err := exp.WriteStats(record, "close-to-open-flip", runTime)
	require.NoError(t, err)
	assert.Equal(t, "stats_20240530_180000.csv", filename)

	rows := readCSVFile(t, filepath.Join(dir, filename))
	require.Len(t, rows, 2)

	headers := rows[0]
	assert.Equal(t, "Run ID", headers[0])
	assert.Equal(t, "Return [%]", headers[9])
	assert.Equal(t, "# Trades", headers[18])

	row := rows[1]
	assert.Equal(t, "abc-123", row[0])
	assert.Equal(t, "TSLA", row[1])
	assert.Equal(t, "close-to-open-flip", row[2])
	assert.Equal(t, "2019-06-01", row[3])
	assert.Equal(t, "2024-05-30", row[4])
	assert.Equal(t, "12.34567", row[9])
	assert.Equal(t, "1230", row[18])
}

func TestWriteStats_FileCarriesBOM(t *testing.T) {
	dir := t.TempDir()
	exp := NewStatsExporter(dir)

	filename, err := exp.WriteStats(domain.StatsRecord{RunID: "x"}, "close-to-open-flip", time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, filename))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	exp := NewStatsExporter(dir)

	summary := domain.Summary{
		AvgReturn:        10.5,
		AvgSharpe:        0.9,
		AvgDrawdown:      -15.25,
		AvgWinRate:       50.5,
		AvgTrades:        1200,
		Ticker:           "TSLA",
		InvestmentAmount: 10000,
		LookbackYears:    5,
		NumBacktests:     3,
		AnalysisDate:     time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	filename, err := exp.WriteSummary(summary, summary.AnalysisDate)
	require.NoError(t, err)
	assert.Equal(t, "strategy_summary_20240601_123000.csv", filename)

	rows := readCSVFile(t, filepath.Join(dir, filename))
	require.Len(t, rows, 2)

	assert.Equal(t, []string{
		"avg_return", "avg_sharpe", "avg_drawdown", "avg_win_rate", "avg_trades",
		"ticker", "investment_amount", "lookback_years", "num_backtests", "analysis_date",
	}, rows[0])

	row := rows[1]
	assert.Equal(t, "10.5", row[0])
	assert.Equal(t, "-15.25", row[2])
	assert.Equal(t, "TSLA", row[5])
	assert.Equal(t, "10000", row[6])
	assert.Equal(t, "5", row[7])
	assert.Equal(t, "3", row[8])
	assert.Equal(t, "2024-06-01 12:30:00", row[9])
}

func TestCSVWriter_CreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writer := NewCSVWriter(dir)

	err := writer.WriteSimpleCSV(filepath.Join("nested", "deep", "out.csv"),
		[]string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)

	rows := readCSVFile(t, filepath.Join(dir, "nested", "deep", "out.csv"))
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, rows)
}
