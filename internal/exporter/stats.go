package exporter

import (
	"fmt"
	"time"

	"overnight/pkg/contracts/domain"
)

// Stats CSV column names. The aggregator assumes an identical column set
// across all persisted runs and fails loudly on a mismatch, so the order
// and spelling here are load-bearing.
var statsHeaders = []string{
	"Run ID",
	"Ticker",
	"Strategy",
	"Start",
	"End",
	"Duration",
	"Exposure Time [%]",
	"Equity Final [$]",
	"Equity Peak [$]",
	"Return [%]",
	"Buy & Hold Return [%]",
	"Max. Drawdown [%]",
	"Sharpe Ratio",
	"Win Rate [%]",
	"Best Trade [%]",
	"Worst Trade [%]",
	"Avg. Trade [%]",
	"Profit Factor",
	"# Trades",
}

var summaryHeaders = []string{
	"avg_return",
	"avg_sharpe",
	"avg_drawdown",
	"avg_win_rate",
	"avg_trades",
	"ticker",
	"investment_amount",
	"lookback_years",
	"num_backtests",
	"analysis_date",
}

// StatsExporter persists run statistics and summary records as timestamped
// CSV files in the results directory. Files are append-only across runs:
// each run writes a new file and nothing is ever overwritten or deleted.
type StatsExporter struct {
	csvWriter *CSVWriter
}

// NewStatsExporter creates a stats exporter writing into resultsDir
func NewStatsExporter(resultsDir string) *StatsExporter {
	return &StatsExporter{csvWriter: NewCSVWriter(resultsDir)}
}

// StatsFilename returns the stats filename for the given run time
func StatsFilename(t time.Time) string {
	return fmt.Sprintf("stats_%s.csv", t.Format(TimestampFormat))
}

// SummaryFilename returns the summary filename for the given analysis time
func SummaryFilename(t time.Time) string {
	return fmt.Sprintf("strategy_summary_%s.csv", t.Format(TimestampFormat))
}

// WriteStats serializes one run's statistics record to a timestamped CSV.
// Concurrent runs completing within the same second would collide on the
// filename; accepted for single-operator sequential usage.
func (e *StatsExporter) WriteStats(record domain.StatsRecord, strategy string, runTime time.Time) (string, error) {
	filename := StatsFilename(runTime)

	row := []string{
		record.RunID,
		record.Ticker,
		strategy,
		record.Start.Format("2006-01-02"),
		record.End.Format("2006-01-02"),
		record.Duration,
		formatFloat(record.ExposureTimePct),
		formatFloat(record.EquityFinal),
		formatFloat(record.EquityPeak),
		formatFloat(record.ReturnPct),
		formatFloat(record.BuyHoldReturnPct),
		formatFloat(record.MaxDrawdownPct),
		formatFloat(record.SharpeRatio),
		formatFloat(record.WinRatePct),
		formatFloat(record.BestTradePct),
		formatFloat(record.WorstTradePct),
		formatFloat(record.AvgTradePct),
		formatFloat(record.ProfitFactor),
		formatInt(record.Trades),
	}

	if err := e.csvWriter.WriteSimpleCSV(filename, statsHeaders, [][]string{row}); err != nil {
		return "", fmt.Errorf("failed to write stats file: %w", err)
	}

	return filename, nil
}

// WriteSummary serializes the aggregate summary record to a timestamped CSV
func (e *StatsExporter) WriteSummary(summary domain.Summary, analysisTime time.Time) (string, error) {
	filename := SummaryFilename(analysisTime)

	row := []string{
		formatFloat(summary.AvgReturn),
		formatFloat(summary.AvgSharpe),
		formatFloat(summary.AvgDrawdown),
		formatFloat(summary.AvgWinRate),
		formatFloat(summary.AvgTrades),
		summary.Ticker,
		formatFloat(summary.InvestmentAmount),
		formatInt(summary.LookbackYears),
		formatInt(summary.NumBacktests),
		summary.AnalysisDate.Format("2006-01-02 15:04:05"),
	}

	if err := e.csvWriter.WriteSimpleCSV(filename, summaryHeaders, [][]string{row}); err != nil {
		return "", fmt.Errorf("failed to write summary file: %w", err)
	}

	return filename, nil
}
