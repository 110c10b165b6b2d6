package analysis

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gonum.org/v1/gonum/stat"

	"overnight/internal/config"
	"overnight/internal/files"
	"overnight/pkg/contracts/domain"
)

// Headline metric column names as persisted in stats CSV files
const (
	ColumnReturn   = "Return [%]"
	ColumnSharpe   = "Sharpe Ratio"
	ColumnDrawdown = "Max. Drawdown [%]"
	ColumnWinRate  = "Win Rate [%]"
	ColumnTrades   = "# Trades"
)

// RunRow is one persisted run: its source file plus the values of its CSV
// columns keyed by header name
type RunRow struct {
	File   files.StatsFile
	Values map[string]string
}

// ResultSet holds all runs discovered in the results directory, ordered by
// their filename-embedded timestamp
type ResultSet struct {
	Headers []string
	Rows    []RunRow
}

// Aggregator discovers persisted stats files, concatenates them and derives
// cross-run summary statistics. The summary is recomputed in full on every
// invocation; there are no incremental update semantics.
type Aggregator struct {
	discovery  *files.Discovery
	resultsDir string
	logger     *slog.Logger
}

// NewAggregator creates an Aggregator over the given results directory
func NewAggregator(resultsDir string, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		discovery:  files.NewDiscovery(resultsDir),
		resultsDir: resultsDir,
		logger:     logger,
	}
}

// LoadResults reads every stats file in the results directory. A nil result
// with nil error signals the empty state: no files were found, which is a
// reportable condition but not an error. Column sets must be identical
// across files; a mismatch fails loudly rather than silently coercing.
func (a *Aggregator) LoadResults() (*ResultSet, error) {
	statsFiles, err := a.discovery.FindStatsFiles(".")
	if err != nil {
		return nil, fmt.Errorf("failed to discover stats files: %w", err)
	}

	if len(statsFiles) == 0 {
		a.logger.Info("No result files found", slog.String("results_dir", a.resultsDir))
		return nil, nil
	}

	resultSet := &ResultSet{}
	for _, file := range statsFiles {
		headers, rows, err := readStatsCSV(file.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}

		if resultSet.Headers == nil {
			resultSet.Headers = headers
		} else if !equalHeaders(resultSet.Headers, headers) {
			return nil, fmt.Errorf("column set mismatch in %s: got %v, want %v", file.Name, headers, resultSet.Headers)
		}

		for _, row := range rows {
			values := make(map[string]string, len(headers))
			for i, header := range headers {
				if i < len(row) {
					values[header] = row[i]
				}
			}
			resultSet.Rows = append(resultSet.Rows, RunRow{File: file, Values: values})
		}
	}

	a.logger.Info("Loaded backtest results",
		slog.Int("files", len(statsFiles)),
		slog.Int("runs", len(resultSet.Rows)))

	return resultSet, nil
}

// Analyze computes arithmetic means of the five headline metrics across all
// loaded runs and assembles the summary record
func (a *Aggregator) Analyze(resultSet *ResultSet, cfg config.Config, now time.Time) (domain.Summary, error) {
	if resultSet == nil || len(resultSet.Rows) == 0 {
		return domain.Summary{}, fmt.Errorf("no results to analyze")
	}

	avgReturn, err := a.columnMean(resultSet, ColumnReturn)
	if err != nil {
		return domain.Summary{}, err
	}
	avgSharpe, err := a.columnMean(resultSet, ColumnSharpe)
	if err != nil {
		return domain.Summary{}, err
	}
	avgDrawdown, err := a.columnMean(resultSet, ColumnDrawdown)
	if err != nil {
		return domain.Summary{}, err
	}
	avgWinRate, err := a.columnMean(resultSet, ColumnWinRate)
	if err != nil {
		return domain.Summary{}, err
	}
	avgTrades, err := a.columnMean(resultSet, ColumnTrades)
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summary{
		AvgReturn:        avgReturn,
		AvgSharpe:        avgSharpe,
		AvgDrawdown:      avgDrawdown,
		AvgWinRate:       avgWinRate,
		AvgTrades:        avgTrades,
		Ticker:           cfg.Strategy.Ticker,
		InvestmentAmount: cfg.Strategy.InvestmentAmount,
		LookbackYears:    cfg.Strategy.LookbackYears,
		NumBacktests:     len(resultSet.Rows),
		AnalysisDate:     now,
	}

	a.logger.Info("Trading strategy analysis",
		slog.String("ticker", summary.Ticker),
		slog.Float64("investment_amount", summary.InvestmentAmount),
		slog.Int("lookback_years", summary.LookbackYears),
		slog.Float64("avg_return", summary.AvgReturn),
		slog.Float64("avg_sharpe", summary.AvgSharpe),
		slog.Float64("avg_drawdown", summary.AvgDrawdown),
		slog.Float64("avg_win_rate", summary.AvgWinRate),
		slog.Float64("avg_trades", summary.AvgTrades),
		slog.Int("num_backtests", summary.NumBacktests))

	return summary, nil
}

// MetricSeries extracts one numeric column across all runs, ordered by run
// timestamp. Used to drive the dashboard charts.
func (a *Aggregator) MetricSeries(resultSet *ResultSet, column string) ([]float64, error) {
	values := make([]float64, 0, len(resultSet.Rows))
	for _, row := range resultSet.Rows {
		raw, ok := row.Values[column]
		if !ok {
			return nil, fmt.Errorf("column %q not present in results", column)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q has non-numeric value %q in %s: %w", column, raw, row.File.Name, err)
		}
		values = append(values, value)
	}
	return values, nil
}

// Timestamps returns the run timestamps in row order
func (a *Aggregator) Timestamps(resultSet *ResultSet) []time.Time {
	timestamps := make([]time.Time, 0, len(resultSet.Rows))
	for _, row := range resultSet.Rows {
		timestamps = append(timestamps, row.File.Timestamp)
	}
	return timestamps
}

// columnMean computes the arithmetic mean of a numeric column
func (a *Aggregator) columnMean(resultSet *ResultSet, column string) (float64, error) {
	values, err := a.MetricSeries(resultSet, column)
	if err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}

// readStatsCSV reads a stats file into its header row and data rows,
// tolerating the UTF-8 BOM the exporter writes for Excel compatibility
func readStatsCSV(path string) ([]string, [][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("stats file has no data rows")
	}

	return rows[0], rows[1:], nil
}

// equalHeaders reports whether two header rows are identical
func equalHeaders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
