package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"overnight/internal/analysis"
	"overnight/internal/backtest"
	"overnight/internal/config"
	"overnight/internal/dataprocessing"
	"overnight/internal/datasource"
	"overnight/internal/exporter"
	"overnight/pkg/contracts/domain"
)

// RunOptions control the side effects of a single backtest run
type RunOptions struct {
	Visualize bool
	Save      bool
}

// Runner wires the data pipeline to the simulation engine and the result
// writer for a single backtest invocation. Data flows one way: fetch, lag
// augmentation, date filter, simulation, export.
type Runner struct {
	cfg    config.Config
	source datasource.Source
	logger *slog.Logger
}

// NewRunner creates a Runner using the given data source.
func NewRunner(cfg config.Config, source datasource.Source, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, source: source, logger: logger}
}

// Run executes one backtest: fetches and prepares the price series, runs the
// close-to-open flip strategy through the engine, and persists the resulting
// statistics record. A visualization failure is downgraded to a warning; the
// numeric results already persisted remain valid.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (domain.StatsRecord, error) {
	runID := uuid.NewString()
	runTime := time.Now()
	logger := r.logger.With(slog.String("run_id", runID))

	logger.Info("Running backtest",
		slog.String("ticker", r.cfg.Strategy.Ticker),
		slog.Float64("investment", r.cfg.Strategy.InvestmentAmount),
		slog.Int("lookback_years", r.cfg.Strategy.LookbackYears))

	series, err := r.prepareSeries(ctx, runTime)
	if err != nil {
		return domain.StatsRecord{}, err
	}

	strategy := backtest.NewCloseToOpenFlip(r.cfg.Strategy.InvestmentAmount)
	engine := backtest.NewEngine(r.cfg.Backtest.InitialCash, r.cfg.Backtest.CommissionRate, logger)

	result, err := engine.Run(ctx, series, strategy)
	if err != nil {
		return domain.StatsRecord{}, fmt.Errorf("backtest failed: %w", err)
	}

	record := backtest.ComputeStats(result, series, runID)

	if opts.Save {
		if err := r.cfg.EnsureResultsDir(); err != nil {
			return record, err
		}

		statsExporter := exporter.NewStatsExporter(r.cfg.Paths.ResultsDir)
		filename, err := statsExporter.WriteStats(record, strategy.Name(), runTime)
		if err != nil {
			return record, err
		}
		logger.Info("Saved run statistics", slog.String("file", filename))
	}

	if opts.Visualize {
		plotPath := r.cfg.GetResultsPath(analysis.PlotFilename(runTime))
		if err := analysis.RenderBacktestPlot(record, strategy.Name(), result.EquityCurve, plotPath); err != nil {
			logger.Warn("Unable to generate plot; backtest results are still valid",
				slog.String("error", err.Error()))
		} else {
			logger.Info("Interactive plot saved", slog.String("file", plotPath))
		}
	}

	return record, nil
}

// prepareSeries runs the data pipeline: fetch, resample, optional lag
// augmentation, trailing-window filter and the integrity gate.
func (r *Runner) prepareSeries(ctx context.Context, now time.Time) (*domain.PriceSeries, error) {
	raw, err := r.source.FetchRawSeries(ctx, r.cfg.Strategy.Ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to get data for backtesting: %w", err)
	}

	series := dataprocessing.Resample(raw, r.cfg.Granularity())

	if r.cfg.Data.NumLags > 0 {
		series = dataprocessing.AddLags(series, r.cfg.Data.NumLags, r.cfg.Data.LagGap)
	}

	series = dataprocessing.FilterLookback(series, r.cfg.Strategy.LookbackYears, now)

	if err := dataprocessing.ValidateForBacktest(series); err != nil {
		return nil, fmt.Errorf("data integrity check failed: %w", err)
	}

	r.logger.Info("Prepared price series",
		slog.String("ticker", series.Symbol),
		slog.Int("bars", series.Len()),
		slog.String("start", series.First().Date.Format("2006-01-02")),
		slog.String("end", series.Last().Date.Format("2006-01-02")))

	return series, nil
}
