// Command analyze aggregates all persisted backtest runs into a summary CSV
// and a four-panel performance dashboard workbook.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"overnight/internal/analysis"
	"overnight/internal/config"
	"overnight/internal/exporter"
	"overnight/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	resultsDir := flag.String("results-dir", cfg.Paths.ResultsDir, "directory holding stats result files")
	noDashboard := flag.Bool("no-dashboard", false, "skip rendering the performance dashboard workbook")
	flag.Parse()

	cfg.Paths.ResultsDir = *resultsDir

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := cfg.EnsureResultsDir(); err != nil {
		logger.Error("Failed to create results directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	aggregator := analysis.NewAggregator(cfg.Paths.ResultsDir, logger)

	resultSet, err := aggregator.LoadResults()
	if err != nil {
		logger.Error("Failed to load results", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if resultSet == nil {
		// Empty state: nothing to aggregate, reported and done
		logger.Info("No backtest results found. Run the backtest first.",
			slog.String("results_dir", cfg.Paths.ResultsDir))
		return
	}

	now := time.Now()

	summary, err := aggregator.Analyze(resultSet, cfg, now)
	if err != nil {
		logger.Error("Failed to analyze results", slog.String("error", err.Error()))
		os.Exit(1)
	}

	statsExporter := exporter.NewStatsExporter(cfg.Paths.ResultsDir)
	summaryFile, err := statsExporter.WriteSummary(summary, now)
	if err != nil {
		logger.Error("Failed to write summary", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Strategy summary saved", slog.String("file", summaryFile))

	if !*noDashboard {
		dashboardPath := cfg.GetResultsPath(analysis.DashboardFilename(now))
		if err := aggregator.RenderDashboard(resultSet, dashboardPath); err != nil {
			logger.Error("Failed to render dashboard", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Performance metrics dashboard saved", slog.String("file", dashboardPath))
	}
}
