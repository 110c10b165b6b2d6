// Command backtest runs the close-to-open flip strategy over one ticker's
// historical data and persists the resulting statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"overnight/internal/app"
	"overnight/internal/config"
	"overnight/internal/datasource"
	"overnight/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ticker := flag.String("ticker", cfg.Strategy.Ticker, "ticker symbol to backtest")
	investment := flag.Float64("investment", cfg.Strategy.InvestmentAmount, "investment amount in USD per position")
	years := flag.Int("years", cfg.Strategy.LookbackYears, "number of years to look back")
	noVisualize := flag.Bool("no-visualize", false, "disable result visualization")
	noSave := flag.Bool("no-save", false, "disable saving results")
	flag.Parse()

	// Apply CLI overrides to this run's configuration value
	cfg.Strategy.Ticker = *ticker
	cfg.Strategy.InvestmentAmount = *investment
	cfg.Strategy.LookbackYears = *years

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	source := datasource.NewHTTPSource(cfg.Data.HTTPTimeout)
	runner := app.NewRunner(cfg, source, logger)

	record, err := runner.Run(context.Background(), app.RunOptions{
		Visualize: !*noVisualize,
		Save:      !*noSave,
	})
	if err != nil {
		logger.Error("Backtest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("\nBacktest Results Summary:")
	fmt.Printf("Total Return: %.2f%%\n", record.ReturnPct)
	fmt.Printf("Sharpe Ratio: %.2f\n", record.SharpeRatio)
	fmt.Printf("Max Drawdown: %.2f%%\n", record.MaxDrawdownPct)
	fmt.Printf("Win Rate: %.2f%%\n", record.WinRatePct)
	fmt.Printf("# Trades: %d\n", record.Trades)
}
