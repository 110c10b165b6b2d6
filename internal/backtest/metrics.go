package backtest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"overnight/pkg/contracts/domain"
)

// tradingDaysPerYear is the annualization factor for the Sharpe ratio
const tradingDaysPerYear = 252

// ComputeStats derives the run statistics record from a raw simulation
// result. The record is immutable once written to disk.
func ComputeStats(result *Result, series *domain.PriceSeries, runID string) domain.StatsRecord {
	record := domain.StatsRecord{
		RunID:  runID,
		Ticker: series.Symbol,
		Trades: len(result.Trades),
	}

	if series.Len() > 0 {
		record.Start = series.First().Date
		record.End = series.Last().Date
		days := int(record.End.Sub(record.Start).Hours() / 24)
		record.Duration = fmt.Sprintf("%d days", days)
	}

	if len(result.EquityCurve) > 0 && result.InitialCash > 0 {
		final := result.EquityCurve[len(result.EquityCurve)-1]
		record.EquityFinal = final
		record.ReturnPct = (final/result.InitialCash - 1) * 100

		peak := result.InitialCash
		maxDrawdown := 0.0
		for _, equity := range result.EquityCurve {
			if equity > peak {
				peak = equity
			}
			if peak > 0 {
				drawdown := (equity/peak - 1) * 100
				if drawdown < maxDrawdown {
					maxDrawdown = drawdown
				}
			}
		}
		record.EquityPeak = peak
		record.MaxDrawdownPct = maxDrawdown
		record.SharpeRatio = sharpeRatio(result.EquityCurve)
	}

	if series.Len() > 1 && series.First().Close > 0 {
		record.BuyHoldReturnPct = (series.Last().Close/series.First().Close - 1) * 100
	}

	if result.Bars > 0 {
		record.ExposureTimePct = float64(result.ExposureBars) / float64(result.Bars) * 100
	}

	if len(result.Trades) > 0 {
		wins := 0
		var grossProfit, grossLoss, returnSum float64
		best := math.Inf(-1)
		worst := math.Inf(1)

		for _, trade := range result.Trades {
			if trade.PnL > 0 {
				wins++
				grossProfit += trade.PnL
			} else {
				grossLoss += -trade.PnL
			}
			returnSum += trade.ReturnPct
			if trade.ReturnPct > best {
				best = trade.ReturnPct
			}
			if trade.ReturnPct < worst {
				worst = trade.ReturnPct
			}
		}

		record.WinRatePct = float64(wins) / float64(len(result.Trades)) * 100
		record.BestTradePct = best
		record.WorstTradePct = worst
		record.AvgTradePct = returnSum / float64(len(result.Trades))
		if grossLoss > 0 {
			record.ProfitFactor = grossProfit / grossLoss
		}
	}

	return record
}

// sharpeRatio computes the annualized Sharpe ratio from the per-bar returns
// of the equity curve. Returns 0 when the curve is too short or flat.
func sharpeRatio(equity []float64) float64 {
	if len(equity) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			return 0
		}
		returns = append(returns, equity[i]/equity[i-1]-1)
	}

	mean := stat.Mean(returns, nil)
	stddev := stat.StdDev(returns, nil)
	if stddev == 0 {
		return 0
	}

	return mean / stddev * math.Sqrt(tradingDaysPerYear)
}
