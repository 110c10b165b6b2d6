package domain

import (
	"time"
)

// StatsRecord holds the performance statistics produced by one backtest run.
// Records are immutable once written; each run persists exactly one record
// with the filename-embedded timestamp as its natural key.
type StatsRecord struct {
	RunID  string `json:"run_id" validate:"required,uuid"`
	Ticker string `json:"ticker" validate:"required"`

	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`

	// Headline metrics
	ReturnPct      float64 `json:"return_pct"`
	SharpeRatio    float64 `json:"sharpe_ratio"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	WinRatePct     float64 `json:"win_rate_pct"`
	Trades         int     `json:"trades"`

	// Engine-internal metrics
	ExposureTimePct  float64 `json:"exposure_time_pct"`
	EquityFinal      float64 `json:"equity_final"`
	EquityPeak       float64 `json:"equity_peak"`
	BuyHoldReturnPct float64 `json:"buy_hold_return_pct"`
	BestTradePct     float64 `json:"best_trade_pct"`
	WorstTradePct    float64 `json:"worst_trade_pct"`
	AvgTradePct      float64 `json:"avg_trade_pct"`
	ProfitFactor     float64 `json:"profit_factor"`
}

// Summary is a single aggregate row derived from all stats records present
// on disk at analysis time. It is recomputed in full on each analysis run.
type Summary struct {
	AvgReturn   float64 `json:"avg_return" csv:"avg_return"`
	AvgSharpe   float64 `json:"avg_sharpe" csv:"avg_sharpe"`
	AvgDrawdown float64 `json:"avg_drawdown" csv:"avg_drawdown"`
	AvgWinRate  float64 `json:"avg_win_rate" csv:"avg_win_rate"`
	AvgTrades   float64 `json:"avg_trades" csv:"avg_trades"`

	Ticker           string    `json:"ticker" csv:"ticker"`
	InvestmentAmount float64   `json:"investment_amount" csv:"investment_amount"`
	LookbackYears    int       `json:"lookback_years" csv:"lookback_years"`
	NumBacktests     int       `json:"num_backtests" csv:"num_backtests"`
	AnalysisDate     time.Time `json:"analysis_date" csv:"analysis_date"`
}
