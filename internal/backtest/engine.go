package backtest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"overnight/pkg/contracts/domain"
)

// Trade is one completed round trip: an entry fill and its exit fill
type Trade struct {
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	Shares     int64
	PnL        float64
	ReturnPct  float64
}

// Result holds the raw simulation output before metrics are derived
type Result struct {
	Strategy     string
	InitialCash  float64
	FinalCash    float64
	EquityCurve  []float64
	Trades       []Trade
	ExposureBars int
	Bars         int
}

// Engine replays a price series through a strategy with market-order fills
// at the next bar's open, exclusive orders (a new entry closes the previous
// position first) and proportional commission on both sides. Any position
// still open at the end of the series is liquidated at the last close.
type Engine struct {
	initialCash decimal.Decimal
	commission  decimal.Decimal
	logger      *slog.Logger
}

// NewEngine creates an Engine with the given starting cash balance and
// commission rate (e.g. 0.001 for 0.1% per side).
func NewEngine(initialCash, commissionRate float64, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		initialCash: decimal.NewFromFloat(initialCash),
		commission:  decimal.NewFromFloat(commissionRate),
		logger:      logger,
	}
}

// Run simulates one path of the strategy over the series. Signals emitted on
// bar N fill at bar N+1's open; signals emitted on the final bar never fill.
func (e *Engine) Run(ctx context.Context, series *domain.PriceSeries, strategy Strategy) (*Result, error) {
	if series == nil || len(series.Bars) == 0 {
		return nil, fmt.Errorf("cannot run backtest on empty series")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars := series.Bars
	one := decimal.NewFromInt(1)
	buyFactor := one.Add(e.commission)
	sellFactor := one.Sub(e.commission)

	cash := e.initialCash
	var position int64
	var entryTime time.Time
	var entryPrice decimal.Decimal
	var entryCost decimal.Decimal

	var pending []Signal
	result := &Result{
		Strategy:    strategy.Name(),
		InitialCash: e.initialCash.InexactFloat64(),
		EquityCurve: make([]float64, 0, len(bars)),
		Bars:        len(bars),
	}

	closePosition := func(exitPx decimal.Decimal, exitTime time.Time) {
		shares := decimal.NewFromInt(position)
		proceeds := exitPx.Mul(shares).Mul(sellFactor)
		cash = cash.Add(proceeds)

		pnl := proceeds.Sub(entryCost)
		trade := Trade{
			EntryTime:  entryTime,
			ExitTime:   exitTime,
			EntryPrice: entryPrice.InexactFloat64(),
			ExitPrice:  exitPx.InexactFloat64(),
			Shares:     position,
			PnL:        pnl.InexactFloat64(),
		}
		if !entryCost.IsZero() {
			trade.ReturnPct = pnl.Div(entryCost).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		result.Trades = append(result.Trades, trade)
		position = 0
	}

	for _, bar := range bars {
		// Fill the previous bar's signals at this bar's open
		if len(pending) > 0 {
			openPx := decimal.NewFromFloat(bar.Open)
			for _, sig := range pending {
				switch sig.Action {
				case ActionClose:
					if position > 0 {
						closePosition(openPx, bar.Date)
					}
				case ActionBuy:
					cost := openPx.Mul(decimal.NewFromInt(sig.Shares)).Mul(buyFactor)
					if cost.GreaterThan(cash) {
						e.logger.Debug("order rejected: insufficient cash",
							slog.String("date", bar.Date.Format("2006-01-02")),
							slog.Int64("shares", sig.Shares),
							slog.String("cost", cost.StringFixed(2)))
						continue
					}
					cash = cash.Sub(cost)
					position = sig.Shares
					entryTime = bar.Date
					entryPrice = openPx
					entryCost = cost
				}
			}
			pending = nil
		}

		if position > 0 {
			result.ExposureBars++
		}

		marked := cash.Add(decimal.NewFromFloat(bar.Close).Mul(decimal.NewFromInt(position)))
		result.EquityCurve = append(result.EquityCurve, marked.InexactFloat64())

		pending = strategy.OnBar(bar, position)
	}

	// Terminal state: liquidate whatever is still open at the last close
	if position > 0 {
		last := bars[len(bars)-1]
		closePosition(decimal.NewFromFloat(last.Close), last.Date)
		result.EquityCurve[len(result.EquityCurve)-1] = cash.InexactFloat64()
	}

	result.FinalCash = cash.InexactFloat64()

	e.logger.Info("backtest complete",
		slog.String("strategy", strategy.Name()),
		slog.String("symbol", series.Symbol),
		slog.Int("bars", len(bars)),
		slog.Int("trades", len(result.Trades)),
		slog.Float64("final_equity", result.FinalCash))

	return result, nil
}
