package backtest

import (
	"github.com/shopspring/decimal"

	"overnight/pkg/contracts/domain"
)

// Action is the kind of instruction a strategy emits for the next session
type Action string

const (
	// ActionClose closes the entire open position
	ActionClose Action = "close"
	// ActionBuy opens a new long position of Signal.Shares whole shares
	ActionBuy Action = "buy"
)

// Signal is one instruction emitted by a strategy on a bar. Signals fill at
// the engine's execution price for the following session.
type Signal struct {
	Action Action
	Shares int64
}

// Strategy supplies entry/exit signals and sizing to the simulation engine.
// Order matching, fill pricing and commission are the engine's concern.
type Strategy interface {
	// Name returns the strategy identifier used in logs and artifacts.
	Name() string

	// OnBar is called once per bar with the engine's current open position
	// size. The returned signals execute at the next bar's open.
	OnBar(bar domain.PriceBar, position int64) []Signal
}

// Compile-time interface check.
var _ Strategy = (*CloseToOpenFlip)(nil)

// CloseToOpenFlip is the single built-in strategy: on every bar it closes
// any open position and opens a new full-notional long sized off the bar's
// close price. The strategy is unconditionally active, one flip per bar.
type CloseToOpenFlip struct {
	notional decimal.Decimal
}

// NewCloseToOpenFlip creates the strategy with the target dollar notional
// invested per position.
func NewCloseToOpenFlip(notional float64) *CloseToOpenFlip {
	return &CloseToOpenFlip{notional: decimal.NewFromFloat(notional)}
}

// Name returns "close-to-open-flip".
func (s *CloseToOpenFlip) Name() string {
	return "close-to-open-flip"
}

// OnBar closes the current position and sizes a new long of
// floor(notional / close) whole shares. If fewer than one share is
// affordable at the bar's close, no new position is opened.
func (s *CloseToOpenFlip) OnBar(bar domain.PriceBar, position int64) []Signal {
	var signals []Signal

	if position > 0 {
		signals = append(signals, Signal{Action: ActionClose})
	}

	if bar.Close <= 0 {
		return signals
	}

	shares := s.notional.Div(decimal.NewFromFloat(bar.Close)).Floor().IntPart()
	if shares >= 1 {
		signals = append(signals, Signal{Action: ActionBuy, Shares: shares})
	}

	return signals
}
