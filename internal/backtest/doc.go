// Package backtest provides the simulation engine and the built-in
// close-to-open flip strategy.
//
// The engine replays a price series bar by bar. Strategies emit signals on
// each bar; signals fill at the following bar's open, a new entry closes the
// previous position first, and any position still open at the end of the
// series is liquidated at the last close. Commission is applied
// proportionally on both sides of every fill. Cash and position arithmetic
// uses decimals; the marked equity curve and the derived statistics use
// floats.
package backtest
