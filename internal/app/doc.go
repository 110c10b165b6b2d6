// Package app wires the data pipeline, simulation engine and exporters into
// a single backtest run.
package app
