// Package exporter provides CSV export of backtest artifacts.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with directory creation and a
// UTF-8 BOM for Excel compatibility.
//
// StatsExporter: Serializes one run's statistics record to a timestamped
// stats_<YYYYMMDD_HHMMSS>.csv file, and the cross-run aggregate to a
// strategy_summary_<timestamp>.csv file. Result files are append-only:
// every run produces a new timestamped file and existing files are never
// touched.
package exporter
