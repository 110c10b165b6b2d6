// Package analysis provides cross-run result aggregation and visualization.
//
// The Aggregator discovers all persisted stats files, concatenates them
// (failing loudly on a column-set mismatch), computes arithmetic means of
// the five headline metrics, and backs two artifacts: the strategy summary
// CSV and a four-panel bar-chart dashboard workbook. Discovering zero files
// is an empty-state signal, not an error.
//
// RenderBacktestPlot produces the per-run HTML visualization with an inline
// SVG equity curve.
package analysis
