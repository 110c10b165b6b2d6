package analysis

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"overnight/pkg/contracts/domain"
)

const plotWidth, plotHeight = 960, 420

// PlotFilename returns the interactive plot filename for the given run time
func PlotFilename(t time.Time) string {
	return fmt.Sprintf("backtest_plot_%s.html", t.Format("20060102_150405"))
}

var plotTemplate = template.Must(template.New("plot").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Ticker}} — {{.Strategy}} backtest</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; margin-bottom: 2em; }
td, th { border: 1px solid #ccc; padding: 4px 12px; text-align: right; }
th { background: #f4f4f4; }
svg { border: 1px solid #ccc; background: #fafafa; }
.axis { font-size: 11px; fill: #666; }
</style>
</head>
<body>
<h1>{{.Ticker}} — {{.Strategy}}</h1>
<table>
<tr><th>Return [%]</th><th>Sharpe Ratio</th><th>Max. Drawdown [%]</th><th>Win Rate [%]</th><th># Trades</th></tr>
<tr><td>{{printf "%.2f" .ReturnPct}}</td><td>{{printf "%.2f" .SharpeRatio}}</td><td>{{printf "%.2f" .MaxDrawdownPct}}</td><td>{{printf "%.2f" .WinRatePct}}</td><td>{{.Trades}}</td></tr>
</table>
<h2>Equity curve</h2>
<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<polyline points="{{.Points}}" fill="none" stroke="#2a7" stroke-width="1.5"/>
<text class="axis" x="5" y="14">{{printf "%.0f" .EquityMax}}</text>
<text class="axis" x="5" y="{{.Height}}" dy="-4">{{printf "%.0f" .EquityMin}}</text>
<text class="axis" x="5" y="{{.Height}}" dy="-18">{{.StartDate}}</text>
<text class="axis" x="{{.Width}}" y="{{.Height}}" dy="-18" text-anchor="end">{{.EndDate}}</text>
</svg>
</body>
</html>
`))

// plotData is the template payload for the interactive plot
type plotData struct {
	Ticker         string
	Strategy       string
	ReturnPct      float64
	SharpeRatio    float64
	MaxDrawdownPct float64
	WinRatePct     float64
	Trades         int
	Width          int
	Height         int
	Points         string
	EquityMin      float64
	EquityMax      float64
	StartDate      string
	EndDate        string
}

// RenderBacktestPlot writes a self-contained HTML visualization of one run:
// its headline metrics and the equity curve as an inline SVG. A failure here
// is recoverable; the numeric results on disk remain valid.
func RenderBacktestPlot(record domain.StatsRecord, strategy string, equity []float64, path string) error {
	if len(equity) < 2 {
		return fmt.Errorf("equity curve too short to plot")
	}

	low, high := equity[0], equity[0]
	for _, value := range equity {
		if value < low {
			low = value
		}
		if value > high {
			high = value
		}
	}
	spread := high - low
	if spread == 0 {
		spread = 1
	}

	points := ""
	for i, value := range equity {
		x := float64(i) / float64(len(equity)-1) * plotWidth
		y := plotHeight - (value-low)/spread*plotHeight
		points += fmt.Sprintf("%.1f,%.1f ", x, y)
	}

	data := plotData{
		Ticker:         record.Ticker,
		Strategy:       strategy,
		ReturnPct:      record.ReturnPct,
		SharpeRatio:    record.SharpeRatio,
		MaxDrawdownPct: record.MaxDrawdownPct,
		WinRatePct:     record.WinRatePct,
		Trades:         record.Trades,
		Width:          plotWidth,
		Height:         plotHeight,
		Points:         points,
		EquityMin:      low,
		EquityMax:      high,
		StartDate:      record.Start.Format("2006-01-02"),
		EndDate:        record.End.Format("2006-01-02"),
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer file.Close()

	if err := plotTemplate.Execute(file, data); err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}

	return nil
}
