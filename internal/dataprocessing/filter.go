package dataprocessing

import (
	"fmt"
	"time"

	"overnight/pkg/contracts/domain"
)

// FilterLookback retains only bars dated at or after now minus 365*years
// calendar days. Calendar days are used rather than trading days, so the
// number of sessions returned varies by ticker and calendar.
func FilterLookback(series *domain.PriceSeries, years int, now time.Time) *domain.PriceSeries {
	start := now.Add(-time.Duration(years) * 365 * 24 * time.Hour)

	var bars []domain.PriceBar
	for _, bar := range series.Bars {
		if !bar.Date.Before(start) {
			bars = append(bars, bar)
		}
	}

	filtered := &domain.PriceSeries{Symbol: series.Symbol, Bars: bars}

	// Lag columns are parallel to the bars; keep the tail that survived
	if len(series.Lags) > 0 {
		dropped := len(series.Bars) - len(bars)
		filtered.Lags = make(map[string][]float64, len(series.Lags))
		for name, column := range series.Lags {
			if dropped <= len(column) {
				filtered.Lags[name] = column[dropped:]
			}
		}
	}

	return filtered
}

// ValidateForBacktest checks the integrity of a series before simulation:
// it must be non-empty, strictly increasing by date, and every bar must
// carry usable OHLC prices. This is the data-integrity gate behind the
// required-columns contract, not a filtering step.
func ValidateForBacktest(series *domain.PriceSeries) error {
	if series == nil || len(series.Bars) == 0 {
		return fmt.Errorf("no bars remain after filtering")
	}

	for i, bar := range series.Bars {
		if i > 0 && !series.Bars[i-1].Date.Before(bar.Date) {
			return fmt.Errorf("bar dates not strictly increasing at index %d (%s)", i, bar.Date.Format("2006-01-02"))
		}
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return fmt.Errorf("bar %s is missing required price data", bar.Date.Format("2006-01-02"))
		}
	}

	return nil
}
