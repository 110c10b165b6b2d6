package domain

import (
	"time"
)

// PriceBar represents one OHLCV record for a single time bucket
type PriceBar struct {
	Date   time.Time `json:"date" csv:"Date"`
	Open   float64   `json:"open" csv:"Open" validate:"min=0"`
	High   float64   `json:"high" csv:"High" validate:"min=0"`
	Low    float64   `json:"low" csv:"Low" validate:"min=0"`
	Close  float64   `json:"close" csv:"Close" validate:"min=0"`
	Volume float64   `json:"volume" csv:"Volume" validate:"min=0"`
}

// Granularity defines the bucket width used when resampling a price series
type Granularity string

const (
	GranularityDaily   Granularity = "Daily"
	GranularityWeekly  Granularity = "Weekly"
	GranularityMonthly Granularity = "Monthly"
)

// Valid reports whether the granularity is one of the supported bucket widths
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDaily, GranularityWeekly, GranularityMonthly:
		return true
	}
	return false
}

// Frequency returns the short frequency code for the granularity
// ("D", "W", "M"), matching the notice emitted when a series is resampled
func (g Granularity) Frequency() string {
	switch g {
	case GranularityWeekly:
		return "W"
	case GranularityMonthly:
		return "M"
	default:
		return "D"
	}
}

// PriceSeries is an ordered sequence of price bars indexed by date.
// It is built once by the data pipeline and never mutated afterwards.
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
	// Lags holds optional lagged-close feature columns keyed by column name
	// (e.g. "Lag_1"). Parallel to Bars; not consumed by the strategy.
	Lags map[string][]float64 `json:"lags,omitempty"`
}

// Len returns the number of bars in the series
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// First returns the earliest bar in the series
func (s *PriceSeries) First() PriceBar {
	if len(s.Bars) == 0 {
		return PriceBar{}
	}
	return s.Bars[0]
}

// Last returns the latest bar in the series
func (s *PriceSeries) Last() PriceBar {
	if len(s.Bars) == 0 {
		return PriceBar{}
	}
	return s.Bars[len(s.Bars)-1]
}
