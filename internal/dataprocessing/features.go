package dataprocessing

import (
	"fmt"

	"overnight/pkg/contracts/domain"
)

// AddLags appends numLags lagged-close feature columns to the series, where
// column Lag_i holds the close price shifted backward by i*lagGap bars. Rows
// that become incomplete are dropped, so the earliest numLags*lagGap bars are
// removed. The operation is order-preserving and purely additive; the current
// strategy does not consume the columns but they remain available for
// extension.
func AddLags(series *domain.PriceSeries, numLags, lagGap int) *domain.PriceSeries {
	if numLags <= 0 {
		return series
	}
	if lagGap < 1 {
		lagGap = 1
	}

	drop := numLags * lagGap
	if drop >= len(series.Bars) {
		return &domain.PriceSeries{Symbol: series.Symbol, Bars: nil, Lags: map[string][]float64{}}
	}

	lags := make(map[string][]float64, numLags)
	retained := len(series.Bars) - drop

	for i := 1; i <= numLags; i++ {
		name := fmt.Sprintf("Lag_%d", i)
		column := make([]float64, retained)
		shift := i * lagGap
		for r := 0; r < retained; r++ {
			// Row r of the output corresponds to bar r+drop of the input
			column[r] = series.Bars[r+drop-shift].Close
		}
		lags[name] = column
	}

	bars := make([]domain.PriceBar, retained)
	copy(bars, series.Bars[drop:])

	return &domain.PriceSeries{Symbol: series.Symbol, Bars: bars, Lags: lags}
}
