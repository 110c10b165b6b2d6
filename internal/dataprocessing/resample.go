package dataprocessing

import (
	"log/slog"
	"sort"
	"time"

	"overnight/pkg/contracts/domain"
)

// Resample groups the series into buckets of the requested granularity and
// keeps the last bar of each bucket as the representative bar, stamped with
// the bucket's closing label. Buckets with no data are dropped.
//
// Only the last row's values survive a bucket: high, low and volume are NOT
// aggregated across the bucket. This approximates "value as of bucket close"
// and is kept intentionally for compatibility with the upstream pipeline.
func Resample(series *domain.PriceSeries, granularity domain.Granularity) *domain.PriceSeries {
	slog.Info("The set level of Granularity is",
		slog.String("frequency", granularity.Frequency()),
		slog.String("symbol", series.Symbol))

	buckets := make(map[time.Time]domain.PriceBar)
	for _, bar := range series.Bars {
		label := bucketLabel(bar.Date, granularity)
		existing, ok := buckets[label]
		if !ok || !bar.Date.Before(existing.Date) {
			buckets[label] = bar
		}
	}

	resampled := make([]domain.PriceBar, 0, len(buckets))
	for label, bar := range buckets {
		bar.Date = label
		resampled = append(resampled, bar)
	}
	sort.Slice(resampled, func(i, j int) bool {
		return resampled[i].Date.Before(resampled[j].Date)
	})

	return &domain.PriceSeries{Symbol: series.Symbol, Bars: resampled}
}

// bucketLabel returns the closing label of the bucket containing date
func bucketLabel(date time.Time, granularity domain.Granularity) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch granularity {
	case domain.GranularityWeekly:
		// Weeks close on Sunday
		offset := (7 - int(day.Weekday())) % 7
		return day.AddDate(0, 0, offset)
	case domain.GranularityMonthly:
		// Months close on their last calendar day
		firstOfNext := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()).AddDate(0, 1, 0)
		return firstOfNext.AddDate(0, 0, -1)
	default:
		return day
	}
}
