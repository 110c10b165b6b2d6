package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGranularityValid(t *testing.T) {
	assert.True(t, GranularityDaily.Valid())
	assert.True(t, GranularityWeekly.Valid())
	assert.True(t, GranularityMonthly.Valid())
	assert.False(t, Granularity("Hourly").Valid())
	assert.False(t, Granularity("").Valid())
	assert.False(t, Granularity("daily").Valid())
}

func TestGranularityFrequency(t *testing.T) {
	assert.Equal(t, "D", GranularityDaily.Frequency())
	assert.Equal(t, "W", GranularityWeekly.Frequency())
	assert.Equal(t, "M", GranularityMonthly.Frequency())
}

func TestPriceSeriesAccessors(t *testing.T) {
	empty := &PriceSeries{Symbol: "TEST"}
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, PriceBar{}, empty.First())
	assert.Equal(t, PriceBar{}, empty.Last())

	first := PriceBar{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Close: 100}
	last := PriceBar{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 101}
	series := &PriceSeries{Symbol: "TEST", Bars: []PriceBar{first, last}}

	assert.Equal(t, 2, series.Len())
	assert.Equal(t, first, series.First())
	assert.Equal(t, last, series.Last())
}
