package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	data := []byte(`Date,Open,High,Low,Close,Volume
2024-01-15,100.0,105.0,99.0,103.0,500000
2024-01-16,103.0,107.0,101.0,106.0,600000
2024-01-17,106.0,109.0,104.0,108.0,450000
`)

	bars, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), bars[0].Date)
	assert.Equal(t, 100.0, bars[0].Open)
	assert.Equal(t, 105.0, bars[0].High)
	assert.Equal(t, 99.0, bars[0].Low)
	assert.Equal(t, 103.0, bars[0].Close)
	assert.Equal(t, 500000.0, bars[0].Volume)
	assert.Equal(t, 108.0, bars[2].Close)
}

func TestParseCSV_ForwardFillsMissingValues(t *testing.T) {
	data := []byte(`Date,Open,High,Low,Close,Volume
2024-01-15,100.0,105.0,99.0,103.0,500000
2024-01-16,,107.0,101.0,,600000
2024-01-17,106.0,109.0,104.0,108.0,450000
`)

	bars, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	// Empty cells take the previous row's value
	assert.Equal(t, 100.0, bars[1].Open)
	assert.Equal(t, 103.0, bars[1].Close)
	assert.Equal(t, 107.0, bars[1].High)
}

func TestParseCSV_SortsByDate(t *testing.T) {
	data := []byte(`Date,Open,High,Low,Close,Volume
2024-01-17,106.0,109.0,104.0,108.0,450000
2024-01-15,100.0,105.0,99.0,103.0,500000
2024-01-16,103.0,107.0,101.0,106.0,600000
`)

	bars, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, bars, 3)

	for i := 1; i < len(bars); i++ {
		assert.True(t, bars[i-1].Date.Before(bars[i].Date),
			"bars should be sorted ascending by date")
	}
}

func TestParseCSV_TolerantHeaderAndBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`date, open ,High,Low,Close,Volume
2024-01-15,100.0,105.0,99.0,103.0,500000
`)...)

	bars, err := ParseCSV(data)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 100.0, bars[0].Open)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	data := []byte(`Date,Open,Close
2024-01-15,100.0,103.0
`)

	_, err := ParseCSV(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "High")
	assert.Contains(t, err.Error(), "Volume")
}

func TestParseCSV_NoDataRows(t *testing.T) {
	_, err := ParseCSV([]byte("Date,Open,High,Low,Close,Volume\n"))
	require.Error(t, err)
}

func TestParseCSV_UnparseableDate(t *testing.T) {
	data := []byte(`Date,Open,High,Low,Close,Volume
not-a-date,100.0,105.0,99.0,103.0,500000
`)

	_, err := ParseCSV(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable date")
}

func TestParseCSV_ThousandsSeparators(t *testing.T) {
	data := []byte(`Date,Open,High,Low,Close,Volume
2024-01-15,100.0,105.0,99.0,103.0,"1,500,000"
`)

	bars, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, 1500000.0, bars[0].Volume)
}
