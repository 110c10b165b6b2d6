package datasource

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"overnight/pkg/contracts/domain"
)

// dateFormats lists the date layouts seen in the hosted spreadsheets
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

// ParseCSV parses a raw CSV document into price bars. The document must have
// a header row with at least Date, Open, High, Low, Close and Volume columns.
// Missing values are forward-filled column by column before parsing, matching
// the upstream cleaning step; rows with no prior value to fill from are
// dropped. Bars are returned sorted by date ascending.
func ParseCSV(data []byte) ([]domain.PriceBar, error) {
	// Strip a UTF-8 BOM if the export carries one
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV has no data rows")
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	forwardFill(rows[1:])

	var bars []domain.PriceBar
	for i, row := range rows[1:] {
		if len(row) <= columns.max() {
			continue
		}

		dateStr := strings.TrimSpace(row[columns.date])
		if dateStr == "" {
			continue
		}

		date, err := parseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}

		bar := domain.PriceBar{Date: date}
		if bar.Open, err = parseFloat(row[columns.open]); err != nil {
			return nil, fmt.Errorf("row %d: invalid Open: %w", i+2, err)
		}
		if bar.High, err = parseFloat(row[columns.high]); err != nil {
			return nil, fmt.Errorf("row %d: invalid High: %w", i+2, err)
		}
		if bar.Low, err = parseFloat(row[columns.low]); err != nil {
			return nil, fmt.Errorf("row %d: invalid Low: %w", i+2, err)
		}
		if bar.Close, err = parseFloat(row[columns.close]); err != nil {
			return nil, fmt.Errorf("row %d: invalid Close: %w", i+2, err)
		}
		if bar.Volume, err = parseFloat(row[columns.volume]); err != nil {
			return nil, fmt.Errorf("row %d: invalid Volume: %w", i+2, err)
		}

		bars = append(bars, bar)
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("CSV has no parseable rows")
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	return bars, nil
}

// columnIndex holds the header positions of the required OHLCV columns
type columnIndex struct {
	date, open, high, low, close, volume int
}

func (c columnIndex) max() int {
	m := c.date
	for _, v := range []int{c.open, c.high, c.low, c.close, c.volume} {
		if v > m {
			m = v
		}
	}
	return m
}

// mapColumns locates the required columns in the header row
func mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{date: -1, open: -1, high: -1, low: -1, close: -1, volume: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			idx.date = i
		case "open":
			idx.open = i
		case "high":
			idx.high = i
		case "low":
			idx.low = i
		case "close", "adj close":
			if idx.close == -1 || strings.EqualFold(strings.TrimSpace(name), "close") {
				idx.close = i
			}
		case "volume":
			idx.volume = i
		}
	}

	missing := []string{}
	for name, pos := range map[string]int{
		"Date": idx.date, "Open": idx.open, "High": idx.high,
		"Low": idx.low, "Close": idx.close, "Volume": idx.volume,
	} {
		if pos == -1 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return idx, fmt.Errorf("CSV missing required columns: %s", strings.Join(missing, ", "))
	}

	return idx, nil
}

// forwardFill replaces empty cells with the last non-empty value seen in the
// same column, in place
func forwardFill(rows [][]string) {
	if len(rows) == 0 {
		return
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	last := make([]string, width)
	for _, row := range rows {
		for i := range row {
			if strings.TrimSpace(row[i]) == "" {
				row[i] = last[i]
			} else {
				last[i] = row[i]
			}
		}
	}
}

// parseDate tries the known date layouts in order
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// parseFloat parses a numeric cell, tolerating thousands separators
func parseFloat(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(s, 64)
}
