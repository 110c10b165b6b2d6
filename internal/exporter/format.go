package exporter

import (
	"strconv"
)

// TimestampFormat is the second-resolution layout embedded in result
// filenames; the embedded timestamp is the record's natural key
const TimestampFormat = "20060102_150405"

// formatFloat formats a float64 value for CSV output
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an integer value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
