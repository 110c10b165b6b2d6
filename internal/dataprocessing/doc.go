// Package dataprocessing provides the tabular transforms applied to a raw
// price series before simulation.
//
// This package contains three main components:
//
// Resample: groups bars into Daily/Weekly/Monthly buckets and keeps the last
// observation of each bucket, dropping empty buckets.
//
// AddLags: appends lagged-close feature columns and drops the rows made
// incomplete by the shift.
//
// FilterLookback / ValidateForBacktest: restricts the series to a trailing
// calendar window and gates it on basic integrity before it is handed to the
// simulation engine.
package dataprocessing
