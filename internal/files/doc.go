// Package files provides file system discovery utilities for the results
// directory.
//
// Discovery locates CSV files and, specifically, stats result files named
// stats_<YYYYMMDD_HHMMSS>.csv. The timestamp embedded in each filename is
// parsed and used to order runs; it is the natural key of a persisted run
// statistics record.
package files
