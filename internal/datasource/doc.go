// Package datasource provides acquisition of raw price history for a ticker.
//
// The Source interface exposes one capability: fetch the raw series for a
// symbol. HTTPSource implements it against a fixed ticker-to-URL table of
// hosted spreadsheet export links, with an explicit request timeout. Tests
// substitute a fixture-backed table via NewHTTPSourceWithTable, so nothing
// in the pipeline depends on network access.
//
// Fetched documents are CSV with Date, Open, High, Low, Close and Volume
// columns. Missing values are forward-filled before any downstream
// processing, matching the upstream data-cleaning convention.
package datasource
