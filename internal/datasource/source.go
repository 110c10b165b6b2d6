package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"overnight/pkg/contracts/domain"
)

// ErrUnknownTicker is returned when a ticker has no entry in the symbol table
var ErrUnknownTicker = errors.New("unknown ticker")

// Source fetches the raw price series for a symbol. Implementations include
// the hosted-spreadsheet HTTP source and local fixtures in tests.
type Source interface {
	// FetchRawSeries returns the full available raw history for the ticker,
	// forward-filled and sorted by date, at the source's native granularity.
	FetchRawSeries(ctx context.Context, ticker string) (*domain.PriceSeries, error)
}

// symbolTable maps tickers to the hosted spreadsheet export links holding
// their raw history. Adding a ticker requires a code change.
var symbolTable = map[string]string{
	"APPL": "https://edubuas-my.sharepoint.com/:x:/g/personal/davarynejad_m_buas_nl/EUjD8nLdpt1FmcNq1kQckBAB9gfHTn2Y_hl1zGOo5ecrYQ?e=AEmTL8",
	"AMZN": "https://edubuas-my.sharepoint.com/:x:/g/personal/davarynejad_m_buas_nl/ERqUB631cFlEilFPtvFw5MkBlq_bVvc4xa27svDLWGlU3A?e=nHbTKw",
	"FANG": "https://edubuas-my.sharepoint.com/:x:/g/personal/davarynejad_m_buas_nl/EejmVAFQLv5PqJGuFXcvgVYBGswiq_oQJ4LhzslJbLAoAA?e=SN9BLa",
	"GOOG": "https://edubuas-my.sharepoint.com/:x:/g/personal/davarynejad_m_buas_nl/ET6y-MR3SidHjGGmm8DQMn4BtpSO-GnAokJ8GI4LsghZDw?e=st6IyB",
	"TSLA": "https://edubuas-my.sharepoint.com/:x:/g/personal/davarynejad_m_buas_nl/Ecv4R01Cn75Koj7y8UFjxHMBazIVliolR9rioUwyT03vcw?e=uq2TSF",
}

// SupportedTickers returns the tickers present in the symbol table
func SupportedTickers() []string {
	tickers := make([]string, 0, len(symbolTable))
	for ticker := range symbolTable {
		tickers = append(tickers, ticker)
	}
	return tickers
}

// HTTPSource fetches raw series over HTTP from the fixed symbol table
type HTTPSource struct {
	client *http.Client
	urls   map[string]string
}

// NewHTTPSource creates an HTTPSource with an explicit request timeout.
// A stuck fetch aborts after the timeout instead of blocking indefinitely.
func NewHTTPSource(timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		urls:   symbolTable,
	}
}

// NewHTTPSourceWithTable creates an HTTPSource backed by a custom
// ticker-to-URL table. Used by tests to point at local fixture servers.
func NewHTTPSourceWithTable(timeout time.Duration, urls map[string]string) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		urls:   urls,
	}
}

// FetchRawSeries downloads and parses the raw CSV history for the ticker.
// The caller does not retry: a transport failure aborts the run.
func (s *HTTPSource) FetchRawSeries(ctx context.Context, ticker string) (*domain.PriceSeries, error) {
	url, ok := s.urls[ticker]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTicker, ticker)
	}

	// Hosted spreadsheet links need the download flag to serve raw CSV
	if !strings.Contains(url, "download=1") {
		if strings.Contains(url, "?") {
			url += "&download=1"
		} else {
			url += "?download=1"
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", ticker, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d fetching data for %s", resp.StatusCode, ticker)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", ticker, err)
	}

	bars, err := ParseCSV(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse data for %s: %w", ticker, err)
	}

	return &domain.PriceSeries{Symbol: ticker, Bars: bars}, nil
}
