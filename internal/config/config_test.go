package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overnight/pkg/contracts/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "TSLA", cfg.Strategy.Ticker)
	assert.Equal(t, 10000.0, cfg.Strategy.InvestmentAmount)
	assert.Equal(t, 5, cfg.Strategy.LookbackYears)
	assert.Equal(t, "Daily", cfg.Data.Granularity)
	assert.Equal(t, 30*time.Second, cfg.Data.HTTPTimeout)
	assert.Equal(t, 0.001, cfg.Backtest.CommissionRate)
	assert.Equal(t, 100000.0, cfg.Backtest.InitialCash)
	assert.Equal(t, "results", cfg.Paths.ResultsDir)

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty ticker",
			mutate:  func(c *Config) { c.Strategy.Ticker = "" },
			wantErr: true,
		},
		{
			name:    "negative investment",
			mutate:  func(c *Config) { c.Strategy.InvestmentAmount = -100 },
			wantErr: true,
		},
		{
			name:    "zero lookback",
			mutate:  func(c *Config) { c.Strategy.LookbackYears = 0 },
			wantErr: true,
		},
		{
			name:    "unknown granularity",
			mutate:  func(c *Config) { c.Data.Granularity = "Hourly" },
			wantErr: true,
		},
		{
			name:   "weekly granularity",
			mutate: func(c *Config) { c.Data.Granularity = "Weekly" },
		},
		{
			name:    "commission of one",
			mutate:  func(c *Config) { c.Backtest.CommissionRate = 1 },
			wantErr: true,
		},
		{
			name:   "zero commission",
			mutate: func(c *Config) { c.Backtest.CommissionRate = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGranularity(t *testing.T) {
	cfg := Default()
	cfg.Data.Granularity = "Monthly"
	assert.Equal(t, domain.GranularityMonthly, cfg.Granularity())
}

func TestGetResultsPath(t *testing.T) {
	cfg := Default()
	cfg.Paths.ResultsDir = filepath.Join("some", "dir")
	assert.Equal(t, filepath.Join("some", "dir", "stats.csv"), cfg.GetResultsPath("stats.csv"))
}

func TestEnsureResultsDir(t *testing.T) {
	cfg := Default()
	cfg.Paths.ResultsDir = filepath.Join(t.TempDir(), "results", "nested")

	require.NoError(t, cfg.EnsureResultsDir())
	assert.DirExists(t, cfg.Paths.ResultsDir)

	// Idempotent on an existing directory
	assert.NoError(t, cfg.EnsureResultsDir())
}

func TestMergeConfigs(t *testing.T) {
	fileCfg := Default()
	fileCfg.Strategy.Ticker = "GOOG"
	fileCfg.Paths.ResultsDir = "file-results"

	envCfg := Config{}
	envCfg.Strategy.Ticker = "AMZN"

	merged := mergeConfigs(fileCfg, envCfg)

	// Env wins where set, file value survives where not
	assert.Equal(t, "AMZN", merged.Strategy.Ticker)
	assert.Equal(t, "file-results", merged.Paths.ResultsDir)
	assert.Equal(t, fileCfg.Strategy.InvestmentAmount, merged.Strategy.InvestmentAmount)
}
