package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"overnight/pkg/contracts/domain"
)

// Config represents the complete application configuration.
// It is loaded once at startup and passed by value through the call chain;
// nothing mutates it after Load returns.
type Config struct {
	Strategy StrategyConfig `yaml:"strategy" envconfig:"STRATEGY"`
	Data     DataConfig     `yaml:"data" envconfig:"DATA"`
	Backtest BacktestConfig `yaml:"backtest" envconfig:"BACKTEST"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
}

// StrategyConfig contains the strategy parameters
type StrategyConfig struct {
	Ticker           string  `yaml:"ticker" envconfig:"TICKER" default:"TSLA" validate:"required"`
	InvestmentAmount float64 `yaml:"investment_amount" envconfig:"INVESTMENT_AMOUNT" default:"10000" validate:"gt=0"`
	LookbackYears    int     `yaml:"lookback_years" envconfig:"LOOKBACK_YEARS" default:"5" validate:"gt=0"`
}

// DataConfig contains data acquisition configuration
type DataConfig struct {
	Granularity string        `yaml:"granularity" envconfig:"GRANULARITY" default:"Daily" validate:"oneof=Daily Weekly Monthly"`
	HTTPTimeout time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
	NumLags     int           `yaml:"num_lags" envconfig:"NUM_LAGS" default:"0" validate:"min=0"`
	LagGap      int           `yaml:"lag_gap" envconfig:"LAG_GAP" default:"1" validate:"min=1"`
}

// BacktestConfig contains simulation engine parameters
type BacktestConfig struct {
	CommissionRate float64 `yaml:"commission_rate" envconfig:"COMMISSION_RATE" default:"0.001" validate:"min=0,lt=1"`
	InitialCash    float64 `yaml:"initial_cash" envconfig:"INITIAL_CASH" default:"100000" validate:"gt=0"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ResultsDir string `yaml:"results_dir" envconfig:"RESULTS_DIR" default:"results" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/overnight.log"`
}

// Load loads configuration from environment variables and config file
func Load() (Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("OVERNIGHT", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := fileConfig

	if envConfig.Strategy.Ticker != "" {
		merged.Strategy.Ticker = envConfig.Strategy.Ticker
	}
	if envConfig.Strategy.InvestmentAmount != 0 {
		merged.Strategy.InvestmentAmount = envConfig.Strategy.InvestmentAmount
	}
	if envConfig.Strategy.LookbackYears != 0 {
		merged.Strategy.LookbackYears = envConfig.Strategy.LookbackYears
	}
	if envConfig.Data.Granularity != "" {
		merged.Data.Granularity = envConfig.Data.Granularity
	}
	if envConfig.Data.HTTPTimeout != 0 {
		merged.Data.HTTPTimeout = envConfig.Data.HTTPTimeout
	}
	if envConfig.Data.NumLags != 0 {
		merged.Data.NumLags = envConfig.Data.NumLags
	}
	if envConfig.Data.LagGap != 0 {
		merged.Data.LagGap = envConfig.Data.LagGap
	}
	if envConfig.Backtest.CommissionRate != 0 {
		merged.Backtest.CommissionRate = envConfig.Backtest.CommissionRate
	}
	if envConfig.Backtest.InitialCash != 0 {
		merged.Backtest.InitialCash = envConfig.Backtest.InitialCash
	}
	if envConfig.Paths.ResultsDir != "" {
		merged.Paths.ResultsDir = envConfig.Paths.ResultsDir
	}
	if envConfig.Logging.Level != "" {
		merged.Logging.Level = envConfig.Logging.Level
	}
	if envConfig.Logging.Format != "" {
		merged.Logging.Format = envConfig.Logging.Format
	}
	if envConfig.Logging.Output != "" {
		merged.Logging.Output = envConfig.Logging.Output
	}
	if envConfig.Logging.FilePath != "" {
		merged.Logging.FilePath = envConfig.Logging.FilePath
	}

	return merged
}

// Validate validates the configuration using struct tags
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if !domain.Granularity(c.Data.Granularity).Valid() {
		return fmt.Errorf("invalid granularity: %s", c.Data.Granularity)
	}

	return nil
}

// Granularity returns the configured data granularity as a domain type
func (c *Config) Granularity() domain.Granularity {
	return domain.Granularity(c.Data.Granularity)
}

// GetResultsPath returns the path of a file inside the results directory
func (c *Config) GetResultsPath(filename string) string {
	return filepath.Join(c.Paths.ResultsDir, filename)
}

// EnsureResultsDir creates the results directory if it does not exist
func (c *Config) EnsureResultsDir() error {
	if err := os.MkdirAll(c.Paths.ResultsDir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory %s: %w", c.Paths.ResultsDir, err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() Config {
	return Config{
		Strategy: StrategyConfig{
			Ticker:           "TSLA",
			InvestmentAmount: 10000,
			LookbackYears:    5,
		},
		Data: DataConfig{
			Granularity: string(domain.GranularityDaily),
			HTTPTimeout: 30 * time.Second,
			NumLags:     0,
			LagGap:      1,
		},
		Backtest: BacktestConfig{
			CommissionRate: 0.001,
			InitialCash:    100000,
		},
		Paths: PathsConfig{
			ResultsDir: "results",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/overnight.log",
		},
	}
}
