// Package config provides configuration loading for the overnight backtest
// pipeline.
//
// Configuration is resolved from three layers, lowest precedence first:
// built-in defaults, an optional YAML file (config.yaml or
// configs/config.yaml), and OVERNIGHT_* environment variables. The resulting
// Config value is validated once and then passed by argument through the
// call chain; no component mutates shared configuration state.
package config
