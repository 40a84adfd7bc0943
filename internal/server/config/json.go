package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userauth/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. It relies on
// timex.Duration so durations can be strings like "15m" or integer
// nanoseconds. Zero values mean "not set" and keep the previous value.
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout"`
	LogLevel                    string         `json:"log_level"`
	MaxRequestBodyBytes         int64          `json:"max_request_body_bytes"`
}

// parseJSON reads path and overlays its non-zero fields onto config.
func parseJSON(config *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.ShutdownTimeout.Duration != 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.MaxRequestBodyBytes != 0 {
		config.MaxRequestBodyBytes = c.MaxRequestBodyBytes
	}
	return nil
}
