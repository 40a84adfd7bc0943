package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userauth/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// non-zero values are copied into the runtime Config.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	TokenFile      string         `json:"token_file"`
}

func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	return nil
}
