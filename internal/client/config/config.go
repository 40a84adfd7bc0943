package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - ServerURL: base URL of the auth server, without the /api suffix.
//   - RequestTimeout: per-request HTTP timeout.
//   - TokenFile: where register/login store the access token for profile.
type Config struct {
	ServerURL      string        `env:"USERAUTH_SERVER_URL"`
	RequestTimeout time.Duration `env:"USERAUTH_TIMEOUT"`
	TokenFile      string        `env:"USERAUTH_TOKEN_FILE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = defaultTokenFile()
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".userauth_token"
	}
	return filepath.Join(dir, "userauth", "token")
}

// Validate rejects unusable settings.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("server url must be absolute, e.g. http://127.0.0.1:5000")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.TokenFile == "" {
		return errors.New("token file is empty")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if -c is given), the environment and command-line flags. Later
// sources take precedence over earlier ones. The non-flag arguments are
// returned as the command line to run.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	flags, err := parseFlags(args)
	if err != nil {
		return nil, nil, err
	}

	if flags.configFile != "" {
		if err := parseJSON(cfg, flags.configFile); err != nil {
			return nil, nil, err
		}
	}

	if err := parseEnv(cfg); err != nil {
		return nil, nil, err
	}

	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, flags.rest, nil
}
