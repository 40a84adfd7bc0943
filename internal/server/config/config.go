// Package config handles configuration for the server component: defaults,
// an optional JSON file, environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the auth server.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP API.
//   - DatabaseDSN: postgres://, sqlite:// or memory:// connection string.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: access token lifetime.
//   - BcryptCost: work factor for password hashing.
//   - ShutdownTimeout: how long in-flight requests get on shutdown.
//   - LogLevel: debug, info, warn or error.
//   - MaxRequestBodyBytes: upper bound for JSON request bodies.
type Config struct {
	HTTPAddr                    string        `env:"HTTP_ADDR"`
	DatabaseDSN                 string        `env:"DATABASE_URL"`
	SecretKey                   string        `env:"JWT_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"JWT_ACCESS_TOKEN_EXPIRES"`
	BcryptCost                  int           `env:"BCRYPT_COST"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel                    string        `env:"LOG_LEVEL"`
	MaxRequestBodyBytes         int64         `env:"MAX_REQUEST_BODY_BYTES"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":5000"
	c.DatabaseDSN = "sqlite://userauth.db"
	c.SecretKey = "jwt-secret-change-in-production"
	c.AccessTokenValidityDuration = time.Hour
	c.BcryptCost = 10
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.MaxRequestBodyBytes = 1 << 20
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is empty"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is empty"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if c.MaxRequestBodyBytes <= 0 {
		errs = append(errs, errors.New("max request body size must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file (-c/-config), the environment and finally the
// command-line flags in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	flags, err := parseFlags(args)
	if err != nil {
		return nil, err
	}

	if flags.configFile != "" {
		if err := parseJSON(cfg, flags.configFile); err != nil {
			return nil, err
		}
	}

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	flags.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
