package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"HTTP_ADDR", "DATABASE_URL", "JWT_SECRET_KEY", "JWT_ACCESS_TOKEN_EXPIRES",
		"BCRYPT_COST", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "MAX_REQUEST_BODY_BYTES",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	want := &Config{
		HTTPAddr:                    ":5000",
		DatabaseDSN:                 "sqlite://userauth.db",
		SecretKey:                   "jwt-secret-change-in-production",
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  10,
		ShutdownTimeout:             10 * time.Second,
		LogLevel:                    "info",
		MaxRequestBodyBytes:         1 << 20,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_JSONOverridesDefaults(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, `{
		"http_addr": ":8080",
		"database_dsn": "memory://",
		"access_token_validity_duration": "15m",
		"shutdown_timeout": 3000000000
	}`)

	cfg, err := LoadConfig([]string{"-c", path})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "memory://", cfg.DatabaseDSN)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, "jwt-secret-change-in-production", cfg.SecretKey)
	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)

	path := writeConfigFile(t, `{"http_addr": ":1111", "secret_key": "from-json", "log_level": "warn"}`)
	t.Setenv("HTTP_ADDR", ":2222")
	t.Setenv("JWT_SECRET_KEY", "from-env")
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRES", "30m")

	cfg, err := LoadConfig([]string{"-config", path, "-a", ":3333", "-t", "5"})
	require.NoError(t, err)

	assert.Equal(t, ":3333", cfg.HTTPAddr, "flag beats env and json")
	assert.Equal(t, "from-env", cfg.SecretKey, "env beats json")
	assert.Equal(t, "warn", cfg.LogLevel, "json beats defaults")
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenValidityDuration, "flag minutes beat env")
}

func TestLoadConfig_AllFlags(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig([]string{
		"-a", "127.0.0.1:9000",
		"-d", "postgres://u:p@localhost/db",
		"-s", "flag-secret",
		"-t", "90",
		"-b", "12",
		"-l", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseDSN)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 90*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite:///tmp/users.db")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("MAX_REQUEST_BODY_BYTES", "2048")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite:///tmp/users.db", cfg.DatabaseDSN)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, int64(2048), cfg.MaxRequestBodyBytes)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("bad env value", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BCRYPT_COST", "lots")
		_, err := LoadConfig(nil)
		require.Error(t, err)
	})

	t.Run("missing json file", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		clearEnv(t)
		path := writeConfigFile(t, `{"http_addr":`)
		_, err := LoadConfig([]string{"-c", path})
		require.Error(t, err)
	})

	t.Run("bad duration in json", func(t *testing.T) {
		clearEnv(t)
		path := writeConfigFile(t, `{"shutdown_timeout": true}`)
		_, err := LoadConfig([]string{"-c", path})
		require.Error(t, err)
	})

	t.Run("unknown flag", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig([]string{"-zzz"})
		require.Error(t, err)
	})

	t.Run("empty secret fails validation", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig([]string{"-s", ""})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is empty")
	})

	t.Run("zero ttl fails validation", func(t *testing.T) {
		clearEnv(t)
		_, err := LoadConfig([]string{"-t", "0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access token validity")
	})
}
