package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:       AppConfig{Environment: "development"},
		Logger:    LoggerConfig{Level: "info"},
		Storage:   StorageConfig{DataPath: "/var/lib/palette"},
		Server:    ServerConfig{Port: "8080"},
		Session:   SessionConfig{TTL: time.Hour},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 10, Burst: 20},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			if tt.valid {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.Logger.Level = "trace" }, "invalid log level"},
		{"data path", func(c *Config) { c.Storage.DataPath = "" }, "data path cannot be empty"},
		{"port", func(c *Config) { c.Server.Port = "http" }, "invalid server port"},
		{"session ttl", func(c *Config) { c.Session.TTL = 0 }, "session TTL must be positive"},
		{"rate limit", func(c *Config) { c.RateLimit.RPS = 0 }, "rate limit"},
		{"otel endpoint", func(c *Config) { c.Metrics.Enabled = true }, "OTEL_ENDPOINT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_RateLimitDisabledIgnoresValues(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit = RateLimitConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "LOG_LEVEL", "DATA_PATH", "SERVER_PORT", "SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "CORS_ALLOWED_ORIGINS",
		"SESSION_TTL", "RATE_LIMIT_ENABLED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"OTEL_ENABLED", "OTEL_ENDPOINT", "OTEL_INSECURE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := Load([]string{"-data-path", dir, "-env-file", filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 20.0, cfg.RateLimit.RPS)
	assert.False(t, cfg.Metrics.Enabled)

	assert.Equal(t, filepath.Join(dir, "favorites.db"), cfg.Storage.FavoritesDB())
	assert.Equal(t, filepath.Join(dir, "sessions"), cfg.Storage.SessionsDir())
	assert.Equal(t, filepath.Join(dir, "search"), cfg.Storage.SearchIndex())
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load([]string{"-data-path", dir, "-port", "9100", "-env-file", filepath.Join(dir, "none")})
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# palette settings\nLOG_LEVEL=debug\nCORS_ALLOWED_ORIGINS=\"https://a.example, https://b.example\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))
	clearEnv(t)

	cfg, err := Load([]string{"-data-path", dir, "-env-file", envPath})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	_, err := Load([]string{"-data-path", dir, "-session-ttl", "forever", "-env-file", filepath.Join(dir, "none")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TTL")
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/palettes", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDir, "palettes"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)

	got, err = expandPath("relative/dir", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	assert.Equal(t, "flag", getConfigValue("flag", "PALETTE_TEST_KEY", "default"))

	t.Setenv("PALETTE_TEST_KEY", "env")
	assert.Equal(t, "env", getConfigValue("", "PALETTE_TEST_KEY", "default"))

	t.Setenv("PALETTE_TEST_KEY", "")
	assert.Equal(t, "default", getConfigValue("", "PALETTE_TEST_KEY", "default"))
}

func TestTypedConfigValues(t *testing.T) {
	assert.True(t, getBoolConfigValue("YES", "UNSET_KEY_X", false))
	assert.False(t, getBoolConfigValue("nope", "UNSET_KEY_X", true))
	assert.True(t, getBoolConfigValue("", "UNSET_KEY_X", true))

	assert.Equal(t, 7, getIntConfigValue("7", "UNSET_KEY_X", 1))
	assert.Equal(t, 1, getIntConfigValue("seven", "UNSET_KEY_X", 1))

	assert.Equal(t, 2.5, getFloatConfigValue("2.5", "UNSET_KEY_X", 1))
	assert.Equal(t, 1.0, getFloatConfigValue("x", "UNSET_KEY_X", 1))
}
