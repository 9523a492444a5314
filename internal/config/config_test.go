package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func validConfig() Config {
	var cfg Config
	cfg.Polling.CheckIntervalMinutes = 60
	cfg.Sources = []Source{
		{Name: "Acme", URL: "https://example.com/careers", Keywords: []string{"engineer"}},
	}
	return cfg
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
sources:
  - name: Acme
    url: https://example.com/careers
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.App.DataDir)
	assert.Equal(t, 60, cfg.Polling.CheckIntervalMinutes)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSeconds)
	assert.Equal(t, 1.0, cfg.Fetch.RequestsPerSecond)
	assert.Equal(t, 2, cfg.Fetch.Burst)
	assert.Contains(t, cfg.Fetch.UserAgent, "Mozilla/5.0")
	assert.False(t, cfg.Notify.OnFirstRun)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token-from-env")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	t.Setenv("CHECK_INTERVAL", "15")

	path := writeConfig(t, `
polling:
  check_interval_minutes: 60
telegram:
  bot_token: token-from-file
  chat_id: 1
sources:
  - name: Acme
    url: https://example.com/careers
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "token-from-env", cfg.Telegram.BotToken)
	assert.Equal(t, int64(12345), cfg.Telegram.ChatID)
	assert.Equal(t, 15, cfg.Polling.CheckIntervalMinutes)
}

func TestLoad_BadEnvValuesIgnored(t *testing.T) {
	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	t.Setenv("CHECK_INTERVAL", "-3")

	path := writeConfig(t, `
polling:
  check_interval_minutes: 45
telegram:
  chat_id: 7
sources:
  - name: Acme
    url: https://example.com/careers
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Telegram.ChatID)
	assert.Equal(t, 45, cfg.Polling.CheckIntervalMinutes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "no sources",
			mutate:  func(c *Config) { c.Sources = nil },
			wantErr: "at least one source is required",
		},
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.Sources[0].Name = "  " },
			wantErr: "sources[0].name is required",
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.Sources[0].URL = "" },
			wantErr: "sources[0].url is required",
		},
		{
			name:    "non-http url",
			mutate:  func(c *Config) { c.Sources[0].URL = "ftp://example.com" },
			wantErr: "sources[0].url must be http(s)",
		},
		{
			name: "duplicate source names",
			mutate: func(c *Config) {
				c.Sources = append(c.Sources, Source{Name: "acme", URL: "https://other.com/jobs"})
			},
			wantErr: `sources[1].name "acme" is duplicated`,
		},
		{
			name:    "empty keyword entry",
			mutate:  func(c *Config) { c.Sources[0].Keywords = []string{"engineer", " "} },
			wantErr: "sources[0].keywords[1] cannot be empty",
		},
		{
			name:    "non-positive interval",
			mutate:  func(c *Config) { c.Polling.CheckIntervalMinutes = 0 },
			wantErr: "polling.check_interval_minutes must be > 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveAtomic_KeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := validConfig()

	require.NoError(t, SaveAtomic(path, cfg))

	cfg.Sources[0].Keywords = []string{"developer"}
	require.NoError(t, SaveAtomic(path, cfg))

	_, err := os.Stat(path + ".bak")
	assert.NoError(t, err, "the previous version survives as .bak")

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"developer"}, reloaded.Sources[0].Keywords)
}

func TestSaveAtomic_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.Error(t, SaveAtomic(path, Config{}))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, WriteSample(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Sources)
	assert.Equal(t, "Example Company", cfg.Sources[0].Name)

	assert.Error(t, WriteSample(path), "an existing config must not be clobbered")
}
