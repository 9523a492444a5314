package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Source is one configured career page to watch. Keywords and
// ExcludeKeywords are matched case-insensitively against posting titles;
// an empty Keywords list matches everything.
type Source struct {
	Name            string   `yaml:"name"`
	URL             string   `yaml:"url"`
	Keywords        []string `yaml:"keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Polling struct {
		CheckIntervalMinutes int `yaml:"check_interval_minutes"`
	} `yaml:"polling"`

	Fetch struct {
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
		UserAgent         string  `yaml:"user_agent"`
	} `yaml:"fetch"`

	Telegram struct {
		BotToken       string `yaml:"bot_token"`
		ChatID         int64  `yaml:"chat_id"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"telegram"`

	Notify struct {
		// OnFirstRun disables bootstrap suppression: the very first check of
		// a source then reports its whole backlog instead of only deltas.
		OnFirstRun bool `yaml:"on_first_run"`
	} `yaml:"notify"`

	Sources []Source `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

// applyEnv lets deployments override secrets and timing without editing the
// config file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Polling.CheckIntervalMinutes = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "data"
	}
	if cfg.Polling.CheckIntervalMinutes <= 0 {
		cfg.Polling.CheckIntervalMinutes = 60
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		cfg.Fetch.TimeoutSeconds = 30
	}
	if cfg.Fetch.RequestsPerSecond <= 0 {
		cfg.Fetch.RequestsPerSecond = 1
	}
	if cfg.Fetch.Burst <= 0 {
		cfg.Fetch.Burst = 2
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
}
