package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"jobwatch-engine/internal/archive"
	"jobwatch-engine/internal/config"
	"jobwatch-engine/internal/fetch"
	"jobwatch-engine/internal/monitor"
	"jobwatch-engine/internal/notify"
	"jobwatch-engine/internal/secrets"
	"jobwatch-engine/internal/seen"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobwatch",
	Short: "Watch company career pages and get pinged when new jobs appear",
	Long:  "jobwatch polls company career pages, extracts postings, and reports newly-seen ones via Telegram.",
	// Default to the daemon so invoking the binary directly just runs.
	RunE: runDaemon,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; missing file is fine.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBWATCH_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func resolveConfigPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	if env := os.Getenv("JOBWATCH_CONFIG"); env != "" {
		return env
	}
	return "config.yaml"
}

func loadConfig() (config.Config, error) {
	path := resolveConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// buildMonitor wires the whole pipeline. The returned cleanup closes the
// archive database.
func buildMonitor(cfg config.Config, logger *slog.Logger) (*monitor.Monitor, func(), error) {
	if err := os.MkdirAll(cfg.App.DataDir, 0o755); err != nil {
		return nil, nil, err
	}

	limiter := fetch.NewHostLimiter(cfg.Fetch.RequestsPerSecond, cfg.Fetch.Burst)
	client := fetch.NewClient(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second, cfg.Fetch.UserAgent, limiter)

	notifier := setupNotifier(cfg, logger)

	store := seen.Load(filepath.Join(cfg.App.DataDir, "seen_jobs.json"), logger)

	arch, err := archive.Open(filepath.Join(cfg.App.DataDir, "jobwatch.db"))
	if err != nil {
		// The archive is bookkeeping, not state; run without it.
		logger.Warn("archive unavailable", "error", err)
		arch = nil
	}

	m := monitor.New(cfg, client, notifier, store, arch, logger)
	cleanup := func() { _ = arch.Close() }
	return m, cleanup, nil
}

func setupNotifier(cfg config.Config, logger *slog.Logger) notify.Notifier {
	token := secrets.BotToken(cfg)
	if token == "" || cfg.Telegram.ChatID == 0 {
		logger.Warn("telegram not configured, new jobs will only be logged")
		return notify.NewLogNotifier(logger)
	}
	tg, err := notify.NewTelegramNotifier(token, cfg.Telegram.ChatID)
	if err != nil {
		logger.Error("telegram init failed, falling back to log notifier", "error", err)
		return notify.NewLogNotifier(logger)
	}
	logger.Info("using telegram notifier", "chat_id", cfg.Telegram.ChatID)
	return tg
}
