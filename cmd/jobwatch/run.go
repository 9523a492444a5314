package main

import (
	"context"
	"errors"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"jobwatch-engine/internal/scheduler"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch continuously at the configured interval",
	RunE:  runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, cleanup, err := buildMonitor(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// One watcher per data dir; overlapping runs would race on the seen
	// store file.
	lock := flock.New(filepath.Join(cfg.App.DataDir, "jobwatch.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !locked {
		return errors.New("another jobwatch instance is already running")
	}
	defer lock.Unlock()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(cfg.Polling.CheckIntervalMinutes) * time.Minute
	logger.Info("starting watcher", "sources", len(cfg.Sources), "interval", interval)

	scheduler.Every(ctx, interval, "check", logger, func(ctx context.Context) error {
		_, err := m.RunOnce(ctx)
		return err
	})
	return nil
}
