package scheduler

import (
	"context"
	"log/slog"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then on every tick until ctx is done.
// Task errors are logged, never fatal; the next tick always comes.
func Every(ctx context.Context, interval time.Duration, name string, logger *slog.Logger, task Task) {
	t := time.NewTicker(interval)
	defer t.Stop()

	if err := task(ctx); err != nil {
		logger.Error("cycle failed", "task", name, "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				logger.Error("cycle failed", "task", name, "error", err)
			}
		}
	}
}
