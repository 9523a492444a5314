package notify

import (
	"context"
	"log/slog"

	"jobwatch-engine/internal/domain"
)

var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes new postings to the logger. Used when Telegram is not
// configured so the pipeline still surfaces what it found.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyNewJob(_ context.Context, rec domain.JobRecord) error {
	n.logger.Info("new job",
		"source", rec.SourceName,
		"title", rec.Title,
		"location", rec.Location,
		"url", rec.URL,
	)
	return nil
}
