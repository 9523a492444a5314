// Package notify delivers new-posting alerts. Delivery failures are logged
// by the caller and never retried here; retry policy belongs to the
// transport.
package notify

import (
	"context"

	"jobwatch-engine/internal/domain"
)

type Notifier interface {
	// NotifyNewJob reports one newly-seen posting.
	NotifyNewJob(ctx context.Context, rec domain.JobRecord) error
}
