package driving

import (
	"context"
	"time"
)

// Scheduler runs the periodic workforce sync.
type Scheduler interface {
	// Start runs due tasks until the context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop waits for running tasks and returns.
	Stop() error

	// SetInterval changes how often a task runs.
	SetInterval(ctx context.Context, taskID string, interval time.Duration) error
}
