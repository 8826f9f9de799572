package driven

import (
	"context"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// SchedulerStore keeps the sync daemon's task state across restarts,
// along with a bounded history of task runs.
type SchedulerStore interface {
	// GetTask returns nil and no error for an unknown task.
	GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error)

	ListTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// SaveTask creates or updates the task by ID.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	DeleteTask(ctx context.Context, taskID string) error

	// RecordResult appends a run to the task's history.
	RecordResult(ctx context.Context, result *domain.TaskResult) error

	// GetTaskHistory returns up to limit results, newest first.
	GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error)

	// PruneHistory keeps only the newest 'keep' results per task.
	PruneHistory(ctx context.Context, keep int) error
}
