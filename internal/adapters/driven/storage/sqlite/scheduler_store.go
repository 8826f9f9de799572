package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// schedulerStore implements driven.SchedulerStore.
type schedulerStore struct {
	store *Store
}

var _ driven.SchedulerStore = (*schedulerStore)(nil)

const taskColumns = `id, name, interval_seconds, last_run, next_run, last_error, last_success, enabled`

// GetTask retrieves a scheduled task by ID.
// Returns nil and no error if the task does not exist.
func (s *schedulerStore) GetTask(ctx context.Context, taskID string) (*domain.ScheduledTask, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM scheduled_tasks WHERE id = ?`, taskID)

	task, err := scanScheduledTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ListTasks returns all scheduled tasks ordered by ID.
func (s *schedulerStore) ListTasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM scheduled_tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying scheduled tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.ScheduledTask //nolint:prealloc // size unknown from query
	for rows.Next() {
		task, err := scanScheduledTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scheduled tasks: %w", err)
	}

	return tasks, nil
}

// SaveTask persists a task's state.
// Creates or updates the task based on ID.
func (s *schedulerStore) SaveTask(ctx context.Context, task *domain.ScheduledTask) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO scheduled_tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			interval_seconds = excluded.interval_seconds,
			last_run = excluded.last_run,
			next_run = excluded.next_run,
			last_error = excluded.last_error,
			last_success = excluded.last_success,
			enabled = excluded.enabled
	`, task.ID, task.Name, int64(task.Interval.Seconds()),
		formatNullableTime(task.LastRun), formatNullableTime(task.NextRun),
		nullString(task.LastError), formatNullableTime(task.LastSuccess),
		boolToInt(task.Enabled))

	if err != nil {
		return fmt.Errorf("saving scheduled task: %w", err)
	}
	return nil
}

// DeleteTask removes a task and its history.
func (s *schedulerStore) DeleteTask(ctx context.Context, taskID string) error {
	return s.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM task_results WHERE task_id = ?", taskID); err != nil {
			return fmt.Errorf("deleting task history: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM scheduled_tasks WHERE id = ?", taskID); err != nil {
			return fmt.Errorf("deleting scheduled task: %w", err)
		}
		return nil
	})
}

// RecordResult logs a task execution result.
func (s *schedulerStore) RecordResult(ctx context.Context, result *domain.TaskResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO task_results (task_id, started_at, ended_at, success, error, items_processed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, result.TaskID,
		result.StartedAt.UTC().Format(time.RFC3339),
		result.EndedAt.UTC().Format(time.RFC3339),
		boolToInt(result.Success),
		nullString(result.Error),
		result.ItemsProcessed)

	if err != nil {
		return fmt.Errorf("recording task result: %w", err)
	}
	return nil
}

// GetTaskHistory returns recent results for a task, most recent first.
func (s *schedulerStore) GetTaskHistory(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT task_id, started_at, ended_at, success, error, items_processed
		FROM task_results
		WHERE task_id = ?
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying task history: %w", err)
	}
	defer rows.Close()

	var results []domain.TaskResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanTaskResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task history: %w", err)
	}

	return results, nil
}

// PruneHistory keeps the most recent 'keep' results per task.
func (s *schedulerStore) PruneHistory(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM task_results
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY task_id ORDER BY started_at DESC, id DESC) AS rn
				FROM task_results
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning task history: %w", err)
	}
	return nil
}

func scanScheduledTask(row rowScanner) (*domain.ScheduledTask, error) {
	var task domain.ScheduledTask
	var intervalSeconds int64
	var lastRun, nextRun, lastError, lastSuccess sql.NullString
	var enabled int

	err := row.Scan(&task.ID, &task.Name, &intervalSeconds,
		&lastRun, &nextRun, &lastError, &lastSuccess, &enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning scheduled task: %w", err)
	}

	task.Interval = time.Duration(intervalSeconds) * time.Second
	task.LastRun = parseNullableTime(lastRun)
	task.NextRun = parseNullableTime(nextRun)
	if lastError.Valid {
		task.LastError = lastError.String
	}
	task.LastSuccess = parseNullableTime(lastSuccess)
	task.Enabled = enabled == 1

	return &task, nil
}

func scanTaskResult(row rowScanner) (*domain.TaskResult, error) {
	var result domain.TaskResult
	var startedAt, endedAt string
	var success int
	var errMsg sql.NullString

	if err := row.Scan(&result.TaskID, &startedAt, &endedAt,
		&success, &errMsg, &result.ItemsProcessed); err != nil {
		return nil, fmt.Errorf("scanning task result: %w", err)
	}

	if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
		result.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339, endedAt); err == nil {
		result.EndedAt = t
	}
	result.Success = success == 1
	if errMsg.Valid {
		result.Error = errMsg.String
	}

	return &result, nil
}
