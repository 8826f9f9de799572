package domain

import "time"

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	TaskID         string
	StartedAt      time.Time
	EndedAt        time.Time
	Success        bool
	Error          string
	ItemsProcessed int
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch for the scheduler.
	Enabled bool

	// TaskConfigs holds per-task configuration.
	TaskConfigs map[string]TaskConfig

	// Tick is how often due tasks are checked for. Zero means one minute.
	Tick time.Duration
}

// TaskConfig holds configuration for a single task.
type TaskConfig struct {
	Enabled  bool
	Interval time.Duration

	// LastNDays is the trailing window a workforce sync covers.
	LastNDays int
}

// GetTaskConfig returns the configuration for a specific task.
// Returns a zero TaskConfig if the task is not configured.
func (c *SchedulerConfig) GetTaskConfig(taskID string) TaskConfig {
	if c.TaskConfigs == nil {
		return TaskConfig{}
	}
	return c.TaskConfigs[taskID]
}

// SchedulerConfigFromSettings builds the scheduler configuration for the
// sync daemon.
func SchedulerConfigFromSettings(s SyncSettings) SchedulerConfig {
	interval := s.Interval()
	if interval <= 0 {
		interval = time.Hour
	}
	days := s.LastNDays
	if days <= 0 {
		days = 1
	}
	return SchedulerConfig{
		Enabled: true,
		TaskConfigs: map[string]TaskConfig{
			TaskIDWorkforceSync: {
				Enabled:   true,
				Interval:  interval,
				LastNDays: days,
			},
		},
	}
}

// TaskIDWorkforceSync is the periodic sync of 7shifts data into the store.
const TaskIDWorkforceSync = "workforce-sync"
