package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyKeep is how many results are kept per task.
const historyKeep = 100

// Scheduler runs the periodic workforce sync. Task state lives in the
// store so the schedule survives daemon restarts.
type Scheduler struct {
	store    driven.SchedulerStore
	syncOrch driving.SyncOrchestrator
	request  domain.SyncRequest
	location *time.Location
	now      func() time.Time

	mu       sync.Mutex
	config   domain.SchedulerConfig
	running  bool
	inflight map[string]bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler. Each workforce sync copies request
// and sets its window to the task's trailing days in location.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	syncOrch driving.SyncOrchestrator,
	request domain.SyncRequest,
	location *time.Location,
) *Scheduler {
	if location == nil {
		location = time.Local
	}
	return &Scheduler{
		config:   config,
		store:    store,
		syncOrch: syncOrch,
		request:  request,
		location: location,
		now:      time.Now,
		inflight: make(map[string]bool),
	}
}

// Start begins the scheduler loop. This method blocks until Stop is
// called or ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		return fmt.Errorf("%w: scheduler is disabled", domain.ErrNotConfigured)
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Warn("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx)
}

// Stop waits for running tasks and returns.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// SetInterval changes how often a task runs. The next run is moved to one
// interval after the last run, or from now if the task has not run.
func (s *Scheduler) SetInterval(ctx context.Context, taskID string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: interval must be positive", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	cfg := s.config.GetTaskConfig(taskID)
	cfg.Interval = interval
	if s.config.TaskConfigs == nil {
		s.config.TaskConfigs = make(map[string]domain.TaskConfig)
	}
	s.config.TaskConfigs[taskID] = cfg
	s.mu.Unlock()

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("get task %s: %w", taskID, err)
	}
	if task == nil {
		return nil
	}
	if task.Interval == interval {
		return nil
	}

	task.Interval = interval
	from := task.LastRun
	if from.IsZero() {
		from = s.now()
	}
	task.NextRun = from.Add(interval)
	logger.Info("scheduler: %s now runs every %s, next at %s", taskID, interval, task.NextRun.Format(time.RFC3339))
	return s.store.SaveTask(ctx, task)
}

// initialiseTasks ensures all configured tasks exist in the store.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	if taskCfg := s.taskConfig(domain.TaskIDWorkforceSync); taskCfg.Enabled {
		if err := s.ensureTask(ctx, domain.TaskIDWorkforceSync, "Workforce sync", taskCfg); err != nil {
			return err
		}
	}
	return nil
}

// ensureTask creates or updates a task in the store. A new task is due
// immediately.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
			NextRun:  s.now(),
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = s.now().Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

func (s *Scheduler) run(ctx context.Context) error {
	s.checkAndRunDueTasks(ctx)

	tick := s.config.Tick
	if tick <= 0 {
		tick = time.Minute
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks starts every enabled task whose next run has passed
// and which is not still running.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Warn("scheduler: failed to list tasks: %v", err)
		return
	}

	now := s.now()
	for i := range tasks {
		task := tasks[i]
		if !task.Enabled {
			continue
		}
		if task.NextRun.IsZero() || !task.NextRun.After(now) {
			s.runTask(ctx, &task)
		}
	}
}

func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.mu.Lock()
	if s.inflight[task.ID] {
		s.mu.Unlock()
		logger.Debug("scheduler: %s still running, skipping", task.ID)
		return
	}
	s.inflight[task.ID] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.inflight, task.ID)
			s.mu.Unlock()
		}()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: s.now(),
		}

		var err error
		switch task.ID {
		case domain.TaskIDWorkforceSync:
			result.ItemsProcessed, err = s.runWorkforceSync(ctx)
		default:
			logger.Warn("scheduler: unknown task ID: %s", task.ID)
			return
		}

		result.EndedAt = s.now()
		if err != nil {
			result.Error = err.Error()
			task.LastError = err.Error()
			logger.Error("scheduler: %s failed: %v", task.ID, err)
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		// Bookkeeping must survive a cancelled context.
		saveCtx := context.WithoutCancel(ctx)
		if saveErr := s.store.SaveTask(saveCtx, task); saveErr != nil {
			logger.Warn("scheduler: failed to save task %s: %v", task.ID, saveErr)
		}
		if recordErr := s.store.RecordResult(saveCtx, result); recordErr != nil {
			logger.Warn("scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}
		if pruneErr := s.store.PruneHistory(saveCtx, historyKeep); pruneErr != nil {
			logger.Warn("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}

// runWorkforceSync syncs the task's trailing window and returns the number
// of records written.
func (s *Scheduler) runWorkforceSync(ctx context.Context) (int, error) {
	if s.syncOrch == nil {
		return 0, nil
	}

	cfg := s.taskConfig(domain.TaskIDWorkforceSync)
	window, err := domain.ResolveWindow(domain.WindowOptions{
		LastNDays: cfg.LastNDays,
		Location:  s.location,
	}, s.now())
	if err != nil {
		return 0, err
	}

	req := s.request
	req.Window = window
	run, err := s.syncOrch.Sync(ctx, req)
	if run == nil {
		return 0, err
	}
	return run.Total(), err
}

func (s *Scheduler) taskConfig(taskID string) domain.TaskConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.GetTaskConfig(taskID)
}
