package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerConfigFromSettings(t *testing.T) {
	config := SchedulerConfigFromSettings(SyncSettings{IntervalMinutes: 15, LastNDays: 3})

	assert.True(t, config.Enabled)
	assert.Len(t, config.TaskConfigs, 1)

	taskCfg := config.GetTaskConfig(TaskIDWorkforceSync)
	assert.True(t, taskCfg.Enabled)
	assert.Equal(t, 15*time.Minute, taskCfg.Interval)
	assert.Equal(t, 3, taskCfg.LastNDays)
}

func TestSchedulerConfigFromSettings_Defaults(t *testing.T) {
	config := SchedulerConfigFromSettings(SyncSettings{})

	taskCfg := config.GetTaskConfig(TaskIDWorkforceSync)
	assert.Equal(t, time.Hour, taskCfg.Interval)
	assert.Equal(t, 1, taskCfg.LastNDays)
}

func TestSchedulerConfig_GetTaskConfig_NilMap(t *testing.T) {
	config := SchedulerConfig{
		Enabled:     true,
		TaskConfigs: nil,
	}

	cfg := config.GetTaskConfig("any-task")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Interval)
}

func TestTaskConstants(t *testing.T) {
	assert.Equal(t, "workforce-sync", TaskIDWorkforceSync)
}
