// Command 7shifts queries the 7shifts API and syncs it into SQLite.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/auth"
	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/config/file"
	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/storage/memory"
	"github.com/prairiedogbeer/go7shifts/internal/adapters/driven/storage/sqlite"
	"github.com/prairiedogbeer/go7shifts/internal/adapters/driving/cli"
	"github.com/prairiedogbeer/go7shifts/internal/connectors/sevenshifts"
	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
	"github.com/prairiedogbeer/go7shifts/internal/core/services"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if err := wire(); err != nil {
		logger.Error("%v", err)
		return 1
	}

	if err := cli.Execute(context.Background()); err != nil {
		logger.Error("%v", err)
		// Only API errors carry a body; it is logged here and nowhere else.
		if body := sevenshifts.ResponseBody(err); len(body) > 0 {
			logger.Block("Response body", body)
		}
		return 1
	}
	return 0
}

// wire builds the adapters and services and hands them to the CLI.
func wire() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	client, err := sevenshifts.NewClient(
		auth.NewDefaultTokenProvider(configStore),
		sevenshifts.ConfigFromSettings(settings.API),
	)
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Workforce: services.NewWorkforceService(client, settings.Sync.CompanyID),
		Settings:  settingsService,
		OpenSync:  syncOpener(client),
		Watcher:   configStore,
	})
	return nil
}

// syncOpener opens the SQLite store for a sync, or in-memory stores for
// a dry run.
func syncOpener(api driven.WorkforceAPI) cli.SyncOpener {
	return func(dbPath string, dryRun bool) (*cli.SyncSession, error) {
		if dryRun {
			return &cli.SyncSession{
				Orchestrator: services.NewSyncOrchestrator(api, memory.NewWorkforceStore(), memory.NewSyncRunStore()),
			}, nil
		}

		store, err := sqlite.NewStore(dbPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("sync database: %s", store.Path())

		orch := services.NewSyncOrchestrator(api, store.WorkforceStore(), store.SyncRunStore())
		return &cli.SyncSession{
			Orchestrator: orch,
			NewScheduler: func(config domain.SchedulerConfig, req domain.SyncRequest, loc *time.Location) driving.Scheduler {
				return services.NewScheduler(config, store.SchedulerStore(), orch, req, loc)
			},
			Close: store.Close,
		}, nil
	}
}
