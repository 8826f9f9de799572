// Package cli implements the 7shifts command-line interface with cobra.
// Commands run against package-level services that main wires with
// SetServices; tests swap in mocks the same way.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

var version = "dev"

// SyncSession is an open sync store and the services built on it.
type SyncSession struct {
	Orchestrator driving.SyncOrchestrator

	// NewScheduler builds the daemon scheduler over the session's store.
	// Nil for dry runs.
	NewScheduler func(config domain.SchedulerConfig, req domain.SyncRequest, loc *time.Location) driving.Scheduler

	// Close releases the store.
	Close func() error
}

// SyncOpener opens the sync store at dbPath, or in-memory stores when
// dryRun is set. An empty dbPath uses the default location.
type SyncOpener func(dbPath string, dryRun bool) (*SyncSession, error)

// Services holds what the commands run against.
type Services struct {
	Workforce driving.WorkforceService
	Settings  driving.SettingsService
	OpenSync  SyncOpener

	// Watcher reports config file edits to the sync daemon. Optional.
	Watcher driven.ConfigWatcher
}

var (
	workforceService driving.WorkforceService
	settingsService  driving.SettingsService
	openSync         SyncOpener
	configWatcher    driven.ConfigWatcher
)

// Global flags.
var (
	verbose       bool
	outputFormat  string
	companyIDFlag int64
)

var rootCmd = &cobra.Command{
	Use:   "7shifts",
	Short: "Query and sync 7shifts workforce data",
	Long: `7shifts is a command-line client for the 7shifts API.

It lists and fetches companies, locations, users, shifts, time punches,
events, receipts and reports, and can copy them into a local SQLite
database for reporting.

Authenticate by exporting ACCESS_TOKEN_7SHIFTS or running
'7shifts settings token'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request to stderr")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "",
		"output format: json, yaml or table (default table on a terminal, json otherwise)")
	rootCmd.PersistentFlags().Int64Var(&companyIDFlag, "company-id", 0,
		"company to query (default from config, or the first company the token can see)")
}

// SetServices installs the services the commands run against.
func SetServices(s Services) {
	workforceService = s.Workforce
	settingsService = s.Settings
	openSync = s.OpenSync
	configWatcher = s.Watcher
}

// SetVersion sets the version reported by 'version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. Errors are returned rather than printed
// so main can log them once.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func requireWorkforce() (driving.WorkforceService, error) {
	if workforceService == nil {
		return nil, errors.New("workforce service not configured")
	}
	return workforceService, nil
}

// resolveCompanyID returns --company-id, or the service's default company.
func resolveCompanyID(ctx context.Context, svc driving.WorkforceService) (int64, error) {
	if companyIDFlag > 0 {
		return companyIDFlag, nil
	}
	return svc.DefaultCompanyID(ctx)
}

// commandContext returns the command's context, which is nil when a
// command is executed directly in tests.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
