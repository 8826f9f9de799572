package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/adapters/driving/tui"
	"github.com/prairiedogbeer/go7shifts/internal/adapters/driving/tui/styles"
	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

var (
	syncDBPath            string
	syncUnapproved        bool
	syncInactiveUsers     bool
	syncModifiedSince     string
	syncStartDate         string
	syncEndDate           string
	syncLastNDays         int
	syncTimezone          string
	syncReceiptChunkSize  int
	syncDryRun            bool
	syncHistoryLimit      int
	daemonIntervalMinutes int
)

// progressInterval is how often plain progress lines are printed.
var progressInterval = 2 * time.Second

var syncCmd = &cobra.Command{
	Use:   "sync [resource...]",
	Short: "Copy 7shifts data into a local SQLite database",
	Long: `Fetches records from 7shifts and upserts them into a local SQLite
database by primary key, so running a sync twice is safe.

Resources: companies, locations, departments, roles, users, wages,
assignments, shifts, punches, receipts, daily_sales_labor, or all (default).

Date window, in --tz, from 00:00:00 on the first day to 23:59:59 on the last:
  --modified-since        records modified since the date; other date flags are ignored
  (no date flags)         yesterday
  --start-date            start date through yesterday
  --end-date              just that day
  --start-date --end-date both days and everything between
  --last-n-days N         N days ending on --end-date, or yesterday;
                          ignored when --start-date is given`,
	RunE: runSync,
}

var syncHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent sync runs",
	Args:  cobra.NoArgs,
	RunE:  runSyncHistory,
}

var syncDaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Sync on a schedule until interrupted",
	Long: `Runs a sync of every resource every sync.interval_minutes, covering the
trailing sync.last_n_days days. Editing the config file while the daemon
runs changes the interval without a restart.`,
	Args: cobra.NoArgs,
	RunE: runSyncDaemon,
}

func init() {
	for _, c := range []*cobra.Command{syncCmd, syncHistoryCmd, syncDaemonCmd} {
		c.Flags().StringVar(&syncDBPath, "db", "", "SQLite database path (default database.path)")
	}
	for _, c := range []*cobra.Command{syncCmd, syncDaemonCmd} {
		f := c.Flags()
		f.BoolVar(&syncUnapproved, "unapproved", false, "include unapproved time punches")
		f.BoolVar(&syncInactiveUsers, "inactive-users", false, "include inactive users")
		f.StringVar(&syncTimezone, "tz", "", "timezone dates are read in (default sync.timezone)")
		f.IntVar(&syncReceiptChunkSize, "receipt-chunk-size", 0, "receipts written per batch (default sync.receipt_chunk_size)")
		f.IntVar(&syncLastNDays, "last-n-days", 0, "sync the N days ending on --end-date or yesterday")
	}

	f := syncCmd.Flags()
	f.StringVar(&syncModifiedSince, "modified-since", "", "sync records modified on or after this date")
	f.StringVar(&syncStartDate, "start-date", "", "first day to sync (YYYY-MM-DD)")
	f.StringVar(&syncEndDate, "end-date", "", "last day to sync (YYYY-MM-DD)")
	f.BoolVar(&syncDryRun, "dry-run", false, "fetch everything but write to an in-memory store")

	syncHistoryCmd.Flags().IntVarP(&syncHistoryLimit, "limit", "n", 20, "number of runs to show")
	syncDaemonCmd.Flags().IntVar(&daemonIntervalMinutes, "interval", 0, "minutes between syncs (default sync.interval_minutes)")

	syncCmd.AddCommand(syncHistoryCmd, syncDaemonCmd)
	rootCmd.AddCommand(syncCmd)
}

// syncSettings returns the stored settings, or the defaults when no
// settings service is wired.
func syncSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func openSyncSession(settings *domain.AppSettings, dryRun bool) (*SyncSession, error) {
	if openSync == nil {
		return nil, errors.New("sync service not configured")
	}
	path := syncDBPath
	if path == "" {
		path = settings.Database.Path
	}
	session, err := openSync(path, dryRun)
	if err != nil {
		return nil, fmt.Errorf("failed to open sync store: %w", err)
	}
	if session.Orchestrator == nil {
		_ = closeSession(session)
		return nil, errors.New("sync service not configured")
	}
	return session, nil
}

func closeSession(session *SyncSession) error {
	if session.Close == nil {
		return nil
	}
	return session.Close()
}

// buildSyncRequest combines the sync flags with the stored settings.
// Flags win over settings.
func buildSyncRequest(args []string, settings *domain.AppSettings) (domain.SyncRequest, *time.Location, error) {
	resources, err := domain.ParseResources(args)
	if err != nil {
		return domain.SyncRequest{}, nil, err
	}

	tz := syncTimezone
	if tz == "" {
		tz = settings.Sync.Timezone
	}
	if tz == "" {
		tz = domain.DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return domain.SyncRequest{}, nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidInput, tz)
	}

	companyID := companyIDFlag
	if companyID == 0 {
		companyID = settings.Sync.CompanyID
	}
	chunk := syncReceiptChunkSize
	if chunk <= 0 {
		chunk = settings.Sync.ReceiptChunkSize
	}

	return domain.SyncRequest{
		Resources:            resources,
		CompanyID:            companyID,
		IncludeInactiveUsers: syncInactiveUsers,
		IncludeUnapproved:    syncUnapproved,
		ReceiptChunkSize:     chunk,
		DryRun:               syncDryRun,
	}, loc, nil
}

func syncWindowOptions(loc *time.Location) (domain.WindowOptions, error) {
	modifiedSince, err := parseDateFlag("modified-since", syncModifiedSince)
	if err != nil {
		return domain.WindowOptions{}, err
	}
	start, err := parseDateFlag("start-date", syncStartDate)
	if err != nil {
		return domain.WindowOptions{}, err
	}
	end, err := parseDateFlag("end-date", syncEndDate)
	if err != nil {
		return domain.WindowOptions{}, err
	}
	return domain.WindowOptions{
		ModifiedSince: modifiedSince,
		StartDate:     start,
		EndDate:       end,
		LastNDays:     syncLastNDays,
		Location:      loc,
	}, nil
}

func runSync(cmd *cobra.Command, args []string) error {
	settings, err := syncSettings()
	if err != nil {
		return err
	}
	req, loc, err := buildSyncRequest(args, settings)
	if err != nil {
		return err
	}
	opts, err := syncWindowOptions(loc)
	if err != nil {
		return err
	}
	req.Window, err = domain.ResolveWindow(opts, time.Now())
	if err != nil {
		return err
	}

	session, err := openSyncSession(settings, req.DryRun)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeSession(session); cerr != nil {
			logger.Warn("closing sync store: %v", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var run *domain.SyncRun
	// Verbose logs share stderr with the progress view, so they get plain lines.
	if isTerminal(cmd.OutOrStdout()) && isTerminal(os.Stderr) && !logger.IsVerbose() {
		run, err = syncWithView(ctx, session.Orchestrator, req)
	} else {
		run, err = syncWithProgress(ctx, cmd.ErrOrStderr(), session.Orchestrator, req)
	}
	if run != nil {
		if perr := printRun(cmd, run); perr != nil && err == nil {
			err = perr
		}
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	return nil
}

func syncWithView(ctx context.Context, orch driving.SyncOrchestrator, req domain.SyncRequest) (*domain.SyncRun, error) {
	view, err := tui.NewSyncView(tui.NewPorts(orch), req)
	if err != nil {
		return nil, err
	}
	return view.WithContext(ctx).Run(os.Stderr)
}

// syncWithProgress runs sync while printing progress lines to w.
func syncWithProgress(
	ctx context.Context,
	w io.Writer,
	orch driving.SyncOrchestrator,
	req domain.SyncRequest,
) (*domain.SyncRun, error) {
	type result struct {
		run *domain.SyncRun
		err error
	}
	done := make(chan result, 1)
	go func() {
		run, err := orch.Sync(ctx, req)
		done <- result{run, err}
	}()

	fmt.Fprintf(w, "Syncing %d resource(s), %s\n", len(req.Resources), req.Window)

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	var last domain.SyncStatus
	for {
		select {
		case r := <-done:
			return r.run, r.err
		case <-ticker.C:
			status := orch.Status()
			if !status.Running {
				continue
			}
			if status.Resource != last.Resource || status.CompanyID != last.CompanyID ||
				status.RecordsWritten != last.RecordsWritten {
				fmt.Fprintf(w, "  company %d: %s (%s records so far)\n",
					status.CompanyID, status.Resource, humanize.Comma(int64(status.RecordsWritten)))
				last = status
			}
		}
	}
}

// printRun prints a sync run in the output format.
func printRun(cmd *cobra.Command, run *domain.SyncRun) error {
	format, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	switch format {
	case formatJSON:
		return writeJSON(cmd.OutOrStdout(), summarise(*run))
	case formatYAML:
		return writeYAML(cmd.OutOrStdout(), summarise(*run))
	}

	s := styles.DefaultStyles()
	out := cmd.OutOrStdout()
	title := "Sync complete"
	switch {
	case run.Status == domain.SyncRunFailed:
		title = s.Error.Render("Sync failed")
	case run.DryRun:
		title = s.Warning.Render("Dry run complete (nothing written)")
	default:
		title = s.Success.Render(title)
	}
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, s.Muted.Render(fmt.Sprintf("Run %s · %s · %s", run.ID, run.Window, runDuration(run))))
	fmt.Fprintln(out)

	t := tableRows{header: []any{"RESOURCE", "RECORDS"}}
	for _, c := range run.SortedCounts() {
		t.rows = append(t.rows, []any{string(c.Resource), humanize.Comma(int64(c.Count))})
	}
	t.rows = append(t.rows, []any{"total", humanize.Comma(int64(run.Total()))})
	printTable(out, t)
	return nil
}

// runSummary is the JSON and YAML shape of a sync run.
type runSummary struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	Resources  []string       `json:"resources"`
	CompanyIDs []int64        `json:"company_ids"`
	Window     string         `json:"window"`
	StartedAt  time.Time      `json:"started_at"`
	EndedAt    *time.Time     `json:"ended_at,omitempty"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
	Error      string         `json:"error,omitempty"`
	DryRun     bool           `json:"dry_run,omitempty"`
}

func summarise(run domain.SyncRun) runSummary {
	v := runSummary{
		ID:         run.ID,
		Status:     string(run.Status),
		CompanyIDs: run.CompanyIDs,
		Window:     run.Window.String(),
		StartedAt:  run.StartedAt,
		Counts:     make(map[string]int, len(run.Counts)),
		Total:      run.Total(),
		Error:      run.Error,
		DryRun:     run.DryRun,
	}
	for _, r := range run.Resources {
		v.Resources = append(v.Resources, string(r))
	}
	for r, n := range run.Counts {
		v.Counts[string(r)] = n
	}
	if !run.EndedAt.IsZero() {
		ended := run.EndedAt
		v.EndedAt = &ended
	}
	return v
}

func runDuration(run *domain.SyncRun) string {
	if run.EndedAt.IsZero() || run.StartedAt.IsZero() {
		return "-"
	}
	return run.EndedAt.Sub(run.StartedAt).Round(time.Second).String()
}

func runSyncHistory(cmd *cobra.Command, _ []string) error {
	settings, err := syncSettings()
	if err != nil {
		return err
	}
	session, err := openSyncSession(settings, false)
	if err != nil {
		return err
	}
	defer func() { _ = closeSession(session) }()

	runs, err := session.Orchestrator.History(commandContext(cmd), syncHistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to list sync runs: %w", err)
	}

	views := make([]runSummary, len(runs))
	for i := range runs {
		views[i] = summarise(runs[i])
	}
	return render(cmd, views, func() tableRows {
		t := tableRows{header: []any{"ID", "STARTED", "DURATION", "STATUS", "RECORDS", "WINDOW"}}
		for i := range runs {
			run := runs[i]
			status := string(run.Status)
			if run.DryRun {
				status += " (dry run)"
			}
			t.rows = append(t.rows, []any{
				run.ID, humanize.Time(run.StartedAt), runDuration(&run), status,
				humanize.Comma(int64(run.Total())), run.Window.String(),
			})
		}
		return t
	})
}

func runSyncDaemon(cmd *cobra.Command, _ []string) error {
	settings, err := syncSettings()
	if err != nil {
		return err
	}
	if daemonIntervalMinutes > 0 {
		settings.Sync.IntervalMinutes = daemonIntervalMinutes
	}
	if syncLastNDays > 0 {
		settings.Sync.LastNDays = syncLastNDays
	}
	req, loc, err := buildSyncRequest(nil, settings)
	if err != nil {
		return err
	}
	req.DryRun = false

	session, err := openSyncSession(settings, false)
	if err != nil {
		return err
	}
	defer func() { _ = closeSession(session) }()
	if session.NewScheduler == nil {
		return errors.New("scheduler not configured")
	}

	config := domain.SchedulerConfigFromSettings(settings.Sync)
	scheduler := session.NewScheduler(config, req, loc)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configWatcher != nil && daemonIntervalMinutes == 0 {
		if err := watchInterval(ctx, scheduler, config); err != nil {
			logger.Warn("config reload disabled: %v", err)
		}
	}

	task := config.GetTaskConfig(domain.TaskIDWorkforceSync)
	cmd.Printf("Syncing every %s (last %d days). Press Ctrl+C to stop.\n", task.Interval, task.LastNDays)

	err = scheduler.Start(ctx)
	if stopErr := scheduler.Stop(); stopErr != nil {
		logger.Warn("stopping scheduler: %v", stopErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("sync daemon: %w", err)
	}
	cmd.Println("Sync daemon stopped.")
	return nil
}

// watchInterval applies interval changes from the config file until ctx
// is done.
func watchInterval(ctx context.Context, scheduler driving.Scheduler, config domain.SchedulerConfig) error {
	changes, err := configWatcher.Watch(ctx)
	if err != nil {
		return err
	}
	current := config.GetTaskConfig(domain.TaskIDWorkforceSync).Interval

	go func() {
		for range changes {
			settings, err := syncSettings()
			if err != nil {
				logger.Warn("reloading settings: %v", err)
				continue
			}
			cfg := domain.SchedulerConfigFromSettings(settings.Sync)
			interval := cfg.GetTaskConfig(domain.TaskIDWorkforceSync).Interval
			if interval == current {
				continue
			}
			if err := scheduler.SetInterval(ctx, domain.TaskIDWorkforceSync, interval); err != nil {
				logger.Warn("updating sync interval: %v", err)
				continue
			}
			logger.Info("sync interval changed from %s to %s", current, interval)
			current = interval
		}
	}()
	return nil
}
