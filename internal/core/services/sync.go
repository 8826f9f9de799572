package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// DefaultReceiptChunkSize is how many receipts are buffered before they
// are written.
const DefaultReceiptChunkSize = 1000

// SyncOrchestrator copies records from the API into a WorkforceStore and
// records each run in a SyncRunStore. Only one sync runs at a time.
type SyncOrchestrator struct {
	api   driven.WorkforceAPI
	store driven.WorkforceStore
	runs  driven.SyncRunStore

	now   func() time.Time
	newID func() string

	mu     sync.RWMutex
	status domain.SyncStatus
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(
	api driven.WorkforceAPI,
	store driven.WorkforceStore,
	runs driven.SyncRunStore,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		api:   api,
		store: store,
		runs:  runs,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// syncRun carries per-run lookups shared between resources, so locations
// and users are fetched at most once per company.
type syncRun struct {
	req       domain.SyncRequest
	run       *domain.SyncRun
	companyID int64
	locations []domain.Location
	users     []domain.User
}

// Sync runs one sync. The first error aborts the run; the run record is
// saved as failed and returned along with the error.
func (o *SyncOrchestrator) Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncRun, error) {
	resources := req.Resources
	if len(resources) == 0 {
		resources = domain.AllResources()
	}
	for _, r := range resources {
		if !r.IsValid() {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownResource, r)
		}
	}

	run := &domain.SyncRun{
		ID:        o.newID(),
		Resources: resources,
		Window:    req.Window,
		StartedAt: o.now(),
		Status:    domain.SyncRunRunning,
		Counts:    make(map[domain.Resource]int, len(resources)),
		DryRun:    req.DryRun,
	}

	if err := o.begin(run); err != nil {
		return nil, err
	}
	defer o.end()

	if err := o.runs.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("save sync run: %w", err)
	}

	logger.Info("Sync %s started: %s", run.ID, run.Window)

	err := o.syncCompanies(ctx, req, run)

	run.EndedAt = o.now()
	if err != nil {
		run.Status = domain.SyncRunFailed
		run.Error = err.Error()
	} else {
		run.Status = domain.SyncRunSucceeded
	}

	// The run record must be written even when ctx was cancelled.
	saveCtx := context.WithoutCancel(ctx)
	if saveErr := o.runs.SaveRun(saveCtx, run); saveErr != nil {
		if err == nil {
			err = fmt.Errorf("save sync run: %w", saveErr)
		} else {
			logger.Warn("Failed to record sync run %s: %v", run.ID, saveErr)
		}
	}

	if err != nil {
		return run, err
	}
	logger.Info("Sync %s finished: %d records in %s", run.ID, run.Total(), run.EndedAt.Sub(run.StartedAt).Round(time.Millisecond))
	return run, nil
}

func (o *SyncOrchestrator) syncCompanies(ctx context.Context, req domain.SyncRequest, run *domain.SyncRun) error {
	companyIDs, err := o.companyIDs(ctx, req.CompanyID)
	if err != nil {
		return err
	}
	run.CompanyIDs = companyIDs

	for _, companyID := range companyIDs {
		logger.Section(fmt.Sprintf("Company %d", companyID))
		state := &syncRun{req: req, run: run, companyID: companyID}
		for _, resource := range run.Resources {
			if err := ctx.Err(); err != nil {
				return err
			}
			o.setProgress(companyID, resource)

			n, err := o.syncResource(ctx, state, resource)
			run.Counts[resource] += n
			if err != nil {
				return fmt.Errorf("sync %s for company %d: %w", resource, companyID, err)
			}
			logger.Debug("Synced %d %s for company %d", n, resource, companyID)
		}
	}
	return nil
}

// companyIDs returns the requested company, or every company the token
// can see when none is requested.
func (o *SyncOrchestrator) companyIDs(ctx context.Context, companyID int64) ([]int64, error) {
	if companyID != 0 {
		return []int64{companyID}, nil
	}
	companies, err := o.api.ListCompanies(ctx, domain.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	if len(companies) == 0 {
		return nil, fmt.Errorf("%w: the access token cannot see any company", domain.ErrNotConfigured)
	}
	ids := make([]int64, 0, len(companies))
	for _, c := range companies {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

//nolint:gocyclo // one case per resource
func (o *SyncOrchestrator) syncResource(ctx context.Context, s *syncRun, resource domain.Resource) (int, error) {
	switch resource {
	case domain.ResourceCompanies:
		company, err := o.api.GetCompany(ctx, s.companyID)
		if err != nil {
			return 0, err
		}
		return o.tally(resource)(o.store.UpsertCompanies(ctx, []domain.Company{*company}))

	case domain.ResourceLocations:
		locations, err := o.modifiedLocations(ctx, s)
		if err != nil {
			return 0, err
		}
		return o.tally(resource)(o.store.UpsertLocations(ctx, locations))

	case domain.ResourceDepartments:
		departments, err := o.api.ListDepartments(ctx, s.companyID, domain.DepartmentFilter{
			ModifiedSince: s.req.Window.ModifiedSince,
		})
		if err != nil {
			return 0, err
		}
		return o.tally(resource)(o.store.UpsertDepartments(ctx, departments))

	case domain.ResourceRoles:
		roles, err := o.api.ListRoles(ctx, s.companyID, domain.RoleFilter{
			ModifiedSince: s.req.Window.ModifiedSince,
		})
		if err != nil {
			return 0, err
		}
		return o.tally(resource)(o.store.UpsertRoles(ctx, roles))

	case domain.ResourceUsers:
		users, err := o.users(ctx, s)
		if err != nil {
			return 0, err
		}
		return o.tally(resource)(o.store.UpsertUsers(ctx, users))

	case domain.ResourceWages:
		return o.syncWages(ctx, s)

	case domain.ResourceAssignments:
		return o.syncAssignments(ctx, s)

	case domain.ResourceShifts:
		return o.syncShifts(ctx, s)

	case domain.ResourcePunches:
		return o.syncPunches(ctx, s)

	case domain.ResourceReceipts:
		return o.syncReceipts(ctx, s)

	case domain.ResourceDailySalesLabor:
		return o.syncDailySales(ctx, s)

	default:
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownResource, resource)
	}
}

// locations returns every location of the company. Receipts and daily
// sales are fetched per location, so this list is never narrowed by
// modification date.
func (o *SyncOrchestrator) locations(ctx context.Context, s *syncRun) ([]domain.Location, error) {
	if s.locations == nil {
		locations, err := o.api.ListLocations(ctx, s.companyID, domain.LocationFilter{})
		if err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		s.locations = locations
	}
	return s.locations, nil
}

// modifiedLocations returns the locations to store: all of them, or those
// modified since the window's date.
func (o *SyncOrchestrator) modifiedLocations(ctx context.Context, s *syncRun) ([]domain.Location, error) {
	since := s.req.Window.ModifiedSince
	if since.IsZero() {
		return o.locations(ctx, s)
	}
	locations, err := o.api.ListLocations(ctx, s.companyID, domain.LocationFilter{ModifiedSince: since})
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locations, nil
}

// users returns the active users, then the inactive ones when requested.
// Each status is asked for explicitly. Wages and assignments are fetched
// for the same users.
func (o *SyncOrchestrator) users(ctx context.Context, s *syncRun) ([]domain.User, error) {
	if s.users != nil {
		return s.users, nil
	}
	statuses := []string{domain.UserStatusActive}
	if s.req.IncludeInactiveUsers {
		statuses = append(statuses, domain.UserStatusInactive)
	}
	users := []domain.User{}
	for _, status := range statuses {
		batch, err := o.api.ListUsers(ctx, s.companyID, domain.UserFilter{
			Status:        status,
			ModifiedSince: s.req.Window.ModifiedSince,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s users: %w", status, err)
		}
		logger.Debug("company %d: %d %s users", s.companyID, len(batch), status)
		users = append(users, batch...)
	}
	s.users = users
	return s.users, nil
}

func (o *SyncOrchestrator) syncWages(ctx context.Context, s *syncRun) (int, error) {
	users, err := o.users(ctx, s)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, u := range users {
		wages, err := o.api.ListUserWages(ctx, s.companyID, u.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return total, fmt.Errorf("wages for user %d: %w", u.ID, err)
		}
		n, err := o.tally(domain.ResourceWages)(o.store.UpsertWages(ctx, wages.All()))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (o *SyncOrchestrator) syncAssignments(ctx context.Context, s *syncRun) (int, error) {
	users, err := o.users(ctx, s)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, u := range users {
		a, err := o.api.ListUserAssignments(ctx, s.companyID, u.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return total, fmt.Errorf("assignments for user %d: %w", u.ID, err)
		}
		n, err := o.tally(domain.ResourceAssignments)(o.store.UpsertAssignments(ctx, u.ID, *a))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (o *SyncOrchestrator) syncShifts(ctx context.Context, s *syncRun) (int, error) {
	w := s.req.Window
	filter := domain.ShiftFilter{}
	if w.IsModifiedSince() {
		filter.ModifiedSince = w.ModifiedSince
	} else {
		filter.StartGTE, filter.StartLTE = w.Start, w.End
	}

	total := 0
	err := o.api.WalkShifts(ctx, s.companyID, filter, func(page []domain.Shift) error {
		n, err := o.tally(domain.ResourceShifts)(o.store.UpsertShifts(ctx, page))
		total += n
		return err
	})
	return total, err
}

func (o *SyncOrchestrator) syncPunches(ctx context.Context, s *syncRun) (int, error) {
	w := s.req.Window
	filter := domain.TimePunchFilter{}
	if w.IsModifiedSince() {
		filter.ModifiedSince = w.ModifiedSince
	} else {
		filter.ClockedInGTE, filter.ClockedInLTE = w.Start, w.End
	}
	if !s.req.IncludeUnapproved {
		filter.Approved = domain.Bool(true)
	}

	total := 0
	err := o.api.WalkTimePunches(ctx, s.companyID, filter, func(page []domain.TimePunch) error {
		n, err := o.tally(domain.ResourcePunches)(o.store.UpsertTimePunches(ctx, page))
		total += n
		return err
	})
	return total, err
}

// syncReceipts walks each location's receipts, writing them in chunks of
// ReceiptChunkSize.
func (o *SyncOrchestrator) syncReceipts(ctx context.Context, s *syncRun) (int, error) {
	locations, err := o.locations(ctx, s)
	if err != nil {
		return 0, err
	}
	chunkSize := s.req.ReceiptChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultReceiptChunkSize
	}

	w := s.req.Window
	total := 0
	for _, loc := range locations {
		filter := domain.ReceiptFilter{LocationID: loc.ID}
		if w.IsModifiedSince() {
			filter.ModifiedSince = w.ModifiedSince
		} else {
			filter.ReceiptDateGTE, filter.ReceiptDateLTE = w.Start, w.End
		}

		chunk := make([]domain.Receipt, 0, chunkSize)
		flush := func() error {
			if len(chunk) == 0 {
				return nil
			}
			n, err := o.tally(domain.ResourceReceipts)(o.store.UpsertReceipts(ctx, chunk))
			total += n
			chunk = chunk[:0]
			return err
		}

		err := o.api.WalkReceipts(ctx, s.companyID, filter, func(page []domain.Receipt) error {
			chunk = append(chunk, page...)
			if len(chunk) >= chunkSize {
				return flush()
			}
			return nil
		})
		if err != nil {
			return total, fmt.Errorf("receipts for location %d: %w", loc.ID, err)
		}
		if err := flush(); err != nil {
			return total, err
		}
	}
	return total, nil
}

// syncDailySales fetches the report per location over the window's days.
// A modified-since window covers the modified-since date through
// yesterday.
func (o *SyncOrchestrator) syncDailySales(ctx context.Context, s *syncRun) (int, error) {
	w := s.req.Window
	var start, end domain.Date
	if w.IsModifiedSince() {
		loc := w.Location
		if loc == nil {
			loc = time.Local
		}
		start, end = w.ModifiedSince, domain.DateOf(o.now().In(loc)).AddDays(-1)
		if start.After(end) {
			logger.Debug("daily sales and labor: nothing before today since %s", start)
			return 0, nil
		}
	} else {
		days := w.Days()
		if len(days) == 0 {
			return 0, fmt.Errorf("%w: sync window has no days", domain.ErrInvalidInput)
		}
		start, end = days[0], days[len(days)-1]
	}

	locations, err := o.locations(ctx, s)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, loc := range locations {
		rows, err := o.api.DailySalesAndLabor(ctx, domain.DailySalesAndLaborFilter{
			LocationID: loc.ID,
			StartDate:  start,
			EndDate:    end,
		})
		if err != nil {
			return total, fmt.Errorf("daily sales and labor for location %d: %w", loc.ID, err)
		}
		n, err := o.tally(domain.ResourceDailySalesLabor)(o.store.UpsertDailySalesAndLabor(ctx, loc.ID, rows))
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// tally wraps an upsert result, adding the written records to the live
// status.
func (o *SyncOrchestrator) tally(resource domain.Resource) func(int, error) (int, error) {
	return func(n int, err error) (int, error) {
		if err != nil {
			return n, fmt.Errorf("store %s: %w", resource, err)
		}
		o.mu.Lock()
		o.status.RecordsWritten += n
		o.mu.Unlock()
		return n, nil
	}
}

func (o *SyncOrchestrator) begin(run *domain.SyncRun) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status.Running {
		return domain.ErrSyncInProgress
	}
	o.status = domain.SyncStatus{
		Running:   true,
		RunID:     run.ID,
		StartedAt: run.StartedAt,
	}
	return nil
}

func (o *SyncOrchestrator) end() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = domain.SyncStatus{}
}

func (o *SyncOrchestrator) setProgress(companyID int64, resource domain.Resource) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status.CompanyID = companyID
	o.status.Resource = resource
}

// Status returns a snapshot of the sync in progress.
func (o *SyncOrchestrator) Status() domain.SyncStatus {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.status
}

// History returns recent runs, newest first.
func (o *SyncOrchestrator) History(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	runs, err := o.runs.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	return runs, nil
}
