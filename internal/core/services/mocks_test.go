package services

import (
	"context"
	"sync"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
)

// fakeAPI implements driven.WorkforceAPI from canned data and records the
// filters it was called with.
type fakeAPI struct {
	mu sync.Mutex

	companies   []domain.Company
	locations   []domain.Location
	departments []domain.Department
	roles       []domain.Role
	users       []domain.User
	inactive    []domain.User
	wages       map[int64]*domain.UserWages
	assignments map[int64]*domain.Assignments
	shiftPages  [][]domain.Shift
	punchPages  [][]domain.TimePunch
	receipts    map[int64][][]domain.Receipt
	sales       map[int64][]domain.DailySalesAndLabor

	errOn map[string]error
	block chan struct{}

	calls           []string
	locationFilters []domain.LocationFilter
	deptFilter      domain.DepartmentFilter
	roleFilter      domain.RoleFilter
	userFilters     []domain.UserFilter
	shiftFilter  domain.ShiftFilter
	punchFilter  domain.TimePunchFilter
	receiptCalls []domain.ReceiptFilter
	salesCalls   []domain.DailySalesAndLaborFilter
}

var _ driven.WorkforceAPI = (*fakeAPI)(nil)

func (f *fakeAPI) called(name string) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	block := f.block
	err := f.errOn[name]
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return err
}

func (f *fakeAPI) Whoami(_ context.Context) (*domain.Identity, error) {
	return &domain.Identity{IdentityID: 1}, f.called("Whoami")
}

func (f *fakeAPI) ListCompanies(_ context.Context, _ domain.ListOptions) ([]domain.Company, error) {
	return f.companies, f.called("ListCompanies")
}

func (f *fakeAPI) GetCompany(_ context.Context, companyID int64) (*domain.Company, error) {
	if err := f.called("GetCompany"); err != nil {
		return nil, err
	}
	for _, c := range f.companies {
		if c.ID == companyID {
			return &c, nil
		}
	}
	return &domain.Company{ID: companyID}, nil
}

func (f *fakeAPI) ListLocations(_ context.Context, _ int64, filter domain.LocationFilter) ([]domain.Location, error) {
	f.mu.Lock()
	f.locationFilters = append(f.locationFilters, filter)
	f.mu.Unlock()
	return f.locations, f.called("ListLocations")
}

func (f *fakeAPI) GetLocation(_ context.Context, _, locationID int64) (*domain.Location, error) {
	return &domain.Location{ID: locationID}, f.called("GetLocation")
}

func (f *fakeAPI) ListDepartments(_ context.Context, _ int64, filter domain.DepartmentFilter) ([]domain.Department, error) {
	f.mu.Lock()
	f.deptFilter = filter
	f.mu.Unlock()
	return f.departments, f.called("ListDepartments")
}

func (f *fakeAPI) GetDepartment(_ context.Context, _, id int64) (*domain.Department, error) {
	return &domain.Department{ID: id}, f.called("GetDepartment")
}

func (f *fakeAPI) ListRoles(_ context.Context, _ int64, filter domain.RoleFilter) ([]domain.Role, error) {
	f.mu.Lock()
	f.roleFilter = filter
	f.mu.Unlock()
	return f.roles, f.called("ListRoles")
}

func (f *fakeAPI) GetRole(_ context.Context, _, id int64) (*domain.Role, error) {
	return &domain.Role{ID: id}, f.called("GetRole")
}

func (f *fakeAPI) ListUsers(_ context.Context, _ int64, filter domain.UserFilter) ([]domain.User, error) {
	f.mu.Lock()
	f.userFilters = append(f.userFilters, filter)
	f.mu.Unlock()
	if filter.Status == domain.UserStatusInactive {
		return f.inactive, f.called("ListUsers")
	}
	return f.users, f.called("ListUsers")
}

func (f *fakeAPI) GetUser(_ context.Context, _, id int64) (*domain.User, error) {
	return &domain.User{ID: id}, f.called("GetUser")
}

func (f *fakeAPI) ListUserWages(_ context.Context, _, userID int64) (*domain.UserWages, error) {
	if err := f.called("ListUserWages"); err != nil {
		return nil, err
	}
	w, ok := f.wages[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

func (f *fakeAPI) ListUserAssignments(_ context.Context, _, userID int64) (*domain.Assignments, error) {
	if err := f.called("ListUserAssignments"); err != nil {
		return nil, err
	}
	a, ok := f.assignments[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeAPI) ListShifts(ctx context.Context, companyID int64, filter domain.ShiftFilter) ([]domain.Shift, error) {
	var all []domain.Shift
	err := f.WalkShifts(ctx, companyID, filter, func(page []domain.Shift) error {
		all = append(all, page...)
		return nil
	})
	return all, err
}

func (f *fakeAPI) WalkShifts(
	_ context.Context, _ int64, filter domain.ShiftFilter, fn func([]domain.Shift) error,
) error {
	f.mu.Lock()
	f.shiftFilter = filter
	f.mu.Unlock()
	if err := f.called("WalkShifts"); err != nil {
		return err
	}
	for _, page := range f.shiftPages {
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAPI) GetShift(_ context.Context, _, id int64, _ bool) (*domain.Shift, error) {
	return &domain.Shift{ID: id}, f.called("GetShift")
}

func (f *fakeAPI) ListTimePunches(
	ctx context.Context, companyID int64, filter domain.TimePunchFilter,
) ([]domain.TimePunch, error) {
	var all []domain.TimePunch
	err := f.WalkTimePunches(ctx, companyID, filter, func(page []domain.TimePunch) error {
		all = append(all, page...)
		return nil
	})
	return all, err
}

func (f *fakeAPI) WalkTimePunches(
	_ context.Context, _ int64, filter domain.TimePunchFilter, fn func([]domain.TimePunch) error,
) error {
	f.mu.Lock()
	f.punchFilter = filter
	f.mu.Unlock()
	if err := f.called("WalkTimePunches"); err != nil {
		return err
	}
	for _, page := range f.punchPages {
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAPI) GetTimePunch(_ context.Context, _, id int64) (*domain.TimePunch, error) {
	return &domain.TimePunch{ID: id}, f.called("GetTimePunch")
}

func (f *fakeAPI) ListEvents(_ context.Context, _ int64, _ domain.EventFilter) ([]domain.Event, error) {
	return nil, f.called("ListEvents")
}

func (f *fakeAPI) GetEvent(_ context.Context, _, id int64) (*domain.Event, error) {
	return &domain.Event{ID: id}, f.called("GetEvent")
}

func (f *fakeAPI) CreateEvent(_ context.Context, _ int64, _ domain.EventInput) (*domain.Event, error) {
	return &domain.Event{}, f.called("CreateEvent")
}

func (f *fakeAPI) UpdateEvent(
	_ context.Context, _, id int64, _ domain.EventInput, _ domain.RecurrenceTarget,
) (*domain.Event, error) {
	return &domain.Event{ID: id}, f.called("UpdateEvent")
}

func (f *fakeAPI) DeleteEvent(_ context.Context, _, _ int64, _ domain.RecurrenceTarget, _ domain.Date) error {
	return f.called("DeleteEvent")
}

func (f *fakeAPI) ListReceipts(
	ctx context.Context, companyID int64, filter domain.ReceiptFilter,
) ([]domain.Receipt, error) {
	var all []domain.Receipt
	err := f.WalkReceipts(ctx, companyID, filter, func(page []domain.Receipt) error {
		all = append(all, page...)
		return nil
	})
	return all, err
}

func (f *fakeAPI) WalkReceipts(
	_ context.Context, _ int64, filter domain.ReceiptFilter, fn func([]domain.Receipt) error,
) error {
	f.mu.Lock()
	f.receiptCalls = append(f.receiptCalls, filter)
	f.mu.Unlock()
	if err := f.called("WalkReceipts"); err != nil {
		return err
	}
	for _, page := range f.receipts[filter.LocationID] {
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeAPI) GetReceipt(_ context.Context, _ int64, id string) (*domain.Receipt, error) {
	return &domain.Receipt{ID: id}, f.called("GetReceipt")
}

func (f *fakeAPI) CreateReceipt(_ context.Context, _ int64, _ domain.ReceiptInput) (*domain.Receipt, error) {
	return &domain.Receipt{}, f.called("CreateReceipt")
}

func (f *fakeAPI) UpdateReceipt(_ context.Context, _ int64, id string, _ domain.ReceiptInput) (*domain.Receipt, error) {
	return &domain.Receipt{ID: id}, f.called("UpdateReceipt")
}

func (f *fakeAPI) DailySalesAndLabor(
	_ context.Context, filter domain.DailySalesAndLaborFilter,
) ([]domain.DailySalesAndLabor, error) {
	f.mu.Lock()
	f.salesCalls = append(f.salesCalls, filter)
	f.mu.Unlock()
	return f.sales[filter.LocationID], f.called("DailySalesAndLabor")
}

func (f *fakeAPI) HoursAndWages(
	_ context.Context, _ int64, _ domain.HoursAndWagesFilter,
) (*domain.HoursAndWagesReport, error) {
	return &domain.HoursAndWagesReport{}, f.called("HoursAndWages")
}

func (f *fakeAPI) LegacySalesAndLabor(
	_ context.Context, _ domain.LegacySalesAndLaborFilter,
) (*domain.LegacyDailyReport, error) {
	return &domain.LegacyDailyReport{}, f.called("LegacySalesAndLabor")
}

func (f *fakeAPI) LegacyDailyLabor(
	_ context.Context, _ domain.LegacyDailyLaborFilter,
) (*domain.LegacyDailyReport, error) {
	return &domain.LegacyDailyReport{}, f.called("LegacyDailyLabor")
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

// mockSchedulerStore implements driven.SchedulerStore for testing.
type mockSchedulerStore struct {
	mu       sync.RWMutex
	tasks    map[string]*domain.ScheduledTask
	results  map[string][]domain.TaskResult
	saveErr  error
	listErr  error
	pruneErr error
}

var _ driven.SchedulerStore = (*mockSchedulerStore)(nil)

func newMockSchedulerStore() *mockSchedulerStore {
	return &mockSchedulerStore{
		tasks:   make(map[string]*domain.ScheduledTask),
		results: make(map[string][]domain.TaskResult),
	}
}

func (m *mockSchedulerStore) GetTask(_ context.Context, taskID string) (*domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return nil, nil
	}
	taskCopy := *task
	return &taskCopy, nil
}

func (m *mockSchedulerStore) ListTasks(_ context.Context) ([]domain.ScheduledTask, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	tasks := make([]domain.ScheduledTask, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, *t)
	}
	return tasks, nil
}

func (m *mockSchedulerStore) SaveTask(_ context.Context, task *domain.ScheduledTask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if task == nil {
		return domain.ErrInvalidInput
	}
	taskCopy := *task
	m.tasks[task.ID] = &taskCopy
	return nil
}

func (m *mockSchedulerStore) DeleteTask(_ context.Context, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, taskID)
	return nil
}

func (m *mockSchedulerStore) RecordResult(_ context.Context, result *domain.TaskResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if result == nil {
		return domain.ErrInvalidInput
	}
	m.results[result.TaskID] = append(m.results[result.TaskID], *result)
	return nil
}

func (m *mockSchedulerStore) GetTaskHistory(_ context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	results := m.results[taskID]
	if limit > 0 && len(results) > limit {
		results = results[len(results)-limit:]
	}
	return append([]domain.TaskResult(nil), results...), nil
}

func (m *mockSchedulerStore) PruneHistory(_ context.Context, _ int) error {
	return m.pruneErr
}

// mockSyncOrchestrator implements driving.SyncOrchestrator for testing.
type mockSyncOrchestrator struct {
	mu       sync.Mutex
	requests []domain.SyncRequest
	counts   map[domain.Resource]int
	err      error
}

var _ driving.SyncOrchestrator = (*mockSyncOrchestrator)(nil)

func (m *mockSyncOrchestrator) Sync(_ context.Context, req domain.SyncRequest) (*domain.SyncRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return &domain.SyncRun{ID: "run", Counts: m.counts}, m.err
}

func (m *mockSyncOrchestrator) Status() domain.SyncStatus { return domain.SyncStatus{} }

func (m *mockSyncOrchestrator) History(_ context.Context, _ int) ([]domain.SyncRun, error) {
	return nil, nil
}

func (m *mockSyncOrchestrator) syncRequests() []domain.SyncRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SyncRequest(nil), m.requests...)
}
