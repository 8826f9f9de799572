package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// Ensure WorkforceStore implements the interface.
var _ driven.WorkforceStore = (*WorkforceStore)(nil)

// salesKey identifies a daily sales and labor row.
type salesKey struct {
	LocationID int64
	Date       domain.Date
}

// WorkforceStore is an in-memory implementation of driven.WorkforceStore.
// Records are keyed the same way as the SQLite tables, so repeated
// upserts replace rather than duplicate.
type WorkforceStore struct {
	mu          sync.RWMutex
	companies   map[int64]domain.Company
	locations   map[int64]domain.Location
	departments map[int64]domain.Department
	roles       map[int64]domain.Role
	users       map[int64]domain.User
	wages       map[int64]domain.Wage
	assignments map[int64]domain.Assignments
	shifts      map[int64]domain.Shift
	punches     map[int64]domain.TimePunch
	receipts    map[string]domain.Receipt
	sales       map[salesKey]domain.DailySalesAndLabor
}

// NewWorkforceStore creates an empty store.
func NewWorkforceStore() *WorkforceStore {
	return &WorkforceStore{
		companies:   make(map[int64]domain.Company),
		locations:   make(map[int64]domain.Location),
		departments: make(map[int64]domain.Department),
		roles:       make(map[int64]domain.Role),
		users:       make(map[int64]domain.User),
		wages:       make(map[int64]domain.Wage),
		assignments: make(map[int64]domain.Assignments),
		shifts:      make(map[int64]domain.Shift),
		punches:     make(map[int64]domain.TimePunch),
		receipts:    make(map[string]domain.Receipt),
		sales:       make(map[salesKey]domain.DailySalesAndLabor),
	}
}

// upsert writes items into m under key and returns how many were written.
func upsert[K comparable, V any](mu *sync.RWMutex, m map[K]V, items []V, key func(V) K) int {
	mu.Lock()
	defer mu.Unlock()
	for _, item := range items {
		m[key(item)] = item
	}
	return len(items)
}

// values returns the map's values ordered by less.
func values[K comparable, V any](mu *sync.RWMutex, m map[K]V, less func(a, b V) bool) []V {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// UpsertCompanies stores or replaces records.
func (s *WorkforceStore) UpsertCompanies(_ context.Context, companies []domain.Company) (int, error) {
	return upsert(&s.mu, s.companies, companies, func(c domain.Company) int64 { return c.ID }), nil
}

// UpsertLocations stores or replaces records.
func (s *WorkforceStore) UpsertLocations(_ context.Context, locations []domain.Location) (int, error) {
	return upsert(&s.mu, s.locations, locations, func(l domain.Location) int64 { return l.ID }), nil
}

// UpsertDepartments stores or replaces records.
func (s *WorkforceStore) UpsertDepartments(_ context.Context, departments []domain.Department) (int, error) {
	return upsert(&s.mu, s.departments, departments, func(d domain.Department) int64 { return d.ID }), nil
}

// UpsertRoles stores or replaces records.
func (s *WorkforceStore) UpsertRoles(_ context.Context, roles []domain.Role) (int, error) {
	return upsert(&s.mu, s.roles, roles, func(r domain.Role) int64 { return r.ID }), nil
}

// UpsertUsers stores or replaces records.
func (s *WorkforceStore) UpsertUsers(_ context.Context, users []domain.User) (int, error) {
	return upsert(&s.mu, s.users, users, func(u domain.User) int64 { return u.ID }), nil
}

// UpsertWages stores or replaces records.
func (s *WorkforceStore) UpsertWages(_ context.Context, wages []domain.Wage) (int, error) {
	return upsert(&s.mu, s.wages, wages, func(w domain.Wage) int64 { return w.ID }), nil
}

// UpsertAssignments stores or replaces records.
func (s *WorkforceStore) UpsertAssignments(
	_ context.Context, userID int64, assignments domain.Assignments,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[userID] = assignments
	return len(assignments.Locations) + len(assignments.Departments) + len(assignments.Roles), nil
}

// UpsertShifts stores or replaces records.
func (s *WorkforceStore) UpsertShifts(_ context.Context, shifts []domain.Shift) (int, error) {
	return upsert(&s.mu, s.shifts, shifts, func(sh domain.Shift) int64 { return sh.ID }), nil
}

// UpsertTimePunches stores or replaces records.
func (s *WorkforceStore) UpsertTimePunches(_ context.Context, punches []domain.TimePunch) (int, error) {
	return upsert(&s.mu, s.punches, punches, func(p domain.TimePunch) int64 { return p.ID }), nil
}

// UpsertReceipts stores or replaces records.
func (s *WorkforceStore) UpsertReceipts(_ context.Context, receipts []domain.Receipt) (int, error) {
	return upsert(&s.mu, s.receipts, receipts, func(r domain.Receipt) string { return r.ID }), nil
}

// UpsertDailySalesAndLabor stores or replaces records.
func (s *WorkforceStore) UpsertDailySalesAndLabor(
	_ context.Context, locationID int64, rows []domain.DailySalesAndLabor,
) (int, error) {
	return upsert(&s.mu, s.sales, rows, func(r domain.DailySalesAndLabor) salesKey {
		return salesKey{LocationID: locationID, Date: r.Date}
	}), nil
}

// Companies returns stored companies ordered by ID.
func (s *WorkforceStore) Companies() []domain.Company {
	return values(&s.mu, s.companies, func(a, b domain.Company) bool { return a.ID < b.ID })
}

// Locations returns stored locations ordered by ID.
func (s *WorkforceStore) Locations() []domain.Location {
	return values(&s.mu, s.locations, func(a, b domain.Location) bool { return a.ID < b.ID })
}

// Users returns stored users ordered by ID.
func (s *WorkforceStore) Users() []domain.User {
	return values(&s.mu, s.users, func(a, b domain.User) bool { return a.ID < b.ID })
}

// Wages returns stored wages ordered by ID.
func (s *WorkforceStore) Wages() []domain.Wage {
	return values(&s.mu, s.wages, func(a, b domain.Wage) bool { return a.ID < b.ID })
}

// Shifts returns stored shifts ordered by ID.
func (s *WorkforceStore) Shifts() []domain.Shift {
	return values(&s.mu, s.shifts, func(a, b domain.Shift) bool { return a.ID < b.ID })
}

// TimePunches returns stored punches ordered by ID.
func (s *WorkforceStore) TimePunches() []domain.TimePunch {
	return values(&s.mu, s.punches, func(a, b domain.TimePunch) bool { return a.ID < b.ID })
}

// Receipts returns stored receipts ordered by ID.
func (s *WorkforceStore) Receipts() []domain.Receipt {
	return values(&s.mu, s.receipts, func(a, b domain.Receipt) bool { return a.ID < b.ID })
}

// DailySalesAndLabor returns a location's stored rows ordered by date.
func (s *WorkforceStore) DailySalesAndLabor(locationID int64) []domain.DailySalesAndLabor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rows []domain.DailySalesAndLabor
	for k, row := range s.sales {
		if k.LocationID == locationID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}

// Assignments returns a user's stored assignments.
func (s *WorkforceStore) Assignments(userID int64) (domain.Assignments, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[userID]
	return a, ok
}
