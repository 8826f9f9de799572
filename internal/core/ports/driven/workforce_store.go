package driven

import (
	"context"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// WorkforceStore persists fetched records for reporting.
// Every Upsert inserts new rows and replaces existing rows with the same
// primary key, and returns the number of rows written.
type WorkforceStore interface {
	UpsertCompanies(ctx context.Context, companies []domain.Company) (int, error)
	UpsertLocations(ctx context.Context, locations []domain.Location) (int, error)
	UpsertDepartments(ctx context.Context, departments []domain.Department) (int, error)

	// UpsertRoles also writes each role's stations.
	UpsertRoles(ctx context.Context, roles []domain.Role) (int, error)

	UpsertUsers(ctx context.Context, users []domain.User) (int, error)
	UpsertWages(ctx context.Context, wages []domain.Wage) (int, error)

	// UpsertAssignments replaces the user's assignments.
	UpsertAssignments(ctx context.Context, userID int64, assignments domain.Assignments) (int, error)

	// UpsertShifts also replaces each shift's breaks.
	UpsertShifts(ctx context.Context, shifts []domain.Shift) (int, error)

	// UpsertTimePunches also replaces each punch's breaks.
	UpsertTimePunches(ctx context.Context, punches []domain.TimePunch) (int, error)

	UpsertReceipts(ctx context.Context, receipts []domain.Receipt) (int, error)

	// UpsertDailySalesAndLabor keys rows by location and date.
	UpsertDailySalesAndLabor(ctx context.Context, locationID int64, rows []domain.DailySalesAndLabor) (int, error)
}

// SyncRunStore persists the history of sync runs.
type SyncRunStore interface {
	// SaveRun creates or updates a run by ID.
	SaveRun(ctx context.Context, run *domain.SyncRun) error

	// GetRun returns domain.ErrNotFound for an unknown ID.
	GetRun(ctx context.Context, id string) (*domain.SyncRun, error)

	// ListRuns returns the most recent runs first.
	ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error)
}
