package driven

import (
	"context"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// OrganisationAPI reads the company, location, department and role tree.
type OrganisationAPI interface {
	// Whoami returns the identity the access token belongs to.
	Whoami(ctx context.Context) (*domain.Identity, error)

	ListCompanies(ctx context.Context, opts domain.ListOptions) ([]domain.Company, error)
	GetCompany(ctx context.Context, companyID int64) (*domain.Company, error)

	ListLocations(ctx context.Context, companyID int64, filter domain.LocationFilter) ([]domain.Location, error)
	GetLocation(ctx context.Context, companyID, locationID int64) (*domain.Location, error)

	ListDepartments(ctx context.Context, companyID int64, filter domain.DepartmentFilter) ([]domain.Department, error)
	GetDepartment(ctx context.Context, companyID, departmentID int64) (*domain.Department, error)

	ListRoles(ctx context.Context, companyID int64, filter domain.RoleFilter) ([]domain.Role, error)
	GetRole(ctx context.Context, companyID, roleID int64) (*domain.Role, error)
}

// PeopleAPI reads users, their wages and their assignments.
type PeopleAPI interface {
	ListUsers(ctx context.Context, companyID int64, filter domain.UserFilter) ([]domain.User, error)
	GetUser(ctx context.Context, companyID, userID int64) (*domain.User, error)
	ListUserWages(ctx context.Context, companyID, userID int64) (*domain.UserWages, error)
	ListUserAssignments(ctx context.Context, companyID, userID int64) (*domain.Assignments, error)
}

// ScheduleAPI reads shifts and time punches. The Walk variants call fn
// once per page so large ranges need not be held in memory.
type ScheduleAPI interface {
	ListShifts(ctx context.Context, companyID int64, filter domain.ShiftFilter) ([]domain.Shift, error)
	WalkShifts(ctx context.Context, companyID int64, filter domain.ShiftFilter, fn func([]domain.Shift) error) error
	GetShift(ctx context.Context, companyID, shiftID int64, includeDeleted bool) (*domain.Shift, error)

	ListTimePunches(ctx context.Context, companyID int64, filter domain.TimePunchFilter) ([]domain.TimePunch, error)
	WalkTimePunches(
		ctx context.Context, companyID int64, filter domain.TimePunchFilter, fn func([]domain.TimePunch) error,
	) error
	GetTimePunch(ctx context.Context, companyID, punchID int64) (*domain.TimePunch, error)
}

// EventAPI manages calendar events.
type EventAPI interface {
	ListEvents(ctx context.Context, companyID int64, filter domain.EventFilter) ([]domain.Event, error)
	GetEvent(ctx context.Context, companyID, eventID int64) (*domain.Event, error)
	CreateEvent(ctx context.Context, companyID int64, input domain.EventInput) (*domain.Event, error)
	UpdateEvent(
		ctx context.Context, companyID, eventID int64, input domain.EventInput, target domain.RecurrenceTarget,
	) (*domain.Event, error)
	DeleteEvent(
		ctx context.Context, companyID, eventID int64, target domain.RecurrenceTarget, startDate domain.Date,
	) error
}

// ReceiptAPI manages point-of-sale receipts.
type ReceiptAPI interface {
	ListReceipts(ctx context.Context, companyID int64, filter domain.ReceiptFilter) ([]domain.Receipt, error)
	WalkReceipts(
		ctx context.Context, companyID int64, filter domain.ReceiptFilter, fn func([]domain.Receipt) error,
	) error
	GetReceipt(ctx context.Context, companyID int64, receiptID string) (*domain.Receipt, error)
	CreateReceipt(ctx context.Context, companyID int64, input domain.ReceiptInput) (*domain.Receipt, error)
	UpdateReceipt(
		ctx context.Context, companyID int64, receiptID string, input domain.ReceiptInput,
	) (*domain.Receipt, error)
}

// ReportAPI reads the sales, labor and payroll reports.
type ReportAPI interface {
	DailySalesAndLabor(ctx context.Context, filter domain.DailySalesAndLaborFilter) ([]domain.DailySalesAndLabor, error)
	HoursAndWages(ctx context.Context, companyID int64, filter domain.HoursAndWagesFilter) (*domain.HoursAndWagesReport, error)
	LegacySalesAndLabor(ctx context.Context, filter domain.LegacySalesAndLaborFilter) (*domain.LegacyDailyReport, error)
	LegacyDailyLabor(ctx context.Context, filter domain.LegacyDailyLaborFilter) (*domain.LegacyDailyReport, error)
}

// WorkforceAPI is the full 7shifts API surface.
type WorkforceAPI interface {
	OrganisationAPI
	PeopleAPI
	ScheduleAPI
	EventAPI
	ReceiptAPI
	ReportAPI
}
