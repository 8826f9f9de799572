package domain

import (
	"fmt"
	"time"
)

// Bool returns a pointer to v, for the tri-state filter fields.
func Bool(v bool) *bool {
	return &v
}

// Sort directions and fields for shift and punch listings.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// User status filter values.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// ListOptions controls paging for list endpoints. A zero Limit uses the
// endpoint's default page size.
type ListOptions struct {
	Limit int
}

// LocationFilter narrows a location listing.
type LocationFilter struct {
	ListOptions
	ModifiedSince Date
}

// DepartmentFilter narrows a department listing.
type DepartmentFilter struct {
	ListOptions
	LocationID    int64
	ModifiedSince Date
}

// RoleFilter narrows a role listing.
type RoleFilter struct {
	ListOptions
	LocationID    int64
	DepartmentID  int64
	ModifiedSince Date
}

// UserFilter narrows a user listing.
type UserFilter struct {
	ListOptions
	Status        string
	ModifiedSince Date
	LocationID    int64
	DepartmentID  int64
	RoleID        int64
	Name          string
}

// Validate checks the status value.
func (f UserFilter) Validate() error {
	switch f.Status {
	case "", UserStatusActive, UserStatusInactive:
		return nil
	default:
		return fmt.Errorf("%w: user status must be %q or %q", ErrInvalidInput, UserStatusActive, UserStatusInactive)
	}
}

// ShiftFilter narrows a shift listing. Zero times are not sent.
type ShiftFilter struct {
	ListOptions
	LocationID    int64
	ShiftIDs      []int64
	DepartmentIDs []int64
	RoleID        int64
	UserID        int64
	StartGTE      time.Time
	StartLTE      time.Time
	EndGTE        time.Time
	EndLTE        time.Time
	Deleted       *bool
	Draft         *bool
	IncludeDraft  *bool
	Open          *bool
	ModifiedSince Date
	SortBy        string
	SortDir       string
}

// Validate checks sort values.
func (f ShiftFilter) Validate() error {
	return validateSort(f.SortBy, f.SortDir, "start", "end")
}

// TimePunchFilter narrows a time punch listing. Zero times are not sent.
type TimePunchFilter struct {
	ListOptions
	LocationID    int64
	DepartmentID  int64
	RoleID        int64
	UserID        int64
	Approved      *bool
	ModifiedSince Date
	ClockedInGTE  time.Time
	ClockedInLTE  time.Time
	ClockedOutGTE time.Time
	ClockedOutLTE time.Time
	SortBy        string
	SortDir       string
}

// Validate checks sort values.
func (f TimePunchFilter) Validate() error {
	return validateSort(f.SortBy, f.SortDir, "clocked_in", "clocked_out")
}

// EventFilter narrows an event listing. Both dates are required.
type EventFilter struct {
	StartDate  Date
	EndDate    Date
	LocationID int64
}

// Validate checks that the date range is present and ordered.
func (f EventFilter) Validate() error {
	return validateRange(f.StartDate, f.EndDate, "start_date", "end_date")
}

// ReceiptFilter narrows a receipt listing. LocationID is required.
type ReceiptFilter struct {
	ListOptions
	LocationID     int64
	ReceiptDateGTE time.Time
	ReceiptDateLTE time.Time
	ModifiedSince  Date
	Status         string
	ExternalUserID string
}

// Validate checks the required location and status value.
func (f ReceiptFilter) Validate() error {
	if f.LocationID == 0 {
		return fmt.Errorf("%w: location_id is required to list receipts", ErrInvalidInput)
	}
	switch f.Status {
	case "", ReceiptOpen, ReceiptClosed, ReceiptVoided, ReceiptDeleted:
		return nil
	default:
		return fmt.Errorf("%w: unknown receipt status %q", ErrInvalidInput, f.Status)
	}
}

// DailySalesAndLaborFilter selects a daily sales and labor report.
type DailySalesAndLaborFilter struct {
	LocationID   int64
	StartDate    Date
	EndDate      Date
	DepartmentID int64
}

// Validate checks the required location and dates.
func (f DailySalesAndLaborFilter) Validate() error {
	if f.LocationID == 0 {
		return fmt.Errorf("%w: location_id is required", ErrInvalidInput)
	}
	return validateRange(f.StartDate, f.EndDate, "start_date", "end_date")
}

// HoursAndWagesFilter selects an hours and wages report.
type HoursAndWagesFilter struct {
	From         Date
	To           Date
	Punches      bool
	LocationID   int64
	DepartmentID int64
	RoleID       int64
	UserID       int64
}

// Validate checks the required dates.
func (f HoursAndWagesFilter) Validate() error {
	return validateRange(f.From, f.To, "from", "to")
}

// LegacySalesAndLaborFilter selects the v1 daily sales and labor report.
type LegacySalesAndLaborFilter struct {
	From              Date
	To                Date
	LocationID        int64
	IncludeUnapproved bool
}

// Validate checks the required location and dates.
func (f LegacySalesAndLaborFilter) Validate() error {
	if f.LocationID == 0 {
		return fmt.Errorf("%w: location_id is required", ErrInvalidInput)
	}
	return validateRange(f.From, f.To, "from", "to")
}

// LegacyDailyLaborFilter selects one week of v1 daily labor.
type LegacyDailyLaborFilter struct {
	Week              Date
	LocationID        int64
	DepartmentID      int64
	IncludeUnapproved bool
}

// Validate checks the required location and week.
func (f LegacyDailyLaborFilter) Validate() error {
	if f.LocationID == 0 {
		return fmt.Errorf("%w: location_id is required", ErrInvalidInput)
	}
	if f.Week.IsZero() {
		return fmt.Errorf("%w: week is required", ErrInvalidInput)
	}
	return nil
}

func validateRange(start, end Date, startName, endName string) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: %s and %s are required", ErrInvalidInput, startName, endName)
	}
	if start.After(end) {
		return fmt.Errorf("%w: %s %s is after %s %s", ErrInvalidInput, startName, start, endName, end)
	}
	return nil
}

func validateSort(sortBy, sortDir string, fields ...string) error {
	if sortBy != "" {
		known := false
		for _, f := range fields {
			if sortBy == f {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: cannot sort by %q", ErrInvalidInput, sortBy)
		}
	}
	switch sortDir {
	case "", SortAsc, SortDesc:
		return nil
	default:
		return fmt.Errorf("%w: sort direction must be %q or %q", ErrInvalidInput, SortAsc, SortDesc)
	}
}
