package sevenshifts

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// isoLayout is the UTC form the datetime filters accept.
const isoLayout = "2006-01-02T15:04:05Z"

// isoTime encodes a filter time in UTC. Zero times are left out.
type isoTime time.Time

func (t isoTime) IsZero() bool { return time.Time(t).IsZero() }

func (t isoTime) EncodeValues(key string, v *url.Values) error {
	if !t.IsZero() {
		v.Set(key, time.Time(t).UTC().Format(isoLayout))
	}
	return nil
}

// civilDate encodes a YYYY-MM-DD filter. Zero dates are left out.
type civilDate domain.Date

func (d civilDate) IsZero() bool { return domain.Date(d).IsZero() }

func (d civilDate) EncodeValues(key string, v *url.Values) error {
	if !d.IsZero() {
		v.Set(key, domain.Date(d).String())
	}
	return nil
}

// textBool encodes a bool that is always sent, as lower-case text.
type textBool bool

func (b textBool) EncodeValues(key string, v *url.Values) error {
	v.Set(key, strconv.FormatBool(bool(b)))
	return nil
}

type pageQuery struct {
	Limit int `url:"limit,omitempty"`
}

type locationQuery struct {
	ModifiedSince civilDate `url:"modified_since,omitempty"`
	Limit         int       `url:"limit,omitempty"`
}

type departmentQuery struct {
	LocationID    int64     `url:"location_id,omitempty"`
	ModifiedSince civilDate `url:"modified_since,omitempty"`
	Limit         int       `url:"limit,omitempty"`
}

type roleQuery struct {
	LocationID    int64     `url:"location_id,omitempty"`
	DepartmentID  int64     `url:"department_id,omitempty"`
	ModifiedSince civilDate `url:"modified_since,omitempty"`
	Limit         int       `url:"limit,omitempty"`
}

type userQuery struct {
	Status        string    `url:"status,omitempty"`
	ModifiedSince civilDate `url:"modified_since,omitempty"`
	LocationID    int64     `url:"location_id,omitempty"`
	DepartmentID  int64     `url:"department_id,omitempty"`
	RoleID        int64     `url:"role_id,omitempty"`
	Name          string    `url:"name,omitempty"`
	Limit         int       `url:"limit,omitempty"`
}

type shiftQuery struct {
	LocationID    int64     `url:"location_id,omitempty"`
	ShiftIDs      []int64   `url:"shift_ids,comma,omitempty"`
	DepartmentID  int64     `url:"department_id,omitempty"`
	DepartmentIDs []int64   `url:"department_ids,comma,omitempty"`
	RoleID        int64     `url:"role_id,omitempty"`
	UserID        int64     `url:"user_id,omitempty"`
	StartGTE      isoTime   `url:"start[gte],omitempty"`
	StartLTE      isoTime   `url:"start[lte],omitempty"`
	EndGTE        isoTime   `url:"end[gte],omitempty"`
	EndLTE        isoTime   `url:"end[lte],omitempty"`
	Deleted       *bool     `url:"deleted,omitempty"`
	Draft         *bool     `url:"draft,omitempty"`
	IncludeDraft  *bool     `url:"include_draft,omitempty"`
	Open          *bool     `url:"open,omitempty"`
	ModifiedSince civilDate `url:"modified_since,omitempty"`
	SortBy        string    `url:"sort_by,omitempty"`
	SortDir       string    `url:"sort_dir,omitempty"`
	Limit         int       `url:"limit,omitempty"`
}

type punchQuery struct {
	LocationID    int64     `url:"location_id,omitempty"`
	DepartmentID  int64     `url:"department_id,omitempty"`
	RoleID        int64     `url:"role_id,omitempty"`
	UserID        int64     `url:"user_id,omitempty"`
	Approved      *bool     `url:"approved,omitempty"`
	ModifiedSince civilDate `url:"modified_since,omitempty"`
	ClockedInGTE  isoTime   `url:"clocked_in[gte],omitempty"`
	ClockedInLTE  isoTime   `url:"clocked_in[lte],omitempty"`
	ClockedOutGTE isoTime   `url:"clocked_out[gte],omitempty"`
	ClockedOutLTE isoTime   `url:"clocked_out[lte],omitempty"`
	SortBy        string    `url:"sort_by,omitempty"`
	SortDir       string    `url:"sort_dir,omitempty"`
	Limit         int       `url:"limit,omitempty"`
}

type eventQuery struct {
	StartDate  civilDate `url:"start_date"`
	EndDate    civilDate `url:"end_date"`
	LocationID int64     `url:"location_id,omitempty"`
}

type receiptQuery struct {
	LocationID     int64     `url:"location_id"`
	ReceiptDateGTE isoTime   `url:"receipt_date[gte],omitempty"`
	ReceiptDateLTE isoTime   `url:"receipt_date[lte],omitempty"`
	ModifiedSince  civilDate `url:"modified_since,omitempty"`
	Status         string    `url:"status,omitempty"`
	ExternalUserID string    `url:"external_user_id,omitempty"`
	Limit          int       `url:"limit,omitempty"`
}

type dailySalesQuery struct {
	LocationID   int64     `url:"location_id"`
	StartDate    civilDate `url:"start_date"`
	EndDate      civilDate `url:"end_date"`
	DepartmentID int64     `url:"department_id,omitempty"`
}

type hoursAndWagesQuery struct {
	CompanyID    int64     `url:"company_id"`
	From         civilDate `url:"from"`
	To           civilDate `url:"to"`
	Punches      textBool  `url:"punches"`
	LocationID   int64     `url:"location_id,omitempty"`
	DepartmentID int64     `url:"department_id,omitempty"`
	RoleID       int64     `url:"role_id,omitempty"`
	UserID       int64     `url:"user_id,omitempty"`
}

type legacySalesQuery struct {
	From              civilDate `url:"from"`
	To                civilDate `url:"to"`
	LocationID        int64     `url:"location_id"`
	IncludeUnapproved textBool  `url:"include_unapproved"`
}

type legacyLaborQuery struct {
	Week              civilDate `url:"week"`
	LocationID        int64     `url:"location_id"`
	DepartmentID      int64     `url:"department_id,omitempty"`
	IncludeUnapproved textBool  `url:"include_unapproved"`
}

// encodeQuery turns one of the query structs into URL values.
func encodeQuery(v any) (url.Values, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}
	return values, nil
}

func limitOr(limit, fallback int) int {
	if limit > 0 {
		return limit
	}
	return fallback
}

func newShiftQuery(f domain.ShiftFilter) shiftQuery {
	q := shiftQuery{
		LocationID:    f.LocationID,
		ShiftIDs:      f.ShiftIDs,
		RoleID:        f.RoleID,
		UserID:        f.UserID,
		StartGTE:      isoTime(f.StartGTE),
		StartLTE:      isoTime(f.StartLTE),
		EndGTE:        isoTime(f.EndGTE),
		EndLTE:        isoTime(f.EndLTE),
		Deleted:       f.Deleted,
		Draft:         f.Draft,
		IncludeDraft:  f.IncludeDraft,
		Open:          f.Open,
		ModifiedSince: civilDate(f.ModifiedSince),
		SortBy:        f.SortBy,
		SortDir:       f.SortDir,
		Limit:         limitOr(f.Limit, shiftPageSize),
	}
	if len(f.DepartmentIDs) == 1 {
		q.DepartmentID = f.DepartmentIDs[0]
	} else {
		q.DepartmentIDs = f.DepartmentIDs
	}
	return q
}

func newPunchQuery(f domain.TimePunchFilter) punchQuery {
	return punchQuery{
		LocationID:    f.LocationID,
		DepartmentID:  f.DepartmentID,
		RoleID:        f.RoleID,
		UserID:        f.UserID,
		Approved:      f.Approved,
		ModifiedSince: civilDate(f.ModifiedSince),
		ClockedInGTE:  isoTime(f.ClockedInGTE),
		ClockedInLTE:  isoTime(f.ClockedInLTE),
		ClockedOutGTE: isoTime(f.ClockedOutGTE),
		ClockedOutLTE: isoTime(f.ClockedOutLTE),
		SortBy:        f.SortBy,
		SortDir:       f.SortDir,
		Limit:         limitOr(f.Limit, punchPageSize),
	}
}

func newReceiptQuery(f domain.ReceiptFilter) receiptQuery {
	return receiptQuery{
		LocationID:     f.LocationID,
		ReceiptDateGTE: isoTime(f.ReceiptDateGTE),
		ReceiptDateLTE: isoTime(f.ReceiptDateLTE),
		ModifiedSince:  civilDate(f.ModifiedSince),
		Status:         f.Status,
		ExternalUserID: f.ExternalUserID,
		Limit:          limitOr(f.Limit, receiptPageSize),
	}
}
