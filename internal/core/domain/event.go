package domain

import "encoding/json"

// RecurrenceTarget selects which occurrences of a recurring event an
// update or delete applies to.
type RecurrenceTarget string

// Recurrence targets.
const (
	RecurrenceThis           RecurrenceTarget = "THIS"
	RecurrenceThisAndFuture  RecurrenceTarget = "THIS_AND_FUTURE"
	recurrenceTargetNotGiven RecurrenceTarget = ""
)

// IsValid reports whether the target is empty or a known value.
func (t RecurrenceTarget) IsValid() bool {
	switch t {
	case recurrenceTargetNotGiven, RecurrenceThis, RecurrenceThisAndFuture:
		return true
	default:
		return false
	}
}

// Event is a calendar entry shown on the schedule.
type Event struct {
	ID          int64           `json:"id"`
	CompanyID   int64           `json:"company_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	StartDate   Date            `json:"start_date"`
	StartTime   string          `json:"start_time,omitempty"`
	EndDate     Date            `json:"end_date"`
	EndTime     string          `json:"end_time,omitempty"`
	Color       string          `json:"color,omitempty"`
	LocationIDs []int64         `json:"location_ids,omitempty"`
	IsMultiDay  bool            `json:"is_multi_day"`
	Recurrence  json.RawMessage `json:"recurrence,omitempty"`
	Created     Timestamp       `json:"created"`
	Modified    Timestamp       `json:"modified"`
	RawJSON
}

// EventInput is the body of an event create or update.
// Zero fields are left out of the request.
type EventInput struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	StartDate   string          `json:"start_date,omitempty"`
	StartTime   string          `json:"start_time,omitempty"`
	EndDate     string          `json:"end_date,omitempty"`
	EndTime     string          `json:"end_time,omitempty"`
	Color       string          `json:"color,omitempty"`
	LocationIDs []int64         `json:"location_ids,omitempty"`
	IsMultiDay  *bool           `json:"is_multi_day,omitempty"`
	Recurrence  json.RawMessage `json:"recurrence,omitempty"`
}
