package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Layouts used by the 7shifts API.
const (
	// DateLayout is the civil date format used by date filters and reports.
	DateLayout = "2006-01-02"

	// LegacyTimeLayout is the space-separated UTC format of the v1 API.
	LegacyTimeLayout = "2006-01-02 15:04:05"

	// legacyZeroTime is how the v1 API spells "no value" for a timestamp.
	legacyZeroTime = "0000-00-00 00:00:00"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	LegacyTimeLayout,
	"2006-01-02T15:04:05",
}

// Timestamp is a point in time as returned by the API.
// The zero value means the API sent null, an empty string or the
// legacy all-zero timestamp.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses any timestamp format the API is known to return.
// Values without a zone are read as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == legacyZeroTime || s == "null" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: unrecognised timestamp %q", ErrInvalidInput, s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: timestamp must be a string: %s", ErrInvalidInput, data)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. The zero time encodes as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

// String returns the RFC3339 form, or an empty string for the zero time.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// Date is a calendar day with no time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: date must be YYYY-MM-DD: %q", ErrInvalidInput, s)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// In returns midnight at the start of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.In(time.UTC).Before(other.In(time.UTC))
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.In(time.UTC).After(other.In(time.UTC))
}

// DaysUntil returns the number of days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.In(time.UTC).Sub(d.In(time.UTC)).Hours() / 24)
}

// String returns the YYYY-MM-DD form, or an empty string for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: date must be a string: %s", ErrInvalidInput, data)
	}
	if s == "" || s == "0000-00-00" {
		*d = Date{}
		return nil
	}
	// Some endpoints send a full timestamp where a day is meant.
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. The zero Date encodes as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}
