package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// rawRecord is an entity that remembers the JSON it was decoded from.
type rawRecord interface {
	RawBytes() json.RawMessage
}

// recordJSON returns the entity's original JSON, or marshals it when it
// was built in code rather than decoded.
func recordJSON(v rawRecord) (string, error) {
	if raw := v.RawBytes(); len(raw) > 0 {
		return string(raw), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshalling record: %w", err)
	}
	return string(data), nil
}

// formatNullableTime formats a time to RFC3339 string, or returns nil for zero time.
func formatNullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// parseNullableTime parses a nullable RFC3339 string to time.Time.
// Returns zero time if the string is empty or invalid.
func parseNullableTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// timestamp stores an API timestamp in UTC, or NULL when unset.
func timestamp(ts domain.Timestamp) any {
	return formatNullableTime(ts.Time)
}

// civilDate stores a date as YYYY-MM-DD, or NULL when unset.
func civilDate(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullID returns nil for a zero or missing ID.
func nullID(id *int64) any {
	if id == nil || *id == 0 {
		return nil
	}
	return *id
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
