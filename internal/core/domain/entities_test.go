package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Helpers(t *testing.T) {
	u := User{FirstName: "James", LastName: "Bond", Type: UserTypeAssistantManager}

	assert.Equal(t, "James Bond", u.FullName())
	assert.True(t, u.IsManager())
	assert.False(t, u.IsEmployee())
	assert.False(t, u.IsAdmin())
	assert.Equal(t, "Bond", User{LastName: "Bond"}.FullName())
}

func TestWage_Decode(t *testing.T) {
	var wages UserWages
	err := json.Unmarshal([]byte(`{
		"current_wages": [{"id": 1, "user_id": 9, "role_id": 4, "effective_date": "2022-01-01", "wage_type": "hourly", "wage_cents": 1550}],
		"upcoming_wages": [{"id": 2, "user_id": 9, "role_id": null, "effective_date": "2023-01-01", "wage_type": "weekly_salary", "wage_cents": 100000}]
	}`), &wages)
	require.NoError(t, err)

	all := wages.All()
	require.Len(t, all, 2)
	assert.True(t, all[0].IsHourly())
	assert.InDelta(t, 15.50, all[0].Dollars(), 0.001)
	require.NotNil(t, all[0].RoleID)
	assert.Equal(t, int64(4), *all[0].RoleID)
	assert.True(t, all[1].IsSalary())
	assert.Nil(t, all[1].RoleID)
}

func TestShift_Helpers(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := Shift{
		Start:            NewTimestamp(start),
		End:              NewTimestamp(start.Add(8 * time.Hour)),
		AttendanceStatus: AttendanceLate,
	}

	assert.Equal(t, 8*time.Hour, s.Duration())
	assert.True(t, s.WasLate())
	assert.False(t, s.WasSick())
	assert.False(t, s.WasNoShow())
	assert.Equal(t, time.Duration(0), Shift{}.Duration())
}

func TestTimePunch_Open(t *testing.T) {
	var p TimePunch
	err := json.Unmarshal([]byte(`{"id": 3, "clocked_in": "2024-01-01T09:00:00Z", "clocked_out": "0000-00-00 00:00:00"}`), &p)
	require.NoError(t, err)

	assert.True(t, p.IsOpen())
	assert.Equal(t, time.Duration(0), p.Duration())

	p.ClockedOut = NewTimestamp(p.ClockedIn.Add(90 * time.Minute))
	assert.False(t, p.IsOpen())
	assert.Equal(t, 90*time.Minute, p.Duration())
}
