package domain

import "time"

// Attendance statuses a manager can set on a shift.
const (
	AttendanceSick   = "sick"
	AttendanceNoShow = "no-show"
	AttendanceLate   = "late"
)

// Shift is a scheduled block of work.
type Shift struct {
	ID               int64        `json:"id"`
	CompanyID        int64        `json:"company_id"`
	LocationID       int64        `json:"location_id"`
	DepartmentID     int64        `json:"department_id"`
	RoleID           int64        `json:"role_id"`
	UserID           int64        `json:"user_id"`
	StationID        int64        `json:"station_id,omitempty"`
	Start            Timestamp    `json:"start"`
	End              Timestamp    `json:"end"`
	Open             bool         `json:"open"`
	Notes            string       `json:"notes,omitempty"`
	AttendanceStatus string       `json:"attendance_status,omitempty"`
	LateMinutes      int          `json:"late_minutes,omitempty"`
	HourlyWage       int64        `json:"hourly_wage,omitempty"`
	Breaks           []ShiftBreak `json:"breaks,omitempty"`
	Draft            bool         `json:"draft"`
	Deleted          bool         `json:"deleted"`
	Created          Timestamp    `json:"created"`
	Modified         Timestamp    `json:"modified"`
	RawJSON
}

// Duration is the scheduled length of the shift.
func (s Shift) Duration() time.Duration {
	if s.Start.IsZero() || s.End.IsZero() {
		return 0
	}
	return s.End.Sub(s.Start.Time)
}

// WasSick reports whether the user called in sick.
func (s Shift) WasSick() bool { return s.AttendanceStatus == AttendanceSick }

// WasNoShow reports whether the user did not show up.
func (s Shift) WasNoShow() bool { return s.AttendanceStatus == AttendanceNoShow }

// WasLate reports whether the user arrived late.
func (s Shift) WasLate() bool { return s.AttendanceStatus == AttendanceLate }

// ShiftBreak is a planned break within a shift.
type ShiftBreak struct {
	ID     int64     `json:"id"`
	Start  Timestamp `json:"start"`
	Length int       `json:"length"`
	Paid   bool      `json:"is_paid"`
}

// TimePunch is a worked block recorded by clocking in and out.
type TimePunch struct {
	ID           int64        `json:"id"`
	CompanyID    int64        `json:"company_id"`
	LocationID   int64        `json:"location_id"`
	DepartmentID int64        `json:"department_id"`
	RoleID       int64        `json:"role_id"`
	UserID       int64        `json:"user_id"`
	ShiftID      int64        `json:"shift_id"`
	ClockedIn    Timestamp    `json:"clocked_in"`
	ClockedOut   Timestamp    `json:"clocked_out"`
	Approved     bool         `json:"approved"`
	Tips         int64        `json:"tips"`
	HourlyWage   int64        `json:"hourly_wage,omitempty"`
	Breaks       []PunchBreak `json:"breaks,omitempty"`
	Deleted      bool         `json:"deleted"`
	Created      Timestamp    `json:"created"`
	Modified     Timestamp    `json:"modified"`
	RawJSON
}

// IsOpen reports whether the user is still clocked in.
func (p TimePunch) IsOpen() bool {
	return p.ClockedOut.IsZero()
}

// Duration is the worked length of the punch, or zero while open.
func (p TimePunch) Duration() time.Duration {
	if p.IsOpen() || p.ClockedIn.IsZero() {
		return 0
	}
	return p.ClockedOut.Sub(p.ClockedIn.Time)
}

// PunchBreak is a break taken during a time punch.
type PunchBreak struct {
	ID      int64     `json:"id"`
	In      Timestamp `json:"in"`
	Out     Timestamp `json:"out"`
	Paid    bool      `json:"paid"`
	Deleted bool      `json:"deleted"`
}
