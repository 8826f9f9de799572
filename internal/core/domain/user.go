package domain

import "strings"

// User types as reported by the API.
const (
	UserTypeEmployee         = "employee"
	UserTypeAssistantManager = "asst_manager"
	UserTypeManager          = "manager"
	UserTypeAdmin            = "admin"
)

// User is a person belonging to a company.
type User struct {
	ID           int64     `json:"id"`
	CompanyID    int64     `json:"company_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	Type         string    `json:"type,omitempty"`
	EmployeeID   string    `json:"employee_id,omitempty"`
	PunchID      string    `json:"punch_id,omitempty"`
	Active       bool      `json:"active"`
	HireDate     Date      `json:"hire_date"`
	Created      Timestamp `json:"created"`
	Modified     Timestamp `json:"modified"`
	RawJSON
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsEmployee reports whether the user is a regular employee.
func (u User) IsEmployee() bool { return u.Type == UserTypeEmployee }

// IsManager reports whether the user is a manager or assistant manager.
func (u User) IsManager() bool {
	return u.Type == UserTypeManager || u.Type == UserTypeAssistantManager
}

// IsAdmin reports whether the user is a company administrator.
func (u User) IsAdmin() bool { return u.Type == UserTypeAdmin }

// Wage types.
const (
	WageTypeHourly       = "hourly"
	WageTypeWeeklySalary = "weekly_salary"
)

// Wage is a pay rate for a user, optionally tied to a role.
type Wage struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	RoleID        *int64 `json:"role_id"`
	EffectiveDate Date   `json:"effective_date"`
	WageType      string `json:"wage_type"`
	WageCents     int64  `json:"wage_cents"`
	RawJSON
}

// IsHourly reports whether the wage is an hourly rate.
func (w Wage) IsHourly() bool { return w.WageType == WageTypeHourly }

// IsSalary reports whether the wage is a weekly salary.
func (w Wage) IsSalary() bool { return w.WageType == WageTypeWeeklySalary }

// Dollars returns the wage in currency units rather than cents.
func (w Wage) Dollars() float64 { return float64(w.WageCents) / 100 }

// UserWages holds the wages in force and those scheduled to take effect.
type UserWages struct {
	CurrentWages  []Wage `json:"current_wages"`
	UpcomingWages []Wage `json:"upcoming_wages"`
}

// All returns current and upcoming wages together.
func (w UserWages) All() []Wage {
	all := make([]Wage, 0, len(w.CurrentWages)+len(w.UpcomingWages))
	all = append(all, w.CurrentWages...)
	return append(all, w.UpcomingWages...)
}

// AssignedLocation is a location a user may be scheduled at.
type AssignedLocation struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AssignedDepartment is a department a user belongs to.
type AssignedDepartment struct {
	ID         int64  `json:"id"`
	CompanyID  int64  `json:"company_id"`
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
}

// AssignedRole is a role a user may be scheduled for.
type AssignedRole struct {
	ID           int64  `json:"id"`
	CompanyID    int64  `json:"company_id"`
	LocationID   int64  `json:"location_id"`
	DepartmentID int64  `json:"department_id"`
	Name         string `json:"name"`
	IsPrimary    bool   `json:"is_primary"`
	SkillLevel   int    `json:"skill_level"`
	Sort         int    `json:"sort"`
}

// Assignments lists where and as what a user can work.
type Assignments struct {
	Locations   []AssignedLocation   `json:"locations"`
	Departments []AssignedDepartment `json:"departments"`
	Roles       []AssignedRole       `json:"roles"`
}
