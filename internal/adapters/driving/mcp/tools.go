package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// defaultMaxResults caps list tool output so a wide query does not flood
// the assistant's context.
const defaultMaxResults = 500

// CompanyInput selects a company. Zero uses the default company.
type CompanyInput struct {
	CompanyID int64 `json:"company_id,omitempty" jsonschema:"company id (default: the configured or first company)"`
}

// ListInput is shared by the list tools.
type ListInput struct {
	CompanyInput
	MaxResults int `json:"max_results,omitempty" jsonschema:"maximum records to return (default 500)"`
}

// WhoamiInput is the input schema for the whoami tool.
type WhoamiInput struct{}

// WhoamiOutput is the output schema for the whoami tool.
type WhoamiOutput struct {
	IdentityID int64  `json:"identity_id"`
	UserID     int64  `json:"user_id,omitempty"`
	CompanyID  int64  `json:"company_id,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// ListCompaniesInput is the input schema for the list_companies tool.
type ListCompaniesInput struct {
	MaxResults int `json:"max_results,omitempty" jsonschema:"maximum records to return (default 500)"`
}

// CompanyOutput is a company in tool output.
type CompanyOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Status  string `json:"status,omitempty"`
}

// CompaniesOutput is the output schema for the list_companies tool.
type CompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
	Count     int             `json:"count"`
	Truncated bool            `json:"truncated,omitempty"`
}

// LocationOutput is a location in tool output.
type LocationOutput struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// LocationsOutput is the output schema for the list_locations tool.
type LocationsOutput struct {
	CompanyID int64            `json:"company_id"`
	Locations []LocationOutput `json:"locations"`
	Count     int              `json:"count"`
	Truncated bool             `json:"truncated,omitempty"`
}

// ListUsersInput is the input schema for the list_users tool.
type ListUsersInput struct {
	ListInput
	Status       string `json:"status,omitempty" jsonschema:"active or inactive (default both)"`
	LocationID   int64  `json:"location_id,omitempty" jsonschema:"only users at this location"`
	DepartmentID int64  `json:"department_id,omitempty" jsonschema:"only users in this department"`
	RoleID       int64  `json:"role_id,omitempty" jsonschema:"only users with this role"`
	Name         string `json:"name,omitempty" jsonschema:"only users whose name matches"`
}

// UserOutput is a user in tool output.
type UserOutput struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email,omitempty"`
	Type       string `json:"type,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Active     bool   `json:"active"`
	HireDate   string `json:"hire_date,omitempty"`
}

// UsersOutput is the output schema for the list_users tool.
type UsersOutput struct {
	CompanyID int64        `json:"company_id"`
	Users     []UserOutput `json:"users"`
	Count     int          `json:"count"`
	Truncated bool         `json:"truncated,omitempty"`
}

// ListShiftsInput is the input schema for the list_shifts tool.
type ListShiftsInput struct {
	ListInput
	Start      string `json:"start" jsonschema:"first day (YYYY-MM-DD) or RFC 3339 time, on shift start"`
	End        string `json:"end" jsonschema:"last day (YYYY-MM-DD) or RFC 3339 time, on shift start"`
	LocationID int64  `json:"location_id,omitempty" jsonschema:"only shifts at this location"`
	UserID     int64  `json:"user_id,omitempty" jsonschema:"only shifts for this user"`
}

// ShiftOutput is a shift in tool output.
type ShiftOutput struct {
	ID               int64   `json:"id"`
	UserID           int64   `json:"user_id"`
	LocationID       int64   `json:"location_id"`
	DepartmentID     int64   `json:"department_id"`
	RoleID           int64   `json:"role_id"`
	Start            string  `json:"start"`
	End              string  `json:"end"`
	Hours            float64 `json:"hours"`
	Open             bool    `json:"open"`
	Draft            bool    `json:"draft"`
	AttendanceStatus string  `json:"attendance_status,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// ShiftsOutput is the output schema for the list_shifts tool.
type ShiftsOutput struct {
	CompanyID int64         `json:"company_id"`
	Shifts    []ShiftOutput `json:"shifts"`
	Count     int           `json:"count"`
	Truncated bool          `json:"truncated,omitempty"`
}

// ListTimePunchesInput is the input schema for the list_time_punches tool.
type ListTimePunchesInput struct {
	ListInput
	Start      string `json:"start" jsonschema:"first day (YYYY-MM-DD) or RFC 3339 time, on clock-in"`
	End        string `json:"end" jsonschema:"last day (YYYY-MM-DD) or RFC 3339 time, on clock-in"`
	LocationID int64  `json:"location_id,omitempty" jsonschema:"only punches at this location"`
	UserID     int64  `json:"user_id,omitempty" jsonschema:"only punches for this user"`
	Approved   *bool  `json:"approved,omitempty" jsonschema:"only approved (true) or unapproved (false) punches"`
}

// TimePunchOutput is a time punch in tool output.
type TimePunchOutput struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	LocationID int64   `json:"location_id"`
	RoleID     int64   `json:"role_id"`
	ShiftID    int64   `json:"shift_id,omitempty"`
	ClockedIn  string  `json:"clocked_in"`
	ClockedOut string  `json:"clocked_out,omitempty"`
	Hours      float64 `json:"hours"`
	Approved   bool    `json:"approved"`
	TipsCents  int64   `json:"tips_cents"`
}

// TimePunchesOutput is the output schema for the list_time_punches tool.
type TimePunchesOutput struct {
	CompanyID int64             `json:"company_id"`
	Punches   []TimePunchOutput `json:"time_punches"`
	Count     int               `json:"count"`
	Truncated bool              `json:"truncated,omitempty"`
}

// DailySalesInput is the input schema for the daily_sales_and_labor tool.
type DailySalesInput struct {
	LocationID   int64  `json:"location_id" jsonschema:"location id"`
	StartDate    string `json:"start_date" jsonschema:"first day (YYYY-MM-DD)"`
	EndDate      string `json:"end_date" jsonschema:"last day (YYYY-MM-DD)"`
	DepartmentID int64  `json:"department_id,omitempty" jsonschema:"only this department"`
}

// DailySalesRow is one day of the daily_sales_and_labor tool output.
type DailySalesRow struct {
	Date               string  `json:"date"`
	ActualSales        float64 `json:"actual_sales"`
	ProjectedSales     float64 `json:"projected_sales"`
	ActualLaborCost    float64 `json:"actual_labor_cost"`
	ProjectedLaborCost float64 `json:"projected_labor_cost"`
	SalesPerLaborHour  float64 `json:"sales_per_labor_hour"`
	LaborPercent       float64 `json:"labor_percent"`
}

// DailySalesOutput is the output schema for the daily_sales_and_labor tool.
type DailySalesOutput struct {
	LocationID int64           `json:"location_id"`
	Days       []DailySalesRow `json:"days"`
	Count      int             `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "whoami",
		Description: "Show the 7shifts identity the access token belongs to",
	}, s.handleWhoami)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_companies",
		Description: "List the 7shifts companies the access token can see",
	}, s.handleListCompanies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_locations",
		Description: "List a company's locations",
	}, s.handleListLocations)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_users",
		Description: "List a company's users (employees and managers)",
	}, s.handleListUsers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_shifts",
		Description: "List scheduled shifts starting in a date range",
	}, s.handleListShifts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_time_punches",
		Description: "List time punches clocked in during a date range",
	}, s.handleListTimePunches)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "daily_sales_and_labor",
		Description: "Daily actual and projected sales and labor cost for a location",
	}, s.handleDailySales)
}

func (s *Server) companyID(ctx context.Context, in CompanyInput) (int64, error) {
	if in.CompanyID > 0 {
		return in.CompanyID, nil
	}
	return s.ports.Workforce.DefaultCompanyID(ctx)
}

// truncate returns at most max items, or defaultMaxResults when max is
// not positive.
func truncate[T any](items []T, limit int) ([]T, bool) {
	if limit <= 0 {
		limit = defaultMaxResults
	}
	if len(items) <= limit {
		return items, false
	}
	return items[:limit], true
}

// timeRange parses a required start and end. Bare dates cover whole days
// in the server's zone.
func (s *Server) timeRange(start, end string) (time.Time, time.Time, error) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start and end are required", domain.ErrInvalidInput)
	}
	from, err := s.parseTime(start, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := s.parseTime(end, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s is after end %s", domain.ErrInvalidInput, start, end)
	}
	return from, to, nil
}

func (s *Server) parseTime(value string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return d.AddDays(1).In(s.ports.location()).Add(-time.Second), nil
	}
	return d.In(s.ports.location()), nil
}

func formatTime(t domain.Timestamp) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatDate(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func (s *Server) handleWhoami(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ WhoamiInput,
) (*mcp.CallToolResult, WhoamiOutput, error) {
	identity, err := s.ports.Workforce.Whoami(ctx)
	if err != nil {
		return nil, WhoamiOutput{}, err
	}
	return nil, WhoamiOutput{
		IdentityID: identity.IdentityID,
		UserID:     identity.UserID,
		CompanyID:  identity.CompanyID,
		FirstName:  identity.FirstName,
		LastName:   identity.LastName,
		Email:      identity.Email,
	}, nil
}

func (s *Server) handleListCompanies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListCompaniesInput,
) (*mcp.CallToolResult, CompaniesOutput, error) {
	companies, err := s.ports.Workforce.ListCompanies(ctx, domain.ListOptions{})
	if err != nil {
		return nil, CompaniesOutput{}, err
	}
	companies, truncated := truncate(companies, input.MaxResults)

	output := CompaniesOutput{
		Companies: make([]CompanyOutput, len(companies)),
		Count:     len(companies),
		Truncated: truncated,
	}
	for i, c := range companies {
		output.Companies[i] = CompanyOutput{ID: c.ID, Name: c.Name, Country: c.Country, Status: c.Status}
	}
	return nil, output, nil
}

func (s *Server) handleListLocations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, LocationsOutput, error) {
	companyID, err := s.companyID(ctx, input.CompanyInput)
	if err != nil {
		return nil, LocationsOutput{}, err
	}
	locations, err := s.ports.Workforce.ListLocations(ctx, companyID, domain.LocationFilter{})
	if err != nil {
		return nil, LocationsOutput{}, err
	}
	locations, truncated := truncate(locations, input.MaxResults)

	output := LocationsOutput{
		CompanyID: companyID,
		Locations: make([]LocationOutput, len(locations)),
		Count:     len(locations),
		Truncated: truncated,
	}
	for i, l := range locations {
		output.Locations[i] = LocationOutput{
			ID:       l.ID,
			Name:     l.Name,
			City:     l.City,
			State:    l.State,
			Country:  l.Country,
			Timezone: l.Timezone,
		}
	}
	return nil, output, nil
}

func (s *Server) handleListUsers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListUsersInput,
) (*mcp.CallToolResult, UsersOutput, error) {
	filter := domain.UserFilter{
		Status:       input.Status,
		LocationID:   input.LocationID,
		DepartmentID: input.DepartmentID,
		RoleID:       input.RoleID,
		Name:         input.Name,
	}
	if err := filter.Validate(); err != nil {
		return nil, UsersOutput{}, err
	}
	companyID, err := s.companyID(ctx, input.CompanyInput)
	if err != nil {
		return nil, UsersOutput{}, err
	}
	users, err := s.ports.Workforce.ListUsers(ctx, companyID, filter)
	if err != nil {
		return nil, UsersOutput{}, err
	}
	users, truncated := truncate(users, input.MaxResults)

	output := UsersOutput{
		CompanyID: companyID,
		Users:     make([]UserOutput, len(users)),
		Count:     len(users),
		Truncated: truncated,
	}
	for i := range users {
		u := &users[i]
		output.Users[i] = UserOutput{
			ID:         u.ID,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Email:      u.Email,
			Type:       u.Type,
			EmployeeID: u.EmployeeID,
			Active:     u.Active,
			HireDate:   formatDate(u.HireDate),
		}
	}
	return nil, output, nil
}

func (s *Server) handleListShifts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListShiftsInput,
) (*mcp.CallToolResult, ShiftsOutput, error) {
	from, to, err := s.timeRange(input.Start, input.End)
	if err != nil {
		return nil, ShiftsOutput{}, err
	}
	companyID, err := s.companyID(ctx, input.CompanyInput)
	if err != nil {
		return nil, ShiftsOutput{}, err
	}
	filter := domain.ShiftFilter{
		LocationID: input.LocationID,
		UserID:     input.UserID,
		StartGTE:   from,
		StartLTE:   to,
		Deleted:    domain.Bool(false),
	}
	shifts, err := s.ports.Workforce.ListShifts(ctx, companyID, filter)
	if err != nil {
		return nil, ShiftsOutput{}, err
	}
	shifts, truncated := truncate(shifts, input.MaxResults)

	output := ShiftsOutput{
		CompanyID: companyID,
		Shifts:    make([]ShiftOutput, len(shifts)),
		Count:     len(shifts),
		Truncated: truncated,
	}
	for i := range shifts {
		sh := &shifts[i]
		output.Shifts[i] = ShiftOutput{
			ID:               sh.ID,
			UserID:           sh.UserID,
			LocationID:       sh.LocationID,
			DepartmentID:     sh.DepartmentID,
			RoleID:           sh.RoleID,
			Start:            formatTime(sh.Start),
			End:              formatTime(sh.End),
			Hours:            sh.Duration().Hours(),
			Open:             sh.Open,
			Draft:            sh.Draft,
			AttendanceStatus: sh.AttendanceStatus,
			Notes:            sh.Notes,
		}
	}
	return nil, output, nil
}

func (s *Server) handleListTimePunches(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTimePunchesInput,
) (*mcp.CallToolResult, TimePunchesOutput, error) {
	from, to, err := s.timeRange(input.Start, input.End)
	if err != nil {
		return nil, TimePunchesOutput{}, err
	}
	companyID, err := s.companyID(ctx, input.CompanyInput)
	if err != nil {
		return nil, TimePunchesOutput{}, err
	}
	filter := domain.TimePunchFilter{
		LocationID:   input.LocationID,
		UserID:       input.UserID,
		Approved:     input.Approved,
		ClockedInGTE: from,
		ClockedInLTE: to,
	}
	punches, err := s.ports.Workforce.ListTimePunches(ctx, companyID, filter)
	if err != nil {
		return nil, TimePunchesOutput{}, err
	}
	punches, truncated := truncate(punches, input.MaxResults)

	output := TimePunchesOutput{
		CompanyID: companyID,
		Punches:   make([]TimePunchOutput, len(punches)),
		Count:     len(punches),
		Truncated: truncated,
	}
	for i := range punches {
		p := &punches[i]
		output.Punches[i] = TimePunchOutput{
			ID:         p.ID,
			UserID:     p.UserID,
			LocationID: p.LocationID,
			RoleID:     p.RoleID,
			ShiftID:    p.ShiftID,
			ClockedIn:  formatTime(p.ClockedIn),
			ClockedOut: formatTime(p.ClockedOut),
			Hours:      p.Duration().Hours(),
			Approved:   p.Approved,
			TipsCents:  p.Tips,
		}
	}
	return nil, output, nil
}

func (s *Server) handleDailySales(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DailySalesInput,
) (*mcp.CallToolResult, DailySalesOutput, error) {
	start, err := domain.ParseDate(input.StartDate)
	if err != nil {
		return nil, DailySalesOutput{}, err
	}
	end, err := domain.ParseDate(input.EndDate)
	if err != nil {
		return nil, DailySalesOutput{}, err
	}
	filter := domain.DailySalesAndLaborFilter{
		LocationID:   input.LocationID,
		StartDate:    start,
		EndDate:      end,
		DepartmentID: input.DepartmentID,
	}
	if err := filter.Validate(); err != nil {
		return nil, DailySalesOutput{}, err
	}

	rows, err := s.ports.Workforce.DailySalesAndLabor(ctx, filter)
	if err != nil {
		return nil, DailySalesOutput{}, err
	}
	output := DailySalesOutput{
		LocationID: input.LocationID,
		Days:       make([]DailySalesRow, len(rows)),
		Count:      len(rows),
	}
	for i, r := range rows {
		output.Days[i] = DailySalesRow{
			Date:               formatDate(r.Date),
			ActualSales:        r.ActualSales,
			ProjectedSales:     r.ProjectedSales,
			ActualLaborCost:    r.ActualLaborCost,
			ProjectedLaborCost: r.ProjectedLaborCost,
			SalesPerLaborHour:  r.SalesPerLaborHour,
			LaborPercent:       r.LaborPercent,
		}
	}
	return nil, output, nil
}
