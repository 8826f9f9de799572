package domain

import "encoding/json"

// DailySalesAndLabor is one day of the sales and labor report.
// Sales and cost figures are in cents.
type DailySalesAndLabor struct {
	Date               Date    `json:"date"`
	ActualSales        float64 `json:"actual_sales"`
	ProjectedSales     float64 `json:"projected_sales"`
	ActualLaborCost    float64 `json:"actual_labor_cost"`
	ProjectedLaborCost float64 `json:"projected_labor_cost"`
	SalesPerLaborHour  float64 `json:"sales_per_labor_hour"`
	LaborPercent       float64 `json:"labor_percent"`
	RawJSON
}

// HoursAndWagesTotal is the set of totals repeated at every level of the
// hours and wages report.
type HoursAndWagesTotal struct {
	RegularHours            float64 `json:"regular_hours"`
	RegularPay              float64 `json:"regular_pay"`
	OvertimeHours           float64 `json:"overtime_hours"`
	OvertimePay             float64 `json:"overtime_pay"`
	HolidayHours            float64 `json:"holiday_hours"`
	HolidayPay              float64 `json:"holiday_pay"`
	ComplianceExceptionsPay float64 `json:"compliance_exceptions_pay"`
	TotalHours              float64 `json:"total_hours"`
	TotalPay                float64 `json:"total_pay"`
	TotalTips               float64 `json:"total_tips"`
	CashTips                float64 `json:"cash_tips"`
	CreditCardTips          float64 `json:"credit_card_tips"`
	DeclaredTips            float64 `json:"declared_tips"`
}

// HoursAndWagesUser is one user's section of the hours and wages report.
type HoursAndWagesUser struct {
	User struct {
		ID         int64  `json:"id"`
		EmployeeID string `json:"employee_id"`
		FirstName  string `json:"first_name"`
		LastName   string `json:"last_name"`
	} `json:"user"`
	Weeks    []HoursAndWagesWeek `json:"weeks"`
	Roles    []HoursAndWagesRole `json:"roles"`
	Total    HoursAndWagesTotal  `json:"total"`
	Salaried bool                `json:"salaried"`
}

// HoursAndWagesWeek is one week of a user's hours.
type HoursAndWagesWeek struct {
	Week     Date               `json:"week"`
	Salaried bool               `json:"salaried"`
	Shifts   []json.RawMessage  `json:"shifts"`
	Total    HoursAndWagesTotal `json:"total"`
}

// HoursAndWagesRole totals a user's hours for one role.
type HoursAndWagesRole struct {
	RoleID        int64              `json:"role_id"`
	RoleLabel     string             `json:"role_label"`
	LocationLabel string             `json:"location_label"`
	Total         HoursAndWagesTotal `json:"total"`
}

// HoursAndWagesReport is the payroll-oriented hours report.
type HoursAndWagesReport struct {
	Users              []HoursAndWagesUser `json:"users"`
	ShowExceptionCosts bool                `json:"show_exception_costs"`
	TipTrackingEnabled bool                `json:"tip_tracking_enabled"`
	ShowTips           bool                `json:"show_tips"`
	Total              HoursAndWagesTotal  `json:"total"`
	Start              Date                `json:"start"`
	End                Date                `json:"end"`
	RawJSON
}

// LegacyDailyLaborDay is one day of the v1 sales and labor dashboard data.
type LegacyDailyLaborDay struct {
	Date                  Date    `json:"date"`
	LocationID            int64   `json:"location_id"`
	LaborTargetPercentage float64 `json:"labor_target_percentage"`
	LaborHoursScheduled   float64 `json:"labor_hours_scheduled"`
	LaborCostScheduled    float64 `json:"labor_cost_scheduled"`
	LaborHoursWorked      float64 `json:"labor_hours_worked"`
	LaborActual           float64 `json:"labor_actual"`
	Projected             float64 `json:"projected,omitempty"`
	Actual                float64 `json:"actual,omitempty"`
	ProjectedSales        float64 `json:"projected_sales,omitempty"`
	ActualSales           float64 `json:"actual_sales,omitempty"`
}

// LegacyDailyReport is the response of the undocumented v1 sales and
// labor endpoints. It may change or disappear without notice.
type LegacyDailyReport struct {
	Daily           []LegacyDailyLaborDay `json:"daily"`
	Weekly          float64               `json:"weekly"`
	LaborPercentage float64               `json:"labor_percentage"`
	RawJSON
}
