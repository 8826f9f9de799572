package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

var (
	reportDepartment        int64
	reportLocation          int64
	reportRole              int64
	reportUser              int64
	reportFrom              string
	reportTo                string
	reportWeek              string
	reportPunches           bool
	reportIncludeUnapproved bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run sales, labor and payroll reports",
}

var reportDailySalesCmd = &cobra.Command{
	Use:   "daily-sales-labor <location-id> <start-date> <end-date>",
	Short: "Daily actual and projected sales and labor for a location",
	Args:  cobra.ExactArgs(3),
	RunE:  runReportDailySales,
}

var reportHoursWagesCmd = &cobra.Command{
	Use:   "hours-wages --from <date> --to <date>",
	Short: "Hours and wages per user",
	Long: `Hours and wages per user for a date range, as used for payroll.
By default hours come from scheduled shifts; --punches uses time punches.`,
	Args: cobra.NoArgs,
	RunE: runReportHoursWages,
}

var reportLegacySalesCmd = &cobra.Command{
	Use:   "legacy-sales-labor --location-id <id> --from <date> --to <date>",
	Short: "Daily sales and labor from the v1 reports endpoint",
	Args:  cobra.NoArgs,
	RunE:  runReportLegacySales,
}

var reportLegacyLaborCmd = &cobra.Command{
	Use:   "legacy-daily-labor --location-id <id> --week <date>",
	Short: "One week of daily labor from the v1 reports endpoint",
	Args:  cobra.NoArgs,
	RunE:  runReportLegacyLabor,
}

func init() {
	reportDailySalesCmd.Flags().Int64Var(&reportDepartment, "department-id", 0, "only this department")

	f := reportHoursWagesCmd.Flags()
	f.StringVar(&reportFrom, "from", "", "first day (YYYY-MM-DD, required)")
	f.StringVar(&reportTo, "to", "", "last day (YYYY-MM-DD, required)")
	f.BoolVar(&reportPunches, "punches", false, "use time punches instead of scheduled shifts")
	f.Int64Var(&reportLocation, "location-id", 0, "only this location")
	f.Int64Var(&reportDepartment, "department-id", 0, "only this department")
	f.Int64Var(&reportRole, "role-id", 0, "only this role")
	f.Int64Var(&reportUser, "user-id", 0, "only this user")
	_ = reportHoursWagesCmd.MarkFlagRequired("from")
	_ = reportHoursWagesCmd.MarkFlagRequired("to")

	f = reportLegacySalesCmd.Flags()
	f.Int64Var(&reportLocation, "location-id", 0, "location (required)")
	f.StringVar(&reportFrom, "from", "", "first day (YYYY-MM-DD, required)")
	f.StringVar(&reportTo, "to", "", "last day (YYYY-MM-DD, required)")
	f.BoolVar(&reportIncludeUnapproved, "include-unapproved", false, "count unapproved punches")
	_ = reportLegacySalesCmd.MarkFlagRequired("location-id")
	_ = reportLegacySalesCmd.MarkFlagRequired("from")
	_ = reportLegacySalesCmd.MarkFlagRequired("to")

	f = reportLegacyLaborCmd.Flags()
	f.Int64Var(&reportLocation, "location-id", 0, "location (required)")
	f.StringVar(&reportWeek, "week", "", "any day in the week (YYYY-MM-DD, required)")
	f.Int64Var(&reportDepartment, "department-id", 0, "only this department")
	f.BoolVar(&reportIncludeUnapproved, "include-unapproved", false, "count unapproved punches")
	_ = reportLegacyLaborCmd.MarkFlagRequired("location-id")
	_ = reportLegacyLaborCmd.MarkFlagRequired("week")

	reportCmd.AddCommand(reportDailySalesCmd, reportHoursWagesCmd, reportLegacySalesCmd, reportLegacyLaborCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportDailySales(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	locationID, err := parseID("location-id", args[0])
	if err != nil {
		return err
	}
	start, err := parseDateFlag("start-date", args[1])
	if err != nil {
		return err
	}
	end, err := parseDateFlag("end-date", args[2])
	if err != nil {
		return err
	}
	filter := domain.DailySalesAndLaborFilter{
		LocationID:   locationID,
		StartDate:    start,
		EndDate:      end,
		DepartmentID: reportDepartment,
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	rows, err := svc.DailySalesAndLabor(commandContext(cmd), filter)
	if err != nil {
		return fmt.Errorf("daily sales and labor: %w", err)
	}
	return renderList(cmd, rows,
		[]any{"DATE", "SALES", "PROJECTED", "LABOR", "PROJECTED LABOR", "SPLH", "LABOR %"},
		func(r domain.DailySalesAndLabor) []any {
			return []any{
				day(r.Date), amount(r.ActualSales), amount(r.ProjectedSales),
				amount(r.ActualLaborCost), amount(r.ProjectedLaborCost),
				amount(r.SalesPerLaborHour), amount(r.LaborPercent),
			}
		})
}

func runReportHoursWages(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	from, err := parseDateFlag("from", reportFrom)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", reportTo)
	if err != nil {
		return err
	}
	filter := domain.HoursAndWagesFilter{
		From:         from,
		To:           to,
		Punches:      reportPunches,
		LocationID:   reportLocation,
		DepartmentID: reportDepartment,
		RoleID:       reportRole,
		UserID:       reportUser,
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	report, err := svc.HoursAndWages(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("hours and wages: %w", err)
	}
	if report == nil {
		report = &domain.HoursAndWagesReport{}
	}

	return render(cmd, wire(report), func() tableRows {
		t := tableRows{header: []any{"USER", "NAME", "REGULAR", "OVERTIME", "TOTAL HOURS", "TOTAL PAY", "TIPS"}}
		for _, u := range report.Users {
			name := strings.TrimSpace(u.User.FirstName + " " + u.User.LastName)
			t.rows = append(t.rows, []any{
				u.User.ID, orDash(name), amount(u.Total.RegularHours), amount(u.Total.OvertimeHours),
				amount(u.Total.TotalHours), amount(u.Total.TotalPay), amount(u.Total.TotalTips),
			})
		}
		if len(t.rows) > 0 {
			total := report.Total
			t.rows = append(t.rows, []any{
				"", "TOTAL", amount(total.RegularHours), amount(total.OvertimeHours),
				amount(total.TotalHours), amount(total.TotalPay), amount(total.TotalTips),
			})
		}
		return t
	})
}

func runReportLegacySales(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	from, err := parseDateFlag("from", reportFrom)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", reportTo)
	if err != nil {
		return err
	}
	filter := domain.LegacySalesAndLaborFilter{
		From:              from,
		To:                to,
		LocationID:        reportLocation,
		IncludeUnapproved: reportIncludeUnapproved,
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	report, err := svc.LegacySalesAndLabor(commandContext(cmd), filter)
	if err != nil {
		return fmt.Errorf("legacy sales and labor: %w", err)
	}
	return renderLegacyReport(cmd, report)
}

func runReportLegacyLabor(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	week, err := parseDateFlag("week", reportWeek)
	if err != nil {
		return err
	}
	filter := domain.LegacyDailyLaborFilter{
		Week:              week,
		LocationID:        reportLocation,
		DepartmentID:      reportDepartment,
		IncludeUnapproved: reportIncludeUnapproved,
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	report, err := svc.LegacyDailyLabor(commandContext(cmd), filter)
	if err != nil {
		return fmt.Errorf("legacy daily labor: %w", err)
	}
	return renderLegacyReport(cmd, report)
}

func renderLegacyReport(cmd *cobra.Command, report *domain.LegacyDailyReport) error {
	if report == nil {
		report = &domain.LegacyDailyReport{}
	}
	return render(cmd, wire(report), func() tableRows {
		t := tableRows{header: []any{"DATE", "LOCATION", "SCHEDULED HRS", "SCHEDULED COST", "WORKED HRS", "LABOR", "SALES"}}
		for _, d := range report.Daily {
			sales := d.ActualSales
			if sales == 0 {
				sales = d.Actual
			}
			t.rows = append(t.rows, []any{
				day(d.Date), d.LocationID, amount(d.LaborHoursScheduled), amount(d.LaborCostScheduled),
				amount(d.LaborHoursWorked), amount(d.LaborActual), amount(sales),
			})
		}
		return t
	})
}
