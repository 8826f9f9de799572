package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// Shift list flags.
var (
	shiftLocation      int64
	shiftDepartments   []int64
	shiftIDs           []int64
	shiftRole          int64
	shiftUser          int64
	shiftStartGTE      string
	shiftStartLTE      string
	shiftEndGTE        string
	shiftEndLTE        string
	shiftModifiedSince string
	shiftSortBy        string
	shiftSortDir       string
	shiftGetDeleted    bool
)

// Punch list flags.
var (
	punchLocation      int64
	punchDepartment    int64
	punchRole          int64
	punchUser          int64
	punchModifiedSince string
	punchInGTE         string
	punchInLTE         string
	punchOutGTE        string
	punchOutLTE        string
	punchSortBy        string
	punchSortDir       string
)

var shiftCmd = &cobra.Command{
	Use:   "shift",
	Short: "List and show shifts",
}

var shiftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shifts",
	Long: `List the company's shifts.

Time filters accept RFC 3339 timestamps or YYYY-MM-DD dates. A date is read
in the configured sync timezone: the start of the day for --*-gte and the
end of the day for --*-lte.`,
	Args: cobra.NoArgs,
	RunE: runShiftList,
}

var shiftGetCmd = &cobra.Command{
	Use:   "get <shift-id>",
	Short: "Show a shift",
	Args:  cobra.ExactArgs(1),
	RunE:  runShiftGet,
}

var punchCmd = &cobra.Command{
	Use:   "punch",
	Short: "List and show time punches",
}

var punchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List time punches",
	Long: `List the company's time punches.

Time filters accept RFC 3339 timestamps or YYYY-MM-DD dates, read the same
way as for 'shift list'.`,
	Args: cobra.NoArgs,
	RunE: runPunchList,
}

var punchGetCmd = &cobra.Command{
	Use:   "get <punch-id>",
	Short: "Show a time punch",
	Args:  cobra.ExactArgs(1),
	RunE:  runPunchGet,
}

func init() {
	f := shiftListCmd.Flags()
	f.Int64Var(&shiftLocation, "location-id", 0, "only shifts at this location")
	f.Int64SliceVar(&shiftDepartments, "department-id", nil, "only shifts in these departments (repeatable)")
	f.Int64SliceVar(&shiftIDs, "shift-id", nil, "only these shifts (repeatable)")
	f.Int64Var(&shiftRole, "role-id", 0, "only shifts for this role")
	f.Int64Var(&shiftUser, "user-id", 0, "only shifts for this user")
	f.StringVar(&shiftStartGTE, "start-gte", "", "shifts starting at or after")
	f.StringVar(&shiftStartLTE, "start-lte", "", "shifts starting at or before")
	f.StringVar(&shiftEndGTE, "end-gte", "", "shifts ending at or after")
	f.StringVar(&shiftEndLTE, "end-lte", "", "shifts ending at or before")
	f.Bool("deleted", false, "only deleted (true) or only live (false) shifts")
	f.Bool("draft", false, "only draft (true) or only published (false) shifts")
	f.Bool("include-draft", false, "include unpublished shifts")
	f.Bool("open", false, "only open (true) or only assigned (false) shifts")
	f.StringVar(&shiftModifiedSince, "modified-since", "", "only shifts modified on or after this date")
	f.StringVar(&shiftSortBy, "sort-by", "", "sort by start or end")
	f.StringVar(&shiftSortDir, "sort-dir", "", "sort direction: asc or desc")
	f.IntVar(&listLimit, "limit", 0, "page size (default: API default)")
	shiftGetCmd.Flags().BoolVar(&shiftGetDeleted, "include-deleted", false, "return the shift even if deleted")

	f = punchListCmd.Flags()
	f.Int64Var(&punchLocation, "location-id", 0, "only punches at this location")
	f.Int64Var(&punchDepartment, "department-id", 0, "only punches in this department")
	f.Int64Var(&punchRole, "role-id", 0, "only punches for this role")
	f.Int64Var(&punchUser, "user-id", 0, "only punches for this user")
	f.Bool("approved", false, "only approved (true) or only unapproved (false) punches")
	f.StringVar(&punchModifiedSince, "modified-since", "", "only punches modified on or after this date")
	f.StringVar(&punchInGTE, "clocked-in-gte", "", "clocked in at or after")
	f.StringVar(&punchInLTE, "clocked-in-lte", "", "clocked in at or before")
	f.StringVar(&punchOutGTE, "clocked-out-gte", "", "clocked out at or after")
	f.StringVar(&punchOutLTE, "clocked-out-lte", "", "clocked out at or before")
	f.StringVar(&punchSortBy, "sort-by", "", "sort by clocked_in or clocked_out")
	f.StringVar(&punchSortDir, "sort-dir", "", "sort direction: asc or desc")
	f.IntVar(&listLimit, "limit", 0, "page size (default: API default)")

	shiftCmd.AddCommand(shiftListCmd, shiftGetCmd)
	punchCmd.AddCommand(punchListCmd, punchGetCmd)
	rootCmd.AddCommand(shiftCmd, punchCmd)
}

var shiftHeader = []any{"ID", "USER", "LOCATION", "ROLE", "START", "END", "HOURS", "STATUS"}

func shiftRow(s domain.Shift) []any {
	status := "-"
	switch {
	case s.Deleted:
		status = "deleted"
	case s.Draft:
		status = "draft"
	case s.Open:
		status = "open"
	case s.AttendanceStatus != "":
		status = s.AttendanceStatus
	}
	return []any{s.ID, s.UserID, s.LocationID, s.RoleID, stamp(s.Start), stamp(s.End), hours(s.Duration()), status}
}

var punchHeader = []any{"ID", "USER", "LOCATION", "CLOCKED IN", "CLOCKED OUT", "HOURS", "APPROVED", "TIPS"}

func punchRow(p domain.TimePunch) []any {
	return []any{
		p.ID, p.UserID, p.LocationID, stamp(p.ClockedIn), stamp(p.ClockedOut),
		hours(p.Duration()), yesNo(p.Approved), money(p.Tips),
	}
}

func buildShiftFilter(cmd *cobra.Command) (domain.ShiftFilter, error) {
	modifiedSince, err := parseDateFlag("modified-since", shiftModifiedSince)
	if err != nil {
		return domain.ShiftFilter{}, err
	}
	filter := domain.ShiftFilter{
		ListOptions:   domain.ListOptions{Limit: listLimit},
		LocationID:    shiftLocation,
		ShiftIDs:      shiftIDs,
		DepartmentIDs: shiftDepartments,
		RoleID:        shiftRole,
		UserID:        shiftUser,
		Deleted:       optionalBool(cmd, "deleted"),
		Draft:         optionalBool(cmd, "draft"),
		IncludeDraft:  optionalBool(cmd, "include-draft"),
		Open:          optionalBool(cmd, "open"),
		ModifiedSince: modifiedSince,
		SortBy:        shiftSortBy,
		SortDir:       shiftSortDir,
	}
	err = parseTimes([]timeFlag{
		{"start-gte", shiftStartGTE, false, &filter.StartGTE},
		{"start-lte", shiftStartLTE, true, &filter.StartLTE},
		{"end-gte", shiftEndGTE, false, &filter.EndGTE},
		{"end-lte", shiftEndLTE, true, &filter.EndLTE},
	})
	if err != nil {
		return domain.ShiftFilter{}, err
	}
	return filter, filter.Validate()
}

func buildPunchFilter(cmd *cobra.Command) (domain.TimePunchFilter, error) {
	modifiedSince, err := parseDateFlag("modified-since", punchModifiedSince)
	if err != nil {
		return domain.TimePunchFilter{}, err
	}
	filter := domain.TimePunchFilter{
		ListOptions:   domain.ListOptions{Limit: listLimit},
		LocationID:    punchLocation,
		DepartmentID:  punchDepartment,
		RoleID:        punchRole,
		UserID:        punchUser,
		Approved:      optionalBool(cmd, "approved"),
		ModifiedSince: modifiedSince,
		SortBy:        punchSortBy,
		SortDir:       punchSortDir,
	}
	err = parseTimes([]timeFlag{
		{"clocked-in-gte", punchInGTE, false, &filter.ClockedInGTE},
		{"clocked-in-lte", punchInLTE, true, &filter.ClockedInLTE},
		{"clocked-out-gte", punchOutGTE, false, &filter.ClockedOutGTE},
		{"clocked-out-lte", punchOutLTE, true, &filter.ClockedOutLTE},
	})
	if err != nil {
		return domain.TimePunchFilter{}, err
	}
	return filter, filter.Validate()
}

func runShiftList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	filter, err := buildShiftFilter(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	shifts, err := svc.ListShifts(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("list shifts: %w", err)
	}
	return renderList(cmd, shifts, shiftHeader, shiftRow)
}

func runShiftGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("shift-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	shift, err := svc.GetShift(ctx, companyID, id, shiftGetDeleted)
	if err != nil {
		return fmt.Errorf("get shift %d: %w", id, err)
	}
	return renderOne(cmd, shift, shiftHeader, shiftRow)
}

func runPunchList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	filter, err := buildPunchFilter(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	punches, err := svc.ListTimePunches(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("list time punches: %w", err)
	}
	return renderList(cmd, punches, punchHeader, punchRow)
}

func runPunchGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("punch-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	punch, err := svc.GetTimePunch(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("get time punch %d: %w", id, err)
	}
	return renderOne(cmd, punch, punchHeader, punchRow)
}
