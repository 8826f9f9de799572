package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

var (
	userActive        bool
	userInactive      bool
	userModifiedSince string
	userLocation      int64
	userDepartment    int64
	userRole          int64
	userName          string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "List and show users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the company's users",
	Args:  cobra.NoArgs,
	RunE:  runUserList,
}

var userGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Show a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserGet,
}

var wageCmd = &cobra.Command{
	Use:   "wage",
	Short: "Show user wages",
}

var wageListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List a user's current and upcoming wages",
	Args:  cobra.ExactArgs(1),
	RunE:  runWageList,
}

var assignmentCmd = &cobra.Command{
	Use:   "assignment",
	Short: "Show user assignments",
}

var assignmentListCmd = &cobra.Command{
	Use:   "list <user-id>",
	Short: "List the locations, departments and roles a user is assigned to",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssignmentList,
}

func init() {
	f := userListCmd.Flags()
	f.BoolVar(&userActive, "active", false, "only active users")
	f.BoolVar(&userInactive, "inactive", false, "only inactive users")
	f.StringVar(&userModifiedSince, "modified-since", "", "only users modified on or after this date (YYYY-MM-DD)")
	f.Int64Var(&userLocation, "location-id", 0, "only users at this location")
	f.Int64Var(&userDepartment, "department-id", 0, "only users in this department")
	f.Int64Var(&userRole, "role-id", 0, "only users with this role")
	f.StringVar(&userName, "name", "", "only users whose name matches")
	f.IntVar(&listLimit, "limit", 0, "page size (default: API default)")
	userListCmd.MarkFlagsMutuallyExclusive("active", "inactive")

	userCmd.AddCommand(userListCmd, userGetCmd)
	wageCmd.AddCommand(wageListCmd)
	assignmentCmd.AddCommand(assignmentListCmd)
	rootCmd.AddCommand(userCmd, wageCmd, assignmentCmd)
}

var userHeader = []any{"ID", "NAME", "EMAIL", "TYPE", "EMPLOYEE ID", "ACTIVE", "HIRED"}

func userRow(u domain.User) []any {
	return []any{u.ID, orDash(u.FullName()), orDash(u.Email), orDash(u.Type), orDash(u.EmployeeID), yesNo(u.Active), day(u.HireDate)}
}

func runUserList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	modifiedSince, err := parseDateFlag("modified-since", userModifiedSince)
	if err != nil {
		return err
	}
	filter := domain.UserFilter{
		ListOptions:   domain.ListOptions{Limit: listLimit},
		ModifiedSince: modifiedSince,
		LocationID:    userLocation,
		DepartmentID:  userDepartment,
		RoleID:        userRole,
		Name:          userName,
	}
	switch {
	case userActive:
		filter.Status = domain.UserStatusActive
	case userInactive:
		filter.Status = domain.UserStatusInactive
	}

	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	users, err := svc.ListUsers(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	return renderList(cmd, users, userHeader, userRow)
}

func runUserGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("user-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	user, err := svc.GetUser(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("get user %d: %w", id, err)
	}
	return renderOne(cmd, user, userHeader, userRow)
}

func runWageList(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	userID, err := parseID("user-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	wages, err := svc.ListUserWages(ctx, companyID, userID)
	if err != nil {
		return fmt.Errorf("list wages for user %d: %w", userID, err)
	}
	if wages == nil {
		wages = &domain.UserWages{}
	}

	return render(cmd, wages, func() tableRows {
		t := tableRows{header: []any{"ID", "STATUS", "EFFECTIVE", "TYPE", "WAGE", "ROLE"}}
		add := func(status string, list []domain.Wage) {
			for _, w := range list {
				role := "-"
				if w.RoleID != nil {
					role = fmt.Sprint(*w.RoleID)
				}
				t.rows = append(t.rows, []any{w.ID, status, day(w.EffectiveDate), w.WageType, money(w.WageCents), role})
			}
		}
		add("current", wages.CurrentWages)
		add("upcoming", wages.UpcomingWages)
		return t
	})
}

func runAssignmentList(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	userID, err := parseID("user-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	assignments, err := svc.ListUserAssignments(ctx, companyID, userID)
	if err != nil {
		return fmt.Errorf("list assignments for user %d: %w", userID, err)
	}
	if assignments == nil {
		assignments = &domain.Assignments{}
	}

	return render(cmd, assignments, func() tableRows {
		t := tableRows{header: []any{"KIND", "ID", "NAME", "LOCATION", "DETAIL"}}
		for _, l := range assignments.Locations {
			t.rows = append(t.rows, []any{"location", l.ID, l.Name, l.ID, "-"})
		}
		for _, d := range assignments.Departments {
			t.rows = append(t.rows, []any{"department", d.ID, d.Name, d.LocationID, "-"})
		}
		for _, r := range assignments.Roles {
			detail := fmt.Sprintf("skill %d", r.SkillLevel)
			if r.IsPrimary {
				detail += ", primary"
			}
			t.rows = append(t.rows, []any{"role", r.ID, r.Name, r.LocationID, detail})
		}
		return t
	})
}
