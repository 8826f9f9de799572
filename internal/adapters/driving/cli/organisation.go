package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

var (
	listLimit          int
	departmentLocation int64
	roleLocation       int64
	roleDepartment     int64
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the access token belongs to",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "List and show companies",
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the companies the token can see",
	Args:  cobra.NoArgs,
	RunE:  runCompanyList,
}

var companyGetCmd = &cobra.Command{
	Use:   "get <company-id>",
	Short: "Show a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompanyGet,
}

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "List and show locations",
}

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the company's locations",
	Args:  cobra.NoArgs,
	RunE:  runLocationList,
}

var locationGetCmd = &cobra.Command{
	Use:   "get <location-id>",
	Short: "Show a location",
	Args:  cobra.ExactArgs(1),
	RunE:  runLocationGet,
}

var departmentCmd = &cobra.Command{
	Use:   "department",
	Short: "List and show departments",
}

var departmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the company's departments",
	Args:  cobra.NoArgs,
	RunE:  runDepartmentList,
}

var departmentGetCmd = &cobra.Command{
	Use:   "get <department-id>",
	Short: "Show a department",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentGet,
}

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "List and show roles",
}

var roleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the company's roles",
	Args:  cobra.NoArgs,
	RunE:  runRoleList,
}

var roleGetCmd = &cobra.Command{
	Use:   "get <role-id>",
	Short: "Show a role and its stations",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoleGet,
}

func init() {
	for _, c := range []*cobra.Command{companyListCmd, locationListCmd, departmentListCmd, roleListCmd} {
		c.Flags().IntVar(&listLimit, "limit", 0, "page size (default: API default)")
	}
	departmentListCmd.Flags().Int64Var(&departmentLocation, "location-id", 0, "only departments at this location")
	roleListCmd.Flags().Int64Var(&roleLocation, "location-id", 0, "only roles at this location")
	roleListCmd.Flags().Int64Var(&roleDepartment, "department-id", 0, "only roles in this department")

	companyCmd.AddCommand(companyListCmd, companyGetCmd)
	locationCmd.AddCommand(locationListCmd, locationGetCmd)
	departmentCmd.AddCommand(departmentListCmd, departmentGetCmd)
	roleCmd.AddCommand(roleListCmd, roleGetCmd)
	rootCmd.AddCommand(whoamiCmd, companyCmd, locationCmd, departmentCmd, roleCmd)
}

var (
	companyHeader    = []any{"ID", "NAME", "COUNTRY", "STATUS", "CREATED"}
	locationHeader   = []any{"ID", "NAME", "CITY", "STATE", "TIMEZONE"}
	departmentHeader = []any{"ID", "NAME", "LOCATION"}
	roleHeader       = []any{"ID", "NAME", "LOCATION", "DEPARTMENT", "STATIONS"}
)

func companyRow(c domain.Company) []any {
	return []any{c.ID, c.Name, orDash(c.Country), orDash(c.Status), stamp(c.Created)}
}

func locationRow(l domain.Location) []any {
	return []any{l.ID, l.Name, orDash(l.City), orDash(l.State), orDash(l.Timezone)}
}

func departmentRow(d domain.Department) []any {
	return []any{d.ID, d.Name, d.LocationID}
}

func roleRow(r domain.Role) []any {
	names := make([]string, 0, len(r.Stations))
	for _, s := range r.Stations {
		names = append(names, s.Name)
	}
	return []any{r.ID, r.Name, r.LocationID, r.DepartmentID, orDash(strings.Join(names, ", "))}
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	identity, err := svc.Whoami(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("whoami: %w", err)
	}
	return renderOne(cmd, identity,
		[]any{"IDENTITY", "USER", "COMPANY", "NAME", "EMAIL"},
		func(i domain.Identity) []any {
			name := strings.TrimSpace(i.FirstName + " " + i.LastName)
			return []any{i.IdentityID, i.UserID, i.CompanyID, orDash(name), orDash(i.Email)}
		})
}

func runCompanyList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	companies, err := svc.ListCompanies(commandContext(cmd), domain.ListOptions{Limit: listLimit})
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}
	return renderList(cmd, companies, companyHeader, companyRow)
}

func runCompanyGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("company-id", args[0])
	if err != nil {
		return err
	}
	company, err := svc.GetCompany(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("get company %d: %w", id, err)
	}
	return renderOne(cmd, company, companyHeader, companyRow)
}

func runLocationList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	locations, err := svc.ListLocations(ctx, companyID, domain.LocationFilter{ListOptions: domain.ListOptions{Limit: listLimit}})
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	return renderList(cmd, locations, locationHeader, locationRow)
}

func runLocationGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("location-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	location, err := svc.GetLocation(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("get location %d: %w", id, err)
	}
	return renderOne(cmd, location, locationHeader, locationRow)
}

func runDepartmentList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	filter := domain.DepartmentFilter{
		ListOptions: domain.ListOptions{Limit: listLimit},
		LocationID:  departmentLocation,
	}
	departments, err := svc.ListDepartments(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("list departments: %w", err)
	}
	return renderList(cmd, departments, departmentHeader, departmentRow)
}

func runDepartmentGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("department-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	department, err := svc.GetDepartment(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("get department %d: %w", id, err)
	}
	return renderOne(cmd, department, departmentHeader, departmentRow)
}

func runRoleList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	filter := domain.RoleFilter{
		ListOptions:  domain.ListOptions{Limit: listLimit},
		LocationID:   roleLocation,
		DepartmentID: roleDepartment,
	}
	roles, err := svc.ListRoles(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("list roles: %w", err)
	}
	return renderList(cmd, roles, roleHeader, roleRow)
}

func runRoleGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("role-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	role, err := svc.GetRole(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("get role %d: %w", id, err)
	}
	return renderOne(cmd, role, roleHeader, roleRow)
}
