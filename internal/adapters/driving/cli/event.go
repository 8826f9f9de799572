package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

var (
	eventStart       string
	eventEnd         string
	eventLocation    int64
	eventInputFile   string
	eventTarget      string
	eventDeleteStart string
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events between two dates",
	Args:  cobra.NoArgs,
	RunE:  runEventList,
}

var eventGetCmd = &cobra.Command{
	Use:   "get <event-id>",
	Short: "Show an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventGet,
}

var eventCreateCmd = &cobra.Command{
	Use:   "create -f <file>",
	Short: "Create an event from a JSON or YAML file",
	Long: `Create an event from a JSON or YAML file ('-' reads stdin). Example:

  title: Inventory count
  start_date: "2024-03-01"
  start_time: "08:00:00"
  end_date: "2024-03-01"
  end_time: "10:00:00"
  location_ids: [12345]`,
	Args: cobra.NoArgs,
	RunE: runEventCreate,
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update <event-id> -f <file>",
	Short: "Update an event from a JSON or YAML file",
	Long: `Update an event. Fields missing from the file are left unchanged.
For a recurring event, --target chooses between this occurrence (THIS)
and this and every later one (THIS_AND_FUTURE).`,
	Args: cobra.ExactArgs(1),
	RunE: runEventUpdate,
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete <event-id>",
	Short: "Delete an event",
	Long: `Delete an event. For a recurring event, --target and --start-date pick
the occurrences to delete.`,
	Args: cobra.ExactArgs(1),
	RunE: runEventDelete,
}

func init() {
	eventListCmd.Flags().StringVar(&eventStart, "start", "", "first day (YYYY-MM-DD, required)")
	eventListCmd.Flags().StringVar(&eventEnd, "end", "", "last day (YYYY-MM-DD, required)")
	eventListCmd.Flags().Int64Var(&eventLocation, "location-id", 0, "only events at this location")
	_ = eventListCmd.MarkFlagRequired("start")
	_ = eventListCmd.MarkFlagRequired("end")

	for _, c := range []*cobra.Command{eventCreateCmd, eventUpdateCmd} {
		c.Flags().StringVarP(&eventInputFile, "file", "f", "", "JSON or YAML input file ('-' for stdin)")
		_ = c.MarkFlagRequired("file")
	}
	for _, c := range []*cobra.Command{eventUpdateCmd, eventDeleteCmd} {
		c.Flags().StringVar(&eventTarget, "target", "", "recurring events: THIS or THIS_AND_FUTURE")
	}
	eventDeleteCmd.Flags().StringVar(&eventDeleteStart, "start-date", "", "recurring events: occurrence date (YYYY-MM-DD)")

	eventCmd.AddCommand(eventListCmd, eventGetCmd, eventCreateCmd, eventUpdateCmd, eventDeleteCmd)
	rootCmd.AddCommand(eventCmd)
}

var eventHeader = []any{"ID", "TITLE", "START", "END", "LOCATIONS"}

func eventRow(e domain.Event) []any {
	start := day(e.StartDate)
	if e.StartTime != "" {
		start += " " + e.StartTime
	}
	end := day(e.EndDate)
	if e.EndTime != "" {
		end += " " + e.EndTime
	}
	locations := make([]string, 0, len(e.LocationIDs))
	for _, id := range e.LocationIDs {
		locations = append(locations, fmt.Sprint(id))
	}
	return []any{e.ID, e.Title, start, end, orDash(strings.Join(locations, ","))}
}

func parseRecurrenceTarget(value string) (domain.RecurrenceTarget, error) {
	target := domain.RecurrenceTarget(strings.ToUpper(strings.TrimSpace(value)))
	if !target.IsValid() {
		return "", fmt.Errorf("%w: --target must be %s or %s", domain.ErrInvalidInput,
			domain.RecurrenceThis, domain.RecurrenceThisAndFuture)
	}
	return target, nil
}

func runEventList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	start, err := parseDateFlag("start", eventStart)
	if err != nil {
		return err
	}
	end, err := parseDateFlag("end", eventEnd)
	if err != nil {
		return err
	}
	filter := domain.EventFilter{StartDate: start, EndDate: end, LocationID: eventLocation}
	if err := filter.Validate(); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	events, err := svc.ListEvents(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}
	return renderList(cmd, events, eventHeader, eventRow)
}

func runEventGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("event-id", args[0])
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	event, err := svc.GetEvent(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("get event %d: %w", id, err)
	}
	return renderOne(cmd, event, eventHeader, eventRow)
}

func runEventCreate(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	var input domain.EventInput
	if err := readInput(cmd, eventInputFile, &input); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	event, err := svc.CreateEvent(ctx, companyID, input)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return renderOne(cmd, event, eventHeader, eventRow)
}

func runEventUpdate(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("event-id", args[0])
	if err != nil {
		return err
	}
	target, err := parseRecurrenceTarget(eventTarget)
	if err != nil {
		return err
	}
	var input domain.EventInput
	if err := readInput(cmd, eventInputFile, &input); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	event, err := svc.UpdateEvent(ctx, companyID, id, input, target)
	if err != nil {
		return fmt.Errorf("update event %d: %w", id, err)
	}
	return renderOne(cmd, event, eventHeader, eventRow)
}

func runEventDelete(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id, err := parseID("event-id", args[0])
	if err != nil {
		return err
	}
	target, err := parseRecurrenceTarget(eventTarget)
	if err != nil {
		return err
	}
	startDate, err := parseDateFlag("start-date", eventDeleteStart)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	if err := svc.DeleteEvent(ctx, companyID, id, target, startDate); err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	cmd.Printf("Event %d deleted.\n", id)
	return nil
}
