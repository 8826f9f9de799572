package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

var (
	receiptLocation      int64
	receiptDateGTE       string
	receiptDateLTE       string
	receiptModifiedSince string
	receiptStatus        string
	receiptExternalUser  string
	receiptInputFile     string
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Manage point-of-sale receipts",
}

var receiptListCmd = &cobra.Command{
	Use:   "list --location-id <id>",
	Short: "List a location's receipts",
	Args:  cobra.NoArgs,
	RunE:  runReceiptList,
}

var receiptGetCmd = &cobra.Command{
	Use:   "get <receipt-id>",
	Short: "Show a receipt",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptGet,
}

var receiptCreateCmd = &cobra.Command{
	Use:   "create -f <file>",
	Short: "Create a receipt from a JSON or YAML file",
	Long: `Create a receipt from a JSON or YAML file ('-' reads stdin). Amounts
are in cents. Example:

  location_id: 12345
  receipt_id: "POS-0001"
  receipt_date: "2024-03-01T18:30:00Z"
  net_total: 4250
  tips: 600
  status: closed`,
	Args: cobra.NoArgs,
	RunE: runReceiptCreate,
}

var receiptUpdateCmd = &cobra.Command{
	Use:   "update <receipt-id> -f <file>",
	Short: "Update a receipt from a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptUpdate,
}

func init() {
	f := receiptListCmd.Flags()
	f.Int64Var(&receiptLocation, "location-id", 0, "location (required)")
	f.StringVar(&receiptDateGTE, "receipt-date-gte", "", "receipts dated at or after")
	f.StringVar(&receiptDateLTE, "receipt-date-lte", "", "receipts dated at or before")
	f.StringVar(&receiptModifiedSince, "modified-since", "", "only receipts modified on or after this date")
	f.StringVar(&receiptStatus, "status", "", "open, closed, voided or deleted")
	f.StringVar(&receiptExternalUser, "external-user-id", "", "only receipts for this POS user")
	f.IntVar(&listLimit, "limit", 0, "page size (default: API default)")
	_ = receiptListCmd.MarkFlagRequired("location-id")

	for _, c := range []*cobra.Command{receiptCreateCmd, receiptUpdateCmd} {
		c.Flags().StringVarP(&receiptInputFile, "file", "f", "", "JSON or YAML input file ('-' for stdin)")
		_ = c.MarkFlagRequired("file")
	}

	receiptCmd.AddCommand(receiptListCmd, receiptGetCmd, receiptCreateCmd, receiptUpdateCmd)
	rootCmd.AddCommand(receiptCmd)
}

var receiptHeader = []any{"ID", "RECEIPT", "LOCATION", "DATE", "NET", "TIPS", "STATUS"}

func receiptRow(r domain.Receipt) []any {
	return []any{r.ID, orDash(r.ReceiptID), r.LocationID, stamp(r.ReceiptDate), money(r.NetTotal), money(r.Tips), orDash(r.Status)}
}

func runReceiptList(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	modifiedSince, err := parseDateFlag("modified-since", receiptModifiedSince)
	if err != nil {
		return err
	}
	filter := domain.ReceiptFilter{
		ListOptions:    domain.ListOptions{Limit: listLimit},
		LocationID:     receiptLocation,
		ModifiedSince:  modifiedSince,
		Status:         strings.ToLower(receiptStatus),
		ExternalUserID: receiptExternalUser,
	}
	err = parseTimes([]timeFlag{
		{"receipt-date-gte", receiptDateGTE, false, &filter.ReceiptDateGTE},
		{"receipt-date-lte", receiptDateLTE, true, &filter.ReceiptDateLTE},
	})
	if err != nil {
		return err
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	receipts, err := svc.ListReceipts(ctx, companyID, filter)
	if err != nil {
		return fmt.Errorf("list receipts: %w", err)
	}
	return renderList(cmd, receipts, receiptHeader, receiptRow)
}

func runReceiptGet(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("%w: receipt-id is required", domain.ErrInvalidInput)
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	receipt, err := svc.GetReceipt(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("get receipt %s: %w", id, err)
	}
	return renderOne(cmd, receipt, receiptHeader, receiptRow)
}

func runReceiptCreate(cmd *cobra.Command, _ []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	var input domain.ReceiptInput
	if err := readInput(cmd, receiptInputFile, &input); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	receipt, err := svc.CreateReceipt(ctx, companyID, input)
	if err != nil {
		return fmt.Errorf("create receipt: %w", err)
	}
	return renderOne(cmd, receipt, receiptHeader, receiptRow)
}

func runReceiptUpdate(cmd *cobra.Command, args []string) error {
	svc, err := requireWorkforce()
	if err != nil {
		return err
	}
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("%w: receipt-id is required", domain.ErrInvalidInput)
	}
	var input domain.ReceiptInput
	if err := readInput(cmd, receiptInputFile, &input); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	companyID, err := resolveCompanyID(ctx, svc)
	if err != nil {
		return err
	}
	receipt, err := svc.UpdateReceipt(ctx, companyID, id, input)
	if err != nil {
		return fmt.Errorf("update receipt %s: %w", id, err)
	}
	return renderOne(cmd, receipt, receiptHeader, receiptRow)
}
