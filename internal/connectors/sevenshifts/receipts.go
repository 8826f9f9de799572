package sevenshifts

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// ListReceipts returns every receipt matching filter.
func (c *Client) ListReceipts(
	ctx context.Context, companyID int64, filter domain.ReceiptFilter,
) ([]domain.Receipt, error) {
	var all []domain.Receipt
	err := c.WalkReceipts(ctx, companyID, filter, func(page []domain.Receipt) error {
		all = append(all, page...)
		return nil
	})
	return all, err
}

// WalkReceipts calls fn with each page of receipts matching filter.
func (c *Client) WalkReceipts(
	ctx context.Context, companyID int64, filter domain.ReceiptFilter, fn func([]domain.Receipt) error,
) error {
	if err := filter.Validate(); err != nil {
		return err
	}
	q, err := encodeQuery(newReceiptQuery(filter))
	if err != nil {
		return err
	}
	return walkPages(ctx, c, companyPath(companyID, "receipts"), q, false, fn)
}

// GetReceipt returns one receipt by its 7shifts id.
func (c *Client) GetReceipt(ctx context.Context, companyID int64, id string) (*domain.Receipt, error) {
	return getOne[domain.Receipt](ctx, c, "Receipt", id,
		companyPath(companyID, "receipts", url.PathEscape(id)), nil, false)
}

// CreateReceipt pushes a new receipt.
func (c *Client) CreateReceipt(
	ctx context.Context, companyID int64, input domain.ReceiptInput,
) (*domain.Receipt, error) {
	if err := validateReceiptInput(input); err != nil {
		return nil, err
	}
	return send[domain.Receipt](ctx, c, http.MethodPost, companyPath(companyID, "receipts"), nil, input)
}

// UpdateReceipt replaces an existing receipt.
func (c *Client) UpdateReceipt(
	ctx context.Context, companyID int64, id string, input domain.ReceiptInput,
) (*domain.Receipt, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: receipt id is required", domain.ErrInvalidInput)
	}
	if err := validateReceiptInput(input); err != nil {
		return nil, err
	}
	return send[domain.Receipt](ctx, c, http.MethodPut,
		companyPath(companyID, "receipts", url.PathEscape(id)), nil, input)
}

func validateReceiptInput(input domain.ReceiptInput) error {
	switch {
	case input.LocationID == 0:
		return fmt.Errorf("%w: receipt location_id is required", domain.ErrInvalidInput)
	case input.ReceiptID == "":
		return fmt.Errorf("%w: receipt receipt_id is required", domain.ErrInvalidInput)
	case input.ReceiptDate == "":
		return fmt.Errorf("%w: receipt receipt_date is required", domain.ErrInvalidInput)
	}
	return nil
}
