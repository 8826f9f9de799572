package domain

import "encoding/json"

// Receipt statuses.
const (
	ReceiptOpen    = "open"
	ReceiptClosed  = "closed"
	ReceiptVoided  = "voided"
	ReceiptDeleted = "deleted"
)

// Receipt is a point-of-sale transaction pushed into 7shifts.
// Amounts are in cents.
type Receipt struct {
	ID                    string            `json:"id"`
	CompanyID             int64             `json:"company_id"`
	LocationID            int64             `json:"location_id"`
	ReceiptID             string            `json:"receipt_id"`
	ReceiptDate           Timestamp         `json:"receipt_date"`
	NetTotal              int64             `json:"net_total"`
	GrossTotal            int64             `json:"gross_total,omitempty"`
	Tips                  int64             `json:"tips"`
	TotalReceiptDiscounts int64             `json:"total_receipt_discounts"`
	Status                string            `json:"status"`
	ExternalUserID        string            `json:"external_user_id,omitempty"`
	RevenueCenter         string            `json:"revenue_center,omitempty"`
	ReceiptLines          []json.RawMessage `json:"receipt_lines,omitempty"`
	TipDetails            []json.RawMessage `json:"tip_details,omitempty"`
	Created               Timestamp         `json:"created"`
	Modified              Timestamp         `json:"modified"`
	RawJSON
}

// ReceiptInput is the body of a receipt create or update.
type ReceiptInput struct {
	LocationID            int64             `json:"location_id"`
	ReceiptID             string            `json:"receipt_id"`
	ReceiptDate           string            `json:"receipt_date"`
	NetTotal              int64             `json:"net_total"`
	TotalReceiptDiscounts int64             `json:"total_receipt_discounts,omitempty"`
	Tips                  int64             `json:"tips,omitempty"`
	Status                string            `json:"status,omitempty"`
	ExternalUserID        string            `json:"external_user_id,omitempty"`
	RevenueCenter         string            `json:"revenue_center,omitempty"`
	ReceiptLines          []json.RawMessage `json:"receipt_lines,omitempty"`
	TipDetails            []json.RawMessage `json:"tip_details,omitempty"`
}
