package domain

import (
	"encoding/json"
	"time"
)

// AnonymousUserID is the reserved owner identity for invoices ingested
// without an authenticated user. Records owned by it are expired on the
// short retention window.
const AnonymousUserID = "00000000-0000-0000-0000-000000000000"

// DateOnly is a custom type for handling date-only strings from JSON
type DateOnly struct {
	time.Time
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	// Handle null/empty dates
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Parse date-only format
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format("2006-01-02"))
}

// InvoiceItem represents a single line of a parent invoice. Items are
// created only during ingestion and are removed by the database cascade
// when the parent invoice is deleted.
type InvoiceItem struct {
	ID          string   `json:"id,omitempty"`
	InvoiceID   string   `json:"invoice_id,omitempty"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	TotalPrice  float64  `json:"total_price"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
}

// Invoice is the persisted record for one ingested document. CreatedAt is
// assigned by the database at insert time and is the sole input to
// retention decisions.
type Invoice struct {
	ID                      string        `json:"id"`
	UserID                  string        `json:"user_id"`
	Company                 string        `json:"company"`
	CustomerName            string        `json:"customer_name"`
	CustomerBillingAddress  *string       `json:"customer_billing_address,omitempty"`
	CustomerShippingAddress *string       `json:"customer_shipping_address,omitempty"`
	CustomerEmail           *string       `json:"customer_email,omitempty"`
	CustomerPhone           *string       `json:"customer_phone,omitempty"`
	IssueDate               DateOnly      `json:"issue_date"`
	InvoiceNumber           string        `json:"invoice_number"`
	DueDate                 *DateOnly     `json:"due_date,omitempty"`
	PONumber                *string       `json:"po_number,omitempty"`
	Subtotal                float64       `json:"subtotal"`
	SalesTaxRate            *float64      `json:"sales_tax_rate,omitempty"`
	SalesTaxAmount          *float64      `json:"sales_tax_amount,omitempty"`
	DiscountRate            *float64      `json:"discount_rate,omitempty"`
	DiscountAmount          *float64      `json:"discount_amount,omitempty"`
	DiscountDescription     *string       `json:"discount_description,omitempty"`
	TotalDue                float64       `json:"total_due"`
	PaymentTerms            *string       `json:"payment_terms,omitempty"`
	PayableTo               *string       `json:"payable_to,omitempty"`
	LateFee                 *string       `json:"late_fee,omitempty"`
	Signature               *string       `json:"signature,omitempty"`
	Purpose                 *string       `json:"purpose,omitempty"`
	Notes                   *string       `json:"notes,omitempty"`
	Currency                string        `json:"currency"`
	Status                  string        `json:"status"`
	ImageURL                *string       `json:"image_url,omitempty"`
	Items                   []InvoiceItem `json:"items"`
	CreatedAt               time.Time     `json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`
}

// IsAnonymous reports whether the invoice belongs to the reserved
// anonymous owner.
func (i *Invoice) IsAnonymous() bool {
	return i.UserID == AnonymousUserID
}
