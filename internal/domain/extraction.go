package domain

// Customer holds the customer block of an extracted invoice. Only the name
// is guaranteed by the extraction contract; everything else may be absent.
type Customer struct {
	Name            string  `json:"name"`
	BillingAddress  *string `json:"billing_address,omitempty"`
	ShippingAddress *string `json:"shipping_address,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
}

// InvoiceDetails holds the identifying fields of an extracted invoice.
type InvoiceDetails struct {
	IssueDate     DateOnly  `json:"issue_date"`
	InvoiceNumber string    `json:"invoice_number"`
	DueDate       *DateOnly `json:"due_date,omitempty"`
	PONumber      *string   `json:"po_number,omitempty"`
}

// ExtractedItem is one line item as returned by the extraction model.
type ExtractedItem struct {
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	TotalPrice  float64  `json:"total_price"`
	TaxRate     *float64 `json:"tax_rate,omitempty"`
}

// SalesTax is the optional tax block of an extracted invoice.
type SalesTax struct {
	Rate   *float64 `json:"rate,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// Discount is the optional discount block of an extracted invoice.
type Discount struct {
	Rate        *float64 `json:"rate,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Terms is the optional payment terms block of an extracted invoice.
type Terms struct {
	PaymentDue *string `json:"payment_due,omitempty"`
	PayableTo  *string `json:"payable_to,omitempty"`
	LateFee    *string `json:"late_fee,omitempty"`
}

// ExtractedInvoice is the structured data the extraction model returns for
// one invoice image. The ingestion pipeline maps it onto a persisted
// Invoice, applying the currency and status defaults.
type ExtractedInvoice struct {
	Company   string          `json:"company"`
	Customer  Customer        `json:"customer"`
	Details   InvoiceDetails  `json:"details"`
	Items     []ExtractedItem `json:"items"`
	Subtotal  float64         `json:"subtotal"`
	SalesTax  *SalesTax       `json:"sales_tax,omitempty"`
	Discount  *Discount       `json:"discount,omitempty"`
	TotalDue  float64         `json:"total_due"`
	Terms     *Terms          `json:"terms,omitempty"`
	Signature *string         `json:"signature,omitempty"`
	Purpose   *string         `json:"purpose,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	Currency  *string         `json:"currency,omitempty"`
	Status    *string         `json:"status,omitempty"`
}

// ExtractionResult is the top-level object the extraction model returns.
type ExtractionResult struct {
	Invoice ExtractedInvoice `json:"invoice"`
}
