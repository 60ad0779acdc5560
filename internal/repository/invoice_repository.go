package repository

import (
	"context"
	"time"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

// InvoiceRepository defines the interface for invoice data storage operations.
// The backing store owns the parent/child relationship: deleting an invoice
// deletes its items atomically via cascade, so callers never enumerate items
// on the delete path.
type InvoiceRepository interface {
	// CreateInvoice inserts a new invoice record and fills in the
	// store-generated ID and timestamps.
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error)

	// CreateInvoiceItems inserts line items referencing an existing invoice.
	CreateInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error

	// GetInvoiceByID retrieves an invoice and its items by ID.
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices for one owner, newest first.
	ListInvoices(ctx context.Context, userID string, offset, limit int) ([]domain.Invoice, error)

	// FindOwnedBefore returns invoices owned by ownerID created strictly
	// before cutoff.
	FindOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error)

	// FindNotOwnedBefore returns invoices owned by anyone other than
	// ownerID created strictly before cutoff.
	FindNotOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error)

	// DeleteInvoice deletes a single invoice by ID, cascading to its items.
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// DeleteByIDs deletes the given invoices in one statement, cascading to
	// their items. Already-deleted IDs are a no-op, so concurrent cleanup
	// runs may safely pass overlapping batches.
	DeleteByIDs(ctx context.Context, invoiceIDs []string) error
}
