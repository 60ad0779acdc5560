package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db *pgxpool.Pool
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db *pgxpool.Pool) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{
		db: db,
	}
}

const invoiceColumns = `id, user_id, company, customer_name, customer_billing_address,
	customer_shipping_address, customer_email, customer_phone, issue_date,
	invoice_number, due_date, po_number, subtotal, sales_tax_rate,
	sales_tax_amount, discount_rate, discount_amount, discount_description,
	total_due, payment_terms, payable_to, late_fee, signature, purpose, notes,
	currency, status, image_url, created_at, updated_at`

// CreateInvoice saves a new invoice to the database
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	var dueDate *time.Time
	if invoice.DueDate != nil {
		dueDate = &invoice.DueDate.Time
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO invoices (user_id, company, customer_name, customer_billing_address,
			customer_shipping_address, customer_email, customer_phone, issue_date,
			invoice_number, due_date, po_number, subtotal, sales_tax_rate,
			sales_tax_amount, discount_rate, discount_amount, discount_description,
			total_due, payment_terms, payable_to, late_fee, signature, purpose, notes,
			currency, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING id, created_at, updated_at
	`,
		invoice.UserID, invoice.Company, invoice.CustomerName, invoice.CustomerBillingAddress,
		invoice.CustomerShippingAddress, invoice.CustomerEmail, invoice.CustomerPhone, invoice.IssueDate.Time,
		invoice.InvoiceNumber, dueDate, invoice.PONumber, invoice.Subtotal, invoice.SalesTaxRate,
		invoice.SalesTaxAmount, invoice.DiscountRate, invoice.DiscountAmount, invoice.DiscountDescription,
		invoice.TotalDue, invoice.PaymentTerms, invoice.PayableTo, invoice.LateFee,
		invoice.Signature, invoice.Purpose, invoice.Notes,
		invoice.Currency, invoice.Status, invoice.ImageURL,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	return invoice, nil
}

// CreateInvoiceItems saves line items referencing an existing invoice
func (r *PostgresInvoiceRepository) CreateInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if not committed

	for i := range items {
		item := &items[i]
		err = tx.QueryRow(ctx, `
			INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, total_price, tax_rate)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, invoiceID, item.Description, item.Quantity, item.UnitPrice, item.TotalPrice, item.TaxRate).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert invoice item: %w", err)
		}
		item.InvoiceID = invoiceID
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetInvoiceByID retrieves an invoice and its items by ID
func (r *PostgresInvoiceRepository) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s
		FROM invoices
		WHERE id = $1
	`, invoiceColumns), invoiceID)

	invoice, err := scanInvoice(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("invoice not found: %s", invoiceID)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	// Query invoice items
	rows, err := r.db.Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, total_price, tax_rate
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY id
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	invoice.Items = []domain.InvoiceItem{}
	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.TotalPrice, &item.TaxRate); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		invoice.Items = append(invoice.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice items: %w", err)
	}

	return invoice, nil
}

// ListInvoices retrieves invoices for one owner, newest first
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context, userID string, offset, limit int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM invoices
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, invoiceColumns), userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	invoiceMap := make(map[string]int)
	var invoiceIDs []string

	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoice.Items = []domain.InvoiceItem{}
		invoiceMap[invoice.ID] = len(invoices)
		invoiceIDs = append(invoiceIDs, invoice.ID)
		invoices = append(invoices, *invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	if len(invoiceIDs) == 0 {
		return invoices, nil
	}

	// Get items for all invoices in a single query
	placeholders := make([]string, len(invoiceIDs))
	itemArgs := make([]interface{}, len(invoiceIDs))
	for i, id := range invoiceIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		itemArgs[i] = id
	}

	itemQuery := fmt.Sprintf(`
		SELECT id, invoice_id, description, quantity, unit_price, total_price, tax_rate
		FROM invoice_items
		WHERE invoice_id IN (%s)
		ORDER BY id
	`, strings.Join(placeholders, ", "))

	itemRows, err := r.db.Query(ctx, itemQuery, itemArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item domain.InvoiceItem
		if err := itemRows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity,
			&item.UnitPrice, &item.TotalPrice, &item.TaxRate); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		if idx, ok := invoiceMap[item.InvoiceID]; ok {
			invoices[idx].Items = append(invoices[idx].Items, item)
		}
	}

	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice items: %w", err)
	}

	return invoices, nil
}

// FindOwnedBefore returns invoices owned by ownerID created strictly before cutoff
func (r *PostgresInvoiceRepository) FindOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error) {
	return r.findExpiredCandidates(ctx, "user_id = $1", ownerID, cutoff)
}

// FindNotOwnedBefore returns invoices owned by anyone other than ownerID
// created strictly before cutoff
func (r *PostgresInvoiceRepository) FindNotOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error) {
	return r.findExpiredCandidates(ctx, "user_id <> $1", ownerID, cutoff)
}

func (r *PostgresInvoiceRepository) findExpiredCandidates(ctx context.Context, ownerPredicate, ownerID string, cutoff time.Time) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT id, user_id, image_url, created_at
		FROM invoices
		WHERE %s AND created_at < $2
	`, ownerPredicate), ownerID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var invoice domain.Invoice
		if err := rows.Scan(&invoice.ID, &invoice.UserID, &invoice.ImageURL, &invoice.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expired invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expired invoices: %w", err)
	}

	return invoices, nil
}

// DeleteInvoice deletes an invoice by its ID (cascade will delete items)
func (r *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %s", invoiceID)
	}

	return nil
}

// DeleteByIDs deletes the given invoices in one statement. Deleting an
// already-deleted ID is a no-op.
func (r *PostgresInvoiceRepository) DeleteByIDs(ctx context.Context, invoiceIDs []string) error {
	if len(invoiceIDs) == 0 {
		return nil
	}

	_, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = ANY($1)`, invoiceIDs)
	if err != nil {
		return fmt.Errorf("failed to delete invoices: %w", err)
	}

	return nil
}

// scanInvoice scans one full invoice row
func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var invoice domain.Invoice
	var issueDate time.Time
	var dueDate *time.Time

	err := row.Scan(
		&invoice.ID, &invoice.UserID, &invoice.Company, &invoice.CustomerName,
		&invoice.CustomerBillingAddress, &invoice.CustomerShippingAddress,
		&invoice.CustomerEmail, &invoice.CustomerPhone, &issueDate,
		&invoice.InvoiceNumber, &dueDate, &invoice.PONumber, &invoice.Subtotal,
		&invoice.SalesTaxRate, &invoice.SalesTaxAmount, &invoice.DiscountRate,
		&invoice.DiscountAmount, &invoice.DiscountDescription, &invoice.TotalDue,
		&invoice.PaymentTerms, &invoice.PayableTo, &invoice.LateFee,
		&invoice.Signature, &invoice.Purpose, &invoice.Notes,
		&invoice.Currency, &invoice.Status, &invoice.ImageURL,
		&invoice.CreatedAt, &invoice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	invoice.IssueDate = domain.DateOnly{Time: issueDate}
	if dueDate != nil {
		invoice.DueDate = &domain.DateOnly{Time: *dueDate}
	}

	return &invoice, nil
}
