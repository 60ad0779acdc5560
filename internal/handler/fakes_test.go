package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

// stubRepository is a minimal in-memory InvoiceRepository for boundary tests.
type stubRepository struct {
	invoices map[string]*domain.Invoice

	deleteByIDsErr error
}

func newStubRepository() *stubRepository {
	return &stubRepository{invoices: make(map[string]*domain.Invoice)}
}

func (r *stubRepository) add(userID string, createdAt time.Time, imageURL *string) *domain.Invoice {
	invoice := &domain.Invoice{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: createdAt,
		ImageURL:  imageURL,
	}
	r.invoices[invoice.ID] = invoice
	return invoice
}

func (r *stubRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	invoice.ID = uuid.NewString()
	invoice.CreatedAt = time.Now()
	r.invoices[invoice.ID] = invoice
	return invoice, nil
}

func (r *stubRepository) CreateInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	return nil
}

func (r *stubRepository) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	invoice, ok := r.invoices[invoiceID]
	if !ok {
		return nil, fmt.Errorf("invoice not found: %s", invoiceID)
	}
	return invoice, nil
}

func (r *stubRepository) ListInvoices(ctx context.Context, userID string, offset, limit int) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	for _, invoice := range r.invoices {
		if invoice.UserID == userID {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}

func (r *stubRepository) FindOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	for _, invoice := range r.invoices {
		if invoice.UserID == ownerID && invoice.CreatedAt.Before(cutoff) {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}

func (r *stubRepository) FindNotOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error) {
	invoices := []domain.Invoice{}
	for _, invoice := range r.invoices {
		if invoice.UserID != ownerID && invoice.CreatedAt.Before(cutoff) {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}

func (r *stubRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if _, ok := r.invoices[invoiceID]; !ok {
		return fmt.Errorf("invoice not found: %s", invoiceID)
	}
	delete(r.invoices, invoiceID)
	return nil
}

func (r *stubRepository) DeleteByIDs(ctx context.Context, invoiceIDs []string) error {
	if r.deleteByIDsErr != nil {
		return r.deleteByIDsErr
	}
	for _, id := range invoiceIDs {
		delete(r.invoices, id)
	}
	return nil
}

// stubObjectStore is a minimal in-memory ObjectStore for boundary tests.
type stubObjectStore struct {
	objects map[string][]byte
}

func newStubObjectStore() *stubObjectStore {
	return &stubObjectStore{objects: make(map[string][]byte)}
}

func (s *stubObjectStore) EnsureBucket(ctx context.Context) error {
	return nil
}

func (s *stubObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if _, exists := s.objects[key]; exists {
		return fmt.Errorf("object already exists: %s", key)
	}
	s.objects[key] = data
	return nil
}

func (s *stubObjectStore) Delete(ctx context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

// stubExtractor returns a canned result or error.
type stubExtractor struct {
	result *domain.ExtractionResult
	err    error
}

func (e *stubExtractor) ExtractInvoice(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractionResult, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}
