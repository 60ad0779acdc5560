package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

// fakeRepository is an in-memory InvoiceRepository with per-method
// failure hooks.
type fakeRepository struct {
	mu       sync.Mutex
	invoices map[string]*domain.Invoice
	items    map[string][]domain.InvoiceItem

	createInvoiceErr error
	createItemsErr   error
	ownedQueryErr    error
	notOwnedQueryErr error
	deleteByIDsErr   error

	ownedQueries    int
	notOwnedQueries int
	deleteBatches   [][]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		invoices: make(map[string]*domain.Invoice),
		items:    make(map[string][]domain.InvoiceItem),
	}
}

func (r *fakeRepository) add(userID string, createdAt time.Time, imageURL *string) *domain.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice := &domain.Invoice{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: createdAt,
		ImageURL:  imageURL,
	}
	r.invoices[invoice.ID] = invoice
	return invoice
}

func (r *fakeRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	if r.createInvoiceErr != nil {
		return nil, r.createInvoiceErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	invoice.ID = uuid.NewString()
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = invoice.CreatedAt
	r.invoices[invoice.ID] = invoice
	return invoice, nil
}

func (r *fakeRepository) CreateInvoiceItems(ctx context.Context, invoiceID string, items []domain.InvoiceItem) error {
	if r.createItemsErr != nil {
		return r.createItemsErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[invoiceID] = append(r.items[invoiceID], items...)
	return nil
}

func (r *fakeRepository) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice, ok := r.invoices[invoiceID]
	if !ok {
		return nil, fmt.Errorf("invoice not found: %s", invoiceID)
	}

	copied := *invoice
	copied.Items = append([]domain.InvoiceItem{}, r.items[invoiceID]...)
	return &copied, nil
}

func (r *fakeRepository) ListInvoices(ctx context.Context, userID string, offset, limit int) ([]domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoices := []domain.Invoice{}
	for _, invoice := range r.invoices {
		if invoice.UserID == userID {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}

func (r *fakeRepository) FindOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error) {
	r.ownedQueries++
	if r.ownedQueryErr != nil {
		return nil, r.ownedQueryErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	invoices := []domain.Invoice{}
	for _, invoice := range r.invoices {
		if invoice.UserID == ownerID && invoice.CreatedAt.Before(cutoff) {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}

func (r *fakeRepository) FindNotOwnedBefore(ctx context.Context, ownerID string, cutoff time.Time) ([]domain.Invoice, error) {
	r.notOwnedQueries++
	if r.notOwnedQueryErr != nil {
		return nil, r.notOwnedQueryErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	invoices := []domain.Invoice{}
	for _, invoice := range r.invoices {
		if invoice.UserID != ownerID && invoice.CreatedAt.Before(cutoff) {
			invoices = append(invoices, *invoice)
		}
	}
	return invoices, nil
}

func (r *fakeRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.invoices[invoiceID]; !ok {
		return fmt.Errorf("invoice not found: %s", invoiceID)
	}
	delete(r.invoices, invoiceID)
	delete(r.items, invoiceID)
	return nil
}

func (r *fakeRepository) DeleteByIDs(ctx context.Context, invoiceIDs []string) error {
	r.deleteBatches = append(r.deleteBatches, invoiceIDs)
	if r.deleteByIDsErr != nil {
		return r.deleteByIDsErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range invoiceIDs {
		delete(r.invoices, id)
		delete(r.items, id)
	}
	return nil
}

// fakeObjectStore records puts and deletes; individual keys can be made
// to fail deletion.
type fakeObjectStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failDelete map[string]bool

	ensureBucketErr error
	putErr          error

	ensureCalls int
	putCalls    int
	deleteCalls int
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{
		objects:    make(map[string][]byte),
		failDelete: make(map[string]bool),
	}
}

func (s *fakeObjectStore) EnsureBucket(ctx context.Context) error {
	s.ensureCalls++
	return s.ensureBucketErr
}

func (s *fakeObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.putCalls++
	if s.putErr != nil {
		return s.putErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.objects[key]; exists {
		return fmt.Errorf("object already exists: %s", key)
	}
	s.objects[key] = data
	return nil
}

func (s *fakeObjectStore) Delete(ctx context.Context, key string) error {
	s.deleteCalls++

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDelete[key] {
		return fmt.Errorf("delete failed: %s", key)
	}
	delete(s.objects, key)
	return nil
}

// fakeExtractor returns a canned result or error and counts calls.
type fakeExtractor struct {
	result *domain.ExtractionResult
	err    error
	calls  int
}

func (e *fakeExtractor) ExtractInvoice(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractionResult, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

// fakeResolver resolves every request to a fixed owner.
type fakeResolver struct {
	userID string
}

func (r *fakeResolver) Resolve(ctx context.Context) string {
	return r.userID
}
