package service

import (
	"context"
	"log"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
	"github.com/ridwanfathin/invoice-vault/internal/repository"
	"github.com/ridwanfathin/invoice-vault/internal/storage"
)

// InvoiceService exposes read and manual-delete access to stored invoices.
type InvoiceService struct {
	repo  repository.InvoiceRepository
	store storage.ObjectStore
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(repo repository.InvoiceRepository, store storage.ObjectStore) *InvoiceService {
	return &InvoiceService{
		repo:  repo,
		store: store,
	}
}

// GetInvoice retrieves an invoice and its items by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.repo.GetInvoiceByID(ctx, invoiceID)
}

// ListInvoices retrieves invoices for one owner, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, userID string, offset, limit int) ([]domain.Invoice, error) {
	return s.repo.ListInvoices(ctx, userID, offset, limit)
}

// DeleteInvoice removes one invoice on demand, ahead of its retention
// window. The image delete follows the same best-effort policy as the
// cleanup executor: blob first, record second, record delete mandatory.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	invoice, err := s.repo.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	if invoice.ImageURL != nil && *invoice.ImageURL != "" {
		if err := s.store.Delete(ctx, *invoice.ImageURL); err != nil {
			log.Printf("Failed to delete image %s: %v", *invoice.ImageURL, err)
		}
	}

	return s.repo.DeleteInvoice(ctx, invoiceID)
}
