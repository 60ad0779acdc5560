package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
	"github.com/ridwanfathin/invoice-vault/internal/extraction"
	"github.com/ridwanfathin/invoice-vault/internal/identity"
	"github.com/ridwanfathin/invoice-vault/internal/repository"
	"github.com/ridwanfathin/invoice-vault/internal/storage"
)

const (
	defaultCurrency = "USD"
	defaultStatus   = "draft"
)

// UploadInput carries one uploaded invoice image into the pipeline.
type UploadInput struct {
	Data        []byte
	Filename    string
	ContentType string
	Size        int64
}

// IngestService runs the ingestion pipeline: validate the upload, extract
// structured data, store the image blob, then insert the record. The
// record insert happens last so a mid-pipeline failure never leaves a
// record pointing at data that was never stored; the reverse (an orphaned
// blob after a failed insert) is accepted.
type IngestService struct {
	repo          repository.InvoiceRepository
	store         storage.ObjectStore
	extractor     extraction.Extractor
	resolver      identity.OwnerResolver
	maxUploadSize int64
}

// NewIngestService creates a new ingestion pipeline
func NewIngestService(
	repo repository.InvoiceRepository,
	store storage.ObjectStore,
	extractor extraction.Extractor,
	resolver identity.OwnerResolver,
	maxUploadSize int64,
) *IngestService {
	if maxUploadSize <= 0 {
		maxUploadSize = 5 * 1024 * 1024
	}

	return &IngestService{
		repo:          repo,
		store:         store,
		extractor:     extractor,
		resolver:      resolver,
		maxUploadSize: maxUploadSize,
	}
}

// Ingest processes one uploaded invoice image and returns the new invoice
// ID. Validation happens before any external call; a validation failure
// has no side effects.
func (s *IngestService) Ingest(ctx context.Context, input UploadInput) (string, error) {
	if !strings.HasPrefix(input.ContentType, "image/") {
		return "", &ValidationError{Reason: "file must be an image"}
	}
	if input.Size > s.maxUploadSize || int64(len(input.Data)) > s.maxUploadSize {
		return "", &ValidationError{Reason: fmt.Sprintf("file size must be less than %d bytes", s.maxUploadSize)}
	}

	userID := s.resolver.Resolve(ctx)

	result, err := s.extractor.ExtractInvoice(ctx, input.Data, input.ContentType)
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	key := s.blobKey(userID, input.Filename)

	if err := s.store.EnsureBucket(ctx); err != nil {
		return "", &StorageSetupError{Err: err}
	}

	if err := s.store.Put(ctx, key, input.Data, input.ContentType); err != nil {
		return "", &UploadError{Key: key, Err: err}
	}

	invoice := mapExtractedInvoice(&result.Invoice, userID, key)
	if _, err := s.repo.CreateInvoice(ctx, invoice); err != nil {
		return "", &PersistError{Key: key, Err: err}
	}

	if len(result.Invoice.Items) > 0 {
		items := mapExtractedItems(result.Invoice.Items)
		if err := s.repo.CreateInvoiceItems(ctx, invoice.ID, items); err != nil {
			// A header without items beats discarding a successful
			// extraction, so the invoice stands.
			log.Printf("Warning: %v", &ItemsPersistError{InvoiceID: invoice.ID, Err: err})
		}
	}

	return invoice.ID, nil
}

// blobKey generates the store key {owner}/{uuid}.{ext}, deriving the
// extension from the original filename and defaulting to jpg.
func (s *IngestService) blobKey(userID, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s/%s.%s", userID, uuid.NewString(), ext)
}

// mapExtractedInvoice maps an extraction result onto a persistable record.
// Missing optional nested fields stay absent; currency and status receive
// their documented defaults.
func mapExtractedInvoice(ext *domain.ExtractedInvoice, userID, imageKey string) *domain.Invoice {
	invoice := &domain.Invoice{
		UserID:                  userID,
		Company:                 ext.Company,
		CustomerName:            ext.Customer.Name,
		CustomerBillingAddress:  ext.Customer.BillingAddress,
		CustomerShippingAddress: ext.Customer.ShippingAddress,
		CustomerEmail:           ext.Customer.Email,
		CustomerPhone:           ext.Customer.Phone,
		IssueDate:               ext.Details.IssueDate,
		InvoiceNumber:           ext.Details.InvoiceNumber,
		DueDate:                 ext.Details.DueDate,
		PONumber:                ext.Details.PONumber,
		Subtotal:                ext.Subtotal,
		TotalDue:                ext.TotalDue,
		Signature:               ext.Signature,
		Purpose:                 ext.Purpose,
		Notes:                   ext.Notes,
		Currency:                defaultCurrency,
		Status:                  defaultStatus,
		ImageURL:                &imageKey,
	}

	if ext.SalesTax != nil {
		invoice.SalesTaxRate = ext.SalesTax.Rate
		invoice.SalesTaxAmount = ext.SalesTax.Amount
	}
	if ext.Discount != nil {
		invoice.DiscountRate = ext.Discount.Rate
		invoice.DiscountAmount = ext.Discount.Amount
		invoice.DiscountDescription = ext.Discount.Description
	}
	if ext.Terms != nil {
		invoice.PaymentTerms = ext.Terms.PaymentDue
		invoice.PayableTo = ext.Terms.PayableTo
		invoice.LateFee = ext.Terms.LateFee
	}
	if ext.Currency != nil && *ext.Currency != "" {
		invoice.Currency = *ext.Currency
	}
	if ext.Status != nil && *ext.Status != "" {
		invoice.Status = *ext.Status
	}

	return invoice
}

func mapExtractedItems(extItems []domain.ExtractedItem) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(extItems))
	for i, item := range extItems {
		items[i] = domain.InvoiceItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			TaxRate:     item.TaxRate,
		}
	}
	return items
}
