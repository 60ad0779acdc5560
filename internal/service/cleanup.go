package service

import (
	"context"
	"log"
	"time"

	"github.com/ridwanfathin/invoice-vault/internal/repository"
	"github.com/ridwanfathin/invoice-vault/internal/storage"
)

// CleanupReport summarizes one cleanup run. It is returned to the caller
// and never persisted.
type CleanupReport struct {
	InvoicesDeleted     int       `json:"invoices_deleted"`
	ImagesDeleted       int       `json:"images_deleted"`
	AnonymousCutoff     time.Time `json:"anonymous_cutoff"`
	AuthenticatedCutoff time.Time `json:"authenticated_cutoff"`
}

// CleanupService deletes expired invoices and their images. Image deletes
// are best-effort: an orphaned blob is a recoverable disk-space leak,
// while a lingering record is a retention violation, so record deletion
// is never skipped because an image delete failed. The executor keeps no
// state between runs; a run immediately after a successful one finds an
// empty expired set.
type CleanupService struct {
	engine *RetentionEngine
	repo   repository.InvoiceRepository
	store  storage.ObjectStore
}

// NewCleanupService creates a new cleanup executor
func NewCleanupService(engine *RetentionEngine, repo repository.InvoiceRepository, store storage.ObjectStore) *CleanupService {
	return &CleanupService{
		engine: engine,
		repo:   repo,
		store:  store,
	}
}

// Run performs one cleanup sweep at now. On a batch delete failure the
// returned report still carries the image deletions that already
// happened; they are not rolled back.
func (s *CleanupService) Run(ctx context.Context, now time.Time) (*CleanupReport, error) {
	cutoffs := s.engine.Cutoffs(now)
	report := &CleanupReport{
		AnonymousCutoff:     cutoffs.Anonymous,
		AuthenticatedCutoff: cutoffs.Authenticated,
	}

	expired, err := s.engine.FindExpired(ctx, now)
	if err != nil {
		return report, err
	}

	log.Printf("Cleanup: found %d invoices to delete", len(expired))
	if len(expired) == 0 {
		return report, nil
	}

	// Delete associated images from storage, best-effort
	invoiceIDs := make([]string, 0, len(expired))
	for _, invoice := range expired {
		invoiceIDs = append(invoiceIDs, invoice.ID)

		if invoice.ImageURL == nil || *invoice.ImageURL == "" {
			continue
		}
		if err := s.store.Delete(ctx, *invoice.ImageURL); err != nil {
			log.Printf("Failed to delete image %s: %v", *invoice.ImageURL, err)
			continue
		}
		report.ImagesDeleted++
	}

	// Delete invoices; the database cascade removes their items
	if err := s.repo.DeleteByIDs(ctx, invoiceIDs); err != nil {
		return report, &DeleteError{Err: err}
	}

	// The store does not report partial batch failure, so a successful
	// batch counts in full.
	report.InvoicesDeleted = len(invoiceIDs)

	log.Printf("Cleanup: deleted %d invoices and %d images", report.InvoicesDeleted, report.ImagesDeleted)
	return report, nil
}
