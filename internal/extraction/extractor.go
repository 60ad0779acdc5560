package extraction

import (
	"context"

	"github.com/ridwanfathin/invoice-vault/internal/domain"
)

// Extractor produces structured invoice data from raw image bytes. The
// ingestion pipeline treats it as a black box: any failure aborts the
// whole ingestion with no partial record.
type Extractor interface {
	ExtractInvoice(ctx context.Context, imageData []byte, mimeType string) (*domain.ExtractionResult, error)
}

// ExtractionError represents an error that occurred during AI extraction
type ExtractionError struct {
	Op  string // Operation that caused the error
	Err error  // Original error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return "extraction error: " + e.Op
	}
	return "extraction error: " + e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
