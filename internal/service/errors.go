package service

import "fmt"

// The ingestion and cleanup flows surface distinguishable error types so
// the HTTP boundary can map each failure mode to a status code without
// string matching. Every type wraps its cause.

// ValidationError indicates rejected input. No side effects have occurred.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ExtractionError indicates the AI collaborator failed or returned an
// unusable structure. Ingestion aborts with no partial record.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StorageSetupError indicates the object store bucket could not be
// prepared. Ingestion aborts before any write.
type StorageSetupError struct {
	Err error
}

func (e *StorageSetupError) Error() string {
	return fmt.Sprintf("storage setup failed: %v", e.Err)
}

func (e *StorageSetupError) Unwrap() error { return e.Err }

// UploadError indicates the image blob could not be written. No record
// row has been created.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistError indicates the invoice record insert failed after the image
// was uploaded. The uploaded blob is orphaned; there is no compensating
// delete.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist failed (blob %s orphaned): %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// ItemsPersistError indicates line items could not be inserted. The
// invoice record itself stands; this error is logged, never returned to
// the ingestion caller.
type ItemsPersistError struct {
	InvoiceID string
	Err       error
}

func (e *ItemsPersistError) Error() string {
	return fmt.Sprintf("items persist failed for invoice %s: %v", e.InvoiceID, e.Err)
}

func (e *ItemsPersistError) Unwrap() error { return e.Err }

// QueryError indicates a retention query failed. The whole sweep aborts;
// partial sweeps over a single retention class are disallowed.
type QueryError struct {
	Class string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("retention query for %s invoices failed: %v", e.Class, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// DeleteError indicates the batched relational delete failed during
// cleanup. Already-deleted images are not rolled back.
type DeleteError struct {
	Err error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("batch delete failed: %v", e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }
