package model

import (
	"time"

	"github.com/ridwanfathin/invoice-vault/internal/service"
)

// ErrorDetail represents a single field-level error
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// UploadSuccessResponse is returned after a successful ingestion
type UploadSuccessResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// CleanupCounts holds the deletion counts of one cleanup run
type CleanupCounts struct {
	Invoices int `json:"invoices"`
	Images   int `json:"images"`
}

// CleanupCutoffs holds the cutoff timestamps used by one cleanup run
type CleanupCutoffs struct {
	Anonymous     string `json:"anonymous"`
	Authenticated string `json:"authenticated"`
}

// CleanupResponse is returned by the cleanup trigger endpoint
type CleanupResponse struct {
	Message     string         `json:"message"`
	Deleted     CleanupCounts  `json:"deleted"`
	CutoffTimes CleanupCutoffs `json:"cutoff_times"`
}

// NewCleanupResponse builds a CleanupResponse from a cleanup report
func NewCleanupResponse(message string, report *service.CleanupReport) CleanupResponse {
	return CleanupResponse{
		Message: message,
		Deleted: CleanupCounts{
			Invoices: report.InvoicesDeleted,
			Images:   report.ImagesDeleted,
		},
		CutoffTimes: CleanupCutoffs{
			Anonymous:     report.AnonymousCutoff.UTC().Format(time.RFC3339),
			Authenticated: report.AuthenticatedCutoff.UTC().Format(time.RFC3339),
		},
	}
}
