package handler

import (
	"errors"
	"io"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-vault/internal/model"
	"github.com/ridwanfathin/invoice-vault/internal/service"
)

// InvoiceHandler handles HTTP requests for invoice ingestion and access
type InvoiceHandler struct {
	ingest      *service.IngestService
	invoices    *service.InvoiceService
	userID      string
	maxFileSize int64
}

// NewInvoiceHandler creates a new invoice handler. userID identifies the
// owner whose invoices the read endpoints expose.
func NewInvoiceHandler(ingest *service.IngestService, invoices *service.InvoiceService, userID string, maxFileSize int64) *InvoiceHandler {
	if maxFileSize <= 0 {
		maxFileSize = 5 * 1024 * 1024
	}

	return &InvoiceHandler{
		ingest:      ingest,
		invoices:    invoices,
		userID:      userID,
		maxFileSize: maxFileSize,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/invoices/upload", h.UploadInvoice)
	router.GET("/v1/invoices", h.ListInvoices)
	router.GET("/v1/invoices/:id", h.GetInvoice)
	router.DELETE("/v1/invoices/:id", h.DeleteInvoice)
}

// UploadInvoice handles a request to ingest a single invoice image
// @Summary Upload an invoice
// @Description Upload an invoice image, extract its data with AI and store both
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Invoice image file"
// @Success 201 {object} model.UploadSuccessResponse "Successfully ingested invoice"
// @Failure 400 {object} model.ErrorResponse "Invalid upload"
// @Failure 502 {object} model.ErrorResponse "Extraction failed"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/invoices/upload [post]
func (h *InvoiceHandler) UploadInvoice(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(h.maxFileSize); err != nil {
		respondBadRequest(c, "Failed to parse form data: "+err.Error())
		return
	}

	file, header, err := getFormFile(c, "file")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		respondInternalServerError(c, "Failed to read file data: "+err.Error())
		return
	}

	log.Printf("Ingesting invoice: %s (%d bytes)", header.Filename, header.Size)
	invoiceID, err := h.ingest.Ingest(c.Request.Context(), service.UploadInput{
		Data:        fileData,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	})
	if err != nil {
		respondIngestError(c, err)
		return
	}

	respondCreated(c, model.UploadSuccessResponse{
		Success: true,
		ID:      invoiceID,
		Message: "Invoice processed successfully",
	})
}

// respondIngestError maps the ingestion error taxonomy to HTTP statuses
func respondIngestError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var extractionErr *service.ExtractionError

	switch {
	case errors.As(err, &validationErr):
		respondBadRequest(c, validationErr.Reason)
	case errors.As(err, &extractionErr):
		respondBadGateway(c, ErrDataExtraction)
	default:
		log.Printf("Ingestion failed: %v", err)
		respondInternalServerError(c, ErrFileUpload)
	}
}

// GetInvoice handles a request to fetch one invoice with its items
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} domain.Invoice
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Router /v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoiceID, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoices.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondNotFound(c, ErrResourceNotFound)
		} else {
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondOK(c, invoice)
}

// ListInvoices handles a request to list stored invoices
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.Invoice
// @Router /v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	offset, err := getQueryInt(c, "offset", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	limit, err := getQueryInt(c, "limit", 10)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	invoices, err := h.invoices.ListInvoices(c.Request.Context(), h.userID, offset, limit)
	if err != nil {
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	respondOK(c, invoices)
}

// DeleteInvoice handles a request to delete one invoice ahead of its
// retention window
// @Summary Delete an invoice
// @Tags invoices
// @Param id path string true "Invoice ID"
// @Success 204 "Invoice deleted"
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Router /v1/invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	invoiceID, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.invoices.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondNotFound(c, ErrResourceNotFound)
		} else {
			respondInternalServerError(c, ErrInternalServer)
		}
		return
	}

	respondNoContent(c)
}
