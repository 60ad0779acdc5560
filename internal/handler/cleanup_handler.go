package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-vault/internal/model"
	"github.com/ridwanfathin/invoice-vault/internal/service"
)

// CleanupHandler exposes the cleanup trigger endpoint. Authorization is
// enforced by middleware before this handler runs.
type CleanupHandler struct {
	cleanup *service.CleanupService
}

// NewCleanupHandler creates a new cleanup handler
func NewCleanupHandler(cleanup *service.CleanupService) *CleanupHandler {
	return &CleanupHandler{
		cleanup: cleanup,
	}
}

// RegisterRoutes registers the handler's routes on the given group
func (h *CleanupHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/cleanup", h.TriggerCleanup)
}

// TriggerCleanup runs one cleanup sweep
// @Summary Trigger retention cleanup
// @Description Delete invoices past their retention window along with their images
// @Tags cleanup
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CleanupResponse "Cleanup completed"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Failure 500 {object} model.CleanupResponse "Cleanup failed, partial counts included"
// @Router /v1/cleanup [post]
func (h *CleanupHandler) TriggerCleanup(c *gin.Context) {
	log.Println("Starting cleanup process...")

	report, err := h.cleanup.Run(c.Request.Context(), time.Now())
	if err != nil {
		log.Printf("Cleanup failed: %v", err)

		// A failed batch delete still reports the image deletions that
		// already happened; they are not rolled back.
		var deleteErr *service.DeleteError
		if errors.As(err, &deleteErr) && report != nil {
			c.JSON(http.StatusInternalServerError, model.NewCleanupResponse("Cleanup failed during delete", report))
			return
		}

		respondInternalServerError(c, "Cleanup failed")
		return
	}

	respondOK(c, model.NewCleanupResponse("Cleanup completed successfully", report))
}
