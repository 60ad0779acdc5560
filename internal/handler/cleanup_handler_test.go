package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridwanfathin/invoice-vault/internal/config"
	"github.com/ridwanfathin/invoice-vault/internal/domain"
	"github.com/ridwanfathin/invoice-vault/internal/middleware"
	"github.com/ridwanfathin/invoice-vault/internal/model"
	"github.com/ridwanfathin/invoice-vault/internal/service"
)

const cleanupSecret = "test-cron-secret"

func newCleanupRouter(repo *stubRepository, store *stubObjectStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	policy := config.RetentionPolicy{
		AnonymousTTL:     15 * time.Minute,
		AuthenticatedTTL: 24 * time.Hour,
		AnonymousUserID:  domain.AnonymousUserID,
	}
	engine := service.NewRetentionEngine(repo, policy)
	cleanup := service.NewCleanupService(engine, repo, store)

	router := gin.New()
	group := router.Group("/v1", middleware.CleanupAuth(cleanupSecret))
	NewCleanupHandler(cleanup).RegisterRoutes(group)
	return router
}

func postCleanup(router *gin.Engine, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/cleanup", nil)
	if secret != "" {
		req.Header.Set("Authorization", "Bearer "+secret)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestTriggerCleanup_DeletesExpiredInvoices(t *testing.T) {
	repo := newStubRepository()
	store := newStubObjectStore()

	key := "expired/test.jpg"
	store.objects[key] = []byte("image-bytes")
	expired := repo.add(domain.AnonymousUserID, time.Now().Add(-time.Hour), &key)
	fresh := repo.add(domain.AnonymousUserID, time.Now(), nil)

	router := newCleanupRouter(repo, store)
	recorder := postCleanup(router, cleanupSecret)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp model.CleanupResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Cleanup completed successfully", resp.Message)
	assert.Equal(t, 1, resp.Deleted.Invoices)
	assert.Equal(t, 1, resp.Deleted.Images)
	assert.NotEmpty(t, resp.CutoffTimes.Anonymous)
	assert.NotEmpty(t, resp.CutoffTimes.Authenticated)

	_, expiredPresent := repo.invoices[expired.ID]
	assert.False(t, expiredPresent)
	_, freshPresent := repo.invoices[fresh.ID]
	assert.True(t, freshPresent)
	assert.NotContains(t, store.objects, key)
}

func TestTriggerCleanup_NothingExpired(t *testing.T) {
	repo := newStubRepository()
	repo.add(domain.AnonymousUserID, time.Now(), nil)

	router := newCleanupRouter(repo, newStubObjectStore())
	recorder := postCleanup(router, cleanupSecret)

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp model.CleanupResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Deleted.Invoices)
	assert.Equal(t, 0, resp.Deleted.Images)
}

func TestTriggerCleanup_BatchDeleteFailureReportsPartialCounts(t *testing.T) {
	repo := newStubRepository()
	repo.deleteByIDsErr = assert.AnError

	key := "expired/test.jpg"
	store := newStubObjectStore()
	store.objects[key] = []byte("image-bytes")
	repo.add(domain.AnonymousUserID, time.Now().Add(-time.Hour), &key)

	router := newCleanupRouter(repo, store)
	recorder := postCleanup(router, cleanupSecret)

	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var resp model.CleanupResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "Cleanup failed during delete", resp.Message)
	assert.Equal(t, 0, resp.Deleted.Invoices)
	assert.Equal(t, 1, resp.Deleted.Images)
}

func TestTriggerCleanup_RejectsMissingToken(t *testing.T) {
	router := newCleanupRouter(newStubRepository(), newStubObjectStore())

	recorder := postCleanup(router, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = postCleanup(router, "wrong-secret")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
