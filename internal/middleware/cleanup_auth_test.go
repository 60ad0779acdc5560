package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func cleanupAuthRequest(t *testing.T, secret, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/v1/cleanup", CleanupAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/cleanup", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCleanupAuth_ValidSecret(t *testing.T) {
	w := cleanupAuthRequest(t, "super-secret", "Bearer super-secret")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCleanupAuth_MissingHeader(t *testing.T) {
	w := cleanupAuthRequest(t, "super-secret", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCleanupAuth_WrongSecret(t *testing.T) {
	w := cleanupAuthRequest(t, "super-secret", "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCleanupAuth_MalformedHeader(t *testing.T) {
	w := cleanupAuthRequest(t, "super-secret", "super-secret")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCleanupAuth_EmptyConfiguredSecretRejectsAll(t *testing.T) {
	w := cleanupAuthRequest(t, "", "Bearer anything")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
