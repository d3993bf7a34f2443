package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/proencasmoda/loja-api/internal/testutils"
	"github.com/proencasmoda/loja-api/pkg/security"
)

const testSecret = "test-secret-with-at-least-32-bytes!!"

func setupAuthRouter(t *testing.T) (*gin.Engine, *security.KeyManager) {
	logger := zaptest.NewLogger(t)

	keyManager, err := security.NewKeyManager(testSecret, logger)
	require.NoError(t, err)

	authMiddleware := NewAuthMiddleware(keyManager, logger)

	router := testutils.SetupTestRouter(t)
	protected := router.Group("/api/admin")
	protected.Use(authMiddleware.RequireAdmin)
	protected.GET("/categories", func(c *gin.Context) {
		claims := AdminClaims(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"admin": claims.Username})
	})

	return router, keyManager
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/categories", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Não autorizado"}`, resp.Body.String())
}

func TestRequireAdmin_MalformedHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/categories", nil, map[string]string{
		"Authorization": "Basic abc123",
	})

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Não autorizado"}`, resp.Body.String())
}

func TestRequireAdmin_GarbageToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/categories", nil, map[string]string{
		"Authorization": "Bearer nao-sou-um-jwt",
	})

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Não autorizado"}`, resp.Body.String())
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	router, keyManager := setupAuthRouter(t)

	token, err := keyManager.GenerateToken("admin-1", "ana", -time.Minute)
	require.NoError(t, err)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/categories", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Não autorizado"}`, resp.Body.String())
}

func TestRequireAdmin_WrongSecret(t *testing.T) {
	router, _ := setupAuthRouter(t)

	otherManager, err := security.NewKeyManager("another-secret-with-at-least-32-bytes", zaptest.NewLogger(t))
	require.NoError(t, err)

	token, err := otherManager.GenerateToken("admin-1", "ana", time.Hour)
	require.NoError(t, err)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/categories", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
}

func TestRequireAdmin_ValidToken(t *testing.T) {
	router, keyManager := setupAuthRouter(t)

	token, err := keyManager.GenerateToken("admin-1", "ana", time.Hour)
	require.NoError(t, err)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/categories", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "ana")
}
