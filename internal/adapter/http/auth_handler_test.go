package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/proencasmoda/loja-api/internal/app/auth"
	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
	"github.com/proencasmoda/loja-api/internal/mocks"
	"github.com/proencasmoda/loja-api/internal/testutils"
	"github.com/proencasmoda/loja-api/pkg/security"
)

const testSecret = "test-secret-with-at-least-32-bytes!!"

type stubDB struct {
	err error
}

func (s *stubDB) Ping(ctx context.Context) error {
	return s.err
}

func setupAuthHandlerRouter(t *testing.T) (*gin.Engine, *mocks.MockAdminRepository, *security.KeyManager) {
	logger := zaptest.NewLogger(t)

	keyManager, err := security.NewKeyManager(testSecret, logger)
	require.NoError(t, err)

	adminRepo := new(mocks.MockAdminRepository)
	authService := auth.NewAuthService(keyManager, adminRepo, "segredo-de-setup", 168*time.Hour, logger)
	handler := NewAuthHandler(authService, &stubDB{}, logger)

	router := testutils.SetupTestRouter(t)
	router.POST("/api/admin/login", handler.Login)
	router.GET("/api/admin/verify", handler.Verify)
	router.POST("/api/admin/setup", handler.Setup)
	router.GET("/api/admin/test", handler.Test)

	return router, adminRepo, keyManager
}

func TestLogin_MissingFields(t *testing.T) {
	router, repo, _ := setupAuthHandlerRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/login",
		map[string]string{"username": "ana"}, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.JSONEq(t, `{"error": "Usuário e senha são obrigatórios"}`, resp.Body.String())

	repo.AssertNotCalled(t, "GetByCredentials", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, repo, _ := setupAuthHandlerRouter(t)

	repo.On("GetByCredentials", mock.Anything, "ana", "errada").
		Return(nil, repository.ErrInvalidCredentials)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/login",
		map[string]string{"username": "ana", "password": "errada"}, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Credenciais inválidas"}`, resp.Body.String())
}

func TestLogin_Success(t *testing.T) {
	router, repo, keyManager := setupAuthHandlerRouter(t)

	repo.On("GetByCredentials", mock.Anything, "ana", "senha123").
		Return(&model.Admin{ID: "admin-1", Username: "ana"}, nil)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/login",
		map[string]string{"username": "ana", "password": "senha123"}, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Token string `json:"token"`
		Admin struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"admin"`
	}
	testutils.ParseResponse(t, resp, &body)
	assert.Equal(t, "ana", body.Admin.Username)

	claims, err := keyManager.VerifyToken(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.ID)
}

func TestVerify_MissingToken(t *testing.T) {
	router, _, _ := setupAuthHandlerRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/verify", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Token não fornecido"}`, resp.Body.String())
}

func TestVerify_InvalidToken(t *testing.T) {
	router, _, _ := setupAuthHandlerRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/verify", nil, map[string]string{
		"Authorization": "Bearer nao-sou-um-jwt",
	})

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Token inválido"}`, resp.Body.String())
}

func TestVerify_ValidToken(t *testing.T) {
	router, _, keyManager := setupAuthHandlerRouter(t)

	token, err := keyManager.GenerateToken("admin-1", "ana", time.Hour)
	require.NoError(t, err)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/verify", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Valid bool `json:"valid"`
		Admin struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"admin"`
	}
	testutils.ParseResponse(t, resp, &body)
	assert.True(t, body.Valid)
	assert.Equal(t, "admin-1", body.Admin.ID)
}

func TestSetup_WrongSecret(t *testing.T) {
	router, repo, _ := setupAuthHandlerRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/setup",
		map[string]string{"username": "ana", "password": "senha123", "secret": "errado"}, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusUnauthorized)
	assert.JSONEq(t, `{"error": "Não autorizado"}`, resp.Body.String())

	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetup_MissingFields(t *testing.T) {
	router, _, _ := setupAuthHandlerRouter(t)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/setup",
		map[string]string{"username": "ana", "secret": "segredo-de-setup"}, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.JSONEq(t, `{"error": "Usuário e senha são obrigatórios"}`, resp.Body.String())
}

func TestSetup_CreatesAdmin(t *testing.T) {
	router, repo, _ := setupAuthHandlerRouter(t)

	repo.On("Upsert", mock.Anything, "ana", mock.Anything).
		Return(&model.Admin{ID: "admin-1", Username: "ana"}, true, nil)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/setup",
		map[string]string{"username": "ana", "password": "senha123", "secret": "segredo-de-setup"}, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "Admin criado com sucesso")
}

func TestSetup_UpdatesExistingAdmin(t *testing.T) {
	router, repo, _ := setupAuthHandlerRouter(t)

	repo.On("Upsert", mock.Anything, "ana", mock.Anything).
		Return(&model.Admin{ID: "admin-1", Username: "ana"}, false, nil)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/setup",
		map[string]string{"username": "ana", "password": "nova-senha", "secret": "segredo-de-setup"}, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "Admin atualizado com sucesso")
}

func TestDiagnostics_ReportsAdminCount(t *testing.T) {
	router, repo, _ := setupAuthHandlerRouter(t)

	repo.On("Count", mock.Anything).Return(int64(1), nil)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/admin/test", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var body struct {
		Success           bool  `json:"success"`
		DatabaseConnected bool  `json:"databaseConnected"`
		AdminCount        int64 `json:"adminCount"`
	}
	testutils.ParseResponse(t, resp, &body)
	assert.True(t, body.Success)
	assert.True(t, body.DatabaseConnected)
	assert.Equal(t, int64(1), body.AdminCount)
}
