package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/app/auth"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
)

// AuthHandler expõe login, verificação de token e o setup do admin
type AuthHandler struct {
	authService *auth.AuthService
	db          DatabaseChecker
	logger      *zap.Logger
}

// NewAuthHandler cria um novo handler de autenticação
func NewAuthHandler(authService *auth.AuthService, db DatabaseChecker, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		db:          db,
		logger:      logger,
	}
}

// LoginRequest é o corpo aceito pelo login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login troca usuário e senha por um token de sessão
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário e senha são obrigatórios"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário e senha são obrigatórios"})
		return
	}

	token, admin, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
			return
		}
		h.logger.Error("Erro no login", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao fazer login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}

// Verify confirma a validade do token apresentado no header Authorization.
// Diferente das demais rotas administrativas, responde com mensagens
// distintas para header ausente e token rejeitado.
func (h *AuthHandler) Verify(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token não fornecido"})
		return
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := h.authService.VerifyToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"admin": gin.H{
			"id":       claims.ID,
			"username": claims.Username,
		},
	})
}

// SetupRequest é o corpo aceito pelo setup do admin
type SetupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
}

// Setup cria o admin inicial ou redefine a senha, protegido por um segredo
// estático. Idempotente: repetir a chamada apenas atualiza a senha.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	if req.Secret == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário e senha são obrigatórios"})
		return
	}

	admin, created, err := h.authService.Setup(c.Request.Context(), req.Username, req.Password, req.Secret)
	if err != nil {
		if errors.Is(err, auth.ErrBadSetupSecret) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
			return
		}
		h.logger.Error("Erro no setup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar admin"})
		return
	}

	message := "Admin atualizado com sucesso"
	if created {
		message = "Admin criado com sucesso"
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  message,
		"username": admin.Username,
	})
}

// Test verifica a conexão com o banco e conta os admins cadastrados
func (h *AuthHandler) Test(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Erro no teste de conexão", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":           false,
			"databaseConnected": false,
			"error":             "Erro ao conectar ao banco de dados",
		})
		return
	}

	count, err := h.authService.Diagnostics(ctx)
	if err != nil {
		h.logger.Error("Erro ao contar admins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":           false,
			"databaseConnected": true,
			"error":             "Erro ao verificar admins",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"databaseConnected": true,
		"adminCount":        count,
	})
}
