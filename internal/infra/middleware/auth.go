package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/pkg/security"
)

// AuthMiddleware protege as rotas administrativas com token de sessão
type AuthMiddleware struct {
	keyManager *security.KeyManager
	logger     *zap.Logger
}

// NewAuthMiddleware cria uma nova instância do middleware de autenticação
func NewAuthMiddleware(keyManager *security.KeyManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		keyManager: keyManager,
		logger:     logger,
	}
}

// RequireAdmin valida a credencial bearer antes de qualquer acesso ao banco.
// Header ausente, malformado, token expirado ou adulterado respondem todos
// com o mesmo 401, sem distinção de causa.
func (m *AuthMiddleware) RequireAdmin(c *gin.Context) {
	claims := m.claimsFromRequest(c)
	if claims == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado"})
		return
	}

	// Armazena as claims no contexto para uso pelos handlers
	c.Set("admin", claims)
	c.Next()
}

// claimsFromRequest extrai e verifica o bearer token; retorna nil em qualquer falha
func (m *AuthMiddleware) claimsFromRequest(c *gin.Context) *security.Claims {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil
	}

	claims, err := m.keyManager.VerifyToken(tokenString)
	if err != nil {
		m.logger.Debug("token de admin rejeitado",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		return nil
	}

	return claims
}

// AdminClaims recupera as claims do admin autenticado do contexto da requisição
func AdminClaims(c *gin.Context) *security.Claims {
	value, exists := c.Get("admin")
	if !exists {
		return nil
	}

	claims, ok := value.(*security.Claims)
	if !ok {
		return nil
	}

	return claims
}
