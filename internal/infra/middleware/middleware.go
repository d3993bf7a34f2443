package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/infra/metrics"
	"github.com/proencasmoda/loja-api/pkg/security"
)

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger             *zap.Logger
	authMiddleware     *AuthMiddleware
	recoveryMiddleware *RecoveryMiddleware
	securityMiddleware *SecurityMiddleware
	tracingMiddleware  *TracingMiddleware
	metricsMiddleware  *MetricsMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares
func NewMiddleware(logger *zap.Logger, keyManager *security.KeyManager, apiMetrics *metrics.APIMetrics, serviceName string) *Middleware {
	return &Middleware{
		logger:             logger,
		authMiddleware:     NewAuthMiddleware(keyManager, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		securityMiddleware: NewSecurityMiddleware(logger),
		tracingMiddleware:  NewTracingMiddleware(logger, serviceName),
		metricsMiddleware:  NewMetricsMiddleware(apiMetrics, logger),
	}
}

// RequireAdmin middleware para autenticação das rotas administrativas
func (m *Middleware) RequireAdmin(c *gin.Context) {
	m.authMiddleware.RequireAdmin(c)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de rastreamento
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return func(c *gin.Context) {
		c.Next() // No-op se não configurado
	}
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method

		m.logger.Info("request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", clientIP),
		)
	}
}
