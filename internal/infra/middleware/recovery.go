package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/proencasmoda/loja-api/pkg/errors"
)

// RecoveryMiddleware implementa recuperação de pânicos
type RecoveryMiddleware struct {
	logger *zap.Logger
}

// NewRecoveryMiddleware cria um novo middleware de recuperação
func NewRecoveryMiddleware(logger *zap.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
	}
}

// Recovery recupera de pânicos com logs detalhados
func (m *RecoveryMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				m.logger.Error("recuperado de pânico",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.ByteString("stack", stack),
				)

				apiErr := apierrors.InternalServer("", fmt.Errorf("pânico: %v", err))
				c.AbortWithStatusJSON(apiErr.Code, apiErr)
			}
		}()

		c.Next()
	}
}
