package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/infra/metrics"
)

// MetricsMiddleware fornece middleware para coletar métricas
type MetricsMiddleware struct {
	metrics *metrics.APIMetrics
	logger  *zap.Logger
}

// NewMetricsMiddleware cria um novo middleware de métricas
func NewMetricsMiddleware(apiMetrics *metrics.APIMetrics, logger *zap.Logger) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: apiMetrics,
		logger:  logger,
	}
}

// bodySizeWriter captura o tamanho da resposta escrita
type bodySizeWriter struct {
	gin.ResponseWriter
	size int
}

func (w *bodySizeWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Middleware registra métricas para cada requisição
func (m *MetricsMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method

		m.metrics.RequestStarted(path, method)

		var requestSize int
		if c.Request.ContentLength > 0 {
			requestSize = int(c.Request.ContentLength)
		}

		start := time.Now()

		bsw := &bodySizeWriter{ResponseWriter: c.Writer}
		c.Writer = bsw

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		m.metrics.RequestCompleted(path, method, strconv.Itoa(status), duration, requestSize, bsw.size)

		if status >= 500 {
			m.metrics.ErrorOccurred(path, method, "server_error")
		} else if status >= 400 {
			m.metrics.ErrorOccurred(path, method, "client_error")
		}
	}
}
