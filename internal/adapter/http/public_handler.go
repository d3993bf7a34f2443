package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/app/catalog"
	"github.com/proencasmoda/loja-api/internal/app/settings"
)

// PublicHandler expõe a API de leitura da vitrine, sem autenticação
type PublicHandler struct {
	catalogService  *catalog.Service
	settingsService *settings.Service
	logger          *zap.Logger
}

// NewPublicHandler cria um novo handler público
func NewPublicHandler(catalogService *catalog.Service, settingsService *settings.Service, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		catalogService:  catalogService,
		settingsService: settingsService,
		logger:          logger,
	}
}

// Products retorna os produtos em estoque, mais recentes primeiro
func (h *PublicHandler) Products(c *gin.Context) {
	products, err := h.catalogService.PublicProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("Erro ao buscar produtos públicos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar produtos"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// Settings retorna as configurações da vitrine. Nunca responde erro:
// falhas de leitura degradam para os padrões fixos.
func (h *PublicHandler) Settings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settingsService.Public(c.Request.Context()))
}
