package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/app/settings"
	"github.com/proencasmoda/loja-api/internal/domain/model"
)

// SettingsHandler expõe a leitura e gravação das configurações da loja
type SettingsHandler struct {
	settingsService *settings.Service
	logger          *zap.Logger
}

// NewSettingsHandler cria um novo handler de configurações
func NewSettingsHandler(settingsService *settings.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// SettingsRequest é o corpo aceito na atualização das configurações
type SettingsRequest struct {
	SiteName        string `json:"siteName"`
	HeroTitle       string `json:"heroTitle"`
	HeroSubtitle    string `json:"heroSubtitle"`
	NovidadesTitle  string `json:"novidadesTitle"`
	ColecaoTitle    string `json:"colecaoTitle"`
	FooterText      string `json:"footerText"`
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// Get retorna as configurações para o painel, criando a linha com os
// padrões na primeira leitura
func (h *SettingsHandler) Get(c *gin.Context) {
	current, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.logger.Error("Erro ao buscar configurações", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar configurações"})
		return
	}

	c.JSON(http.StatusOK, current)
}

// Update grava as configurações enviadas pelo painel na linha de id fixo
func (h *SettingsHandler) Update(c *gin.Context) {
	var req SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	updated, err := h.settingsService.Update(c.Request.Context(), &model.Settings{
		SiteName:        req.SiteName,
		HeroTitle:       req.HeroTitle,
		HeroSubtitle:    req.HeroSubtitle,
		NovidadesTitle:  req.NovidadesTitle,
		ColecaoTitle:    req.ColecaoTitle,
		FooterText:      req.FooterText,
		PrimaryColor:    req.PrimaryColor,
		SecondaryColor:  req.SecondaryColor,
		BackgroundColor: req.BackgroundColor,
	})
	if err != nil {
		h.logger.Error("Erro ao salvar configurações", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar configurações"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
