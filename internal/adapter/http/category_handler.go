package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/app/catalog"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
)

// CategoryHandler expõe o CRUD administrativo de categorias
type CategoryHandler struct {
	catalogService *catalog.Service
	logger         *zap.Logger
}

// NewCategoryHandler cria um novo handler de categorias
func NewCategoryHandler(catalogService *catalog.Service, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// CategoryRequest é o corpo aceito na criação e atualização de categorias
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// List retorna todas as categorias ordenadas por nome
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		h.logger.Error("Erro ao listar categorias", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar categorias"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Create cria uma categoria com o slug derivado do nome
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome é obrigatório"})
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria com este nome já existe"})
			return
		}
		h.logger.Error("Erro ao criar categoria", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar categoria"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update renomeia a categoria identificada na rota
func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nome é obrigatório"})
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Categoria não encontrada"})
		case errors.Is(err, repository.ErrDuplicateCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria com este nome já existe"})
		default:
			h.logger.Error("Erro ao atualizar categoria", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar categoria"})
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete remove a categoria se nenhum produto a referencia
func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Não é possível excluir categoria com produtos associados"})
		case errors.Is(err, repository.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Categoria não encontrada"})
		default:
			h.logger.Error("Erro ao excluir categoria", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir categoria"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
