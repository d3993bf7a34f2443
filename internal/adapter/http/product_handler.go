package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/app/catalog"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
)

// ProductHandler expõe o CRUD administrativo de produtos
type ProductHandler struct {
	catalogService *catalog.Service
	logger         *zap.Logger
}

// NewProductHandler cria um novo handler de produtos
func NewProductHandler(catalogService *catalog.Service, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ProductRequest é o corpo aceito na criação e atualização de produtos.
// Price chega como json.RawMessage porque clientes enviam tanto número
// quanto string ("89.90").
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Images      []string        `json:"images"`
	CategoryID  string          `json:"categoryId"`
	IsNew       bool            `json:"isNew"`
	InStock     *bool           `json:"inStock"`
}

// parsePrice aceita número JSON ou string numérica e rejeita valores
// negativos, NaN e infinitos
func parsePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, errors.New("preço ausente")
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		value, err := strconv.ParseFloat(asString, 64)
		if err != nil {
			return 0, err
		}
		return validatePrice(value)
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return 0, err
	}
	return validatePrice(asNumber)
}

func validatePrice(value float64) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0, errors.New("preço fora do intervalo válido")
	}
	return value, nil
}

func (req *ProductRequest) toInput() (catalog.ProductInput, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return catalog.ProductInput{}, err
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}

	// inStock ausente vale true: produto novo entra na vitrine
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	return catalog.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Images:      images,
		CategoryID:  req.CategoryID,
		IsNew:       req.IsNew,
		InStock:     inStock,
	}, nil
}

// List retorna todos os produtos, incluindo os fora de estoque
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalogService.Products(c.Request.Context())
	if err != nil {
		h.logger.Error("Erro ao listar produtos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar produtos"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// Create cria um produto vinculado a uma categoria existente
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	if req.Name == "" || req.Description == "" || req.CategoryID == "" || len(req.Price) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios faltando"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço inválido"})
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria inválida"})
			return
		}
		h.logger.Error("Erro ao criar produto", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar produto"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// Update sobrescreve os campos do produto identificado na rota
func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos"})
		return
	}

	if req.Name == "" || req.Description == "" || req.CategoryID == "" || len(req.Price) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Campos obrigatórios faltando"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preço inválido"})
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
		case errors.Is(err, repository.ErrCategoryNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Categoria inválida"})
		default:
			h.logger.Error("Erro ao atualizar produto", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar produto"})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete remove o produto
func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Produto não encontrado"})
			return
		}
		h.logger.Error("Erro ao excluir produto", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir produto"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
