package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/proencasmoda/loja-api/internal/app/catalog"
	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
	"github.com/proencasmoda/loja-api/internal/mocks"
	"github.com/proencasmoda/loja-api/internal/testutils"
)

func setupProductRouter(t *testing.T) (*gin.Engine, *mocks.MockProductRepository, *mocks.MockCache) {
	categoryRepo := new(mocks.MockCategoryRepository)
	productRepo := new(mocks.MockProductRepository)
	cache := new(mocks.MockCache)
	logger := zaptest.NewLogger(t)

	svc := catalog.NewService(categoryRepo, productRepo, cache, 60*time.Second, logger)
	handler := NewProductHandler(svc, logger)

	router := testutils.SetupTestRouter(t)
	router.GET("/api/admin/products", handler.List)
	router.POST("/api/admin/products", handler.Create)
	router.PUT("/api/admin/products/:id", handler.Update)
	router.DELETE("/api/admin/products/:id", handler.Delete)

	return router, productRepo, cache
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "número", raw: `89.9`, want: 89.9},
		{name: "string numérica", raw: `"89.90"`, want: 89.9},
		{name: "inteiro", raw: `100`, want: 100},
		{name: "zero", raw: `0`, want: 0},
		{name: "negativo", raw: `-1`, wantErr: true},
		{name: "string negativa", raw: `"-5"`, wantErr: true},
		{name: "não numérico", raw: `"caro"`, wantErr: true},
		{name: "string NaN", raw: `"NaN"`, wantErr: true},
		{name: "string infinito", raw: `"Inf"`, wantErr: true},
		{name: "objeto", raw: `{}`, wantErr: true},
		{name: "vazio", raw: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePrice(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func validProductBody() map[string]interface{} {
	return map[string]interface{}{
		"name":        "Vestido Floral",
		"description": "Vestido leve de verão",
		"price":       129.90,
		"images":      []string{"https://cdn.example.com/vestido.jpg"},
		"categoryId":  "cat-1",
		"isNew":       true,
		"inStock":     true,
	}
}

func TestProductCreate_MissingFields(t *testing.T) {
	router, repo, _ := setupProductRouter(t)

	body := validProductBody()
	delete(body, "categoryId")

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/products", body, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.JSONEq(t, `{"error": "Campos obrigatórios faltando"}`, resp.Body.String())

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreate_InvalidPrice(t *testing.T) {
	router, repo, _ := setupProductRouter(t)

	body := validProductBody()
	body["price"] = "-10"

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/products", body, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.JSONEq(t, `{"error": "Preço inválido"}`, resp.Body.String())

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreate_StringPrice(t *testing.T) {
	router, repo, cache := setupProductRouter(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.Price == 89.9 && p.Name == "Vestido Floral"
	})).Return(&model.Product{ID: "prod-1", Name: "Vestido Floral", Price: 89.9}, nil)
	cache.On("Delete", mock.Anything, "public:products").Return(nil)

	body := validProductBody()
	body["price"] = "89.90"

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/products", body, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	repo.AssertExpectations(t)
}

func TestProductCreate_DefaultsInStock(t *testing.T) {
	router, repo, cache := setupProductRouter(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Product) bool {
		return p.InStock
	})).Return(&model.Product{ID: "prod-1", InStock: true}, nil)
	cache.On("Delete", mock.Anything, "public:products").Return(nil)

	body := validProductBody()
	delete(body, "inStock")

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/products", body, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusCreated)
	repo.AssertExpectations(t)
}

func TestProductCreate_UnknownCategory(t *testing.T) {
	router, repo, _ := setupProductRouter(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrCategoryNotFound)

	resp := testutils.MakeRequest(t, router, http.MethodPost, "/api/admin/products", validProductBody(), nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusBadRequest)
	assert.JSONEq(t, `{"error": "Categoria inválida"}`, resp.Body.String())
}

func TestProductUpdate_NotFound(t *testing.T) {
	router, repo, _ := setupProductRouter(t)

	repo.On("Update", mock.Anything, mock.Anything).Return(nil, repository.ErrProductNotFound)

	resp := testutils.MakeRequest(t, router, http.MethodPut, "/api/admin/products/nope", validProductBody(), nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusNotFound)
	assert.JSONEq(t, `{"error": "Produto não encontrado"}`, resp.Body.String())
}

func TestProductDelete_Success(t *testing.T) {
	router, repo, cache := setupProductRouter(t)

	repo.On("Delete", mock.Anything, "prod-1").Return(nil)
	cache.On("Delete", mock.Anything, "public:products").Return(nil)

	resp := testutils.MakeRequest(t, router, http.MethodDelete, "/api/admin/products/prod-1", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.JSONEq(t, `{"success": true}`, resp.Body.String())
}
