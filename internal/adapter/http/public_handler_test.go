package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	"github.com/proencasmoda/loja-api/internal/app/catalog"
	"github.com/proencasmoda/loja-api/internal/app/settings"
	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/mocks"
	"github.com/proencasmoda/loja-api/internal/testutils"
)

func setupPublicRouter(t *testing.T) (*gin.Engine, *mocks.MockProductRepository, *mocks.MockSettingsRepository, *mocks.MockCache) {
	categoryRepo := new(mocks.MockCategoryRepository)
	productRepo := new(mocks.MockProductRepository)
	settingsRepo := new(mocks.MockSettingsRepository)
	cache := new(mocks.MockCache)
	logger := zaptest.NewLogger(t)

	catalogService := catalog.NewService(categoryRepo, productRepo, cache, 60*time.Second, logger)
	settingsService := settings.NewService(settingsRepo, cache, 60*time.Second, logger)
	handler := NewPublicHandler(catalogService, settingsService, logger)

	router := testutils.SetupTestRouter(t)
	router.GET("/api/products", handler.Products)
	router.GET("/api/settings", handler.Settings)

	return router, productRepo, settingsRepo, cache
}

func TestPublicProducts_ReturnsInStockOnly(t *testing.T) {
	router, productRepo, _, cache := setupPublicRouter(t)

	inStock := []*model.Product{{ID: "prod-1", Name: "Vestido Floral", InStock: true}}

	cache.On("Get", mock.Anything, "public:products", mock.Anything).Return(false, nil)
	productRepo.On("ListInStock", mock.Anything).Return(inStock, nil)
	cache.On("Set", mock.Anything, "public:products", inStock, 60*time.Second).Return(nil)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/products", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	var products []model.Product
	testutils.ParseResponse(t, resp, &products)
	assert.Len(t, products, 1)
	assert.Equal(t, "Vestido Floral", products[0].Name)
}

func TestPublicProducts_StoreFailure(t *testing.T) {
	router, productRepo, _, cache := setupPublicRouter(t)

	cache.On("Get", mock.Anything, "public:products", mock.Anything).Return(false, nil)
	productRepo.On("ListInStock", mock.Anything).Return(nil, assert.AnError)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/products", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusInternalServerError)
	assert.JSONEq(t, `{"error": "Erro ao buscar produtos"}`, resp.Body.String())
}

func TestPublicSettings_ReturnsRow(t *testing.T) {
	router, _, settingsRepo, cache := setupPublicRouter(t)

	stored := &model.Settings{ID: model.SettingsRowID, SiteName: "Loja da Ana"}

	cache.On("Get", mock.Anything, "public:settings", mock.Anything).Return(false, nil)
	settingsRepo.On("Get", mock.Anything).Return(stored, nil)
	cache.On("Set", mock.Anything, "public:settings", stored, 60*time.Second).Return(nil)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/settings", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "Loja da Ana")
}

func TestPublicSettings_NeverErrors(t *testing.T) {
	router, _, settingsRepo, cache := setupPublicRouter(t)

	cache.On("Get", mock.Anything, "public:settings", mock.Anything).Return(false, nil)
	settingsRepo.On("Get", mock.Anything).Return(nil, assert.AnError)

	resp := testutils.MakeRequest(t, router, http.MethodGet, "/api/settings", nil, nil)

	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Contains(t, resp.Body.String(), "Proenca's Moda")
}
