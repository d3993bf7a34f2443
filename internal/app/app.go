package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/adapter/database"
	"github.com/proencasmoda/loja-api/internal/adapter/http"
	"github.com/proencasmoda/loja-api/internal/app/auth"
	"github.com/proencasmoda/loja-api/internal/app/catalog"
	"github.com/proencasmoda/loja-api/internal/app/settings"
	"github.com/proencasmoda/loja-api/internal/infra/metrics"
	"github.com/proencasmoda/loja-api/internal/infra/middleware"
	"github.com/proencasmoda/loja-api/pkg/cache"
	"github.com/proencasmoda/loja-api/pkg/config"
	apierrors "github.com/proencasmoda/loja-api/pkg/errors"
	"github.com/proencasmoda/loja-api/pkg/security"
)

// App agrega todas as dependências da aplicação
type App struct {
	Logger          *zap.Logger
	Config          *config.Config
	DB              *database.Database
	Cache           cache.Cache
	Middleware      *middleware.Middleware
	APIMetrics      *metrics.APIMetrics
	AuthHandler     *http.AuthHandler
	CategoryHandler *http.CategoryHandler
	ProductHandler  *http.ProductHandler
	SettingsHandler *http.SettingsHandler
	PublicHandler   *http.PublicHandler
	HealthChecker   *http.HealthChecker
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	// Inicializar banco de dados
	db, err := database.NewDatabase(ctx, database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        database.ParseLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
	}, logger)
	if err != nil {
		return nil, err
	}

	// Inicializar métricas
	apiMetrics := metrics.NewAPIMetrics()

	// Inicializar o cache das leituras públicas
	appCache, err := newCache(cfg, apiMetrics, logger)
	if err != nil {
		return nil, err
	}

	// Inicializar repositórios
	adminRepo := database.NewAdminRepository(db.DB(), logger)
	categoryRepo := database.NewCategoryRepository(db.DB(), logger)
	productRepo := database.NewProductRepository(db.DB(), logger)
	settingsRepo := database.NewSettingsRepository(db.DB(), logger)

	// Inicializar gerenciador de chaves JWT
	keyManager, err := security.NewKeyManager(cfg.Auth.JWTSecret, logger)
	if err != nil {
		return nil, err
	}

	// Inicializar serviços
	authService := auth.NewAuthService(keyManager, adminRepo, cfg.Auth.SetupSecret, cfg.Auth.TokenExpiration, logger)
	catalogService := catalog.NewService(categoryRepo, productRepo, appCache, cfg.Cache.TTL, logger)
	settingsService := settings.NewService(settingsRepo, appCache, cfg.Cache.TTL, logger)

	// Inicializar middleware
	middlewares := middleware.NewMiddleware(logger, keyManager, apiMetrics, cfg.Tracing.ServiceName)

	return &App{
		Logger:          logger,
		Config:          cfg,
		DB:              db,
		Cache:           appCache,
		Middleware:      middlewares,
		APIMetrics:      apiMetrics,
		AuthHandler:     http.NewAuthHandler(authService, db, logger),
		CategoryHandler: http.NewCategoryHandler(catalogService, logger),
		ProductHandler:  http.NewProductHandler(catalogService, logger),
		SettingsHandler: http.NewSettingsHandler(settingsService, logger),
		PublicHandler:   http.NewPublicHandler(catalogService, settingsService, logger),
		HealthChecker:   http.NewHealthChecker(db, appCache, logger),
	}, nil
}

// newCache seleciona o backend de cache conforme a configuração
func newCache(cfg *config.Config, apiMetrics *metrics.APIMetrics, logger *zap.Logger) (cache.Cache, error) {
	if !cfg.Cache.Enabled {
		logger.Info("Cache desabilitado, usando backend no-op")
		return &cache.NoOpCache{}, nil
	}

	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.Cache.Redis.Address, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("erro ao conectar ao redis: %w", err)
		}
		return redisCache, nil
	default:
		return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, apiMetrics, logger), nil
	}
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	// Configurar middleware global
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	if a.Config.Metrics.Enabled {
		router.Use(a.Middleware.Metrics())
	}
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}

	// API pública da vitrine
	api := router.Group("/api")
	{
		api.GET("/products", a.PublicHandler.Products)
		api.GET("/settings", a.PublicHandler.Settings)
	}

	// Rotas de autenticação sem o gate de admin. O verify faz o próprio
	// tratamento do header para responder mensagens distintas.
	authRoutes := router.Group("/api/admin")
	{
		authRoutes.POST("/login", a.AuthHandler.Login)
		authRoutes.GET("/verify", a.AuthHandler.Verify)
		authRoutes.POST("/setup", a.AuthHandler.Setup)
	}

	// Rotas administrativas protegidas pelo token
	admin := router.Group("/api/admin")
	admin.Use(a.Middleware.RequireAdmin)
	{
		admin.GET("/categories", a.CategoryHandler.List)
		admin.POST("/categories", a.CategoryHandler.Create)
		admin.PUT("/categories/:id", a.CategoryHandler.Update)
		admin.DELETE("/categories/:id", a.CategoryHandler.Delete)

		admin.GET("/products", a.ProductHandler.List)
		admin.POST("/products", a.ProductHandler.Create)
		admin.PUT("/products/:id", a.ProductHandler.Update)
		admin.DELETE("/products/:id", a.ProductHandler.Delete)

		admin.GET("/settings", a.SettingsHandler.Get)
		admin.PUT("/settings", a.SettingsHandler.Update)

		admin.GET("/test", a.AuthHandler.Test)
	}

	// Health checks
	router.GET("/health", a.HealthChecker.DetailedHealth)
	router.GET("/health/liveness", a.HealthChecker.LivenessCheck)
	router.GET("/health/readiness", a.HealthChecker.ReadinessCheck)

	// Expor endpoint de métricas para Prometheus
	if a.Config.Metrics.Enabled {
		router.GET(a.Config.Metrics.PrometheusPath, gin.WrapH(promhttp.Handler()))
		a.Logger.Info("Endpoint de métricas Prometheus registrado",
			zap.String("path", a.Config.Metrics.PrometheusPath))
	}

	router.NoRoute(func(c *gin.Context) {
		apiErr := apierrors.NotFound("Recurso", nil)
		c.JSON(apiErr.Code, apiErr)
	})
}

// Close libera os recursos da aplicação
func (a *App) Close() error {
	return a.DB.Close()
}
