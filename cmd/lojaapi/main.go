package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/app"
	"github.com/proencasmoda/loja-api/pkg/config"
	"github.com/proencasmoda/loja-api/pkg/logging"
	"github.com/proencasmoda/loja-api/pkg/telemetry"
)

func main() {
	// Carregar configuração
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// Inicializar logger
	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Production)
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Inicializar o tracer se estiver habilitado
	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, logger)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado com sucesso",
				zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	// Inicializar aplicação
	application, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	defer application.Close()

	// Configurar o router
	if cfg.Logging.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	application.RegisterRoutes(router)

	server := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Iniciar o servidor em uma goroutine
	go func() {
		logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	// Esperar por sinal de interrupção para shutdown gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Erro ao encerrar servidor", zap.Error(err))
	}

	logger.Info("Servidor encerrado com sucesso")
}
