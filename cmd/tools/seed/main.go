package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/adapter/database"
	"github.com/proencasmoda/loja-api/pkg/config"
	"github.com/proencasmoda/loja-api/pkg/logging"
)

func main() {
	var (
		username string
		password string
	)

	flag.StringVar(&username, "username", envOrDefault("LOJA_SEED_ADMIN_USERNAME", "admin"), "Username do admin inicial")
	flag.StringVar(&password, "password", os.Getenv("LOJA_SEED_ADMIN_PASSWORD"), "Senha do admin inicial")
	flag.Parse()

	if password == "" {
		fmt.Println("Erro: senha do admin é obrigatória (--password ou LOJA_SEED_ADMIN_PASSWORD)")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging.Level, "console", false)
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

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
		logger.Fatal("Falha ao conectar ao banco de dados", zap.Error(err))
	}
	defer db.Close()

	if err := db.Seed(ctx, username, password); err != nil {
		logger.Fatal("Falha ao executar seed", zap.Error(err))
	}

	logger.Info("Seed concluído com sucesso", zap.String("admin", username))
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
