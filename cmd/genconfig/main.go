package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/proencasmoda/loja-api/pkg/config"
)

func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	// Verificar se o arquivo já existe
	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	// Criar configuração com valores padrão
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./loja.db?_pragma=foreign_keys(1)",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: 1 * time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     60 * time.Second,
			Redis: config.RedisOptions{
				Address:  "localhost:6379",
				Password: "",
				DB:       0,
			},
		},
		Auth: config.AuthConfig{
			JWTSecret:       "your-secret-key-with-at-least-32-bytes",
			TokenExpiration: 168 * time.Hour, // 7 dias
			SetupSecret:     "setup-secret-change-in-production",
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Format:     "json",
			Production: true,
		},
		Tracing: config.TracingConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			ServiceName: "loja-api",
		},
	}

	// Converter para YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	header := "# Configuração da loja-api gerada por genconfig.\n" +
		"# Todos os valores podem ser sobrescritos por variáveis de ambiente com o prefixo LOJA_.\n" +
		"# Exemplo: LOJA_AUTH_JWTSECRET, LOJA_DATABASE_DSN.\n\n"

	if err := os.WriteFile(outputPath, []byte(header+string(data)), 0o644); err != nil {
		fmt.Printf("Erro ao gravar arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Configuração padrão gravada em %s\n", outputPath)
}
