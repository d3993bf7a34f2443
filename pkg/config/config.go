package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
	Tracing  TracingConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port           int
	Host           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// DatabaseConfig contém configurações do banco de dados
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address  string
	Password string
	DB       int
}

// CacheConfig contém configurações do cache de leitura pública
type CacheConfig struct {
	Enabled bool
	Type    string // redis, memory
	TTL     time.Duration
	Redis   RedisOptions
}

// AuthConfig contém configurações de autenticação
type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
	SetupSecret     string
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level      string
	Format     string // json, console
	Production bool
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// LoadConfig carrega a configuração de diversas fontes (arquivo, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Definir valores padrão
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Locais para procurar arquivos de configuração
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lojaapi")

	// Ler arquivo de configuração
	if err := v.ReadInConfig(); err != nil {
		// Ignorar se o arquivo não for encontrado
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Ler variáveis de ambiente com prefixo LOJA_
	v.SetEnvPrefix("LOJA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	// Servidor
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.maxHeaderBytes", 1<<20) // 1 MB

	// Banco de dados
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./loja.db?_pragma=foreign_keys(1)")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowThreshold", "200ms")

	// Cache das leituras públicas
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "60s")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	// Autenticação
	v.SetDefault("auth.tokenExpiration", "168h") // 7 dias
	v.SetDefault("auth.setupSecret", "setup-secret-change-in-production")

	// Métricas
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheusPath", "/metrics")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.production", true)

	// Rastreamento
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.serviceName", "loja-api")
}

// validateConfig valida os campos que não possuem fallback seguro
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("porta do servidor inválida: %d", config.Server.Port)
	}

	switch config.Database.Driver {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("driver de banco de dados não suportado: %s", config.Database.Driver)
	}

	if config.Cache.Enabled && config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("tipo de cache não suportado: %s", config.Cache.Type)
	}

	return nil
}
