package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/proencasmoda/loja-api/internal/domain/model"
)

// Config contém configurações para o banco de dados
type Config struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
	SlowThreshold   time.Duration
	SkipMigrations  bool
}

// Database gerencia a conexão com o banco de dados
type Database struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDatabase cria uma nova instância do banco de dados
func NewDatabase(ctx context.Context, config Config, zapLogger *zap.Logger) (*Database, error) {
	// Configurar GORM Logger
	gormLogger := logger.New(
		GormLogAdapter{zapLogger},
		logger.Config{
			SlowThreshold:             config.SlowThreshold,
			LogLevel:                  config.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	// A integridade referencial de categorias é delegada ao banco, então as
	// constraints são criadas na migração e os erros do driver são
	// traduzidos para os sentinelas do GORM.
	gormConfig := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	// Conectar ao banco de dados
	var db *gorm.DB
	var err error

	switch config.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(config.DSN), gormConfig)
	case "mysql":
		db, err = gorm.Open(mysql.Open(config.DSN), gormConfig)
	case "postgres":
		db, err = gorm.Open(postgres.Open(config.DSN), gormConfig)
	default:
		return nil, fmt.Errorf("driver de banco de dados não suportado: %s", config.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("falha ao conectar ao banco de dados: %w", err)
	}

	// Configurar pool de conexões
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("falha ao obter instância do banco de dados: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	// Testar conexão
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("falha ao testar conexão com banco de dados: %w", err)
	}

	database := &Database{
		db:     db,
		logger: zapLogger,
	}

	if !config.SkipMigrations {
		if err := database.migrate(ctx); err != nil {
			return nil, fmt.Errorf("falha ao aplicar migrações: %w", err)
		}
	} else {
		zapLogger.Info("Migrações foram puladas devido à configuração")
	}

	return database, nil
}

// DB retorna a instância do GORM DB
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Ping verifica a conexão com o banco de dados
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close fecha a conexão com o banco de dados
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// migrate aplica as migrações do esquema
func (d *Database) migrate(ctx context.Context) error {
	entities := []interface{}{
		&model.AdminEntity{},
		&model.CategoryEntity{},
		&model.ProductEntity{},
		&model.SettingsEntity{},
	}

	if err := d.db.WithContext(ctx).AutoMigrate(entities...); err != nil {
		return fmt.Errorf("falha ao aplicar auto migração: %w", err)
	}

	return nil
}

// ParseLogLevel converte o nível de log textual da configuração para o
// nível do GORM
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// GormLogAdapter adapta o zap.Logger para uso com GORM
type GormLogAdapter struct {
	ZapLogger *zap.Logger
}

// Printf implementa a interface de Logger do GORM
func (l GormLogAdapter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.ZapLogger.Debug(msg)
}

// isUniqueViolation reconhece violações de unicidade. A tradução de erros do
// GORM cobre postgres e mysql; o fallback textual cobre o driver sqlite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}

// isForeignKeyViolation reconhece violações de chave estrangeira
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "constraint failed: FOREIGN KEY")
}
