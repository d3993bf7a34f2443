package database

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
)

// SettingsRepository implementa repository.SettingsRepository sobre a
// tabela de linha única de id fixo.
type SettingsRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewSettingsRepository cria um novo repositório de configurações
func NewSettingsRepository(db *gorm.DB, logger *zap.Logger) repository.SettingsRepository {
	tracer := otel.GetTracerProvider().Tracer("loja-api.repository.settings")

	return &SettingsRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// Get retorna a linha de configurações ou ErrSettingsNotFound
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"SettingsRepository.Get",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "site_settings"),
		),
	)
	defer span.End()

	var entity model.SettingsEntity
	if err := r.db.WithContext(ctx).Where("id = ?", model.SettingsRowID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "settings not found")
			return nil, repository.ErrSettingsNotFound
		}
		r.logger.Error("falha ao buscar configurações", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar configurações: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// GetOrCreate retorna a linha, criando-a com os padrões quando ausente
func (r *SettingsRepository) GetOrCreate(ctx context.Context) (*model.Settings, error) {
	settings, err := r.Get(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, err
	}

	entity := model.DefaultSettingsEntity()

	// Duas criações concorrentes convergem para a mesma linha
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(entity).Error; err != nil {
		r.logger.Error("falha ao criar configurações padrão", zap.Error(err))
		return nil, fmt.Errorf("falha ao criar configurações: %w", err)
	}

	return r.Get(ctx)
}

// Upsert grava os campos na linha de id fixo, criando-a se necessário
func (r *SettingsRepository) Upsert(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"SettingsRepository.Upsert",
		trace.WithAttributes(
			attribute.String("db.operation", "upsert"),
			attribute.String("db.table", "site_settings"),
		),
	)
	defer span.End()

	entity := model.SettingsEntity{
		ID:              model.SettingsRowID,
		SiteName:        settings.SiteName,
		HeroTitle:       settings.HeroTitle,
		HeroSubtitle:    settings.HeroSubtitle,
		NovidadesTitle:  settings.NovidadesTitle,
		ColecaoTitle:    settings.ColecaoTitle,
		FooterText:      settings.FooterText,
		PrimaryColor:    settings.PrimaryColor,
		SecondaryColor:  settings.SecondaryColor,
		BackgroundColor: settings.BackgroundColor,
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&entity).Error; err != nil {
		r.logger.Error("falha ao salvar configurações", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao salvar configurações: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return r.Get(ctx)
}
