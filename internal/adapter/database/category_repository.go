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

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
)

// CategoryRepository implementa repository.CategoryRepository
type CategoryRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewCategoryRepository cria um novo repositório de categorias
func NewCategoryRepository(db *gorm.DB, logger *zap.Logger) repository.CategoryRepository {
	tracer := otel.GetTracerProvider().Tracer("loja-api.repository.category")

	return &CategoryRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// List retorna todas as categorias ordenadas por nome
func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"CategoryRepository.List",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "categories"),
		),
	)
	defer span.End()

	var entities []model.CategoryEntity
	if err := r.db.WithContext(ctx).Order("name asc").Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar categorias", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar categorias: %w", err)
	}

	categories := make([]*model.Category, 0, len(entities))
	for i := range entities {
		categories = append(categories, entities[i].ToModel())
	}

	span.SetAttributes(attribute.Int("categories.count", len(categories)))
	span.SetStatus(codes.Ok, "")
	return categories, nil
}

// Create persiste uma nova categoria. Colisões de nome ou slug são
// resolvidas pela constraint de unicidade do banco.
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"CategoryRepository.Create",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "categories"),
			attribute.String("category.slug", category.Slug),
		),
	)
	defer span.End()

	entity := model.CategoryEntity{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
	}

	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		if isUniqueViolation(err) {
			span.SetStatus(codes.Error, "duplicate category")
			return nil, repository.ErrDuplicateCategory
		}
		r.logger.Error("falha ao criar categoria", zap.String("name", category.Name), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao criar categoria: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// Update sobrescreve nome, slug e descrição da categoria
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"CategoryRepository.Update",
		trace.WithAttributes(
			attribute.String("db.operation", "update"),
			attribute.String("db.table", "categories"),
			attribute.String("category.id", category.ID),
		),
	)
	defer span.End()

	var entity model.CategoryEntity
	if err := r.db.WithContext(ctx).Where("id = ?", category.ID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "category not found")
			return nil, repository.ErrCategoryNotFound
		}
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar categoria: %w", err)
	}

	entity.Name = category.Name
	entity.Slug = category.Slug
	entity.Description = category.Description

	if err := r.db.WithContext(ctx).Save(&entity).Error; err != nil {
		if isUniqueViolation(err) {
			span.SetStatus(codes.Error, "duplicate category")
			return nil, repository.ErrDuplicateCategory
		}
		r.logger.Error("falha ao atualizar categoria", zap.String("id", category.ID), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao atualizar categoria: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return entity.ToModel(), nil
}

// Delete remove a categoria. A exclusão é barrada quando ainda existem
// produtos associados, seja pela verificação prévia, seja pela constraint
// de chave estrangeira do banco.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(
		ctx,
		"CategoryRepository.Delete",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "categories"),
			attribute.String("category.id", id),
		),
	)
	defer span.End()

	var productCount int64
	if err := r.db.WithContext(ctx).Model(&model.ProductEntity{}).
		Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao verificar produtos da categoria: %w", err)
	}

	if productCount > 0 {
		span.SetStatus(codes.Error, "category in use")
		return repository.ErrCategoryInUse
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CategoryEntity{})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			span.SetStatus(codes.Error, "category in use")
			return repository.ErrCategoryInUse
		}
		r.logger.Error("falha ao excluir categoria", zap.String("id", id), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao excluir categoria: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "category not found")
		return repository.ErrCategoryNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
