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

// ProductRepository implementa repository.ProductRepository
type ProductRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewProductRepository cria um novo repositório de produtos
func NewProductRepository(db *gorm.DB, logger *zap.Logger) repository.ProductRepository {
	tracer := otel.GetTracerProvider().Tracer("loja-api.repository.product")

	return &ProductRepository{
		db:     db,
		logger: logger,
		tracer: tracer,
	}
}

// List retorna todos os produtos com categoria, mais recentes primeiro
func (r *ProductRepository) List(ctx context.Context) ([]*model.Product, error) {
	return r.list(ctx, "ProductRepository.List", false)
}

// ListInStock retorna apenas os produtos em estoque para a vitrine pública
func (r *ProductRepository) ListInStock(ctx context.Context) ([]*model.Product, error) {
	return r.list(ctx, "ProductRepository.ListInStock", true)
}

func (r *ProductRepository) list(ctx context.Context, spanName string, inStockOnly bool) ([]*model.Product, error) {
	ctx, span := r.tracer.Start(
		ctx,
		spanName,
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "products"),
			attribute.Bool("products.in_stock_only", inStockOnly),
		),
	)
	defer span.End()

	query := r.db.WithContext(ctx).Preload("Category").Order("created_at desc")
	if inStockOnly {
		query = query.Where("in_stock = ?", true)
	}

	var entities []model.ProductEntity
	if err := query.Find(&entities).Error; err != nil {
		r.logger.Error("falha ao buscar produtos", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar produtos: %w", err)
	}

	products := make([]*model.Product, 0, len(entities))
	for i := range entities {
		product, err := entities[i].ToModel()
		if err != nil {
			// Linha com imagens corrompidas não derruba a listagem
			r.logger.Error("falha ao converter entidade para modelo",
				zap.String("id", entities[i].ID),
				zap.Error(err))
			span.AddEvent("error.conversion",
				trace.WithAttributes(attribute.String("product.id", entities[i].ID)))
			continue
		}
		products = append(products, product)
	}

	span.SetAttributes(attribute.Int("products.count", len(products)))
	span.SetStatus(codes.Ok, "")
	return products, nil
}

// Create persiste um novo produto e retorna com a categoria carregada
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"ProductRepository.Create",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "products"),
		),
	)
	defer span.End()

	imagesJSON, err := model.EncodeImages(product.Images)
	if err != nil {
		span.SetStatus(codes.Error, "encode failure")
		return nil, fmt.Errorf("falha ao serializar imagens: %w", err)
	}

	entity := model.ProductEntity{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImagesJSON:  imagesJSON,
		CategoryID:  product.CategoryID,
		IsNew:       product.IsNew,
		InStock:     product.InStock,
	}

	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		if isForeignKeyViolation(err) {
			span.SetStatus(codes.Error, "category not found")
			return nil, repository.ErrCategoryNotFound
		}
		r.logger.Error("falha ao criar produto", zap.String("name", product.Name), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao criar produto: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return r.getByID(ctx, entity.ID)
}

// Update sobrescreve os campos do produto e retorna com a categoria
func (r *ProductRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	ctx, span := r.tracer.Start(
		ctx,
		"ProductRepository.Update",
		trace.WithAttributes(
			attribute.String("db.operation", "update"),
			attribute.String("db.table", "products"),
			attribute.String("product.id", product.ID),
		),
	)
	defer span.End()

	var entity model.ProductEntity
	if err := r.db.WithContext(ctx).Where("id = ?", product.ID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "product not found")
			return nil, repository.ErrProductNotFound
		}
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar produto: %w", err)
	}

	imagesJSON, err := model.EncodeImages(product.Images)
	if err != nil {
		span.SetStatus(codes.Error, "encode failure")
		return nil, fmt.Errorf("falha ao serializar imagens: %w", err)
	}

	entity.Name = product.Name
	entity.Description = product.Description
	entity.Price = product.Price
	entity.ImagesJSON = imagesJSON
	entity.CategoryID = product.CategoryID
	entity.IsNew = product.IsNew
	entity.InStock = product.InStock

	if err := r.db.WithContext(ctx).Save(&entity).Error; err != nil {
		if isForeignKeyViolation(err) {
			span.SetStatus(codes.Error, "category not found")
			return nil, repository.ErrCategoryNotFound
		}
		r.logger.Error("falha ao atualizar produto", zap.String("id", product.ID), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao atualizar produto: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return r.getByID(ctx, entity.ID)
}

// Delete remove o produto
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, span := r.tracer.Start(
		ctx,
		"ProductRepository.Delete",
		trace.WithAttributes(
			attribute.String("db.operation", "delete"),
			attribute.String("db.table", "products"),
			attribute.String("product.id", id),
		),
	)
	defer span.End()

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProductEntity{})
	if result.Error != nil {
		r.logger.Error("falha ao excluir produto", zap.String("id", id), zap.Error(result.Error))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao excluir produto: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		span.SetStatus(codes.Error, "product not found")
		return repository.ErrProductNotFound
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// getByID recarrega o produto com a categoria associada
func (r *ProductRepository) getByID(ctx context.Context, id string) (*model.Product, error) {
	var entity model.ProductEntity
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}
		return nil, fmt.Errorf("falha ao buscar produto: %w", err)
	}

	return entity.ToModel()
}
