package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
	"github.com/proencasmoda/loja-api/pkg/cache"
	"github.com/proencasmoda/loja-api/pkg/slug"
)

// publicProductsCacheKey guarda a listagem pública por uma janela curta;
// a invalidação em mutações apenas encurta a janela de staleness.
const publicProductsCacheKey = "public:products"

// Service gerencia categorias e produtos do catálogo
type Service struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	cache        cache.Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewService cria um novo serviço de catálogo
func NewService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        c,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Categories retorna todas as categorias ordenadas por nome
func (s *Service) Categories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory cria uma categoria com o slug derivado do nome
func (s *Service) CreateCategory(ctx context.Context, name string, description *string) (*model.Category, error) {
	category := &model.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.invalidatePublicProducts(ctx)
	return created, nil
}

// UpdateCategory renomeia a categoria e sempre recalcula o slug; renomear
// muda o slug, apenas o id permanece estável.
func (s *Service) UpdateCategory(ctx context.Context, id, name string, description *string) (*model.Category, error) {
	category := &model.Category{
		ID:          id,
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	s.invalidatePublicProducts(ctx)
	return updated, nil
}

// DeleteCategory remove a categoria se nenhum produto a referencia
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePublicProducts(ctx)
	return nil
}

// Products retorna todos os produtos para o painel administrativo
func (s *Service) Products(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

// PublicProducts retorna os produtos em estoque para a vitrine, servidos
// de um cache de janela curta
func (s *Service) PublicProducts(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product

	found, err := s.cache.Get(ctx, publicProductsCacheKey, &products)
	if err != nil {
		s.logger.Error("Erro ao buscar produtos do cache", zap.Error(err))
	} else if found {
		return products, nil
	}

	products, err = s.productRepo.ListInStock(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, publicProductsCacheKey, products, s.cacheTTL); err != nil {
		s.logger.Warn("Erro ao armazenar produtos no cache", zap.Error(err))
	}

	return products, nil
}

// ProductInput são os campos aceitos na criação e atualização de produtos
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Images      []string
	CategoryID  string
	IsNew       bool
	InStock     bool
}

// CreateProduct cria um produto e retorna com a categoria carregada
func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (*model.Product, error) {
	product := &model.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Images:      input.Images,
		CategoryID:  input.CategoryID,
		IsNew:       input.IsNew,
		InStock:     input.InStock,
	}

	created, err := s.productRepo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidatePublicProducts(ctx)
	return created, nil
}

// UpdateProduct sobrescreve os campos do produto
func (s *Service) UpdateProduct(ctx context.Context, id string, input ProductInput) (*model.Product, error) {
	product := &model.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Images:      input.Images,
		CategoryID:  input.CategoryID,
		IsNew:       input.IsNew,
		InStock:     input.InStock,
	}

	updated, err := s.productRepo.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.invalidatePublicProducts(ctx)
	return updated, nil
}

// DeleteProduct remove o produto
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidatePublicProducts(ctx)
	return nil
}

// invalidatePublicProducts descarta a listagem pública em cache
func (s *Service) invalidatePublicProducts(ctx context.Context) {
	if err := s.cache.Delete(ctx, publicProductsCacheKey); err != nil {
		s.logger.Warn("Erro ao invalidar cache de produtos", zap.Error(err))
	}
}
