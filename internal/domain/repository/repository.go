package repository

import (
	"context"
	"errors"

	"github.com/proencasmoda/loja-api/internal/domain/model"
)

// Erros sentinela mapeados para status HTTP pelos handlers
var (
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrAdminNotFound      = errors.New("admin não encontrado")
	ErrCategoryNotFound   = errors.New("categoria não encontrada")
	ErrDuplicateCategory  = errors.New("categoria com este nome já existe")
	ErrCategoryInUse      = errors.New("categoria possui produtos associados")
	ErrProductNotFound    = errors.New("produto não encontrado")
	ErrSettingsNotFound   = errors.New("configurações não encontradas")
)

// AdminRepository define o acesso a dados do administrador
type AdminRepository interface {
	// GetByCredentials busca o admin por username e compara a senha com o
	// hash armazenado; falha com ErrInvalidCredentials em ambos os casos
	GetByCredentials(ctx context.Context, username, password string) (*model.Admin, error)

	// Upsert cria o admin ou, se o username já existir, atualiza o hash da
	// senha. O booleano indica se um novo registro foi criado.
	Upsert(ctx context.Context, username, passwordHash string) (*model.Admin, bool, error)

	// Count retorna o total de admins cadastrados
	Count(ctx context.Context) (int64, error)
}

// CategoryRepository define o acesso a dados de categorias
type CategoryRepository interface {
	// List retorna todas as categorias ordenadas por nome
	List(ctx context.Context) ([]*model.Category, error)

	// Create persiste uma nova categoria com id e slug já derivados
	Create(ctx context.Context, category *model.Category) (*model.Category, error)

	// Update sobrescreve nome, slug e descrição da categoria
	Update(ctx context.Context, category *model.Category) (*model.Category, error)

	// Delete remove a categoria; falha com ErrCategoryInUse se houver produtos
	Delete(ctx context.Context, id string) error
}

// ProductRepository define o acesso a dados de produtos
type ProductRepository interface {
	// List retorna todos os produtos com categoria, mais recentes primeiro
	List(ctx context.Context) ([]*model.Product, error)

	// ListInStock retorna apenas produtos em estoque, com categoria,
	// mais recentes primeiro
	ListInStock(ctx context.Context) ([]*model.Product, error)

	// Create persiste um novo produto e retorna com a categoria carregada
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update sobrescreve os campos do produto e retorna com a categoria
	Update(ctx context.Context, product *model.Product) (*model.Product, error)

	// Delete remove o produto
	Delete(ctx context.Context, id string) error
}

// SettingsRepository define o acesso à linha única de configurações
type SettingsRepository interface {
	// Get retorna a linha de configurações ou ErrSettingsNotFound
	Get(ctx context.Context) (*model.Settings, error)

	// GetOrCreate retorna a linha, criando-a com os padrões se ausente
	GetOrCreate(ctx context.Context) (*model.Settings, error)

	// Upsert grava os campos na linha de id fixo, criando-a se necessário
	Upsert(ctx context.Context, settings *model.Settings) (*model.Settings, error)
}
