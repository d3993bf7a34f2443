package model

import "time"

// Category representa uma categoria do catálogo
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryEntity é a representação de banco de dados de uma categoria.
// O slug é sempre derivado do nome no momento da escrita, inclusive em
// renomeações; apenas o id é um identificador estável.
type CategoryEntity struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"uniqueIndex;not null;size:100"`
	Slug        string    `gorm:"uniqueIndex;not null;size:120"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (CategoryEntity) TableName() string {
	return "categories"
}

// ToModel converte a entidade para o modelo exposto pela API
func (e *CategoryEntity) ToModel() *Category {
	return &Category{
		ID:          e.ID,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
