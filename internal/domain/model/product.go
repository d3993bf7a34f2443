package model

import (
	"encoding/json"
	"time"
)

// Product representa um produto do catálogo, com a categoria associada
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Images      []string  `json:"images"`
	CategoryID  string    `json:"categoryId"`
	IsNew       bool      `json:"isNew"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Category    *Category `json:"category,omitempty"`
}

// ProductEntity é a representação de banco de dados de um produto.
// A lista ordenada de URLs de imagem é serializada em uma coluna JSON.
type ProductEntity struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Name        string          `gorm:"not null;size:200"`
	Description string          `gorm:"type:text;not null"`
	Price       float64         `gorm:"not null"`
	ImagesJSON  string          `gorm:"column:images;type:json"`
	CategoryID  string          `gorm:"not null;size:36;index"`
	Category    *CategoryEntity `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	IsNew       bool            `gorm:"default:false"`
	InStock     bool            `gorm:"default:true"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (ProductEntity) TableName() string {
	return "products"
}

// ToModel converte a entidade para o modelo exposto pela API
func (e *ProductEntity) ToModel() (*Product, error) {
	images := []string{}
	if e.ImagesJSON != "" {
		if err := json.Unmarshal([]byte(e.ImagesJSON), &images); err != nil {
			return nil, err
		}
	}

	product := &Product{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Images:      images,
		CategoryID:  e.CategoryID,
		IsNew:       e.IsNew,
		InStock:     e.InStock,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if e.Category != nil {
		product.Category = e.Category.ToModel()
	}

	return product, nil
}

// EncodeImages serializa a lista de imagens para a coluna JSON
func EncodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}

	data, err := json.Marshal(images)
	if err != nil {
		return "", err
	}

	return string(data), nil
}
