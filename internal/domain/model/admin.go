package model

import "time"

// Admin representa o administrador da loja. O hash da senha nunca é exposto.
type Admin struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminEntity é a representação de banco de dados do administrador
type AdminEntity struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Username  string    `gorm:"uniqueIndex;not null;size:50"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (AdminEntity) TableName() string {
	return "admins"
}

// ToModel converte a entidade para o modelo exposto pela API
func (e *AdminEntity) ToModel() *Admin {
	return &Admin{
		ID:        e.ID,
		Username:  e.Username,
		CreatedAt: e.CreatedAt,
	}
}
