package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/pkg/slug"
)

// defaultCategories são as categorias criadas na primeira carga da loja
var defaultCategories = []struct {
	Name        string
	Description string
}{
	{"Plus Size", "Roupas tamanhos especiais"},
	{"Vestidos", "Vestidos elegantes"},
	{"Blusas", "Blusas e camisas"},
	{"Calças", "Calças e saias"},
}

// Seed garante o admin inicial e as categorias padrão. É idempotente: o
// admin existente tem a senha atualizada e categorias já criadas são
// mantidas como estão.
func (d *Database) Seed(ctx context.Context, adminUsername, adminPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("falha ao gerar hash da senha: %w", err)
	}

	var admin model.AdminEntity
	err = d.db.WithContext(ctx).Where("username = ?", adminUsername).First(&admin).Error
	switch {
	case err == nil:
		admin.Password = string(hashed)
		if err := d.db.WithContext(ctx).Save(&admin).Error; err != nil {
			return fmt.Errorf("falha ao atualizar admin: %w", err)
		}
		d.logger.Info("Admin já existe, senha atualizada", zap.String("username", adminUsername))

	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = model.AdminEntity{
			ID:       uuid.New().String(),
			Username: adminUsername,
			Password: string(hashed),
		}
		if err := d.db.WithContext(ctx).Create(&admin).Error; err != nil {
			return fmt.Errorf("falha ao criar admin: %w", err)
		}
		d.logger.Info("Admin criado", zap.String("username", adminUsername))

	default:
		return fmt.Errorf("falha ao verificar admin: %w", err)
	}

	for _, cat := range defaultCategories {
		catSlug := slug.Make(cat.Name)

		var existing model.CategoryEntity
		err := d.db.WithContext(ctx).Where("slug = ?", catSlug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("falha ao verificar categoria %q: %w", cat.Name, err)
		}

		description := cat.Description
		entity := model.CategoryEntity{
			ID:          uuid.New().String(),
			Name:        cat.Name,
			Slug:        catSlug,
			Description: &description,
		}
		if err := d.db.WithContext(ctx).Create(&entity).Error; err != nil {
			return fmt.Errorf("falha ao criar categoria %q: %w", cat.Name, err)
		}
		d.logger.Info("Categoria criada", zap.String("name", cat.Name), zap.String("slug", catSlug))
	}

	return nil
}
