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
	"github.com/proencasmoda/loja-api/internal/domain/repository"
)

// AdminRepository implementa repository.AdminRepository
type AdminRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAdminRepository cria um novo repositório de admins
func NewAdminRepository(db *gorm.DB, logger *zap.Logger) repository.AdminRepository {
	return &AdminRepository{db: db, logger: logger}
}

// GetByCredentials busca o admin pelo username exato e compara a senha com o
// hash bcrypt. Usuário inexistente e senha incorreta são indistinguíveis
// para o chamador.
func (r *AdminRepository) GetByCredentials(ctx context.Context, username, password string) (*model.Admin, error) {
	var entity model.AdminEntity

	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvalidCredentials
		}
		r.logger.Error("falha ao buscar admin", zap.String("username", username), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(entity.Password), []byte(password)); err != nil {
		return nil, repository.ErrInvalidCredentials
	}

	return entity.ToModel(), nil
}

// Upsert cria o admin ou atualiza o hash da senha se o username já existir
func (r *AdminRepository) Upsert(ctx context.Context, username, passwordHash string) (*model.Admin, bool, error) {
	var entity model.AdminEntity

	err := r.db.WithContext(ctx).Where("username = ?", username).First(&entity).Error
	switch {
	case err == nil:
		entity.Password = passwordHash
		if err := r.db.WithContext(ctx).Save(&entity).Error; err != nil {
			r.logger.Error("falha ao atualizar senha do admin", zap.String("username", username), zap.Error(err))
			return nil, false, fmt.Errorf("falha ao atualizar admin: %w", err)
		}
		return entity.ToModel(), false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		entity = model.AdminEntity{
			ID:       uuid.New().String(),
			Username: username,
			Password: passwordHash,
		}
		if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
			r.logger.Error("falha ao criar admin", zap.String("username", username), zap.Error(err))
			return nil, false, fmt.Errorf("falha ao criar admin: %w", err)
		}
		return entity.ToModel(), true, nil

	default:
		r.logger.Error("falha ao verificar admin existente", zap.String("username", username), zap.Error(err))
		return nil, false, fmt.Errorf("falha ao verificar admin: %w", err)
	}
}

// Count retorna o total de admins cadastrados
func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.AdminEntity{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("falha ao contar admins: %w", err)
	}
	return count, nil
}
