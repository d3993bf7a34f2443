package settings

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
	"github.com/proencasmoda/loja-api/pkg/cache"
)

const publicSettingsCacheKey = "public:settings"

// Service gerencia a linha única de configurações da loja
type Service struct {
	repo     repository.SettingsRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService cria um novo serviço de configurações
func NewService(repo repository.SettingsRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Get retorna as configurações para o painel administrativo, criando a
// linha com os padrões na primeira leitura
func (s *Service) Get(ctx context.Context) (*model.Settings, error) {
	return s.repo.GetOrCreate(ctx)
}

// Public retorna as configurações para a vitrine. Nunca devolve erro:
// linha ausente ou falha de leitura degradam para os padrões fixos.
func (s *Service) Public(ctx context.Context) *model.Settings {
	var cached model.Settings

	found, err := s.cache.Get(ctx, publicSettingsCacheKey, &cached)
	if err != nil {
		s.logger.Error("Erro ao buscar configurações do cache", zap.Error(err))
	} else if found {
		return &cached
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		if err != repository.ErrSettingsNotFound {
			s.logger.Error("Erro ao buscar configurações, usando padrões", zap.Error(err))
		}
		return model.DefaultSettings()
	}

	if err := s.cache.Set(ctx, publicSettingsCacheKey, settings, s.cacheTTL); err != nil {
		s.logger.Warn("Erro ao armazenar configurações no cache", zap.Error(err))
	}

	return settings
}

// Update grava as configurações na linha de id fixo e invalida o cache
func (s *Service) Update(ctx context.Context, settings *model.Settings) (*model.Settings, error) {
	updated, err := s.repo.Upsert(ctx, settings)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, publicSettingsCacheKey); err != nil {
		s.logger.Warn("Erro ao invalidar cache de configurações", zap.Error(err))
	}

	return updated, nil
}
