package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
	"github.com/proencasmoda/loja-api/internal/mocks"
)

func newTestService(t *testing.T) (*Service, *mocks.MockSettingsRepository, *mocks.MockCache) {
	repo := new(mocks.MockSettingsRepository)
	cache := new(mocks.MockCache)
	svc := NewService(repo, cache, 60*time.Second, zaptest.NewLogger(t))
	return svc, repo, cache
}

func TestPublic_ReturnsStoredRow(t *testing.T) {
	svc, repo, cache := newTestService(t)
	ctx := context.Background()

	stored := &model.Settings{ID: model.SettingsRowID, SiteName: "Loja da Ana"}

	cache.On("Get", ctx, "public:settings", mock.Anything).Return(false, nil)
	repo.On("Get", ctx).Return(stored, nil)
	cache.On("Set", ctx, "public:settings", stored, 60*time.Second).Return(nil)

	result := svc.Public(ctx)
	assert.Equal(t, "Loja da Ana", result.SiteName)
}

func TestPublic_MissingRowFallsBackToDefaults(t *testing.T) {
	svc, repo, cache := newTestService(t)
	ctx := context.Background()

	cache.On("Get", ctx, "public:settings", mock.Anything).Return(false, nil)
	repo.On("Get", ctx).Return(nil, repository.ErrSettingsNotFound)

	result := svc.Public(ctx)
	assert.Equal(t, "Proenca's Moda", result.SiteName)
	assert.Equal(t, "#db2777", result.PrimaryColor)
}

func TestPublic_StoreFailureFallsBackToDefaults(t *testing.T) {
	svc, repo, cache := newTestService(t)
	ctx := context.Background()

	cache.On("Get", ctx, "public:settings", mock.Anything).Return(false, nil)
	repo.On("Get", ctx).Return(nil, errors.New("conexão recusada"))

	result := svc.Public(ctx)
	require.NotNil(t, result)
	assert.Equal(t, "Proenca's Moda", result.SiteName)
}

func TestPublic_CacheHitSkipsStore(t *testing.T) {
	svc, repo, cache := newTestService(t)
	ctx := context.Background()

	cache.On("Get", ctx, "public:settings", mock.Anything).Return(true, nil, func(dest interface{}) {
		*dest.(*model.Settings) = model.Settings{ID: model.SettingsRowID, SiteName: "Loja da Ana"}
	})

	result := svc.Public(ctx)
	assert.Equal(t, "Loja da Ana", result.SiteName)

	repo.AssertNotCalled(t, "Get", mock.Anything)
}

func TestGet_LazilyCreatesRow(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	created := model.DefaultSettings()
	repo.On("GetOrCreate", ctx).Return(created, nil)

	result, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, created, result)
}

func TestUpdate_InvalidatesCache(t *testing.T) {
	svc, repo, cache := newTestService(t)
	ctx := context.Background()

	input := &model.Settings{SiteName: "Loja da Ana"}
	saved := &model.Settings{ID: model.SettingsRowID, SiteName: "Loja da Ana"}

	repo.On("Upsert", ctx, input).Return(saved, nil)
	cache.On("Delete", ctx, "public:settings").Return(nil)

	result, err := svc.Update(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, model.SettingsRowID, result.ID)

	cache.AssertExpectations(t)
}
