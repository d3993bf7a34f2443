package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
	"github.com/proencasmoda/loja-api/internal/mocks"
	"github.com/proencasmoda/loja-api/pkg/security"
)

const testSecret = "test-secret-with-at-least-32-bytes!!"

func newTestService(t *testing.T, setupSecret string) (*AuthService, *mocks.MockAdminRepository, *security.KeyManager) {
	logger := zaptest.NewLogger(t)

	keyManager, err := security.NewKeyManager(testSecret, logger)
	require.NoError(t, err)

	adminRepo := new(mocks.MockAdminRepository)
	svc := NewAuthService(keyManager, adminRepo, setupSecret, 168*time.Hour, logger)
	return svc, adminRepo, keyManager
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, adminRepo, keyManager := newTestService(t, "segredo")
	ctx := context.Background()

	admin := &model.Admin{ID: "admin-1", Username: "ana"}
	adminRepo.On("GetByCredentials", ctx, "ana", "senha123").Return(admin, nil)

	token, returned, err := svc.Login(ctx, "ana", "senha123")
	require.NoError(t, err)
	assert.Equal(t, admin, returned)

	claims, err := keyManager.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.ID)
	assert.Equal(t, "ana", claims.Username)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, adminRepo, _ := newTestService(t, "segredo")
	ctx := context.Background()

	adminRepo.On("GetByCredentials", ctx, "ana", "errada").Return(nil, repository.ErrInvalidCredentials)

	_, _, err := svc.Login(ctx, "ana", "errada")
	assert.ErrorIs(t, err, repository.ErrInvalidCredentials)
}

func TestSetup_RejectsWrongSecret(t *testing.T) {
	svc, adminRepo, _ := newTestService(t, "segredo-correto")
	ctx := context.Background()

	_, _, err := svc.Setup(ctx, "ana", "senha123", "segredo-errado")
	assert.ErrorIs(t, err, ErrBadSetupSecret)

	adminRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetup_UpsertsWithBcryptHash(t *testing.T) {
	svc, adminRepo, _ := newTestService(t, "segredo-correto")
	ctx := context.Background()

	adminRepo.On("Upsert", ctx, "ana", mock.MatchedBy(func(hash string) bool {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte("senha123")) == nil
	})).Return(&model.Admin{ID: "admin-1", Username: "ana"}, true, nil)

	admin, created, err := svc.Setup(ctx, "ana", "senha123", "segredo-correto")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ana", admin.Username)

	adminRepo.AssertExpectations(t)
}

func TestSetup_ExistingAdminReportsUpdate(t *testing.T) {
	svc, adminRepo, _ := newTestService(t, "segredo-correto")
	ctx := context.Background()

	adminRepo.On("Upsert", ctx, "ana", mock.Anything).
		Return(&model.Admin{ID: "admin-1", Username: "ana"}, false, nil)

	_, created, err := svc.Setup(ctx, "ana", "outra-senha", "segredo-correto")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestDiagnostics_ReturnsAdminCount(t *testing.T) {
	svc, adminRepo, _ := newTestService(t, "segredo")
	ctx := context.Background()

	adminRepo.On("Count", ctx).Return(int64(2), nil)

	count, err := svc.Diagnostics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
