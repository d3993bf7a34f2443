package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/proencasmoda/loja-api/internal/domain/model"
	"github.com/proencasmoda/loja-api/internal/domain/repository"
	"github.com/proencasmoda/loja-api/pkg/security"
)

// ErrBadSetupSecret indica que o segredo estático do setup não confere
var ErrBadSetupSecret = errors.New("segredo de setup inválido")

// AuthService gerencia login, verificação de token e o setup do admin
type AuthService struct {
	keyManager  *security.KeyManager
	adminRepo   repository.AdminRepository
	setupSecret string
	tokenTTL    time.Duration
	logger      *zap.Logger
}

// NewAuthService cria um novo serviço de autenticação
func NewAuthService(keyManager *security.KeyManager, adminRepo repository.AdminRepository, setupSecret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		keyManager:  keyManager,
		adminRepo:   adminRepo,
		setupSecret: setupSecret,
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Login autentica o admin e emite um token de sessão
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.Admin, error) {
	admin, err := s.adminRepo.GetByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			s.logger.Warn("Falha na autenticação", zap.String("username", username))
		}
		return "", nil, err
	}

	token, err := s.keyManager.GenerateToken(admin.ID, admin.Username, s.tokenTTL)
	if err != nil {
		s.logger.Error("Falha ao gerar token", zap.String("admin_id", admin.ID), zap.Error(err))
		return "", nil, err
	}

	s.logger.Info("Login bem-sucedido", zap.String("admin_id", admin.ID))
	return token, admin, nil
}

// VerifyToken valida um token de sessão e retorna as claims embutidas
func (s *AuthService) VerifyToken(tokenString string) (*security.Claims, error) {
	return s.keyManager.VerifyToken(tokenString)
}

// Setup cria o admin inicial ou redefine a senha do existente, protegido
// pelo segredo estático configurado. A comparação é em tempo constante.
func (s *AuthService) Setup(ctx context.Context, username, password, secret string) (*model.Admin, bool, error) {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.setupSecret)) != 1 {
		s.logger.Warn("Tentativa de setup com segredo inválido")
		return nil, false, ErrBadSetupSecret
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Erro ao gerar hash da senha", zap.Error(err))
		return nil, false, err
	}

	admin, created, err := s.adminRepo.Upsert(ctx, username, string(hashed))
	if err != nil {
		return nil, false, err
	}

	if created {
		s.logger.Info("Admin criado via setup", zap.String("username", username))
	} else {
		s.logger.Info("Senha do admin redefinida via setup", zap.String("username", username))
	}

	return admin, created, nil
}

// Diagnostics retorna o total de admins cadastrados para o endpoint de teste
func (s *AuthService) Diagnostics(ctx context.Context) (int64, error) {
	return s.adminRepo.Count(ctx)
}
