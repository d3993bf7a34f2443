package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Claims são as declarações embutidas no token de sessão do admin
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// KeyManager assina e verifica tokens de sessão com um segredo fixo do servidor
type KeyManager struct {
	secretKey []byte
	logger    *zap.Logger
}

// NewKeyManager cria um gerenciador de chaves a partir do segredo configurado
func NewKeyManager(secret string, logger *zap.Logger) (*KeyManager, error) {
	if len(secret) < 32 {
		return nil, errors.New("jwt secret key muito curta")
	}

	return &KeyManager{
		secretKey: []byte(secret),
		logger:    logger,
	}, nil
}

// GenerateToken assina um token HS256 com id e username do admin
func (km *KeyManager) GenerateToken(id, username string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(km.secretKey)
	if err != nil {
		km.logger.Error("falha ao gerar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

// VerifyToken verifica assinatura e validade temporal do token. Token
// malformado, expirado ou adulterado falha da mesma forma: o chamador
// recebe apenas um erro, sem distinção de causa.
func (km *KeyManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return km.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("token inválido")
}
