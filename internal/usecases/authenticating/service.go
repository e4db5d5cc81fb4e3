package authenticating

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/infrastructure/repository"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type Authenticator interface {
	LoginUser(ctx context.Context, username, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	SetPassword(ctx context.Context, username, password string) error
}

type Service struct {
	source   CredentialSource
	userRepo repository.UserRepository
	cfg      *config.Config
}

// NewService recebe a fonte de credenciais; userRepo é opcional e só existe nos backends SQL
func NewService(source CredentialSource, userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		source:   source,
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *Service) LoginUser(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	credential, err := s.source.Lookup(ctx, username)
	if err != nil {
		logrus.WithError(err).Error("authenticating: falha ao consultar credenciais")
		return "", NewAuthError(ErrCredentialStore, apiErrors.ErrStorageOperation, "Erro ao consultar usuário")
	}

	if credential == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !passwordMatches(credential.Password, password) {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Senha incorreta")
	}

	token, err := generateJWT(credential.Username, s.cfg.SecretKey, s.cfg.Auth.TokenTTL)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

// passwordMatches aceita hash bcrypt ou senha pura, como vem do secret de usuários
func passwordMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func generateJWT(username, secretKey string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := domain.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

// SetPassword grava o hash bcrypt na tabela users. Só existe nos backends SQL.
func (s *Service) SetPassword(ctx context.Context, username, password string) error {
	if s.userRepo == nil {
		return NewAuthError(ErrReadOnlyCredentials, apiErrors.ErrInvalidRequest, "Use DATA_BACKEND=postgres ou sqlite")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário é obrigatório")
	}
	if len(password) < minPasswordLength {
		return NewAuthError(ErrWeakPassword, apiErrors.ErrInvalidFormat, fmt.Sprintf("A senha deve ter pelo menos %d caracteres", minPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.SaveCredential(ctx, domain.Credential{Username: username, Password: string(hashedPassword)}); err != nil {
		return NewAuthError(err, apiErrors.ErrStorageOperation, "Erro ao gravar usuário")
	}

	logrus.WithField("user_name", username).Info("authenticating: senha atualizada")
	return nil
}
