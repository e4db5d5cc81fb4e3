package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/chai-ledger/infrastructure/repository/mocks"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/chai-ledger/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey: "segredo-de-teste",
		Auth:      config.Auth{TokenTTL: time.Hour},
	}
}

func TestService_LoginUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("chai123"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(source *mocks.MockCredentialSource)
		wantErr    error
		wantCode   string
	}{
		{
			name:     "Senha pura correta",
			username: "admin",
			password: "123",
			setupMocks: func(source *mocks.MockCredentialSource) {
				source.EXPECT().Lookup(gomock.Any(), "admin").Return(&domain.Credential{Username: "admin", Password: "123"}, nil)
			},
		},
		{
			name:     "Hash bcrypt correto",
			username: " ravi ",
			password: "chai123",
			setupMocks: func(source *mocks.MockCredentialSource) {
				source.EXPECT().Lookup(gomock.Any(), "ravi").Return(&domain.Credential{Username: "ravi", Password: string(hash)}, nil)
			},
		},
		{
			name:     "Senha errada",
			username: "admin",
			password: "errada",
			setupMocks: func(source *mocks.MockCredentialSource) {
				source.EXPECT().Lookup(gomock.Any(), "admin").Return(&domain.Credential{Username: "admin", Password: "123"}, nil)
			},
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "Usuário inexistente",
			username: "ninguem",
			password: "123",
			setupMocks: func(source *mocks.MockCredentialSource) {
				source.EXPECT().Lookup(gomock.Any(), "ninguem").Return(nil, nil)
			},
			wantErr:  ErrUserNotFound,
			wantCode: apiErrors.ErrUserNotFound,
		},
		{
			name:       "Campos vazios",
			username:   "",
			password:   "",
			setupMocks: func(source *mocks.MockCredentialSource) {},
			wantErr:    ErrMissingRequiredData,
			wantCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:     "Falha na fonte de credenciais",
			username: "admin",
			password: "123",
			setupMocks: func(source *mocks.MockCredentialSource) {
				source.EXPECT().Lookup(gomock.Any(), "admin").Return(nil, errors.New("timeout"))
			},
			wantErr:  ErrCredentialStore,
			wantCode: apiErrors.ErrStorageOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := mocks.NewMockCredentialSource(ctrl)
			tt.setupMocks(source)

			service := NewService(source, nil, testConfig())
			token, err := service.LoginUser(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, tt.wantCode, authErr.Code)
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.NotEmpty(t, claims.Username)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	cfg := testConfig()
	service := NewService(NewStaticSource(nil), nil, cfg)

	t.Run("Token expirado", func(t *testing.T) {
		claims := domain.Claims{
			Username: "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SecretKey))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrExpiredToken))
	})

	t.Run("Assinatura com outra chave", func(t *testing.T) {
		token, err := generateJWT("admin", "outra-chave", time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Token válido", func(t *testing.T) {
		token, err := generateJWT("admin", cfg.SecretKey, time.Hour)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("Lixo", func(t *testing.T) {
		_, err := service.ValidateToken("nao.e.jwt")
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})
}

func TestService_SetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().SaveCredential(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c domain.Credential) error {
		assert.Equal(t, "ravi", c.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(c.Password), []byte("chai1234")))
		return nil
	})

	service := NewService(NewRepositorySource(repo), repo, testConfig())
	require.NoError(t, service.SetPassword(context.Background(), "ravi", "chai1234"))

	err := service.SetPassword(context.Background(), "ravi", "123")
	assert.True(t, errors.Is(err, ErrWeakPassword))
}

func TestService_SetPassword_WithoutRepository(t *testing.T) {
	service := NewService(NewStaticSource(nil), nil, testConfig())

	err := service.SetPassword(context.Background(), "ravi", "chai1234")
	assert.True(t, errors.Is(err, ErrReadOnlyCredentials))
}
