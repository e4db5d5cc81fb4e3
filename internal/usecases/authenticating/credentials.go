package authenticating

import (
	"context"
	"strings"

	"github.com/vfg2006/chai-ledger/infrastructure/repository"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/domain"
)

// CredentialSource encontra a senha (pura ou hash bcrypt) de um usuário.
// Usuário inexistente devolve nil, sem erro.
type CredentialSource interface {
	Lookup(ctx context.Context, username string) (*domain.Credential, error)
}

type staticSource struct {
	credentials map[string]domain.Credential
}

// NewStaticSource usa um conjunto fixo, vindo de AUTH_USERS ou do secret do Render
func NewStaticSource(credentials []domain.Credential) CredentialSource {
	byUsername := make(map[string]domain.Credential, len(credentials))
	for _, credential := range credentials {
		byUsername[credential.Username] = credential
	}
	return &staticSource{credentials: byUsername}
}

func (s *staticSource) Lookup(_ context.Context, username string) (*domain.Credential, error) {
	credential, ok := s.credentials[username]
	if !ok {
		return nil, nil
	}
	return &credential, nil
}

type repositorySource struct {
	repo repository.UserRepository
}

// NewRepositorySource lê os usuários da tabela users dos backends SQL
func NewRepositorySource(repo repository.UserRepository) CredentialSource {
	return &repositorySource{repo: repo}
}

func (s *repositorySource) Lookup(ctx context.Context, username string) (*domain.Credential, error) {
	return s.repo.GetCredential(ctx, username)
}

type chainSource []CredentialSource

// NewChainSource consulta as fontes em ordem e para na primeira que conhece o usuário
func NewChainSource(sources ...CredentialSource) CredentialSource {
	return chainSource(sources)
}

func (c chainSource) Lookup(ctx context.Context, username string) (*domain.Credential, error) {
	for _, source := range c {
		credential, err := source.Lookup(ctx, username)
		if err != nil {
			return nil, err
		}
		if credential != nil {
			return credential, nil
		}
	}
	return nil, nil
}

// SourcesFromConfig junta AUTH_USERS e o secret do Render, quando configurado
func SourcesFromConfig(ctx context.Context, cfg *config.Config, storage config.SecretStorage) ([]CredentialSource, error) {
	sources := []CredentialSource{NewStaticSource(cfg.Credentials())}

	if storage != nil && strings.TrimSpace(cfg.Render.ServiceID) != "" {
		credentials, err := config.SecretCredentials(ctx, storage, cfg.Render.ServiceID, cfg.Render.UsersSecretName)
		if err != nil {
			return nil, err
		}
		sources = append(sources, NewStaticSource(credentials))
	}

	return sources, nil
}
