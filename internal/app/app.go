// Package app monta as dependências a partir da configuração.
// É compartilhado pelo servidor HTTP e pela CLI.
package app

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/infrastructure/database/sqldb"
	"github.com/vfg2006/chai-ledger/infrastructure/events"
	"github.com/vfg2006/chai-ledger/infrastructure/repository"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"github.com/vfg2006/chai-ledger/internal/usecases/authenticating"
	"github.com/vfg2006/chai-ledger/internal/usecases/invoicing"
	"github.com/vfg2006/chai-ledger/internal/usecases/recording"
)

// Storage é o backend escolhido em DATA_BACKEND
type Storage struct {
	Ledger repository.LedgerRepository
	Users  repository.UserRepository // nil no backend file
	conn   sqldb.Conn
}

func (s *Storage) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// OpenStorage abre o arquivo de dados ou o banco SQL configurado
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		conn sqldb.Conn
		err  error
	)

	switch cfg.Storage.Backend {
	case config.BackendFile:
		logrus.WithField("path", cfg.Storage.DataFile).Info("app: usando arquivo de dados")
		return &Storage{Ledger: repository.NewFileLedgerRepository(cfg.Storage.DataFile)}, nil
	case config.BackendSQLite:
		conn, err = sqldb.NewSQLite(ctx, cfg.Storage.SQLitePath)
	case config.BackendPostgres:
		conn, err = sqldb.NewPostgres(ctx, cfg.Database)
	default:
		return nil, fmt.Errorf("app: backend desconhecido %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "app: erro ao abrir o backend %s", cfg.Storage.Backend)
	}

	logrus.WithField("backend", cfg.Storage.Backend).Info("app: conexão com o banco estabelecida")

	return &Storage{
		Ledger: repository.NewSQLLedgerRepository(conn),
		Users:  repository.NewUserRepository(conn),
		conn:   conn,
	}, nil
}

// Services são os casos de uso prontos, com o livro-caixa já carregado
type Services struct {
	Storage       *Storage
	Publisher     events.Publisher
	Recorder      *recording.Service
	Aggregator    aggregating.Aggregator
	Invoicer      *invoicing.Service
	Authenticator authenticating.Authenticator
}

// Close libera o publicador e a conexão com o banco
func (s *Services) Close() error {
	var firstErr error
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			firstErr = err
		}
	}
	if s.Storage != nil {
		if err := s.Storage.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Build abre o armazenamento, carrega os registros e cria os serviços.
// secrets pode ser nil quando não há secret do Render configurado.
func Build(ctx context.Context, cfg *config.Config, secrets config.SecretStorage) (*Services, error) {
	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher, err := events.NewPublisher(cfg.AMQP)
	if err != nil {
		logrus.WithError(err).Warn("app: broker indisponível, eventos desativados")
		publisher = events.NewNoopPublisher()
	}

	services := &Services{Storage: storage, Publisher: publisher}

	recorder := recording.NewService(storage.Ledger, publisher)
	if err := recorder.Load(ctx); err != nil {
		services.Close()
		return nil, err
	}

	sources, err := authenticating.SourcesFromConfig(ctx, cfg, secrets)
	if err != nil {
		logrus.WithError(err).Warn("app: secret de usuários indisponível, usando apenas AUTH_USERS")
		sources = []authenticating.CredentialSource{authenticating.NewStaticSource(cfg.Credentials())}
	}
	// A tabela users vem primeiro: uma senha trocada pela API vale mais que AUTH_USERS
	if storage.Users != nil {
		sources = append([]authenticating.CredentialSource{authenticating.NewRepositorySource(storage.Users)}, sources...)
	}

	services.Recorder = recorder
	services.Aggregator = aggregating.NewService(recorder)
	services.Invoicer = invoicing.NewService(recorder, cfg.BusinessProfile(), publisher)
	services.Authenticator = authenticating.NewService(authenticating.NewChainSource(sources...), storage.Users, cfg)

	return services, nil
}
