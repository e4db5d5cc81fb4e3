package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/api/handler"
	"github.com/vfg2006/chai-ledger/internal/api/handler/router"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/usecases/aggregating"
	"github.com/vfg2006/chai-ledger/internal/usecases/authenticating"
	"github.com/vfg2006/chai-ledger/internal/usecases/invoicing"
	"github.com/vfg2006/chai-ledger/internal/usecases/recording"
	"github.com/vfg2006/chai-ledger/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	onShutdown []func() error
}

// Services reúne tudo o que as rotas precisam
type Services struct {
	Recorder      recording.Recorder
	Aggregator    aggregating.Aggregator
	Invoicer      invoicing.Invoicer
	Authenticator authenticating.Authenticator
	CronJobs      handler.CronJobServices
}

func New(config *config.Config, services Services, onShutdown ...func() error) (*Server, error) {
	if services.Recorder == nil || services.Aggregator == nil || services.Invoicer == nil || services.Authenticator == nil {
		return nil, fmt.Errorf("api: serviços obrigatórios não informados")
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Dashboard(services.Aggregator)...),
		router.WithRoutes(handler.Offices(services.Recorder)...),
		router.WithRoutes(handler.Orders(services.Recorder, services.Aggregator)...),
		router.WithRoutes(handler.Reports(services.Aggregator, services.Invoicer)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	chain := alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.App.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	).Then(rt)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
		onShutdown: onShutdown,
	}, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serve até receber SIGINT/SIGTERM ou até ctx ser cancelado
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		logrus.WithError(err).Error("Erro durante a execução do servidor")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown para o HTTP e depois fecha publicador e conexões registrados em onShutdown
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	for _, cleanup := range s.onShutdown {
		if err := cleanup(); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar recurso no desligamento")
		}
	}

	return nil
}
