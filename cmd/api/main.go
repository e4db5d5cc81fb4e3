package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/api"
	"github.com/vfg2006/chai-ledger/internal/api/handler"
	"github.com/vfg2006/chai-ledger/internal/app"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/scheduler"
	"github.com/vfg2006/chai-ledger/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel, os.Stdout)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var secrets config.SecretStorage
	if cfg.Render.APIKey != "" {
		secrets = config.NewRenderClient(cfg)
	}

	services, err := app.Build(ctx, cfg, secrets)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar os serviços")
	}

	invoiceExportService := scheduler.NewInvoiceExportService(services.Recorder, services.Invoicer, cfg)
	if err := invoiceExportService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de exportação de faturas")
	}

	server, err := api.New(cfg, api.Services{
		Recorder:      services.Recorder,
		Aggregator:    services.Aggregator,
		Invoicer:      services.Invoicer,
		Authenticator: services.Authenticator,
		CronJobs: handler.CronJobServices{
			InvoiceExport: invoiceExportService,
		},
	}, services.Close)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
